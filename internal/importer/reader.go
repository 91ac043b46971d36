package importer

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Parse reads a whole CSV stream and returns the normalized records in
// input order. The first row is consumed as a header when at least one
// cell matches a schema alias; otherwise every row (including the first)
// is treated as data and only positional fallbacks apply. Records missing
// a required field are silently dropped.
func Parse(r io.Reader, s Schema) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(rows) == 0 {
		return []Record{}, nil
	}

	var header []string
	data := rows
	if s.matchesHeader(rows[0]) {
		header = rows[0]
		data = rows[1:]
	}

	records := make([]Record, 0, len(data))
	for _, row := range data {
		if rec, ok := s.Normalize(header, row); ok {
			records = append(records, rec)
		}
	}
	return records, nil
}
