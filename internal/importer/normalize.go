package importer

import "strings"

// Record is one normalized payload keyed by canonical field names.
type Record map[string]string

// headerIndex maps lowercased header names to their column index. The first
// occurrence wins when a header repeats.
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

// matchesHeader reports whether any field alias appears in the header row.
// A row that matches nothing is treated as data, not as a header.
func (s Schema) matchesHeader(header []string) bool {
	idx := headerIndex(header)
	for _, f := range s.Fields {
		for _, a := range f.Aliases {
			if _, ok := idx[a]; ok {
				return true
			}
		}
	}
	return false
}

// Normalize converts one raw row into a canonical record. header may be nil
// when the file had no recognizable header row; then only positional
// fallbacks apply. The second return value is false when a required field
// resolved empty; the record is dropped, by policy, without error.
func (s Schema) Normalize(header, row []string) (Record, bool) {
	idx := headerIndex(header)

	rec := make(Record, len(s.Fields))
	for _, f := range s.Fields {
		value := ""
		for _, a := range f.Aliases {
			col, ok := idx[a]
			if !ok || col >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[col]); v != "" {
				value = v
				break
			}
		}
		if value == "" && f.Positional >= 0 && f.Positional < len(row) {
			value = strings.TrimSpace(row[f.Positional])
		}

		switch f.Transform {
		case Uppercase:
			value = strings.ToUpper(value)
		case Lowercase:
			value = strings.ToLower(value)
		}

		if value == "" {
			if f.Required {
				return nil, false
			}
			value = f.Default
		}
		if value != "" {
			rec[f.Name] = value
		}
	}
	return rec, true
}
