package word

import (
	sq "github.com/Masterminds/squirrel"

	"github.com/englearn/backend/internal/domain"
)

// predicates converts a WordFilter into squirrel conjuncts. The count query
// and the data query both call this, so their WHERE clauses can never diverge.
func predicates(f domain.WordFilter) []sq.Sqlizer {
	var preds []sq.Sqlizer
	if f.CEFRLevel != nil {
		preds = append(preds, sq.Eq{"cefr_level": *f.CEFRLevel})
	}
	if f.Topic != nil {
		preds = append(preds, sq.Eq{"topic": *f.Topic})
	}
	return preds
}

func applyPredicates(b sq.SelectBuilder, preds []sq.Sqlizer) sq.SelectBuilder {
	for _, p := range preds {
		b = b.Where(p)
	}
	return b
}

// cefrOrder sorts CEFR levels A1 < A2 < B1 < B2 < C1 < C2 with anything
// else last, then alphabetically within the tail bucket.
const cefrOrder = `CASE cefr_level
	WHEN 'A1' THEN 1
	WHEN 'A2' THEN 2
	WHEN 'B1' THEN 3
	WHEN 'B2' THEN 4
	WHEN 'C1' THEN 5
	WHEN 'C2' THEN 6
	ELSE 7
END, cefr_level`
