package vocabulary

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/englearn/backend/internal/domain"
	"github.com/englearn/backend/internal/importer"
)

// ImportResult reports one finished bulk import.
type ImportResult struct {
	Success        bool `json:"success"`
	Count          int  `json:"count"`
	TotalProcessed int  `json:"totalProcessed"`
}

// Import parses a vocabulary CSV stream and inserts the rows not already
// present, all inside one transaction. Existence is checked per headword,
// verbatim: re-importing the same file inserts nothing the second time,
// while any failure rolls back the whole batch.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	records, err := importer.Parse(r, importer.WordSchema())
	if err != nil {
		return nil, domain.NewValidationError("file", err.Error())
	}

	inserted := 0
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, rec := range records {
			exists, err := s.words.ExistsByHeadword(txCtx, rec[importer.FieldHeadword])
			if err != nil {
				return fmt.Errorf("check %q: %w", rec[importer.FieldHeadword], err)
			}
			if exists {
				continue
			}

			w := &domain.Word{
				Headword:  rec[importer.FieldHeadword],
				CEFRLevel: rec[importer.FieldCEFRLevel],
			}
			if v, ok := rec[importer.FieldTranslation]; ok {
				w.Translation = &v
			}
			if v, ok := rec[importer.FieldTopic]; ok {
				w.Topic = &v
			}

			if _, err := s.words.Create(txCtx, w); err != nil {
				return fmt.Errorf("insert %q: %w", w.Headword, err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vocabulary.Import: %w", err)
	}

	s.log.InfoContext(ctx, "vocabulary imported",
		slog.Int("processed", len(records)),
		slog.Int("inserted", inserted))

	return &ImportResult{
		Success:        true,
		Count:          inserted,
		TotalProcessed: len(records),
	}, nil
}
