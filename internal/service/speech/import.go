package speech

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

// Import parses a sentence CSV stream and inserts the rows not already
// present, all inside one transaction. The sentence schema accepts
// headerless files through positional fallback; existence is checked per
// exact text, so re-importing the same file is a no-op and any failure
// rolls back the whole batch.
func (s *Service) Import(ctx context.Context, r io.Reader) (*ImportResult, error) {
	records, err := importer.Parse(r, importer.SentenceSchema())
	if err != nil {
		return nil, domain.NewValidationError("file", err.Error())
	}

	inserted := 0
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		for _, rec := range records {
			exists, err := s.sentences.ExistsByText(txCtx, rec[importer.FieldText])
			if err != nil {
				return fmt.Errorf("check sentence: %w", err)
			}
			if exists {
				continue
			}

			sent := &domain.Sentence{
				Text:       rec[importer.FieldText],
				Difficulty: rec[importer.FieldDifficulty],
				Category:   rec[importer.FieldCategory],
			}
			if v, ok := rec[importer.FieldTranslation]; ok {
				sent.Translation = &v
			}

			if _, err := s.sentences.Create(txCtx, sent); err != nil {
				return fmt.Errorf("insert sentence: %w", err)
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("speech.Import: %w", err)
	}

	s.log.InfoContext(ctx, "sentences imported",
		slog.Int("processed", len(records)),
		slog.Int("inserted", inserted))

	return &ImportResult{
		Success:        true,
		Count:          inserted,
		TotalProcessed: len(records),
	}, nil
}
