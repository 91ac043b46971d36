package vocabulary

import (
	"strings"

	"github.com/englearn/backend/internal/domain"
)

// WordInput carries the create/update request fields for a word.
type WordInput struct {
	Headword    string
	CEFRLevel   string
	Translation *string
	Topic       *string
	ImageURL    *string
	AudioURL    *string
}

// normalize trims text fields and uppercases the CEFR level, matching what
// the CSV import path produces.
func (in *WordInput) normalize() {
	in.Headword = strings.TrimSpace(in.Headword)
	in.CEFRLevel = strings.ToUpper(strings.TrimSpace(in.CEFRLevel))
}

// Validate checks the word input after normalization.
func (in WordInput) Validate() error {
	var v domain.ValidationError
	if in.Headword == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "headword", Message: "is required"})
	}
	if in.CEFRLevel == "" {
		v.Errors = append(v.Errors, domain.FieldError{Field: "cefr_level", Message: "is required"})
	}
	if len(v.Errors) > 0 {
		return &v
	}
	return nil
}

func (in WordInput) toDomain() *domain.Word {
	return &domain.Word{
		Headword:    in.Headword,
		CEFRLevel:   in.CEFRLevel,
		Translation: in.Translation,
		Topic:       in.Topic,
		ImageURL:    in.ImageURL,
		AudioURL:    in.AudioURL,
	}
}
