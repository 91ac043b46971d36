package domain

import (
	"time"

	"github.com/google/uuid"
)

// CEFRRank orders CEFR levels A1 < A2 < B1 < B2 < C1 < C2; anything else
// sorts last. Used by the stats query and kept here so tests can assert
// against the same table the SQL encodes.
func CEFRRank(level string) int {
	switch level {
	case "A1":
		return 1
	case "A2":
		return 2
	case "B1":
		return 3
	case "B2":
		return 4
	case "C1":
		return 5
	case "C2":
		return 6
	default:
		return 7
	}
}

// Word is a vocabulary catalog entry. Headword is the natural key: unique,
// compared verbatim after trimming, so "apple" and "Apple" are distinct
// entries.
type Word struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Headword    string    `json:"headword" db:"headword"`
	CEFRLevel   string    `json:"cefr_level" db:"cefr_level"`
	Translation *string   `json:"translation" db:"translation"`
	Topic       *string   `json:"topic" db:"topic"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	AudioURL    *string   `json:"audio_url" db:"audio_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// WordFilter holds the optional equality filters for word listings.
// nil means the filter is absent and no predicate is added.
type WordFilter struct {
	CEFRLevel *string
	Topic     *string
}

// LevelCount is one row of the by-level vocabulary statistics.
type LevelCount struct {
	Level string `json:"cefr_level" db:"cefr_level"`
	Count int    `json:"count" db:"count"`
}

// TopicCount is one row of the by-topic vocabulary statistics.
type TopicCount struct {
	Topic string `json:"topic" db:"topic"`
	Count int    `json:"count" db:"count"`
}

// VocabularyStats aggregates catalog-wide counts for the admin dashboard.
type VocabularyStats struct {
	ByLevel []LevelCount `json:"byLevel"`
	ByTopic []TopicCount `json:"byTopic"`
	Total   int          `json:"total"`
}
