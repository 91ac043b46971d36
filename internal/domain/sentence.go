package domain

import (
	"time"

	"github.com/google/uuid"
)

// Sentence difficulty levels. The check constraint in the schema mirrors
// this list.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// DefaultCategory is applied when an imported or created sentence carries
// no category of its own.
const DefaultCategory = "general"

// ValidDifficulty reports whether s is one of the accepted difficulty values.
func ValidDifficulty(s string) bool {
	return s == DifficultyEasy || s == DifficultyMedium || s == DifficultyHard
}

// Sentence is a speech-practice catalog entry. Text is the natural key:
// unique, compared verbatim after trimming.
type Sentence struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Text        string    `json:"sentence" db:"text"`
	Translation *string   `json:"translation" db:"translation"`
	Difficulty  string    `json:"difficulty" db:"difficulty"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// SentenceFilter holds the optional equality filters for sentence listings.
type SentenceFilter struct {
	Difficulty *string
	Category   *string
}

// DifficultyCount is one row of the by-difficulty speech statistics.
type DifficultyCount struct {
	Difficulty string `json:"difficulty" db:"difficulty"`
	Count      int    `json:"count" db:"count"`
}

// CategoryCount is one row of the by-category speech statistics.
type CategoryCount struct {
	Category string `json:"category" db:"category"`
	Count    int    `json:"count" db:"count"`
}

// SpeechStats aggregates sentence-catalog counts for the admin view.
type SpeechStats struct {
	Total        int               `json:"total"`
	ByDifficulty []DifficultyCount `json:"byDifficulty"`
	ByCategory   []CategoryCount   `json:"byCategory"`
}
