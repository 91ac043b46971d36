package domain

import (
	"time"

	"github.com/google/uuid"
)

// Topic groups vocabulary words for browsing. Words reference topics by
// name (denormalized), so deleting a topic does not touch its words.
type Topic struct {
	ID          uuid.UUID `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description" db:"description"`
	ImageURL    *string   `json:"image_url" db:"image_url"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
