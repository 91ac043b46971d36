package domain

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one persisted exchange: the user's message and the
// assistant's reply, with the model that produced it.
type ChatMessage struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Message   string    `json:"message" db:"message"`
	Response  string    `json:"response" db:"response"`
	ModelID   string    `json:"model_id" db:"model_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ChatModel describes one entry of the static model catalog exposed to
// clients.
type ChatModel struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	ContextLength int    `json:"context_length"`
}
