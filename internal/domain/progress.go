package domain

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteWord joins a word with the time the user favorited it.
type FavoriteWord struct {
	Word
	FavoritedAt time.Time `json:"favorited_at" db:"favorited_at"`
}

// LearnedWord joins a word with the user's mastery state. At most one
// record exists per (user, word); marking again upserts mastery and
// last_reviewed.
type LearnedWord struct {
	Word
	MasteryLevel int       `json:"mastery_level" db:"mastery_level"`
	LastReviewed time.Time `json:"last_reviewed" db:"last_reviewed"`
}

// LearnedState is the per-word answer to "has this user learned it".
type LearnedState struct {
	Learned      bool
	MasteryLevel int
	LastReviewed *time.Time
}

// QuizAttempt records one finished quiz.
type QuizAttempt struct {
	ID             uuid.UUID `json:"id" db:"id"`
	UserID         uuid.UUID `json:"user_id" db:"user_id"`
	Topic          *string   `json:"topic" db:"topic"`
	Score          int       `json:"score" db:"score"`
	TotalQuestions int       `json:"total_questions" db:"total_questions"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

// MasteryCount is one bucket of the mastery-level histogram.
type MasteryCount struct {
	Level int `json:"level" db:"mastery_level"`
	Count int `json:"count" db:"count"`
}

// LearningStats summarizes a user's vocabulary progress.
type LearningStats struct {
	LearnedWords  int            `json:"learnedWords"`
	FavoriteWords int            `json:"favoriteWords"`
	QuizAttempts  int            `json:"quizAttempts"`
	QuizAvgScore  int            `json:"quizAvgScore"`
	MasteryLevels []MasteryCount `json:"masteryLevels"`
}

// PracticeAttempt records one speech-practice attempt against a sentence.
type PracticeAttempt struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	SentenceID  uuid.UUID `json:"sentence_id" db:"sentence_id"`
	Accuracy    float64   `json:"accuracy" db:"accuracy"`
	AudioURL    *string   `json:"audio_url" db:"audio_url"`
	PracticedAt time.Time `json:"practiced_at" db:"practiced_at"`
}

// PracticeHistoryItem is a practice attempt joined with its sentence.
type PracticeHistoryItem struct {
	PracticeAttempt
	Sentence    string  `json:"sentence" db:"sentence"`
	Translation *string `json:"translation" db:"translation"`
	Difficulty  string  `json:"difficulty" db:"difficulty"`
	Category    string  `json:"category" db:"category"`
}

// DailyAccuracy is one day of the recent-progress series.
type DailyAccuracy struct {
	Date        time.Time `json:"practice_date" db:"practice_date"`
	AvgAccuracy float64   `json:"avg_accuracy" db:"avg_accuracy"`
	Count       int       `json:"count" db:"count"`
}

// PracticeStats summarizes a user's speech-practice history.
type PracticeStats struct {
	TotalPractices int               `json:"totalPractices"`
	AvgAccuracy    float64           `json:"avgAccuracy"`
	ByDifficulty   []DifficultyCount `json:"byDifficulty"`
	ByCategory     []CategoryCount   `json:"byCategory"`
	RecentProgress []DailyAccuracy   `json:"recentProgress"`
}
