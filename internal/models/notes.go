package models

import (
	"time"

	"github.com/google/uuid"
)

// TimerNote is a short note pinned next to the focus timer.
type TimerNote struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// YouTubeLink is a bookmarked study-music/lecture link. Only the URL is
// stored; nothing is fetched from it.
type YouTubeLink struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
