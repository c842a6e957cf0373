package models

import (
	"time"

	"github.com/google/uuid"
)

type CalendarEvent struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        *string   `json:"time,omitempty"`
	Type        string    `json:"type"` // "event" or "task"
	Completed   *bool     `json:"completed,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type CalendarEventInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Date        string  `json:"date"`
	Time        *string `json:"time,omitempty"`
	Type        string  `json:"type"`
}
