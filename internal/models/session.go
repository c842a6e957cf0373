package models

import (
	"time"

	"github.com/google/uuid"
)

// StudySession is an append-only record of one completed focus run.
// Rows are never updated or deleted once written.
type StudySession struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	DurationSeconds int       `json:"duration_seconds"`
	StartedAt       time.Time `json:"started_at"`
	EndedAt         time.Time `json:"ended_at"`
	Date            string    `json:"date"` // YYYY-MM-DD, local date of StartedAt
	SessionName     *string   `json:"session_name,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

type DailyStats struct {
	Date         string `json:"date"`
	TotalMinutes int    `json:"total_minutes"`
	Sessions     int    `json:"sessions"`
}

type TaskStats struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Active         int `json:"active"`
	CompletionRate int `json:"completion_rate"`
}

type AnalyticsData struct {
	TotalFocusTime   int          `json:"total_focus_time"` // minutes
	TotalSessions    int          `json:"total_sessions"`
	AverageSession   int          `json:"average_session_time"` // minutes
	DailyStats       []DailyStats `json:"daily_stats"`
	TaskStats        TaskStats    `json:"task_stats"`
	WeeklyFocusTime  int          `json:"weekly_focus_time"`  // minutes
	MonthlyFocusTime int          `json:"monthly_focus_time"` // minutes
}
