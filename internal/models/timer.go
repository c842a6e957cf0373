package models

import "github.com/google/uuid"

// TimerState is the live countdown record shared by every session of one
// user. It is overwritten in place on each mutation; last write wins.
type TimerState struct {
	UserID        uuid.UUID `json:"user_id"`
	Minutes       int       `json:"minutes"`
	Seconds       int       `json:"seconds"`
	IsRunning     bool      `json:"is_running"`
	CustomMinutes int       `json:"custom_minutes"`
	LastUpdated   int64     `json:"last_updated"` // epoch ms, advisory only
}

// Same display values, regardless of which session produced them.
func (s TimerState) SameDisplay(o TimerState) bool {
	return s.Minutes == o.Minutes &&
		s.Seconds == o.Seconds &&
		s.IsRunning == o.IsRunning &&
		s.CustomMinutes == o.CustomMinutes
}

type TimerPreset struct {
	Name    string `json:"name"`
	Minutes int    `json:"minutes"`
}

var TimerPresets = []TimerPreset{
	{Name: "Pomodoro", Minutes: 25},
	{Name: "Short Break", Minutes: 5},
	{Name: "Long Break", Minutes: 15},
	{Name: "Deep Work", Minutes: 45},
	{Name: "Quick Focus", Minutes: 10},
}
