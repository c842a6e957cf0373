package handlers

import (
	"net/http"
	"strconv"
	"time"

	"nekomate-backend/internal/analytics"
	"nekomate-backend/internal/middleware"
	"nekomate-backend/internal/repository"
)

// The system fetches at most 30 days of session history for any aggregate.
const maxHistoryDays = 30

type AnalyticsHandler struct {
	sessionRepo *repository.SessionRepo
	todoRepo    *repository.TodoRepo
}

func NewAnalyticsHandler(sessionRepo *repository.SessionRepo, todoRepo *repository.TodoRepo) *AnalyticsHandler {
	return &AnalyticsHandler{sessionRepo: sessionRepo, todoRepo: todoRepo}
}

func queryDays(r *http.Request, def int) int {
	days := def
	if v := r.URL.Query().Get("days"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			days = n
		}
	}
	if days > maxHistoryDays {
		days = maxHistoryDays
	}
	return days
}

// Sessions lists the user's study-session history, newest first.
func (h *AnalyticsHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	days := queryDays(r, maxHistoryDays)

	since := time.Now().AddDate(0, 0, -days)
	sessions, err := h.sessionRepo.ListByUserSince(r.Context(), userID, since)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("NO_DATA", "No analytics data available", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": sessions})
}

func (h *AnalyticsHandler) Daily(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	days := queryDays(r, 7)

	since := time.Now().AddDate(0, 0, -days)
	sessions, err := h.sessionRepo.ListByUserSince(r.Context(), userID, since)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("NO_DATA", "No analytics data available", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"daily_stats": analytics.ComputeDailyStats(sessions, days, time.Now()),
	})
}

func (h *AnalyticsHandler) TaskStats(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	todos, err := h.todoRepo.ListByUser(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("NO_DATA", "No analytics data available", r))
		return
	}

	writeJSON(w, http.StatusOK, analytics.ComputeTaskStats(todos))
}

// Overview returns the full analytics rollup. A failed fetch yields an
// explicit no-data error, never zeroed numbers.
func (h *AnalyticsHandler) Overview(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	ctx := r.Context()

	since := time.Now().AddDate(0, 0, -maxHistoryDays)
	sessions, err := h.sessionRepo.ListByUserSince(ctx, userID, since)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("NO_DATA", "No analytics data available", r))
		return
	}

	todos, err := h.todoRepo.ListByUser(ctx, userID)
	if err != nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResp("NO_DATA", "No analytics data available", r))
		return
	}

	writeJSON(w, http.StatusOK, analytics.BuildAnalyticsData(sessions, todos, time.Now()))
}
