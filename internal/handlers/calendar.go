package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nekomate-backend/internal/middleware"
	"nekomate-backend/internal/models"
	"nekomate-backend/internal/repository"
)

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

type CalendarHandler struct {
	calendarRepo *repository.CalendarRepo
}

func NewCalendarHandler(calendarRepo *repository.CalendarRepo) *CalendarHandler {
	return &CalendarHandler{calendarRepo: calendarRepo}
}

func validateEventInput(req *models.CalendarEventInput) map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if !dateRegex.MatchString(req.Date) {
		fieldErrors["date"] = "Date must be YYYY-MM-DD"
	}
	if req.Type != "event" && req.Type != "task" {
		fieldErrors["type"] = "Type must be event or task"
	}
	return fieldErrors
}

func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	month := r.URL.Query().Get("month")

	events, err := h.calendarRepo.ListByUser(r.Context(), userID, month)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load events", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

func (h *CalendarHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req models.CalendarEventInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if fieldErrors := validateEventInput(&req); len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return
	}

	event := &models.CalendarEvent{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
	}
	if req.Type == "task" {
		completed := false
		event.Completed = &completed
	}

	if err := h.calendarRepo.Create(r.Context(), event); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to create event", r))
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (h *CalendarHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid event ID", r))
		return
	}

	var req struct {
		models.CalendarEventInput
		Completed *bool `json:"completed,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}
	if fieldErrors := validateEventInput(&req.CalendarEventInput); len(fieldErrors) > 0 {
		writeJSON(w, http.StatusBadRequest, errorRespWithFields("VALIDATION_ERROR", "Validation failed", fieldErrors, r))
		return
	}

	event := &models.CalendarEvent{
		ID:          eventID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Time:        req.Time,
		Type:        req.Type,
		Completed:   req.Completed,
	}

	if err := h.calendarRepo.Update(r.Context(), event); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Event not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to update event", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event updated"})
}

func (h *CalendarHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	eventID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid event ID", r))
		return
	}

	if err := h.calendarRepo.Delete(r.Context(), eventID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Event not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete event", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted"})
}
