package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"nekomate-backend/internal/middleware"
	"nekomate-backend/internal/models"
	"nekomate-backend/internal/repository"
	"nekomate-backend/internal/timer"
)

type TimerHandler struct {
	timers   *timer.Service
	noteRepo *repository.NoteRepo
}

func NewTimerHandler(timers *timer.Service, noteRepo *repository.NoteRepo) *TimerHandler {
	return &TimerHandler{timers: timers, noteRepo: noteRepo}
}

func (h *TimerHandler) engine(w http.ResponseWriter, r *http.Request) *timer.Engine {
	userID := middleware.GetUserID(r.Context())
	e, err := h.timers.Engine(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Timer is unavailable", r))
		return nil
	}
	return e
}

func (h *TimerHandler) State(w http.ResponseWriter, r *http.Request) {
	e := h.engine(w, r)
	if e == nil {
		return
	}
	writeJSON(w, http.StatusOK, e.Snapshot())
}

func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	e := h.engine(w, r)
	if e == nil {
		return
	}

	var req struct {
		SessionName string `json:"session_name"`
	}
	// Body is optional; an unnamed session is fine.
	json.NewDecoder(r.Body).Decode(&req)

	e.Start(strings.TrimSpace(req.SessionName))
	writeJSON(w, http.StatusOK, e.Snapshot())
}

func (h *TimerHandler) Pause(w http.ResponseWriter, r *http.Request) {
	e := h.engine(w, r)
	if e == nil {
		return
	}
	e.Pause()
	writeJSON(w, http.StatusOK, e.Snapshot())
}

func (h *TimerHandler) Reset(w http.ResponseWriter, r *http.Request) {
	e := h.engine(w, r)
	if e == nil {
		return
	}
	e.Reset()
	writeJSON(w, http.StatusOK, e.Snapshot())
}

func (h *TimerHandler) ApplyDuration(w http.ResponseWriter, r *http.Request) {
	e := h.engine(w, r)
	if e == nil {
		return
	}

	var req struct {
		Minutes int `json:"minutes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if err := e.ApplyDuration(req.Minutes); err != nil {
		switch {
		case errors.Is(err, timer.ErrTimerRunning):
			writeJSON(w, http.StatusConflict, errorResp("CONFLICT", "Pause the timer before changing its duration", r))
		case errors.Is(err, timer.ErrInvalidMinutes):
			writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Minutes must be at least 1", r))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to apply duration", r))
		}
		return
	}

	writeJSON(w, http.StatusOK, e.Snapshot())
}

func (h *TimerHandler) Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"presets": models.TimerPresets})
}

// ──── Timer notes ────

func (h *TimerHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	notes, err := h.noteRepo.ListNotes(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load notes", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notes": notes})
}

func (h *TimerHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Note content is required", r))
		return
	}

	note := &models.TimerNote{UserID: userID, Content: strings.TrimSpace(req.Content)}
	if err := h.noteRepo.CreateNote(r.Context(), note); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to add note", r))
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *TimerHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	noteID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid note ID", r))
		return
	}

	if err := h.noteRepo.DeleteNote(r.Context(), noteID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Note not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete note", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Note deleted"})
}

// ──── YouTube links ────

func (h *TimerHandler) ListLinks(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	links, err := h.noteRepo.ListLinks(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load links", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"links": links})
}

func (h *TimerHandler) CreateLink(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" || req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Title and URL are required", r))
		return
	}

	link := &models.YouTubeLink{UserID: userID, Title: req.Title, URL: req.URL}
	if err := h.noteRepo.CreateLink(r.Context(), link); err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to add link", r))
		return
	}
	writeJSON(w, http.StatusCreated, link)
}

func (h *TimerHandler) DeleteLink(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	linkID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid link ID", r))
		return
	}

	if err := h.noteRepo.DeleteLink(r.Context(), linkID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Link not found", r))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete link", r))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Link deleted"})
}
