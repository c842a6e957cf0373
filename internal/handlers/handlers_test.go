package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"nekomate-backend/internal/models"
	"nekomate-backend/internal/services"
)

// ─── Response Helper Tests ───

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"message": "ok"})

	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}
	if rr.Header().Get("Content-Type") != "application/json" {
		t.Errorf("Expected Content-Type 'application/json', got %q", rr.Header().Get("Content-Type"))
	}

	var result map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result["message"] != "ok" {
		t.Errorf("Expected message 'ok', got %q", result["message"])
	}
}

func TestErrorResp_CarriesRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/timer", nil)
	req.Header.Set("X-Request-ID", "req-123")

	resp := errorResp("NOT_FOUND", "Not found", req)

	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected code NOT_FOUND, got %q", resp.Error.Code)
	}
	if resp.Error.RequestID != "req-123" {
		t.Errorf("Expected request ID 'req-123', got %q", resp.Error.RequestID)
	}
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", &services.ValidationError{Fields: map[string]string{"email": "required"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"conflict", &services.ConflictError{Message: "taken"}, http.StatusConflict, "CONFLICT"},
		{"not found", &services.NotFoundError{Message: "missing"}, http.StatusNotFound, "NOT_FOUND"},
		{"unauthorized", &services.UnauthorizedError{Message: "bad creds"}, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unknown", http.ErrBodyNotAllowed, http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/", nil)

			handleServiceError(rr, req, tc.err)

			if rr.Code != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rr.Code)
			}

			var resp models.ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("Failed to decode error response: %v", err)
			}
			if resp.Error.Code != tc.wantCode {
				t.Errorf("Expected code %q, got %q", tc.wantCode, resp.Error.Code)
			}
		})
	}
}

// ─── Analytics Handler Tests ───

func TestQueryDays(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		def      int
		expected int
	}{
		{"default when absent", "", 7, 7},
		{"explicit value", "days=14", 7, 14},
		{"clamped to max", "days=365", 7, 30},
		{"ignores garbage", "days=abc", 7, 7},
		{"ignores non-positive", "days=0", 7, 7},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/daily?"+tc.query, nil)
			if got := queryDays(req, tc.def); got != tc.expected {
				t.Errorf("Expected %d days, got %d", tc.expected, got)
			}
		})
	}
}

// ─── Calendar Validation Tests ───

func TestValidateEventInput(t *testing.T) {
	tests := []struct {
		name       string
		input      models.CalendarEventInput
		wantFields []string
	}{
		{"valid event", models.CalendarEventInput{Title: "Standup", Date: "2025-03-10", Type: "event"}, nil},
		{"valid task", models.CalendarEventInput{Title: "Essay", Date: "2025-03-10", Type: "task"}, nil},
		{"missing title", models.CalendarEventInput{Date: "2025-03-10", Type: "event"}, []string{"title"}},
		{"bad date", models.CalendarEventInput{Title: "X", Date: "10/03/2025", Type: "event"}, []string{"date"}},
		{"bad type", models.CalendarEventInput{Title: "X", Date: "2025-03-10", Type: "meeting"}, []string{"type"}},
		{"everything wrong", models.CalendarEventInput{}, []string{"title", "date", "type"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			fieldErrors := validateEventInput(&tc.input)
			if len(fieldErrors) != len(tc.wantFields) {
				t.Fatalf("Expected %d field errors, got %d: %v", len(tc.wantFields), len(fieldErrors), fieldErrors)
			}
			for _, f := range tc.wantFields {
				if _, ok := fieldErrors[f]; !ok {
					t.Errorf("Expected error for field %q, got %v", f, fieldErrors)
				}
			}
		})
	}
}

// ─── Chat Handler Tests ───

func TestChatHandler(t *testing.T) {
	h := NewChatHandler(services.NewChatbotService())

	body, _ := json.Marshal(models.ChatRequest{Message: "hello there"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/message", bytes.NewReader(body))
	rr := httptest.NewRecorder()

	h.Message(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Reply == "" {
		t.Error("Expected a non-empty reply")
	}
}

func TestChatHandler_EmptyMessage(t *testing.T) {
	h := NewChatHandler(services.NewChatbotService())

	for _, body := range []string{`{}`, `{"message":"   "}`, `not json`} {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat/message", bytes.NewReader([]byte(body)))
		rr := httptest.NewRecorder()

		h.Message(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("Body %q: expected status 400, got %d", body, rr.Code)
		}
	}
}
