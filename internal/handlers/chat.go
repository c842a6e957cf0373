package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"nekomate-backend/internal/models"
	"nekomate-backend/internal/services"
)

type ChatHandler struct {
	bot *services.ChatbotService
}

func NewChatHandler(bot *services.ChatbotService) *ChatHandler {
	return &ChatHandler{bot: bot}
}

func (h *ChatHandler) Message(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Message is required", r))
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Reply: h.bot.Reply(req.Message)})
}
