package services

import (
	"strings"
	"testing"
)

func TestChatbotReply_FirstMatchOrder(t *testing.T) {
	bot := NewChatbotService()

	tests := []struct {
		name     string
		message  string
		contains string
	}{
		{"greeting", "Hello!", "study buddy"},
		{"case insensitive", "POMODORO", "Pomodoro Technique"},
		{"substring match", "any study tips for me?", "effective study tips"},
		{"earlier rule wins", "hello, how are you", "study buddy"},
		{"thanks variant", "ok thanks", "You're welcome"},
		{"goodbye", "bye now", "Goodbye"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reply := bot.Reply(tc.message)
			if !strings.Contains(reply, tc.contains) {
				t.Errorf("Reply(%q) = %q, expected it to contain %q", tc.message, reply, tc.contains)
			}
		})
	}
}

func TestChatbotReply_Fallback(t *testing.T) {
	bot := NewChatbotService()

	reply := bot.Reply("quantum chromodynamics")
	if !strings.Contains(reply, "I'm here to help") {
		t.Errorf("expected fallback reply, got %q", reply)
	}
}
