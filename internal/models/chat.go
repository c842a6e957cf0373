package models

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the canned reply from the study buddy.
type ChatResponse struct {
	Reply string `json:"reply"`
}
