package simon

import "encoding/json"

// StartRequest is the body of POST /start.
type StartRequest struct {
	GoogleMapsKey string `json:"google_maps_key"`
}

// StartResponse is the body returned by POST /start.
type StartResponse struct {
	SessionID string `json:"session_id"`
	Status    string `json:"status,omitempty"`
}

// Brainstorm holds the follow-up prompts the backend suggests for a chunk of notes.
type Brainstorm struct {
	Goal      string   `json:"goal"`
	Questions []string `json:"questions"`
}

// BrainstormResponse is the body returned by GET /brainstorm.
type BrainstormResponse struct {
	Response Brainstorm `json:"response"`
	Status   string     `json:"status,omitempty"`
}

// ChatResponse is a chat answer. Widget selects how Payload is presented; Raw is the plain
// text fallback.
type ChatResponse struct {
	Widget  string          `json:"widget"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Raw     string          `json:"raw,omitempty"`
}

// ChatEnvelope is the body returned by GET /chat.
type ChatEnvelope struct {
	Response ChatResponse `json:"response"`
	Status   string       `json:"status,omitempty"`
}

// errorBody is what the backend sends alongside a 4xx.
type errorBody struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
