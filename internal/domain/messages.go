package domain

// ClientMessage is the envelope for everything a WebSocket client sends.
type ClientMessage struct {
	Type       string `json:"type"`
	JWT        string `json:"jwt,omitempty"`
	Variant    string `json:"variant,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Mark       string `json:"mark,omitempty"`
	Cell       int    `json:"cell"`
}

// ServerMessage is the envelope for everything the server pushes back.
type ServerMessage struct {
	Type    string      `json:"type"`
	Message string      `json:"message,omitempty"`
	JWT     string      `json:"jwt,omitempty"`
	Payload interface{} `json:"payload,omitempty"`
}
