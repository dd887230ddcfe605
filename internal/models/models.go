package models

import "time"

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry, either what the user wrote or what the assistant replied.
type Message struct {
	ID             string    `json:"id"`
	UserID         int64     `json:"user_id"`
	Role           Role      `json:"role"`
	Content        string    `json:"content"`
	Sentiment      string    `json:"sentiment,omitempty"`
	Intent         string    `json:"intent,omitempty"`
	CrisisDetected bool      `json:"crisis_detected"`
	CrisisKeywords []string  `json:"crisis_keywords,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// User holds the per-user state the assistant needs between messages.
type User struct {
	ID             int64     `json:"id"`
	LegalScenario  string    `json:"legal_scenario"`
	EmotionalState string    `json:"emotional_state,omitempty"`
	LastUsedAt     time.Time `json:"last_used_at"`
}
