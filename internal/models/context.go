package models

// DefaultScenario is used when the user has not picked a legal scenario.
const DefaultScenario = "GENERAL"

type HistoryEntry struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// ConversationContext is what the caller knows about the conversation when a new
// message arrives. All fields are optional.
type ConversationContext struct {
	LegalScenario       string         `json:"legalScenario,omitempty"`
	EmotionalState      string         `json:"emotionalState,omitempty"`
	ConversationHistory []HistoryEntry `json:"conversationHistory,omitempty"`
}

// Scenario returns the selected scenario or DefaultScenario.
func (c ConversationContext) Scenario() string {
	if c.LegalScenario == "" {
		return DefaultScenario
	}
	return c.LegalScenario
}

// History builds the context history from stored messages (oldest first), keeping the last limit entries.
func History(messages []*Message, limit int) []HistoryEntry {
	if limit > 0 && len(messages) > limit {
		messages = messages[len(messages)-limit:]
	}
	history := make([]HistoryEntry, 0, len(messages))
	for _, m := range messages {
		history = append(history, HistoryEntry{Role: m.Role, Content: m.Content})
	}
	return history
}
