package handoff

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
	"github.com/xaenox/asesor-legal/internal/knowledge"
	"github.com/xaenox/asesor-legal/internal/models"
	"go.uber.org/zap"
)

const (
	SourceOpenAI = "openai"
	SourceRules  = "rules"

	maxQuotedMessages = 5
)

// Summary is the case brief handed to a human lawyer or volunteer.
type Summary struct {
	UserID         int64    `json:"userId"`
	Scenario       string   `json:"scenario"`
	ScenarioTitle  string   `json:"scenarioTitle,omitempty"`
	CrisisDetected bool     `json:"crisisDetected"`
	CrisisKeywords []string `json:"crisisKeywords"`
	MessageCount   int      `json:"messageCount"`
	Text           string   `json:"summary"`
	Source         string   `json:"source"`
}

type gptSummary struct {
	Summary string `json:"summary"`
}

type Summarizer struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger
}

// NewSummarizer returns a summarizer that calls OpenAI when apiKey is set and
// otherwise always uses the rule-based summary.
func NewSummarizer(apiKey string, model string, maxTokens int, temperature float64, logger *zap.Logger) *Summarizer {
	var client *openai.Client
	if apiKey != "" {
		client = openai.NewClient(apiKey)
	}
	return &Summarizer{
		client:      client,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
	}
}

// Summarize builds a brief from the transcript; messages must be oldest first.
func (s *Summarizer) Summarize(ctx context.Context, user *models.User, messages []*models.Message) Summary {
	summary := baseSummary(user, messages)

	if s.client == nil || len(messages) == 0 {
		summary.Text = fallbackText(summary, messages)
		summary.Source = SourceRules
		return summary
	}

	text, err := s.complete(ctx, summary, messages)
	if err != nil {
		s.logger.Error("Failed to get GPT summary, using rule-based summary",
			zap.Error(err),
			zap.Int64("user_id", user.ID))
		summary.Text = fallbackText(summary, messages)
		summary.Source = SourceRules
		return summary
	}

	summary.Text = text
	summary.Source = SourceOpenAI
	return summary
}

func (s *Summarizer) complete(ctx context.Context, summary Summary, messages []*models.Message) (string, error) {
	var transcript strings.Builder
	for _, m := range messages {
		fmt.Fprintf(&transcript, "%s: %s\n", m.Role, m.Content)
	}

	prompt := fmt.Sprintf(`Eres asistente de un despacho de asesoría legal gratuita en México.
Resume la siguiente conversación para que un abogado pueda atender el caso.
Incluye: qué ocurrió, riesgos para la persona, y qué necesita con urgencia.
Escenario legal seleccionado: %s
Crisis detectada: %t

Devuelve únicamente un objeto JSON con esta estructura:
{
    "summary": "resumen_del_caso"
}

Conversación:
%s`, summary.Scenario, summary.CrisisDetected, transcript.String())

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: s.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens:   s.maxTokens,
			Temperature: float32(s.temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return parseGPTSummary(resp.Choices[0].Message.Content)
}

func parseGPTSummary(content string) (string, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	var parsed gptSummary
	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &parsed); err != nil {
		return "", fmt.Errorf("parse summary: %w", err)
	}
	if strings.TrimSpace(parsed.Summary) == "" {
		return "", fmt.Errorf("parse summary: empty summary")
	}
	return parsed.Summary, nil
}

func baseSummary(user *models.User, messages []*models.Message) Summary {
	scenario := user.LegalScenario
	if scenario == "" {
		scenario = models.DefaultScenario
	}

	summary := Summary{
		UserID:         user.ID,
		Scenario:       scenario,
		CrisisKeywords: []string{},
		MessageCount:   len(messages),
	}
	if entry, ok := knowledge.Lookup(scenario); ok {
		summary.ScenarioTitle = entry.Title
	}

	seen := make(map[string]struct{})
	for _, m := range messages {
		if !m.CrisisDetected {
			continue
		}
		summary.CrisisDetected = true
		for _, k := range m.CrisisKeywords {
			if _, ok := seen[k]; !ok {
				seen[k] = struct{}{}
				summary.CrisisKeywords = append(summary.CrisisKeywords, k)
			}
		}
	}

	return summary
}

func fallbackText(summary Summary, messages []*models.Message) string {
	var b strings.Builder

	title := summary.ScenarioTitle
	if title == "" {
		title = "Sin escenario seleccionado"
	}
	fmt.Fprintf(&b, "Escenario: %s\n", title)

	if summary.CrisisDetected {
		fmt.Fprintf(&b, "Crisis detectada: sí (%s)\n", strings.Join(summary.CrisisKeywords, ", "))
	} else {
		b.WriteString("Crisis detectada: no\n")
	}

	var userMessages []string
	for _, m := range messages {
		if m.Role == models.RoleUser {
			userMessages = append(userMessages, m.Content)
		}
	}
	if len(userMessages) > maxQuotedMessages {
		userMessages = userMessages[len(userMessages)-maxQuotedMessages:]
	}

	if len(userMessages) == 0 {
		b.WriteString("Sin mensajes del usuario.")
		return b.String()
	}

	b.WriteString("Mensajes recientes del usuario:\n")
	for _, m := range userMessages {
		fmt.Fprintf(&b, "- %s\n", m)
	}
	return strings.TrimRight(b.String(), "\n")
}
