package conversation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/xaenox/asesor-legal/internal/assistant"
	"github.com/xaenox/asesor-legal/internal/classifier"
	"github.com/xaenox/asesor-legal/internal/handoff"
	"github.com/xaenox/asesor-legal/internal/knowledge"
	"github.com/xaenox/asesor-legal/internal/models"
	"github.com/xaenox/asesor-legal/internal/storage"
	"go.uber.org/zap"
)

var ErrUnknownScenario = errors.New("unknown legal scenario")

// DefaultHistoryLimit bounds the context loaded per message when the
// configured limit is not positive. Storage treats a zero limit as unbounded.
const DefaultHistoryLimit = 10

// Service runs the assistant for a user and keeps their transcript.
type Service struct {
	storage      storage.Storage
	assistant    *assistant.Assistant
	classifier   *classifier.RuleClassifier
	summarizer   *handoff.Summarizer
	historyLimit int
	logger       *zap.Logger
}

func NewService(
	store storage.Storage,
	asst *assistant.Assistant,
	clf *classifier.RuleClassifier,
	summarizer *handoff.Summarizer,
	historyLimit int,
	logger *zap.Logger,
) *Service {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Service{
		storage:      store,
		assistant:    asst,
		classifier:   clf,
		summarizer:   summarizer,
		historyLimit: historyLimit,
		logger:       logger,
	}
}

// Handle answers one inbound message. Invalid messages return the validation
// ERROR response together with the validation error and are not stored.
func (s *Service) Handle(ctx context.Context, userID int64, text string) (*assistant.Response, error) {
	v := assistant.ValidateMessage(text)
	if !v.Valid {
		resp := s.assistant.GenerateResponse(text, models.ConversationContext{})
		return &resp, v.Err
	}

	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	recent, err := s.storage.GetUserMessages(ctx, userID, s.historyLimit, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	convCtx := models.ConversationContext{
		LegalScenario:       user.LegalScenario,
		EmotionalState:      user.EmotionalState,
		ConversationHistory: models.History(chronological(recent), s.historyLimit),
	}

	resp := s.assistant.GenerateResponse(v.Message, convCtx)

	now := time.Now()
	userMsg := &models.Message{
		ID:             uuid.New().String(),
		UserID:         userID,
		Role:           models.RoleUser,
		Content:        v.Message,
		Sentiment:      string(resp.Sentiment),
		Intent:         resp.Metadata.DetectedIntent,
		CrisisDetected: resp.CrisisDetected,
		CrisisKeywords: resp.CrisisKeywords,
		Tags:           s.classifier.Tags(v.Message),
		CreatedAt:      now,
	}
	if err := s.storage.SaveMessage(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	reply := &models.Message{
		ID:        uuid.New().String(),
		UserID:    userID,
		Role:      models.RoleAssistant,
		Content:   resp.Content,
		Intent:    resp.Metadata.DetectedIntent,
		CreatedAt: now,
	}
	if err := s.storage.SaveMessage(ctx, reply); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}

	if !resp.IsError() {
		if err := s.storage.SetEmotionalState(ctx, userID, string(resp.Sentiment)); err != nil {
			s.logger.Error("Failed to update user state",
				zap.Error(err),
				zap.Int64("user_id", userID))
		}
	}

	if resp.CrisisDetected {
		s.logger.Warn("Crisis message stored",
			zap.Int64("user_id", userID),
			zap.String("message_id", userMsg.ID),
			zap.Strings("crisis_keywords", resp.CrisisKeywords))
	}

	return &resp, nil
}

// SetScenario selects the knowledge base entry used for the user's legal questions.
func (s *Service) SetScenario(ctx context.Context, userID int64, scenario string) error {
	if !knowledge.IsScenario(scenario) {
		return fmt.Errorf("%w: %s", ErrUnknownScenario, scenario)
	}
	if err := s.storage.SetScenario(ctx, userID, scenario); err != nil {
		return fmt.Errorf("failed to set scenario: %w", err)
	}
	return nil
}

func (s *Service) User(ctx context.Context, userID int64) (*models.User, error) {
	return s.storage.GetUser(ctx, userID)
}

// History returns the user's most recent messages, newest first.
func (s *Service) History(ctx context.Context, userID int64, limit int) ([]*models.Message, error) {
	return s.storage.GetUserMessages(ctx, userID, limit, 0)
}

// Summary builds the handoff brief from the user's last summaryWindow messages.
func (s *Service) Summary(ctx context.Context, userID int64, summaryWindow int) (handoff.Summary, error) {
	user, err := s.storage.GetUser(ctx, userID)
	if err != nil {
		return handoff.Summary{}, fmt.Errorf("failed to load user: %w", err)
	}

	recent, err := s.storage.GetUserMessages(ctx, userID, summaryWindow, 0)
	if err != nil {
		return handoff.Summary{}, fmt.Errorf("failed to load history: %w", err)
	}

	return s.summarizer.Summarize(ctx, user, chronological(recent)), nil
}

// SuggestScenario proposes a scenario for users who have not picked one.
func (s *Service) SuggestScenario(user *models.User, text string) string {
	if user.LegalScenario != "" && user.LegalScenario != models.DefaultScenario {
		return ""
	}
	return s.classifier.SuggestScenario(text)
}

func chronological(newestFirst []*models.Message) []*models.Message {
	out := make([]*models.Message, len(newestFirst))
	for i, m := range newestFirst {
		out[len(newestFirst)-1-i] = m
	}
	return out
}
