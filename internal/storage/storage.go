package storage

import (
	"context"
	"errors"

	"github.com/xaenox/asesor-legal/internal/models"
)

var ErrNotFound = errors.New("not found")

// Storage persists chat transcripts and per-user conversation state.
type Storage interface {
	// GetUser returns the stored user, or a fresh user with the default
	// scenario when none exists yet.
	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) error
	SetScenario(ctx context.Context, userID int64, scenario string) error
	// SetEmotionalState touches only the emotional state, leaving the
	// scenario to concurrent SetScenario calls.
	SetEmotionalState(ctx context.Context, userID int64, state string) error

	SaveMessage(ctx context.Context, msg *models.Message) error
	// GetUserMessages returns messages newest first.
	GetUserMessages(ctx context.Context, userID int64, limit, offset int) ([]*models.Message, error)
	GetMessage(ctx context.Context, id string) (*models.Message, error)

	Close() error
}
