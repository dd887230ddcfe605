package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xaenox/asesor-legal/internal/models"
)

type MemoryStorage struct {
	mu       sync.RWMutex
	users    map[int64]*models.User
	messages map[string]*models.Message
	// seq breaks ties between messages saved within the same clock tick.
	seq      map[string]int64
	nextSeq  int64
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		users:    make(map[int64]*models.User),
		messages: make(map[string]*models.Message),
		seq:      make(map[string]int64),
	}
}

func (s *MemoryStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if user, exists := s.users[id]; exists {
		u := *user
		return &u, nil
	}
	return &models.User{
		ID:            id,
		LegalScenario: models.DefaultScenario,
		LastUsedAt:    time.Now(),
	}, nil
}

func (s *MemoryStorage) UpdateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user.LastUsedAt = time.Now()
	u := *user
	s.users[user.ID] = &u
	return nil
}

func (s *MemoryStorage) SetScenario(ctx context.Context, userID int64, scenario string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		user = &models.User{ID: userID}
		s.users[userID] = user
	}
	user.LegalScenario = scenario
	user.LastUsedAt = time.Now()
	return nil
}

func (s *MemoryStorage) SetEmotionalState(ctx context.Context, userID int64, state string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		user = &models.User{ID: userID, LegalScenario: models.DefaultScenario}
		s.users[userID] = user
	}
	user.EmotionalState = state
	user.LastUsedAt = time.Now()
	return nil
}

func (s *MemoryStorage) SaveMessage(ctx context.Context, msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}
	m := *msg
	if _, exists := s.messages[msg.ID]; !exists {
		s.nextSeq++
		s.seq[msg.ID] = s.nextSeq
	}
	s.messages[msg.ID] = &m
	return nil
}

func (s *MemoryStorage) GetUserMessages(ctx context.Context, userID int64, limit, offset int) ([]*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var userMessages []*models.Message
	for _, msg := range s.messages {
		if msg.UserID == userID {
			m := *msg
			userMessages = append(userMessages, &m)
		}
	}

	sort.Slice(userMessages, func(i, j int) bool {
		a, b := userMessages[i], userMessages[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return s.seq[a.ID] > s.seq[b.ID]
	})

	if offset >= len(userMessages) {
		return []*models.Message{}, nil
	}
	userMessages = userMessages[offset:]
	if limit > 0 && limit < len(userMessages) {
		userMessages = userMessages[:limit]
	}
	return userMessages, nil
}

func (s *MemoryStorage) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	msg, exists := s.messages[id]
	if !exists {
		return nil, ErrNotFound
	}
	m := *msg
	return &m, nil
}

func (s *MemoryStorage) Close() error {
	// Nothing to close for in-memory storage
	return nil
}
