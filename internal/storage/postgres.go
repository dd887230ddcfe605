package storage

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/xaenox/asesor-legal/internal/models"
	"go.uber.org/zap"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

type PostgresStorage struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStorage(config DatabaseConfig, logger *zap.Logger) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", config.DSN())
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	storage := &PostgresStorage{db: db, logger: logger}

	if err := storage.initializeSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	logger.Info("Connected to PostgreSQL",
		zap.String("host", config.Host),
		zap.String("dbname", config.DBName))

	return storage, nil
}

func (s *PostgresStorage) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, legal_scenario, emotional_state, last_used_at
		FROM users
		WHERE id = $1`

	user := &models.User{}
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.LegalScenario,
		&user.EmotionalState,
		&user.LastUsedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return &models.User{
			ID:            id,
			LegalScenario: models.DefaultScenario,
			LastUsedAt:    time.Now(),
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error querying user: %w", err)
	}

	return user, nil
}

func (s *PostgresStorage) UpdateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, legal_scenario, emotional_state, last_used_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET legal_scenario = EXCLUDED.legal_scenario,
		    emotional_state = EXCLUDED.emotional_state,
		    last_used_at = EXCLUDED.last_used_at`

	user.LastUsedAt = time.Now()
	scenario := user.LegalScenario
	if scenario == "" {
		scenario = models.DefaultScenario
	}

	if _, err := s.db.ExecContext(ctx, query, user.ID, scenario, user.EmotionalState, user.LastUsedAt); err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}

	return nil
}

func (s *PostgresStorage) SetScenario(ctx context.Context, userID int64, scenario string) error {
	query := `
		INSERT INTO users (id, legal_scenario, last_used_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET legal_scenario = EXCLUDED.legal_scenario,
		    last_used_at = EXCLUDED.last_used_at`

	if _, err := s.db.ExecContext(ctx, query, userID, scenario); err != nil {
		return fmt.Errorf("error setting scenario: %w", err)
	}

	return nil
}

func (s *PostgresStorage) SetEmotionalState(ctx context.Context, userID int64, state string) error {
	query := `
		INSERT INTO users (id, emotional_state, last_used_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (id) DO UPDATE
		SET emotional_state = EXCLUDED.emotional_state,
		    last_used_at = EXCLUDED.last_used_at`

	if _, err := s.db.ExecContext(ctx, query, userID, state); err != nil {
		return fmt.Errorf("error setting emotional state: %w", err)
	}

	return nil
}

func (s *PostgresStorage) SaveMessage(ctx context.Context, msg *models.Message) error {
	query := `
		INSERT INTO messages (id, user_id, role, content, sentiment, intent, crisis_detected, crisis_keywords, tags, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	if msg.CreatedAt.IsZero() {
		msg.CreatedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, query,
		msg.ID,
		msg.UserID,
		msg.Role,
		msg.Content,
		msg.Sentiment,
		msg.Intent,
		msg.CrisisDetected,
		pq.Array(nonNil(msg.CrisisKeywords)),
		pq.Array(nonNil(msg.Tags)),
		msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("error saving message: %w", err)
	}

	return nil
}

func (s *PostgresStorage) GetUserMessages(ctx context.Context, userID int64, limit, offset int) ([]*models.Message, error) {
	query := `
		SELECT id, user_id, role, content, sentiment, intent, crisis_detected, crisis_keywords, tags, created_at
		FROM messages
		WHERE user_id = $1
		ORDER BY created_at DESC, seq DESC
		LIMIT $2 OFFSET $3`

	var limitArg any
	if limit > 0 {
		limitArg = limit
	}

	rows, err := s.db.QueryContext(ctx, query, userID, limitArg, offset)
	if err != nil {
		return nil, fmt.Errorf("error querying messages: %w", err)
	}
	defer rows.Close()

	messages := []*models.Message{}
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating messages: %w", err)
	}

	return messages, nil
}

func (s *PostgresStorage) GetMessage(ctx context.Context, id string) (*models.Message, error) {
	query := `
		SELECT id, user_id, role, content, sentiment, intent, crisis_detected, crisis_keywords, tags, created_at
		FROM messages
		WHERE id = $1`

	msg, err := scanMessage(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	return msg, err
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMessage(row scanner) (*models.Message, error) {
	msg := &models.Message{}
	var keywords, tags pq.StringArray
	err := row.Scan(
		&msg.ID,
		&msg.UserID,
		&msg.Role,
		&msg.Content,
		&msg.Sentiment,
		&msg.Intent,
		&msg.CrisisDetected,
		&keywords,
		&tags,
		&msg.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("error scanning message: %w", err)
	}
	msg.CrisisKeywords = keywords
	msg.Tags = tags
	return msg, nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
