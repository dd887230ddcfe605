package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xaenox/asesor-legal/internal/assistant"
	"github.com/xaenox/asesor-legal/internal/classifier"
	"github.com/xaenox/asesor-legal/internal/conversation"
	"github.com/xaenox/asesor-legal/internal/handoff"
	"github.com/xaenox/asesor-legal/internal/storage"
	"github.com/xaenox/asesor-legal/pkg/config"
	"go.uber.org/zap"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "asesor",
	Short: "Emergency legal assistant for Mexico",
	Long: `Asesor Legal answers people facing urgent legal situations in Mexico:
police detentions, domestic violence, unfair dismissal, eviction and extortion.
It detects crisis language first and always points to emergency help.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file")

	rootCmd.AddCommand(newBotCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newAskCmd())
}

// app holds the wired components shared by the subcommands.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	store     storage.Storage
	assistant *assistant.Assistant
	service   *conversation.Service
}

func newLogger(development bool) (*zap.Logger, error) {
	if development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	logger, err := newLogger(cfg.Log.Development)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}

func openStorage(cfg *config.Config, logger *zap.Logger) (storage.Storage, error) {
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		return storage.NewMemoryStorage(), nil
	}

	logger.Info("Using PostgreSQL storage")
	return storage.NewPostgresStorage(storage.DatabaseConfig{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	}, logger)
}

func newApp() (*app, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	store, err := openStorage(cfg, logger)
	if err != nil {
		logger.Sync()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	clf := classifier.NewRuleClassifier(cfg.Assistant.MaxTags)
	asst := assistant.New(clf, logger)
	summarizer := handoff.NewSummarizer(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		logger,
	)

	return &app{
		cfg:       cfg,
		logger:    logger,
		store:     store,
		assistant: asst,
		service:   conversation.NewService(store, asst, clf, summarizer, cfg.Assistant.HistoryLimit, logger),
	}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.logger.Error("Failed to close storage", zap.Error(err))
	}
	a.logger.Sync()
}
