package cli

import (
	"errors"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/xaenox/asesor-legal/internal/bot"
	"go.uber.org/zap"
)

func newBotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if a.cfg.Telegram.Token == "" {
				return errors.New("telegram token is not set (TELEGRAM_TOKEN)")
			}

			b, err := bot.New(a.cfg.Telegram.Token, a.service, a.cfg.Assistant.SummaryWindow, a.logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a.logger.Info("Bot started")
			if err := b.Start(ctx); err != nil {
				a.logger.Error("Bot error", zap.Error(err))
				return err
			}
			a.logger.Info("Bot stopped")
			return nil
		},
	}
}
