package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/xaenox/asesor-legal/internal/assistant"
	"github.com/xaenox/asesor-legal/internal/classifier"
	"github.com/xaenox/asesor-legal/internal/knowledge"
	"github.com/xaenox/asesor-legal/internal/models"
)

func newAskCmd() *cobra.Command {
	var scenario string

	cmd := &cobra.Command{
		Use:   "ask <message>",
		Short: "Answer one message and print the JSON response",
		Long: `Runs a single message through the assistant without storage and prints the
response as JSON. Useful for checking the classifier and the templates.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			defer logger.Sync()

			asst := assistant.New(classifier.NewRuleClassifier(cfg.Assistant.MaxTags), logger)
			return runAsk(cmd.OutOrStdout(), asst, strings.Join(args, " "), scenario)
		},
	}

	cmd.Flags().StringVar(&scenario, "scenario", "", "legal scenario key, e.g. DETENCION_POLICIAL")
	return cmd
}

func runAsk(w io.Writer, asst *assistant.Assistant, message, scenario string) error {
	scenario = strings.ToUpper(strings.TrimSpace(scenario))
	if scenario != "" && !knowledge.IsScenario(scenario) {
		return fmt.Errorf("unknown legal scenario %q", scenario)
	}

	resp := asst.GenerateResponse(message, models.ConversationContext{LegalScenario: scenario})

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(resp); err != nil {
		return fmt.Errorf("failed to encode response: %w", err)
	}
	return nil
}
