package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/xaenox/asesor-legal/internal/assistant"
	"github.com/xaenox/asesor-legal/internal/classifier"
	"go.uber.org/zap"
)

func TestRunAsk(t *testing.T) {
	asst := assistant.New(classifier.NewRuleClassifier(5), zap.NewNop())

	tests := []struct {
		name       string
		message    string
		scenario   string
		wantIntent string
		wantText   string
		wantErr    bool
	}{
		{
			name:       "legal question with scenario",
			message:    "¿Cuáles son mis derechos?",
			scenario:   "detencion_policial",
			wantIntent: "LEGAL_QUESTION",
			wantText:   "Detención Policial",
		},
		{
			name:       "crisis",
			message:    "Quiero suicidarme",
			wantIntent: "CRISIS",
			wantText:   "911",
		},
		{
			name:       "empty message",
			message:    "   ",
			wantIntent: assistant.IntentError,
		},
		{
			name:     "unknown scenario",
			message:  "Hola",
			scenario: "NO_EXISTE",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := runAsk(&buf, asst, tt.message, tt.scenario)
			if (err != nil) != tt.wantErr {
				t.Fatalf("runAsk() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			var resp assistant.Response
			if err := json.Unmarshal(buf.Bytes(), &resp); err != nil {
				t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
			}
			if resp.Metadata.DetectedIntent != tt.wantIntent {
				t.Errorf("detectedIntent = %s, want %s", resp.Metadata.DetectedIntent, tt.wantIntent)
			}
			if !strings.Contains(resp.Content, tt.wantText) {
				t.Errorf("content = %q, want it to contain %q", resp.Content, tt.wantText)
			}
		})
	}
}

func TestRootCommands(t *testing.T) {
	want := map[string]bool{"bot": false, "serve": false, "ask": false}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := want[cmd.Name()]; ok {
			want[cmd.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("command %q not registered", name)
		}
	}
}
