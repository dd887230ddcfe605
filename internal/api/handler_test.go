package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xaenox/asesor-legal/internal/assistant"
	"github.com/xaenox/asesor-legal/internal/classifier"
	"github.com/xaenox/asesor-legal/internal/conversation"
	"github.com/xaenox/asesor-legal/internal/handoff"
	"github.com/xaenox/asesor-legal/internal/storage"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	clf := classifier.NewRuleClassifier(5)
	asst := assistant.New(clf, logger)
	svc := conversation.NewService(
		storage.NewMemoryStorage(),
		asst,
		clf,
		handoff.NewSummarizer("", "", 0, 0, logger),
		10,
		logger,
	)
	return NewRouter(NewHandler(svc, asst, 20, logger), []string{"*"}, logger)
}

func do(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode body %q: %v", w.Body.String(), err)
	}
}

func TestChatStateless(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/chat", `{"message": "¿Cuáles son mis derechos?", "legalScenario": "DETENCION_POLICIAL"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp assistant.Response
	decode(t, w, &resp)
	if resp.Metadata.DetectedIntent != "LEGAL_QUESTION" {
		t.Errorf("detectedIntent = %s", resp.Metadata.DetectedIntent)
	}
	if !strings.Contains(resp.Content, "Detención Policial") {
		t.Errorf("content = %q", resp.Content)
	}
}

func TestChatCrisis(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/chat", `{"message": "Quiero suicidarme"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var body map[string]any
	decode(t, w, &body)
	if body["crisisDetected"] != true || body["sentiment"] != "CRISIS" {
		t.Errorf("body = %v", body)
	}
}

func TestChatValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{}`},
		{"null message", `{"message": null}`},
		{"empty message", `{"message": ""}`},
		{"whitespace message", `{"message": "   "}`},
		{"too long", `{"message": "` + strings.Repeat("a", assistant.MaxMessageLength+1) + `"}`},
		{"malformed json", `{"message":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, "/api/chat", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", w.Code)
			}

			var body map[string]any
			decode(t, w, &body)
			if body["valid"] != false || body["error"] == "" {
				t.Errorf("body = %v", body)
			}
		})
	}
}

func TestChatWithUserPersists(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/chat", `{"message": "Hola", "userId": 12, "legalScenario": "DESALOJO"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/users/12/messages?limit=5", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Messages []map[string]any `json:"messages"`
	}
	decode(t, w, &body)
	if len(body.Messages) != 2 {
		t.Errorf("len(messages) = %d, want 2", len(body.Messages))
	}

	w = do(t, router, http.MethodGet, "/api/users/12/summary", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var summary handoff.Summary
	decode(t, w, &summary)
	if summary.Scenario != "DESALOJO" || summary.Source != handoff.SourceRules {
		t.Errorf("summary = %+v", summary)
	}
}

func TestChatUnknownScenarioForUser(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodPost, "/api/chat", `{"message": "Hola", "userId": 1, "legalScenario": "NO_EXISTE"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSetScenario(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name string
		path string
		body string
		want int
	}{
		{"ok", "/api/users/3/scenario", `{"scenario": "EXTORSION"}`, http.StatusOK},
		{"unknown scenario", "/api/users/3/scenario", `{"scenario": "OTRO"}`, http.StatusBadRequest},
		{"bad user id", "/api/users/abc/scenario", `{"scenario": "EXTORSION"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, router, http.MethodPut, tt.path, tt.body); w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestQuickActions(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/quick-actions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var list struct {
		QuickActions []map[string]string `json:"quickActions"`
	}
	decode(t, w, &list)
	if len(list.QuickActions) != 4 {
		t.Errorf("len = %d, want 4", len(list.QuickActions))
	}

	w = do(t, router, http.MethodGet, "/api/quick-actions/EMERGENCY_NUMBERS", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "911") {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/quick-actions/INVALID_KEY", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestScenarios(t *testing.T) {
	router := newTestRouter(t)

	w := do(t, router, http.MethodGet, "/api/scenarios", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "DETENCION_POLICIAL") {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/scenarios/VIOLENCIA_DOMESTICA", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "legalBasis") {
		t.Errorf("status = %d, body = %s", w.Code, w.Body.String())
	}

	w = do(t, router, http.MethodGet, "/api/scenarios/GENERAL", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestMessagesLimit(t *testing.T) {
	router := newTestRouter(t)

	if w := do(t, router, http.MethodGet, "/api/users/1/messages?limit=-1", ""); w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if w := do(t, router, http.MethodGet, "/api/users/1/messages", ""); w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)
	if w := do(t, router, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("status = %d", w.Code)
	}
}

func TestCORSConfig(t *testing.T) {
	if cfg := corsConfig([]string{"*"}); !cfg.AllowAllOrigins {
		t.Error("wildcard should allow all origins")
	}
	if cfg := corsConfig(nil); !cfg.AllowAllOrigins {
		t.Error("empty list should allow all origins")
	}
	cfg := corsConfig([]string{"https://asesor.example.mx"})
	if cfg.AllowAllOrigins || len(cfg.AllowOrigins) != 1 {
		t.Errorf("cfg = %+v", cfg)
	}
}
