package assistant

import (
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/xaenox/asesor-legal/internal/classifier"
	"github.com/xaenox/asesor-legal/internal/knowledge"
	"github.com/xaenox/asesor-legal/internal/models"
	"go.uber.org/zap"
)

func newTestAssistant() *Assistant {
	a := New(classifier.NewRuleClassifier(5), zap.NewNop())
	a.pick = func(int) int { return 0 }
	return a
}

func TestGenerateResponseLegalScenario(t *testing.T) {
	a := newTestAssistant()

	resp := a.GenerateResponse("¿Cuáles son mis derechos?", models.ConversationContext{LegalScenario: knowledge.ScenarioDetencionPolicial})

	if !strings.Contains(resp.Content, "Detención Policial") {
		t.Error("content should contain the scenario title")
	}
	if !strings.Contains(resp.Content, "abogado") {
		t.Error("content should mention abogado")
	}
	if resp.Metadata.DetectedIntent != string(classifier.IntentLegalQuestion) {
		t.Errorf("DetectedIntent = %s, want LEGAL_QUESTION", resp.Metadata.DetectedIntent)
	}
	if resp.Metadata.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", resp.Metadata.Confidence)
	}
	want := []string{ActionViewRights, ActionFindLawyer, ActionFileComplaint}
	if !reflect.DeepEqual(resp.Metadata.SuggestedActions, want) {
		t.Errorf("SuggestedActions = %v, want %v", resp.Metadata.SuggestedActions, want)
	}
}

func TestGenerateResponseLegalWithoutScenario(t *testing.T) {
	a := newTestAssistant()

	resp := a.GenerateResponse("¿Cuáles son mis derechos?", models.ConversationContext{})

	for _, s := range knowledge.LegalScenarios() {
		if !strings.Contains(resp.Content, s.Title) {
			t.Errorf("menu should list %q", s.Title)
		}
	}
}

func TestGenerateResponseCrisis(t *testing.T) {
	a := newTestAssistant()

	resp := a.GenerateResponse("Quiero suicidarme", models.ConversationContext{})

	if !resp.CrisisDetected {
		t.Fatal("CrisisDetected = false, want true")
	}
	if resp.Sentiment != classifier.SentimentCrisis {
		t.Errorf("Sentiment = %s, want CRISIS", resp.Sentiment)
	}
	if !strings.Contains(resp.Content, "911") {
		t.Error("crisis content should contain 911")
	}
	if !strings.Contains(resp.Content, "Línea de la Vida") {
		t.Error("crisis content should reference the crisis hotline")
	}
	want := []string{ActionCall911, ActionEmergencyContacts, ActionSafetyPlan}
	if !reflect.DeepEqual(resp.Metadata.SuggestedActions, want) {
		t.Errorf("SuggestedActions = %v, want %v", resp.Metadata.SuggestedActions, want)
	}
	if !reflect.DeepEqual(resp.CrisisKeywords, []string{"suicid"}) {
		t.Errorf("CrisisKeywords = %v", resp.CrisisKeywords)
	}
}

func TestGenerateResponseCrisisPrecedence(t *testing.T) {
	a := newTestAssistant()

	messages := []string{
		"Hola, mi pareja me va a matar",
		"¿Cuáles son mis derechos? estoy en peligro",
		"¿Qué pasos sigo? no puedo más",
		"Gracias, pero quiero morir",
	}

	for _, message := range messages {
		t.Run(message, func(t *testing.T) {
			resp := a.GenerateResponse(message, models.ConversationContext{LegalScenario: knowledge.ScenarioDesalojo})
			if !resp.CrisisDetected {
				t.Error("CrisisDetected = false, want true")
			}
			if resp.Sentiment != classifier.SentimentCrisis {
				t.Errorf("Sentiment = %s, want CRISIS", resp.Sentiment)
			}
		})
	}
}

func TestGenerateResponseIntents(t *testing.T) {
	a := newTestAssistant()

	tests := []struct {
		name        string
		message     string
		scenario    string
		wantIntent  classifier.IntentType
		wantContent string
		wantActions []string
	}{
		{
			"greeting",
			"Hola",
			"",
			classifier.IntentGreeting,
			greetings[0],
			[]string{ActionLegalScenarios, ActionEmergencyNumbers, ActionSafetyPlan},
		},
		{
			"distressed support",
			"Estoy desesperada y tengo miedo",
			"",
			classifier.IntentEmotionalSupport,
			"respirar profundo",
			[]string{ActionSafetyResources, ActionSupportGroups, ActionCrisisLine},
		},
		{
			"anxious support",
			"Tengo miedo",
			"",
			classifier.IntentEmotionalSupport,
			"Noto que esta situación te preocupa.",
			[]string{ActionSafetyResources, ActionSupportGroups, ActionCrisisLine},
		},
		{
			"calm support",
			"Me siento sola",
			"",
			classifier.IntentEmotionalSupport,
			"Gracias por compartir cómo te sientes.",
			[]string{ActionSafetyResources, ActionSupportGroups, ActionCrisisLine},
		},
		{
			"procedural with scenario",
			"¿Qué pasos debo seguir?",
			knowledge.ScenarioDespidoInjustificado,
			classifier.IntentProceduralQuestion,
			"Procedimiento: Despido Injustificado",
			[]string{ActionLegalProcess, ActionEvidenceGuide, ActionFindLawyer},
		},
		{
			"procedural without scenario",
			"¿Qué pasos debo seguir?",
			"",
			classifier.IntentProceduralQuestion,
			"Cómo funciona un proceso legal",
			[]string{ActionLegalProcess, ActionEvidenceGuide, ActionFindLawyer},
		},
		{
			"general",
			"Necesito información",
			"",
			classifier.IntentGeneral,
			"¿Podrías contarme un poco más?",
			[]string{ActionLegalScenarios, ActionTalkToHuman, ActionResources},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := a.GenerateResponse(tt.message, models.ConversationContext{LegalScenario: tt.scenario})

			if resp.Metadata.DetectedIntent != string(tt.wantIntent) {
				t.Errorf("DetectedIntent = %s, want %s", resp.Metadata.DetectedIntent, tt.wantIntent)
			}
			if !strings.Contains(resp.Content, tt.wantContent) {
				t.Errorf("content %q does not contain %q", resp.Content, tt.wantContent)
			}
			if !reflect.DeepEqual(resp.Metadata.SuggestedActions, tt.wantActions) {
				t.Errorf("SuggestedActions = %v, want %v", resp.Metadata.SuggestedActions, tt.wantActions)
			}
			if resp.CrisisDetected {
				t.Error("CrisisDetected = true, want false")
			}
			if resp.IsError() {
				t.Error("unexpected ERROR response")
			}
		})
	}
}

func TestGenerateResponseValidation(t *testing.T) {
	a := newTestAssistant()

	for _, message := range []string{"", "   ", strings.Repeat("a", MaxMessageLength+1)} {
		resp := a.GenerateResponse(message, models.ConversationContext{})
		if !resp.IsError() {
			t.Errorf("message of length %d: DetectedIntent = %s, want ERROR", len(message), resp.Metadata.DetectedIntent)
		}
		if resp.ErrorKind != ErrorValidation {
			t.Errorf("ErrorKind = %q, want validation", resp.ErrorKind)
		}
	}
}

func TestGenerateResponseFault(t *testing.T) {
	a := newTestAssistant()
	a.pick = func(int) int { panic("template index out of range") }

	resp := a.GenerateResponse("Hola", models.ConversationContext{})

	if resp.ErrorKind != ErrorFault {
		t.Errorf("ErrorKind = %q, want fault", resp.ErrorKind)
	}
	if resp.Metadata.DetectedIntent != IntentError {
		t.Errorf("DetectedIntent = %s, want ERROR", resp.Metadata.DetectedIntent)
	}
	want := []string{ActionTryAgain, ActionTalkToHuman}
	if !reflect.DeepEqual(resp.Metadata.SuggestedActions, want) {
		t.Errorf("SuggestedActions = %v, want %v", resp.Metadata.SuggestedActions, want)
	}
	if resp.Content != faultContent {
		t.Errorf("Content = %q", resp.Content)
	}
}

func TestGenerateResponseConcurrent(t *testing.T) {
	a := New(classifier.NewRuleClassifier(5), zap.NewNop())
	messages := []string{"Hola", "Quiero suicidarme", "¿Cuáles son mis derechos?", "Tengo miedo"}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp := a.GenerateResponse(messages[i%len(messages)], models.ConversationContext{})
			if resp.IsError() {
				t.Errorf("unexpected ERROR response for %q", messages[i%len(messages)])
			}
		}(i)
	}
	wg.Wait()
}

func TestLegalResponseUnknownScenario(t *testing.T) {
	content := LegalResponse("NO_EXISTE")
	if !strings.Contains(content, "Detención Policial") || !strings.Contains(content, "Extorsión") {
		t.Errorf("unknown scenario should render the scenario menu, got %q", content)
	}
}

func TestLegalResponseFormat(t *testing.T) {
	content := LegalResponse(knowledge.ScenarioExtorsion)
	for _, want := range []string{"⚖️ Extorsión", "Tus derechos:", "1. ", "Pasos a seguir:", "Fundamento legal:", "Recursos:", "• Denuncia anónima: 089"} {
		if !strings.Contains(content, want) {
			t.Errorf("content missing %q", want)
		}
	}
}
