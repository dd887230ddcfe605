package assistant

import (
	"fmt"
	"strings"

	"github.com/xaenox/asesor-legal/internal/classifier"
	"github.com/xaenox/asesor-legal/internal/knowledge"
)

var crisisTemplate = struct {
	opening    string
	validation string
	actions    []string
	followUp   string
}{
	opening:    "Lamento mucho que estés pasando por esto. Tu vida y tu seguridad son lo más importante.",
	validation: "Lo que sientes es real y no tienes que enfrentarlo sola o solo. Hay personas listas para ayudarte ahora mismo.",
	actions: []string{
		"Llama al 911 si estás en peligro inmediato",
		"Línea de la Vida: 800 911 2000 (gratuita, 24 horas)",
		"Línea Mujeres: 55 5658 1111",
		"Ve a un lugar seguro o busca a alguien de confianza que pueda acompañarte",
	},
	followUp: "¿Estás en un lugar seguro en este momento?",
}

type empathyTemplate struct {
	opening     string
	validation  string
	reassurance string
	grounding   string
}

const (
	empathyDistressed = "DISTRESSED"
	empathyAnxious    = "ANXIOUS"
	empathyCalm       = "CALM"
)

var empathyTemplates = map[string]empathyTemplate{
	empathyDistressed: {
		opening:     "Entiendo que estás pasando por un momento muy difícil.",
		validation:  "Es completamente normal sentirse así ante una situación como esta.",
		reassurance: "No estás sola o solo: vamos a revisar paso a paso qué puedes hacer.",
		grounding:   "Intenta respirar profundo: inhala contando hasta cuatro, sostén cuatro segundos y exhala contando hasta cuatro.",
	},
	empathyAnxious: {
		opening:     "Noto que esta situación te preocupa.",
		validation:  "Tus sentimientos son válidos y es importante atenderlos.",
		reassurance: "Existen leyes e instituciones que te protegen, y puedo ayudarte a conocerlas.",
	},
	empathyCalm: {
		opening:    "Gracias por compartir cómo te sientes.",
		validation: "Estoy aquí para escucharte y orientarte en lo que necesites.",
	},
}

var greetings = []string{
	"¡Hola! Soy tu asistente legal. Estoy aquí para orientarte en situaciones legales de emergencia.",
	"¡Hola! Bienvenida o bienvenido. Puedo ayudarte a conocer tus derechos y los pasos a seguir.",
	"¡Hola! Gracias por escribir. Cuéntame qué está pasando y te orientaré.",
}

const capabilityMenu = `Puedo ayudarte con:
• Conocer tus derechos en situaciones como detenciones, violencia doméstica o despidos
• Explicarte los pasos legales a seguir
• Darte números de emergencia y un plan de seguridad
• Orientarte para reunir evidencia

¿En qué te puedo ayudar hoy?`

const clarifyingQuestion = `Quiero entender mejor tu situación para ayudarte. ¿Podrías contarme un poco más?

• ¿Qué ocurrió?
• ¿Cuándo y dónde pasó?
• ¿Estás en un lugar seguro ahora?`

func crisisContent() string {
	var b strings.Builder
	b.WriteString(crisisTemplate.opening)
	b.WriteString("\n\n")
	b.WriteString(crisisTemplate.validation)
	b.WriteString("\n\nPor favor, busca ayuda ahora:\n")
	for _, action := range crisisTemplate.actions {
		b.WriteString("• ")
		b.WriteString(action)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(crisisTemplate.followUp)
	return b.String()
}

// LegalResponse renders the rights, steps and resources for a scenario, or the
// scenario menu when the key is not in the knowledge base.
func LegalResponse(scenario string) string {
	entry, ok := knowledge.Lookup(scenario)
	if !ok {
		return scenarioMenu()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚖️ %s\n\n", entry.Title)
	b.WriteString("Tus derechos:\n")
	writeNumbered(&b, entry.Rights)
	b.WriteString("\nPasos a seguir:\n")
	writeNumbered(&b, entry.Steps)
	fmt.Fprintf(&b, "\nFundamento legal: %s\n", entry.LegalBasis)
	b.WriteString("\nRecursos:\n")
	writeBulleted(&b, entry.Resources)
	return strings.TrimRight(b.String(), "\n")
}

// ProceduralResponse renders the scenario's steps as a procedure, or the
// general legal process overview when the scenario is unknown.
func ProceduralResponse(scenario string) string {
	entry, ok := knowledge.Lookup(scenario)
	if !ok {
		return knowledge.GetQuickAction(knowledge.QuickActionLegalProcess).Content
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Procedimiento: %s\n\n", entry.Title)
	writeNumbered(&b, entry.Steps)
	b.WriteString("\nRecursos:\n")
	writeBulleted(&b, entry.Resources)
	return strings.TrimRight(b.String(), "\n")
}

// EmotionalResponse composes an empathy message for the given sentiment.
func EmotionalResponse(sentiment classifier.Sentiment) string {
	t := empathyTemplates[empathyKey(sentiment)]

	parts := []string{t.opening, t.validation}
	if t.reassurance != "" {
		parts = append(parts, t.reassurance)
	}
	if t.grounding != "" {
		parts = append(parts, t.grounding)
	}
	return strings.Join(parts, "\n\n")
}

func empathyKey(sentiment classifier.Sentiment) string {
	switch sentiment {
	case classifier.SentimentDistressed, classifier.SentimentCrisis:
		return empathyDistressed
	case classifier.SentimentNegative:
		return empathyAnxious
	default:
		return empathyCalm
	}
}

func scenarioMenu() string {
	var b strings.Builder
	b.WriteString("Puedo orientarte sobre estas situaciones legales:\n\n")
	for _, s := range knowledge.LegalScenarios() {
		fmt.Fprintf(&b, "• %s\n", s.Title)
	}
	b.WriteString("\n¿Cuál se parece más a lo que estás viviendo?")
	return b.String()
}

func writeNumbered(b *strings.Builder, items []string) {
	for i, item := range items {
		fmt.Fprintf(b, "%d. %s\n", i+1, item)
	}
}

func writeBulleted(b *strings.Builder, items []string) {
	for _, item := range items {
		fmt.Fprintf(b, "• %s\n", item)
	}
}
