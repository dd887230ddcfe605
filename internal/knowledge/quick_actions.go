package knowledge

const (
	QuickActionEmergencyNumbers   = "EMERGENCY_NUMBERS"
	QuickActionSafetyPlan         = "SAFETY_PLAN"
	QuickActionEvidenceCollection = "EVIDENCE_COLLECTION"
	QuickActionLegalProcess       = "LEGAL_PROCESS"
)

type QuickAction struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type QuickActionItem struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

var quickActionOrder = []string{
	QuickActionEmergencyNumbers,
	QuickActionSafetyPlan,
	QuickActionEvidenceCollection,
	QuickActionLegalProcess,
}

var quickActions = map[string]QuickAction{
	QuickActionEmergencyNumbers: {
		Title: "Números de Emergencia",
		Content: `📞 Números de emergencia en México:

• Emergencias: 911
• Denuncia anónima: 089
• Línea de la Vida (crisis emocional y prevención del suicidio): 800 911 2000
• Línea Mujeres: 55 5658 1111
• CNDH: 800 715 2000
• Cruz Roja: 065

Todas las llamadas son gratuitas y están disponibles las 24 horas.`,
	},
	QuickActionSafetyPlan: {
		Title: "Plan de Seguridad",
		Content: `🛡️ Plan de seguridad:

1. Identifica un lugar seguro al que puedas ir de inmediato.
2. Acuerda una palabra clave con alguien de confianza para pedir ayuda.
3. Ten a la mano identificaciones, dinero, medicamentos y llaves.
4. Guarda copias de documentos importantes fuera de casa.
5. Memoriza los números de emergencia: 911 y 800 911 2000.
6. Si estás en peligro inmediato, sal del lugar y llama al 911.`,
	},
	QuickActionEvidenceCollection: {
		Title: "Guía de Recolección de Evidencia",
		Content: `📋 Cómo reunir evidencia:

1. Toma fotografías con fecha y hora de lesiones, daños o lugares.
2. Guarda mensajes, correos y capturas de pantalla sin editarlos.
3. Anota nombres de testigos y sus datos de contacto.
4. Conserva recibos, contratos, certificados médicos y documentos oficiales.
5. Escribe una cronología de los hechos lo antes posible.
6. Haz respaldos en un lugar seguro al que sólo tú tengas acceso.`,
	},
	QuickActionLegalProcess: {
		Title: "Proceso Legal",
		Content: `⚖️ Cómo funciona un proceso legal en México:

1. Denuncia o querella ante el Ministerio Público.
2. Investigación: el Ministerio Público reúne pruebas.
3. Audiencia inicial ante un juez de control.
4. Etapa intermedia: se preparan las pruebas para el juicio.
5. Juicio oral ante un tribunal.
6. Sentencia y, en su caso, reparación del daño.

Tienes derecho a un abogado en cada etapa. Si no puedes pagarlo, solicita un defensor público.`,
	},
}

// QuickActions lists the canned help texts in menu order.
func QuickActions() []QuickActionItem {
	items := make([]QuickActionItem, 0, len(quickActionOrder))
	for _, key := range quickActionOrder {
		items = append(items, QuickActionItem{Key: key, Title: quickActions[key].Title})
	}
	return items
}

// GetQuickAction returns the help text for key, or nil when key is unknown.
func GetQuickAction(key string) *QuickAction {
	action, ok := quickActions[key]
	if !ok {
		return nil
	}
	return &action
}
