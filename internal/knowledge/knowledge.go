package knowledge

const (
	ScenarioGeneral              = "GENERAL"
	ScenarioDetencionPolicial    = "DETENCION_POLICIAL"
	ScenarioViolenciaDomestica   = "VIOLENCIA_DOMESTICA"
	ScenarioDespidoInjustificado = "DESPIDO_INJUSTIFICADO"
	ScenarioDesalojo             = "DESALOJO"
	ScenarioExtorsion            = "EXTORSION"
)

// Entry is the reference text for one legal scenario.
type Entry struct {
	Title      string   `json:"title"`
	Rights     []string `json:"rights"`
	Steps      []string `json:"steps"`
	LegalBasis string   `json:"legalBasis"`
	Resources  []string `json:"resources"`
}

// Scenario is a menu item for the knowledge base.
type Scenario struct {
	Key   string `json:"key"`
	Title string `json:"title"`
}

// scenarioOrder fixes the menu order; maps do not.
var scenarioOrder = []string{
	ScenarioDetencionPolicial,
	ScenarioViolenciaDomestica,
	ScenarioDespidoInjustificado,
	ScenarioDesalojo,
	ScenarioExtorsion,
}

var entries = map[string]Entry{
	ScenarioDetencionPolicial: {
		Title: "Detención Policial",
		Rights: []string{
			"Derecho a guardar silencio y a no declarar en tu contra",
			"Derecho a un abogado defensor desde el momento de tu detención; si no tienes uno, el Estado debe darte un defensor público",
			"Derecho a saber el motivo de tu detención y quién te acusa",
			"Derecho a comunicarte con un familiar o persona de confianza",
			"Derecho a ser puesto sin demora a disposición del Ministerio Público",
			"Derecho a no ser torturado, incomunicado ni intimidado",
		},
		Steps: []string{
			"Mantén la calma y no opongas resistencia física",
			"Pregunta por qué te detienen y a dónde te llevan",
			"Pide hablar con tu abogado o con un defensor público antes de declarar",
			"Memoriza nombres, números de placa y de patrulla de los agentes",
			"No firmes ningún documento sin la presencia de tu abogado",
			"Avisa a un familiar o persona de confianza sobre tu ubicación",
		},
		LegalBasis: "Artículos 16, 19 y 20 de la Constitución Política de los Estados Unidos Mexicanos y artículo 113 del Código Nacional de Procedimientos Penales",
		Resources: []string{
			"Instituto Federal de Defensoría Pública: 55 5200 9000",
			"Comisión Nacional de los Derechos Humanos (CNDH): 800 715 2000",
			"Emergencias: 911",
		},
	},
	ScenarioViolenciaDomestica: {
		Title: "Violencia Doméstica",
		Rights: []string{
			"Derecho a una vida libre de violencia",
			"Derecho a solicitar órdenes de protección de emergencia",
			"Derecho a recibir atención médica y psicológica gratuita",
			"Derecho a presentar una denuncia sin que se te obligue a conciliar con tu agresor",
			"Derecho a un abogado o asesor jurídico que te represente",
		},
		Steps: []string{
			"Si estás en peligro inmediato, llama al 911",
			"Busca un lugar seguro o acude con una persona de confianza",
			"Documenta las lesiones con fotografías y un certificado médico",
			"Presenta la denuncia ante el Ministerio Público o una Fiscalía especializada",
			"Solicita órdenes de protección para ti y tus hijos",
			"Contacta a un refugio o centro de atención a víctimas",
		},
		LegalBasis: "Ley General de Acceso de las Mujeres a una Vida Libre de Violencia y artículo 343 Bis del Código Penal Federal",
		Resources: []string{
			"Línea Mujeres: 55 5658 1111",
			"Red Nacional de Refugios: 800 822 4460",
			"Emergencias: 911",
		},
	},
	ScenarioDespidoInjustificado: {
		Title: "Despido Injustificado",
		Rights: []string{
			"Derecho a recibir por escrito la causa de tu despido",
			"Derecho a elegir entre la reinstalación o una indemnización de tres meses de salario",
			"Derecho al pago de salarios caídos, aguinaldo, vacaciones y prima vacacional proporcionales",
			"Derecho a asesoría gratuita de un abogado de la Procuraduría de la Defensa del Trabajo",
		},
		Steps: []string{
			"No firmes tu renuncia ni documentos en blanco",
			"Reúne recibos de nómina, contrato y cualquier prueba de la relación laboral",
			"Solicita la conciliación prejudicial ante el Centro de Conciliación Laboral",
			"Si no hay acuerdo, presenta la demanda ante el Tribunal Laboral",
			"Respeta el plazo de dos meses desde el despido para reclamar",
		},
		LegalBasis: "Artículo 123 de la Constitución Política de los Estados Unidos Mexicanos y artículos 47, 48 y 518 de la Ley Federal del Trabajo",
		Resources: []string{
			"Procuraduría Federal de la Defensa del Trabajo (PROFEDET): 800 911 7877",
			"Centro Federal de Conciliación y Registro Laboral",
		},
	},
	ScenarioDesalojo: {
		Title: "Desalojo de Vivienda",
		Rights: []string{
			"Derecho a no ser desalojado sin una orden judicial",
			"Derecho a ser notificado del juicio y a defenderte con un abogado",
			"Derecho a un plazo razonable para desocupar la vivienda",
			"Derecho a que el desalojo se realice sin violencia",
		},
		Steps: []string{
			"Pide ver la orden judicial y verifica nombre, domicilio y juzgado",
			"No entregues la vivienda ante amenazas sin orden de un juez",
			"Reúne tu contrato de arrendamiento y comprobantes de pago",
			"Acude a la Defensoría de Oficio en materia civil para preparar tu defensa",
			"Si hay violencia, llama al 911 y documenta lo ocurrido",
		},
		LegalBasis: "Artículos 14 y 16 de la Constitución Política de los Estados Unidos Mexicanos y el Código de Procedimientos Civiles de tu entidad",
		Resources: []string{
			"Defensoría Pública de tu entidad",
			"Procuraduría Federal del Consumidor (PROFECO): 55 5568 8722",
		},
	},
	ScenarioExtorsion: {
		Title: "Extorsión",
		Rights: []string{
			"Derecho a denunciar de forma anónima",
			"Derecho a medidas de protección para ti y tu familia",
			"Derecho a asesoría jurídica gratuita como víctima",
		},
		Steps: []string{
			"No realices ningún pago ni depósito",
			"Cuelga y no proporciones datos personales",
			"Comunícate con tus familiares para confirmar que están bien",
			"Registra el número, la hora y lo que te dijeron",
			"Denuncia al 089 o ante el Ministerio Público",
		},
		LegalBasis: "Artículo 390 del Código Penal Federal y artículo 20, apartado C, de la Constitución Política de los Estados Unidos Mexicanos",
		Resources: []string{
			"Denuncia anónima: 089",
			"Consejo Ciudadano de Seguridad: 55 5533 5533",
			"Emergencias: 911",
		},
	},
}

// Lookup returns the knowledge base entry for a scenario key.
func Lookup(key string) (Entry, bool) {
	entry, ok := entries[key]
	return entry, ok
}

// LegalScenarios lists every knowledge base key with its title, in menu order.
func LegalScenarios() []Scenario {
	scenarios := make([]Scenario, 0, len(scenarioOrder))
	for _, key := range scenarioOrder {
		scenarios = append(scenarios, Scenario{Key: key, Title: entries[key].Title})
	}
	return scenarios
}

// IsScenario reports whether key can be selected as the conversation scenario.
// GENERAL is valid even though it has no entry.
func IsScenario(key string) bool {
	if key == ScenarioGeneral {
		return true
	}
	_, ok := entries[key]
	return ok
}
