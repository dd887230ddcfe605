package classifier

import "regexp"

// All tables are lowercase and matched as substrings of the lowercased message.
// Order matters wherever a function returns the first match.

// crisisKeywords must cover every entry of crisisSentimentWords, and no entry
// may contain another so that severity counts distinct phrases.
var crisisKeywords = []string{
	"suicid",
	"quitarme la vida",
	"matarme",
	"me quiero matar",
	"me voy a matar",
	"no quiero vivir",
	"quiero morir",
	"hacerme daño",
	"lastimarme",
	"cortarme",
	"me va a matar",
	"me quiere matar",
	"me van a matar",
	"me está golpeando",
	"me esta golpeando",
	"estoy en peligro",
	"tiene un arma",
	"no puedo más",
	"no puedo mas",
}

var (
	crisisSentimentWords = []string{
		"suicid",
		"matarme",
		"me quiero matar",
		"me voy a matar",
		"quitarme la vida",
		"quiero morir",
		"no quiero vivir",
		"hacerme daño",
		"me va a matar",
	}
	distressedWords = []string{
		"desesperad",
		"aterrad",
		"pánico",
		"panico",
		"angustia",
		"no sé qué hacer",
		"no se que hacer",
		"auxilio",
		"ayúdame",
		"ayudame",
	}
	negativeWords = []string{
		"triste",
		"enojad",
		"preocupad",
		"molest",
		"frustrad",
		"ansios",
		"nervios",
		"miedo",
		"injusto",
		"muy mal",
	}
	positiveWords = []string{
		"gracias",
		"feliz",
		"tranquil",
		"excelente",
		"genial",
		"perfecto",
		"me siento mejor",
		"estoy bien",
	}
)

var greetingPattern = regexp.MustCompile(`(?i)^[\s¡¿]*(hola|buen[oa]s(\s+(d[ií]as|tardes|noches))?|saludos|qu[eé]\s+tal|hey|hi|hello)\b`)

var (
	legalTerms = []string{
		"derecho",
		"ley",
		"abogad",
		"denuncia",
		"demanda",
		"detenci",
		"detenido",
		"detuvieron",
		"policía",
		"policia",
		"arrest",
		"constituci",
		"artículo",
		"articulo",
		"legal",
		"delito",
		"juez",
		"ministerio público",
		"ministerio publico",
		"amparo",
		"despid",
		"desalojo",
		"extorsi",
		"fiscal",
	}
	proceduralPhrases = []string{
		"cómo",
		"como puedo",
		"como hago",
		"qué hago",
		"que hago",
		"qué debo",
		"que debo",
		"pasos",
		"proceso",
		"trámite",
		"tramite",
		"procedimiento",
		"requisitos",
		"dónde",
		"donde",
	}
	emotionalKeywords = []string{
		"miedo",
		"triste",
		"asustad",
		"ansiedad",
		"ansios",
		"nervios",
		"llorar",
		"lloro",
		"me siento",
		"desesperad",
		"angustia",
		"preocupad",
		"deprimid",
		"estrés",
		"estres",
	}
)

type topic struct {
	tag      string
	scenario string
	keywords []string
}

var topics = []topic{
	{"detencion", "DETENCION_POLICIAL", []string{"detenido", "detuvieron", "detención", "detencion", "policía", "policia", "arresto", "patrulla"}},
	{"violencia", "VIOLENCIA_DOMESTICA", []string{"golpe", "violencia", "pareja", "esposo", "maltrato", "agresor"}},
	{"laboral", "DESPIDO_INJUSTIFICADO", []string{"despido", "despidieron", "trabajo", "patrón", "patron", "finiquito", "liquidación"}},
	{"vivienda", "DESALOJO", []string{"desalojo", "desalojar", "renta", "arrendador", "casero", "vivienda"}},
	{"extorsion", "EXTORSION", []string{"extorsión", "extorsion", "cobro de piso", "secuestro virtual", "amenaza por teléfono"}},
	{"evidencia", "", []string{"prueba", "evidencia", "foto", "video", "testigo"}},
}
