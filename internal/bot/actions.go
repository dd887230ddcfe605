package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/asesor-legal/internal/assistant"
	"github.com/xaenox/asesor-legal/internal/knowledge"
)

const callbackPrefix = "action:"

type actionKind int

const (
	actionQuick actionKind = iota
	actionScenarios
	actionRights
	actionHandoff
	actionRetry
)

type actionTarget struct {
	kind     actionKind
	quickKey string
}

var actionTargets = map[string]actionTarget{
	assistant.ActionCall911:           {kind: actionQuick, quickKey: knowledge.QuickActionEmergencyNumbers},
	assistant.ActionEmergencyContacts: {kind: actionQuick, quickKey: knowledge.QuickActionEmergencyNumbers},
	assistant.ActionEmergencyNumbers:  {kind: actionQuick, quickKey: knowledge.QuickActionEmergencyNumbers},
	assistant.ActionCrisisLine:        {kind: actionQuick, quickKey: knowledge.QuickActionEmergencyNumbers},
	assistant.ActionSupportGroups:     {kind: actionQuick, quickKey: knowledge.QuickActionEmergencyNumbers},
	assistant.ActionResources:         {kind: actionQuick, quickKey: knowledge.QuickActionEmergencyNumbers},
	assistant.ActionSafetyPlan:        {kind: actionQuick, quickKey: knowledge.QuickActionSafetyPlan},
	assistant.ActionSafetyResources:   {kind: actionQuick, quickKey: knowledge.QuickActionSafetyPlan},
	assistant.ActionEvidenceGuide:     {kind: actionQuick, quickKey: knowledge.QuickActionEvidenceCollection},
	assistant.ActionLegalProcess:      {kind: actionQuick, quickKey: knowledge.QuickActionLegalProcess},
	assistant.ActionFileComplaint:     {kind: actionQuick, quickKey: knowledge.QuickActionLegalProcess},
	assistant.ActionLegalScenarios:    {kind: actionScenarios},
	assistant.ActionViewRights:        {kind: actionRights},
	assistant.ActionFindLawyer:        {kind: actionHandoff},
	assistant.ActionTalkToHuman:       {kind: actionHandoff},
	assistant.ActionTryAgain:          {kind: actionRetry},
}

var actionLabels = map[string]string{
	assistant.ActionCall911:           "📞 Llamar al 911",
	assistant.ActionEmergencyContacts: "🆘 Contactos de emergencia",
	assistant.ActionEmergencyNumbers:  "📞 Números de emergencia",
	assistant.ActionCrisisLine:        "💬 Línea de crisis",
	assistant.ActionSupportGroups:     "🤝 Grupos de apoyo",
	assistant.ActionResources:         "📚 Recursos",
	assistant.ActionSafetyPlan:        "🛡️ Plan de seguridad",
	assistant.ActionSafetyResources:   "🛡️ Recursos de seguridad",
	assistant.ActionEvidenceGuide:     "📋 Guía de evidencia",
	assistant.ActionLegalProcess:      "⚖️ Proceso legal",
	assistant.ActionFileComplaint:     "📝 Presentar denuncia",
	assistant.ActionLegalScenarios:    "📂 Situaciones legales",
	assistant.ActionViewRights:        "📜 Ver mis derechos",
	assistant.ActionFindLawyer:        "👩‍⚖️ Buscar abogado",
	assistant.ActionTalkToHuman:       "🙋 Hablar con una persona",
	assistant.ActionTryAgain:          "🔄 Intentar de nuevo",
}

func resolveAction(tag string) (actionTarget, bool) {
	target, ok := actionTargets[tag]
	return target, ok
}

func actionLabel(tag string) string {
	if label, ok := actionLabels[tag]; ok {
		return label
	}
	return tag
}

// actionKeyboard renders suggested actions as one button per row.
func actionKeyboard(tags []string) (tgbotapi.InlineKeyboardMarkup, bool) {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, tag := range tags {
		if _, ok := actionTargets[tag]; !ok {
			continue
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(actionLabel(tag), callbackPrefix+tag),
		))
	}
	if len(rows) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

func parseCallback(data string) (string, bool) {
	if !strings.HasPrefix(data, callbackPrefix) {
		return "", false
	}
	tag := strings.TrimPrefix(data, callbackPrefix)
	return tag, tag != ""
}
