package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xaenox/asesor-legal/internal/assistant"
	"github.com/xaenox/asesor-legal/internal/conversation"
	"github.com/xaenox/asesor-legal/internal/knowledge"
	"github.com/xaenox/asesor-legal/internal/models"
	"go.uber.org/zap"
)

const historySize = 5

type Bot struct {
	api           *tgbotapi.BotAPI
	service       *conversation.Service
	summaryWindow int
	logger        *zap.Logger
}

func New(token string, service *conversation.Service, summaryWindow int, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	logger.Info("Authorized on Telegram", zap.String("username", api.Self.UserName))

	return &Bot{
		api:           api,
		service:       service,
		summaryWindow: summaryWindow,
		logger:        logger,
	}, nil
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			switch {
			case update.Message != nil:
				go b.handleMessage(ctx, update.Message)
			case update.CallbackQuery != nil:
				go b.handleCallback(ctx, update.CallbackQuery)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.From == nil {
		return
	}

	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	content := message.Text
	if message.Caption != "" {
		content = message.Caption
	}

	resp, err := b.service.Handle(ctx, message.From.ID, content)
	if err != nil && !assistant.IsValidation(err) {
		b.logger.Error("Failed to handle message",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendErrorMessage(message.Chat.ID, "Lo siento, no pude procesar tu mensaje. Si estás en peligro, llama al 911.")
		return
	}

	b.sendResponse(message.Chat.ID, message.MessageID, resp)

	if resp.IsError() || resp.CrisisDetected {
		return
	}
	user, err := b.service.User(ctx, message.From.ID)
	if err != nil {
		return
	}
	if suggestion := b.service.SuggestScenario(user, content); suggestion != "" {
		entry, _ := knowledge.Lookup(suggestion)
		b.sendMessage(message.Chat.ID, fmt.Sprintf(
			"Parece que tu caso podría ser sobre «%s». Si es así, escribe /escenario %s para recibir información específica.",
			entry.Title, suggestion))
	}
}

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "ayuda", "help":
		b.handleHelp(message)
	case "escenarios":
		b.sendMessage(message.Chat.ID, scenarioList())
	case "escenario":
		b.handleScenario(ctx, message)
	case "acciones":
		b.handleQuickActions(message)
	case "accion":
		b.handleQuickAction(message)
	case "historial":
		b.handleHistory(ctx, message)
	case "resumen":
		b.handleSummary(ctx, message.Chat.ID, message.From.ID)
	default:
		b.sendMessage(message.Chat.ID, "Comando desconocido. Usa /ayuda para ver los comandos disponibles.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	welcome := `Bienvenida o bienvenido al Asesor Legal de Emergencia ⚖️

Estoy aquí para orientarte si enfrentas una situación legal urgente en México: detenciones, violencia doméstica, despidos, desalojos o extorsión.

Cuéntame qué está pasando o usa /ayuda para ver lo que puedo hacer.

Si estás en peligro inmediato, llama al 911.`

	b.sendMessage(message.Chat.ID, welcome)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) {
	help := `Comandos disponibles:
/start - Iniciar
/ayuda - Mostrar esta ayuda
/escenarios - Ver las situaciones legales que conozco
/escenario CLAVE - Elegir tu situación legal
/acciones - Ver guías rápidas
/accion CLAVE - Mostrar una guía rápida
/historial - Ver tus mensajes recientes
/resumen - Preparar un resumen de tu caso para un abogado

También puedes escribirme con tus propias palabras.`

	b.sendMessage(message.Chat.ID, help)
}

func (b *Bot) handleScenario(ctx context.Context, message *tgbotapi.Message) {
	key := strings.ToUpper(strings.TrimSpace(message.CommandArguments()))
	if key == "" {
		b.sendMessage(message.Chat.ID, "Indica la clave de tu situación, por ejemplo: /escenario DETENCION_POLICIAL\n\n"+scenarioList())
		return
	}

	if err := b.service.SetScenario(ctx, message.From.ID, key); err != nil {
		b.logger.Info("Rejected scenario",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendMessage(message.Chat.ID, "No conozco esa situación.\n\n"+scenarioList())
		return
	}

	entry, ok := knowledge.Lookup(key)
	if !ok {
		b.sendMessage(message.Chat.ID, "Listo, responderé de forma general.")
		return
	}
	b.sendMessage(message.Chat.ID, fmt.Sprintf("Listo, usaré la información sobre «%s». Pregúntame por tus derechos o por los pasos a seguir.", entry.Title))
}

func (b *Bot) handleQuickActions(message *tgbotapi.Message) {
	var sb strings.Builder
	sb.WriteString("Guías rápidas:\n")
	for _, item := range knowledge.QuickActions() {
		fmt.Fprintf(&sb, "• %s: /accion %s\n", item.Title, item.Key)
	}
	b.sendMessage(message.Chat.ID, sb.String())
}

func (b *Bot) handleQuickAction(message *tgbotapi.Message) {
	key := strings.ToUpper(strings.TrimSpace(message.CommandArguments()))
	action := knowledge.GetQuickAction(key)
	if action == nil {
		b.sendMessage(message.Chat.ID, "No encontré esa guía. Usa /acciones para ver la lista.")
		return
	}
	b.sendMessage(message.Chat.ID, action.Content)
}

func (b *Bot) handleHistory(ctx context.Context, message *tgbotapi.Message) {
	messages, err := b.service.History(ctx, message.From.ID, historySize)
	if err != nil {
		b.logger.Error("Failed to get user messages",
			zap.Error(err),
			zap.Int64("user_id", message.From.ID))
		b.sendErrorMessage(message.Chat.ID, "No pude recuperar tu historial.")
		return
	}

	if len(messages) == 0 {
		b.sendMessage(message.Chat.ID, "Aún no tienes mensajes.")
		return
	}

	response := "*Tus mensajes recientes:*\n\n"
	for _, msg := range messages {
		response += fmt.Sprintf("*%s*\n", escapeMarkdown(roleLabel(msg.Role)))
		response += fmt.Sprintf("_%s_\n", escapeMarkdown(truncate(msg.Content, 200)))
		if len(msg.Tags) > 0 {
			tags := make([]string, len(msg.Tags))
			for i, tag := range msg.Tags {
				tags[i] = "#" + escapeMarkdown(strings.ReplaceAll(tag, " ", "_"))
			}
			response += fmt.Sprintf("Etiquetas: %s\n", strings.Join(tags, " "))
		}
		response += "\n"
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, response)
	msg.ParseMode = tgbotapi.ModeMarkdownV2
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send history message",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
	}
}

func (b *Bot) handleSummary(ctx context.Context, chatID int64, userID int64) {
	summary, err := b.service.Summary(ctx, userID, b.summaryWindow)
	if err != nil {
		b.logger.Error("Failed to build summary",
			zap.Error(err),
			zap.Int64("user_id", userID))
		b.sendErrorMessage(chatID, "No pude preparar el resumen de tu caso.")
		return
	}

	b.logger.Info("Handoff summary requested",
		zap.Int64("user_id", userID),
		zap.Bool("crisis", summary.CrisisDetected),
		zap.String("source", summary.Source))

	b.sendMessage(chatID, "📄 Resumen de tu caso para un abogado:\n\n"+summary.Text+
		"\n\nPuedes compartir este resumen con la Defensoría Pública o con el abogado que te atienda.")
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("Failed to answer callback", zap.Error(err))
	}
	if query.Message == nil || query.From == nil {
		return
	}
	chatID := query.Message.Chat.ID

	tag, ok := parseCallback(query.Data)
	if !ok {
		return
	}
	target, ok := resolveAction(tag)
	if !ok {
		b.logger.Warn("Unknown action", zap.String("action", tag))
		return
	}

	switch target.kind {
	case actionQuick:
		b.sendMessage(chatID, knowledge.GetQuickAction(target.quickKey).Content)
	case actionScenarios:
		b.sendMessage(chatID, scenarioList())
	case actionRights:
		user, err := b.service.User(ctx, query.From.ID)
		if err != nil {
			b.sendErrorMessage(chatID, "No pude recuperar tu información.")
			return
		}
		b.sendMessage(chatID, assistant.LegalResponse(user.LegalScenario))
	case actionHandoff:
		b.handleSummary(ctx, chatID, query.From.ID)
	case actionRetry:
		b.sendMessage(chatID, "Escribe tu mensaje de nuevo, por favor.")
	}
}

func (b *Bot) sendResponse(chatID int64, replyToID int, resp *assistant.Response) {
	msg := tgbotapi.NewMessage(chatID, resp.Content)
	msg.ReplyToMessageID = replyToID
	if keyboard, ok := actionKeyboard(resp.Metadata.SuggestedActions); ok {
		msg.ReplyMarkup = keyboard
	}

	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send response",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
			zap.String("intent", resp.Metadata.DetectedIntent))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ "+text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func scenarioList() string {
	var sb strings.Builder
	sb.WriteString("Situaciones legales:\n")
	for _, s := range knowledge.LegalScenarios() {
		fmt.Fprintf(&sb, "• %s: /escenario %s\n", s.Title, s.Key)
	}
	return sb.String()
}

func roleLabel(role models.Role) string {
	if role == models.RoleAssistant {
		return "Asesor"
	}
	return "Tú"
}

// escapeMarkdown escapes the characters MarkdownV2 treats as markup.
func escapeMarkdown(text string) string {
	specialChars := []string{"\\", "_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	escaped := text
	for _, char := range specialChars {
		escaped = strings.ReplaceAll(escaped, char, "\\"+char)
	}
	return escaped
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
