package assistant

import (
	"math/rand"
	"time"

	"github.com/xaenox/asesor-legal/internal/classifier"
	"github.com/xaenox/asesor-legal/internal/models"
	"go.uber.org/zap"
)

const faultContent = "Lo siento, tuve un problema al procesar tu mensaje. Por favor intenta de nuevo. Si necesitas ayuda urgente, llama al 911."

// Assistant composes chatbot replies from the rule classifier output.
// It keeps no per-call state and is safe for concurrent use.
type Assistant struct {
	classifier *classifier.RuleClassifier
	logger     *zap.Logger

	// pick chooses among equivalent greeting templates.
	pick func(n int) int
}

func New(clf *classifier.RuleClassifier, logger *zap.Logger) *Assistant {
	return &Assistant{
		classifier: clf,
		logger:     logger,
		pick:       rand.Intn,
	}
}

// GenerateResponse classifies the message and builds the reply. It never
// panics: validation failures and internal faults come back as ERROR responses.
func (a *Assistant) GenerateResponse(message string, ctx models.ConversationContext) (resp Response) {
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("Failed to compose response",
				zap.Any("panic", r),
				zap.String("legal_scenario", ctx.LegalScenario))
			resp = faultResponse(start)
		}
	}()

	v := ValidateMessage(message)
	if !v.Valid {
		return validationResponse(v, start)
	}
	message = v.Message

	crisis := a.classifier.DetectCrisis(message)
	if crisis.IsCrisis {
		a.logger.Warn("Crisis detected",
			zap.Strings("crisis_keywords", crisis.Keywords),
			zap.String("severity", string(crisis.Severity)))

		return Response{
			Content:        crisisContent(),
			Sentiment:      classifier.SentimentCrisis,
			CrisisDetected: true,
			CrisisKeywords: crisis.Keywords,
			Metadata: Metadata{
				ProcessingTime:   elapsedMs(start),
				Confidence:       1.0,
				DetectedIntent:   "CRISIS",
				SuggestedActions: []string{ActionCall911, ActionEmergencyContacts, ActionSafetyPlan},
			},
		}
	}

	intent := a.classifier.DetectIntent(message, ctx)
	sentiment := a.classifier.DetectSentiment(message)

	var (
		content string
		actions []string
	)
	switch intent.Type {
	case classifier.IntentLegalQuestion:
		content = LegalResponse(ctx.Scenario())
		actions = []string{ActionViewRights, ActionFindLawyer, ActionFileComplaint}
	case classifier.IntentEmotionalSupport:
		content = EmotionalResponse(sentiment)
		actions = []string{ActionSafetyResources, ActionSupportGroups, ActionCrisisLine}
	case classifier.IntentProceduralQuestion:
		content = ProceduralResponse(ctx.Scenario())
		actions = []string{ActionLegalProcess, ActionEvidenceGuide, ActionFindLawyer}
	case classifier.IntentGreeting:
		content = greetings[a.pick(len(greetings))] + "\n\n" + capabilityMenu
		actions = []string{ActionLegalScenarios, ActionEmergencyNumbers, ActionSafetyPlan}
	default:
		content = clarifyingQuestion
		actions = []string{ActionLegalScenarios, ActionTalkToHuman, ActionResources}
	}

	return Response{
		Content:        content,
		Sentiment:      sentiment,
		CrisisDetected: false,
		CrisisKeywords: []string{},
		Metadata: Metadata{
			ProcessingTime:   elapsedMs(start),
			Confidence:       intent.Confidence,
			DetectedIntent:   string(intent.Type),
			SuggestedActions: actions,
		},
	}
}

func validationResponse(v Validation, start time.Time) Response {
	return Response{
		Content:        "Por favor escribe un mensaje para que pueda ayudarte. " + v.Error + ".",
		Sentiment:      classifier.SentimentNeutral,
		CrisisKeywords: []string{},
		Metadata: Metadata{
			ProcessingTime:   elapsedMs(start),
			DetectedIntent:   IntentError,
			SuggestedActions: []string{ActionTryAgain},
		},
		ErrorKind: ErrorValidation,
		Error:     v.Error,
	}
}

func faultResponse(start time.Time) Response {
	return Response{
		Content:        faultContent,
		Sentiment:      classifier.SentimentNeutral,
		CrisisKeywords: []string{},
		Metadata: Metadata{
			ProcessingTime:   elapsedMs(start),
			DetectedIntent:   IntentError,
			SuggestedActions: []string{ActionTryAgain, ActionTalkToHuman},
		},
		ErrorKind: ErrorFault,
	}
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Microseconds()) / 1000
}
