package classifier

import (
	"sort"
	"strings"

	"github.com/xaenox/asesor-legal/internal/models"
)

type Sentiment string

const (
	SentimentPositive   Sentiment = "POSITIVE"
	SentimentNeutral    Sentiment = "NEUTRAL"
	SentimentNegative   Sentiment = "NEGATIVE"
	SentimentDistressed Sentiment = "DISTRESSED"
	SentimentCrisis     Sentiment = "CRISIS"
)

type Severity string

const (
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

type IntentType string

const (
	IntentGreeting           IntentType = "GREETING"
	IntentLegalQuestion      IntentType = "LEGAL_QUESTION"
	IntentProceduralQuestion IntentType = "PROCEDURAL_QUESTION"
	IntentEmotionalSupport   IntentType = "EMOTIONAL_SUPPORT"
	IntentGeneral            IntentType = "GENERAL"
)

const (
	greetingConfidence   = 0.95
	legalConfidence      = 0.85
	proceduralConfidence = 0.80
	emotionalConfidence  = 0.75
	generalConfidence    = 0.60
)

type Intent struct {
	Type       IntentType `json:"type"`
	Confidence float64    `json:"confidence"`
}

type CrisisResult struct {
	IsCrisis bool     `json:"isCrisis"`
	Keywords []string `json:"keywords"`
	Severity Severity `json:"severity"`
}

// Classification is the combined output of the three classifiers for one message.
type Classification struct {
	Sentiment       Sentiment `json:"sentiment"`
	IsCrisis        bool      `json:"isCrisis"`
	MatchedKeywords []string  `json:"matchedKeywords"`
	Severity        Severity  `json:"severity"`
	Intent          Intent    `json:"intent"`
}

type Classifier interface {
	Classify(message string, ctx models.ConversationContext) Classification
}

// RuleClassifier is a deterministic keyword classifier. It holds no mutable
// state and is safe for concurrent use.
type RuleClassifier struct {
	maxTags int
}

func NewRuleClassifier(maxTags int) *RuleClassifier {
	return &RuleClassifier{maxTags: maxTags}
}

func (c *RuleClassifier) Classify(message string, ctx models.ConversationContext) Classification {
	crisis := c.DetectCrisis(message)
	return Classification{
		Sentiment:       c.DetectSentiment(message),
		IsCrisis:        crisis.IsCrisis,
		MatchedKeywords: crisis.Keywords,
		Severity:        crisis.Severity,
		Intent:          c.DetectIntent(message, ctx),
	}
}

// DetectSentiment returns the first sentiment whose word list matches, checking
// crisis, distressed, negative and positive words in that order.
func (c *RuleClassifier) DetectSentiment(message string) Sentiment {
	text := strings.ToLower(message)

	switch {
	case containsAny(text, crisisSentimentWords):
		return SentimentCrisis
	case containsAny(text, distressedWords):
		return SentimentDistressed
	case containsAny(text, negativeWords):
		return SentimentNegative
	case containsAny(text, positiveWords):
		return SentimentPositive
	default:
		return SentimentNeutral
	}
}

// DetectCrisis collects every crisis keyword present in the message.
// Severity is a count heuristic: two or more distinct keywords is HIGH.
func (c *RuleClassifier) DetectCrisis(message string) CrisisResult {
	text := strings.ToLower(message)

	matched := []string{}
	for _, keyword := range crisisKeywords {
		if strings.Contains(text, keyword) {
			matched = append(matched, keyword)
		}
	}

	severity := SeverityMedium
	if len(matched) >= 2 {
		severity = SeverityHigh
	}

	return CrisisResult{
		IsCrisis: len(matched) > 0,
		Keywords: matched,
		Severity: severity,
	}
}

// DetectIntent is a decision list: the first rule that matches wins.
// ctx is currently unused; it is kept so context-aware rules can be added
// without changing callers.
func (c *RuleClassifier) DetectIntent(message string, ctx models.ConversationContext) Intent {
	if greetingPattern.MatchString(message) {
		return Intent{Type: IntentGreeting, Confidence: greetingConfidence}
	}

	text := strings.ToLower(message)
	switch {
	case containsAny(text, legalTerms):
		return Intent{Type: IntentLegalQuestion, Confidence: legalConfidence}
	case containsAny(text, proceduralPhrases):
		return Intent{Type: IntentProceduralQuestion, Confidence: proceduralConfidence}
	case containsAny(text, emotionalKeywords):
		return Intent{Type: IntentEmotionalSupport, Confidence: emotionalConfidence}
	default:
		return Intent{Type: IntentGeneral, Confidence: generalConfidence}
	}
}

// Tags extracts topic tags and hashtags from the content for the transcript.
func (c *RuleClassifier) Tags(content string) []string {
	tags := make(map[string]struct{})

	for _, word := range strings.Fields(content) {
		if strings.HasPrefix(word, "#") {
			tag := strings.ToLower(strings.TrimRight(strings.TrimPrefix(word, "#"), ".,;:!?"))
			if tag != "" {
				tags[tag] = struct{}{}
			}
		}
	}

	text := strings.ToLower(content)
	for _, t := range topics {
		if containsAny(text, t.keywords) {
			tags[t.tag] = struct{}{}
		}
	}

	result := make([]string, 0, len(tags))
	for tag := range tags {
		result = append(result, tag)
	}
	sort.Strings(result)

	if c.maxTags > 0 && len(result) > c.maxTags {
		result = result[:c.maxTags]
	}

	return result
}

// SuggestScenario returns the knowledge base key of the first topic the
// message mentions, or "" when none applies.
func (c *RuleClassifier) SuggestScenario(message string) string {
	text := strings.ToLower(message)
	for _, t := range topics {
		if t.scenario != "" && containsAny(text, t.keywords) {
			return t.scenario
		}
	}
	return ""
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
