package assistant

import "github.com/xaenox/asesor-legal/internal/classifier"

// Suggested action tags returned to the UI.
const (
	ActionCall911           = "CALL_911"
	ActionEmergencyContacts = "EMERGENCY_CONTACTS"
	ActionSafetyPlan        = "SAFETY_PLAN"
	ActionViewRights        = "VIEW_RIGHTS"
	ActionFindLawyer        = "FIND_LAWYER"
	ActionFileComplaint     = "FILE_COMPLAINT"
	ActionSafetyResources   = "SAFETY_RESOURCES"
	ActionSupportGroups     = "SUPPORT_GROUPS"
	ActionCrisisLine        = "CRISIS_LINE"
	ActionLegalProcess      = "LEGAL_PROCESS"
	ActionEvidenceGuide     = "EVIDENCE_GUIDE"
	ActionLegalScenarios    = "LEGAL_SCENARIOS"
	ActionEmergencyNumbers  = "EMERGENCY_NUMBERS"
	ActionTalkToHuman       = "TALK_TO_HUMAN"
	ActionResources         = "RESOURCES"
	ActionTryAgain          = "TRY_AGAIN"
)

// IntentError tags responses that did not go through classification.
const IntentError = "ERROR"

type ErrorKind string

const (
	ErrorValidation ErrorKind = "validation"
	ErrorFault      ErrorKind = "fault"
)

type Metadata struct {
	// ProcessingTime is the wall-clock duration of the call in milliseconds.
	ProcessingTime   float64  `json:"processingTime"`
	Confidence       float64  `json:"confidence"`
	DetectedIntent   string   `json:"detectedIntent"`
	SuggestedActions []string `json:"suggestedActions"`
}

type Response struct {
	Content        string               `json:"content"`
	Sentiment      classifier.Sentiment `json:"sentiment"`
	CrisisDetected bool                 `json:"crisisDetected"`
	CrisisKeywords []string             `json:"crisisKeywords"`
	Metadata       Metadata             `json:"metadata"`

	// Set only on ERROR responses.
	ErrorKind ErrorKind `json:"errorKind,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// IsError reports whether the response is one of the fixed ERROR responses.
func (r *Response) IsError() bool {
	return r.Metadata.DetectedIntent == IntentError
}
