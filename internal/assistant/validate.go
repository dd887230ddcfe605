package assistant

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxMessageLength is counted in characters (code points), not bytes.
const MaxMessageLength = 5000

var (
	ErrMissingMessage = errors.New("el mensaje es requerido")
	ErrEmptyMessage   = errors.New("el mensaje no puede estar vacío")
	ErrMessageTooLong = fmt.Errorf("el mensaje no puede exceder %d caracteres", MaxMessageLength)
)

// Validation is the structured result of checking a user message.
// Message holds the trimmed text when Valid is true.
type Validation struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

func ValidateMessage(message string) Validation {
	trimmed := strings.TrimSpace(message)
	if trimmed == "" {
		return invalid(ErrEmptyMessage)
	}
	if utf8.RuneCountInString(trimmed) > MaxMessageLength {
		return invalid(ErrMessageTooLong)
	}
	return Validation{Valid: true, Message: trimmed}
}

// ValidateField validates a message decoded from a request body, where nil
// means the field was absent or null.
func ValidateField(message *string) Validation {
	if message == nil {
		return invalid(ErrMissingMessage)
	}
	return ValidateMessage(*message)
}

// IsValidation reports whether err came from message validation.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingMessage) ||
		errors.Is(err, ErrEmptyMessage) ||
		errors.Is(err, ErrMessageTooLong)
}

func invalid(err error) Validation {
	return Validation{Valid: false, Error: err.Error(), Err: err}
}
