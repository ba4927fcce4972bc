package validator

import (
	"errors"
	"strings"
)

// ErrorType tags the kind of failure carried by a ValidationError.
// Semantic formats use their own name as the type (e.g. "email").
type ErrorType string

const (
	TypeRequired    ErrorType = "required"
	TypeType        ErrorType = "type"
	TypeMinLength   ErrorType = "minLength"
	TypeMaxLength   ErrorType = "maxLength"
	TypePattern     ErrorType = "pattern"
	TypeFormat      ErrorType = "format"
	TypeEnum        ErrorType = "enum"
	TypeMin         ErrorType = "min"
	TypeMax         ErrorType = "max"
	TypeInteger     ErrorType = "integer"
	TypeMinItems    ErrorType = "minItems"
	TypeMaxItems    ErrorType = "maxItems"
	TypeCustom      ErrorType = "custom"
	TypeAsyncCustom ErrorType = "asyncCustom"
	TypePipeline    ErrorType = "pipeline"
)

// ErrValidationFailed is matched by ValidationErrors via errors.Is.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError describes a single failed check.
type ValidationError struct {
	// Path from the root value: "" for the root, "address.city", "tags[2]".
	Path    string         `json:"path"`
	Message string         `json:"message"`
	Type    ErrorType      `json:"type"`
	Params  map[string]any `json:"params,omitempty"`
}

func (e ValidationError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// TranslationKey returns a stable i18n key such as "validation.minLength".
func (e ValidationError) TranslationKey() string {
	return "validation." + string(e.Type)
}

// ValidationErrors is an ordered collection of validation errors.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, err.Error())
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve ValidationErrors) Is(target error) bool {
	return target == ErrValidationFailed
}

func (ve *ValidationErrors) Add(err ValidationError) {
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(path string) bool {
	for _, err := range ve {
		if err.Path == path {
			return true
		}
	}
	return false
}

// Get returns all messages recorded for path.
func (ve ValidationErrors) Get(path string) []string {
	var messages []string
	for _, err := range ve {
		if err.Path == path {
			messages = append(messages, err.Message)
		}
	}
	return messages
}

func (ve ValidationErrors) GetErrors(path string) []ValidationError {
	var errs []ValidationError
	for _, err := range ve {
		if err.Path == path {
			errs = append(errs, err)
		}
	}
	return errs
}

// Paths returns the distinct failing paths in first-seen order.
func (ve ValidationErrors) Paths() []string {
	var paths []string
	seen := make(map[string]bool)
	for _, err := range ve {
		if !seen[err.Path] {
			paths = append(paths, err.Path)
			seen[err.Path] = true
		}
	}
	return paths
}

// First returns the first error, if any.
func (ve ValidationErrors) First() (ValidationError, bool) {
	if len(ve) == 0 {
		return ValidationError{}, false
	}
	return ve[0], true
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error chain.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
