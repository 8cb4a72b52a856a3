package settings

import (
	"errors"
	"fmt"
	"strings"
)

// GeneralField is the pseudo field name used for failures that are not
// attributable to a single configuration field, such as the missing-LLM-key
// production rule.
const GeneralField = "general"

// WeightsField is the rule-identifying key for the dimension-weight sum
// invariant, which spans seven fields and belongs to none of them.
const WeightsField = "dimension_weights"

// FieldError represents a validation error for a specific configuration field
// (or a rule-identifying pseudo field for cross-field failures).
type FieldError struct {
	// Field is the configuration key (e.g., "RATE_LIMIT_PER_MINUTE"), or one
	// of the pseudo keys GeneralField and WeightsField.
	Field string `json:"field"`

	// Message is a human-readable error message.
	Message string `json:"message"`
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors found in a single
// load attempt. All failures from one attempt are aggregated; nothing is
// truncated or reported fail-fast.
type ValidationError struct {
	// Errors contains every validation error, in schema declaration order for
	// field-level failures followed by cross-field and conditional failures.
	Errors []FieldError `json:"errors"`
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "settings validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("settings validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("settings validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// AsValidationError unwraps err into a ValidationError if it is one.
func AsValidationError(err error) (ValidationError, bool) {
	var verr ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return ValidationError{}, false
}
