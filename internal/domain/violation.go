package domain

// Violation reason codes. A field validator reports at most one reason,
// chosen in priority order: missing, unsupported characters, too long, then
// the field's format-specific check.
const (
	ReasonMissingOrEmpty        = "MISSING_OR_EMPTY"
	ReasonUnsupportedCharacters = "UNSUPPORTED_CHARACTERS"
	ReasonTooLong               = "TOO_LONG"
	ReasonInvalidValue          = "INVALID_VALUE"
	ReasonInvalidDateTime       = "INVALID_DATE_TIME"
	ReasonExpirationInPast      = "EXPIRATION_IN_PAST"
	ReasonInvalidLanID          = "INVALID_LAN_ID"
	ReasonNonNumericID          = "NON_NUMERIC_ID"
)

// Violation records one validation failure. Violations are data, not
// control flow: validators return them, they never panic or error.
type Violation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}
