package validate

import (
	"unicode"
	"unicode/utf8"

	"github.com/go-inbox-api/internal/domain"
)

// LanIDMaxLength bounds recipient identifiers.
const LanIDMaxLength = 8

// Field validators: each takes one raw value plus its field name and returns
// at most one violation, applying checks in priority order. The first check
// that fires wins; later checks are skipped.

// RequiredText reports a missing/empty value, then invalid UTF-8.
func RequiredText(field, value string) *domain.Violation {
	if value == "" {
		return &domain.Violation{Field: field, Reason: domain.ReasonMissingOrEmpty}
	}
	if !utf8.ValidString(value) {
		return &domain.Violation{Field: field, Reason: domain.ReasonUnsupportedCharacters}
	}
	return nil
}

// BoundedText is RequiredText plus a maximum length in runes.
func BoundedText(field, value string, maxLen int) *domain.Violation {
	if v := RequiredText(field, value); v != nil {
		return v
	}
	if utf8.RuneCountInString(value) > maxLen {
		return &domain.Violation{Field: field, Reason: domain.ReasonTooLong}
	}
	return nil
}

// MessageID requires a non-empty, digits-only identifier.
func MessageID(field, value string) *domain.Violation {
	if value == "" {
		return &domain.Violation{Field: field, Reason: domain.ReasonMissingOrEmpty}
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return &domain.Violation{Field: field, Reason: domain.ReasonNonNumericID}
		}
	}
	return nil
}

// LanID requires a non-empty alphanumeric identifier of at most
// LanIDMaxLength runes. All failures share one reason code, matching the
// legacy behavior of reporting every malformed recipient the same way.
func LanID(field, value string) *domain.Violation {
	if value == "" || !isAlphanumeric(value) || utf8.RuneCountInString(value) > LanIDMaxLength {
		return &domain.Violation{Field: field, Reason: domain.ReasonInvalidLanID}
	}
	return nil
}

func isAlphanumeric(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
