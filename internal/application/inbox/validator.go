package inbox

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-inbox-api/internal/domain"
	"github.com/go-inbox-api/internal/pkg/datetime"
	"github.com/go-inbox-api/internal/pkg/plaintext"
	"github.com/go-inbox-api/internal/pkg/validate"
)

const (
	// summaryPlainTextMaxLength bounds the summary after markup stripping.
	summaryPlainTextMaxLength = 140
	actionLabelMaxLength      = 25
)

// now is swapped out by tests that pin expiration boundaries.
var now = time.Now

// ValidateCreate checks one message plus its recipient list and returns every
// violation found. Message-field checks accumulate: none short-circuits
// another, except that a nil message yields exactly one violation. The
// recipient list is the opposite: scanning stops at the first invalid entry.
// That asymmetry is long-standing observable behavior and is kept on purpose.
//
// On success the message's expirationDate is rewritten in place to its
// canonical form; accepting input normalizes it.
func ValidateCreate(msg *domain.Message, lanIDs []string) []domain.Violation {
	violations := validateMessage(msg)
	return append(violations, validateLanIDs(lanIDs)...)
}

func validateMessage(msg *domain.Message) []domain.Violation {
	if msg == nil {
		return []domain.Violation{{Field: "message", Reason: domain.ReasonMissingOrEmpty}}
	}

	var violations []domain.Violation
	add := func(v *domain.Violation) {
		if v != nil {
			violations = append(violations, *v)
		}
	}

	if v := validate.RequiredText("summary", msg.Summary); v != nil {
		add(v)
	} else if utf8.RuneCountInString(plaintext.Extract(msg.Summary)) > summaryPlainTextMaxLength {
		add(&domain.Violation{Field: "summary", Reason: domain.ReasonTooLong})
	}

	switch {
	case msg.Priority == "":
		add(&domain.Violation{Field: "priority", Reason: domain.ReasonMissingOrEmpty})
	case !msg.Priority.Known():
		add(&domain.Violation{Field: "priority", Reason: domain.ReasonInvalidValue})
	}

	switch {
	case msg.Type == "":
		add(&domain.Violation{Field: "type", Reason: domain.ReasonMissingOrEmpty})
	case !msg.Type.Known():
		add(&domain.Violation{Field: "type", Reason: domain.ReasonInvalidValue})
	case msg.Type == domain.TypeInformation:
		add(validateExpirationDate(msg))
	case msg.Type == domain.TypeTask:
		add(validate.RequiredText("actionLink", msg.ActionLink))
		add(validate.BoundedText("actionLabel", msg.ActionLabel, actionLabelMaxLength))
	}

	add(validate.RequiredText("lastUpdtUser", msg.LastUpdtUser))

	return violations
}

// validateExpirationDate checks the Information-only expiration field and,
// when the value parses, rewrites it to canonical form. The not-in-the-past
// check compares canonical strings on both sides; the same ordering the
// store's classification predicates use.
func validateExpirationDate(msg *domain.Message) *domain.Violation {
	if v := validate.RequiredText("expirationDate", msg.ExpirationDate); v != nil {
		return v
	}
	canonExp, err := datetime.Canonical(msg.ExpirationDate)
	if err != nil {
		return &domain.Violation{Field: "expirationDate", Reason: domain.ReasonInvalidDateTime}
	}

	canonNow := datetime.Format(now())
	msg.ExpirationDate = canonExp
	if strings.Compare(canonExp, canonNow) < 0 {
		return &domain.Violation{Field: "expirationDate", Reason: domain.ReasonExpirationInPast}
	}
	return nil
}

// validateLanIDs reports an empty list as one violation; otherwise it scans
// in order and stops at the first invalid entry. Entries are checked in
// trimmed form since that is what fan-out persists.
func validateLanIDs(lanIDs []string) []domain.Violation {
	if len(lanIDs) == 0 {
		return []domain.Violation{{Field: "lanIds", Reason: domain.ReasonMissingOrEmpty}}
	}
	for _, lanID := range lanIDs {
		if v := validate.LanID("lanIds", strings.TrimSpace(lanID)); v != nil {
			return []domain.Violation{*v}
		}
	}
	return nil
}
