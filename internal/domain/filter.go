package domain

// ExpirationFilter selects which of a recipient's messages a listing returns.
type ExpirationFilter string

const (
	// FilterActive selects every Task message plus unexpired Information messages.
	FilterActive ExpirationFilter = "ACTIVE"
	// FilterInactive selects expired Information messages only. Task messages
	// never expire and are never inactive.
	FilterInactive ExpirationFilter = "INACTIVE"
	// FilterAll applies no predicate.
	FilterAll ExpirationFilter = "ALL"
)

// ParseExpirationFilter maps a filter token to an ExpirationFilter. Matching
// is case-sensitive and unrecognized tokens fall back to FilterAll; a bad
// token is never an error.
func ParseExpirationFilter(token string) ExpirationFilter {
	switch token {
	case string(FilterActive):
		return FilterActive
	case string(FilterInactive):
		return FilterInactive
	default:
		return FilterAll
	}
}
