package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseExpirationFilter(t *testing.T) {
	assert.Equal(t, FilterActive, ParseExpirationFilter("ACTIVE"))
	assert.Equal(t, FilterInactive, ParseExpirationFilter("INACTIVE"))
	assert.Equal(t, FilterAll, ParseExpirationFilter("ALL"))

	// Anything else, including lowercase tokens and garbage, falls back to ALL.
	assert.Equal(t, FilterAll, ParseExpirationFilter(""))
	assert.Equal(t, FilterAll, ParseExpirationFilter("active"))
	assert.Equal(t, FilterAll, ParseExpirationFilter("Inactive"))
	assert.Equal(t, FilterAll, ParseExpirationFilter("yes"))
}
