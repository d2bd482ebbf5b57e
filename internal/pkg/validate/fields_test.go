package validate

import (
	"strings"
	"testing"

	"github.com/go-inbox-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequiredText(t *testing.T) {
	assert.Nil(t, RequiredText("summary", "hello"))

	v := RequiredText("summary", "")
	require.NotNil(t, v)
	assert.Equal(t, domain.Violation{Field: "summary", Reason: domain.ReasonMissingOrEmpty}, *v)

	v = RequiredText("summary", string([]byte{0xff, 0xfe}))
	require.NotNil(t, v)
	assert.Equal(t, domain.ReasonUnsupportedCharacters, v.Reason)
}

func TestBoundedText(t *testing.T) {
	assert.Nil(t, BoundedText("actionLabel", strings.Repeat("x", 25), 25))

	v := BoundedText("actionLabel", strings.Repeat("x", 26), 25)
	require.NotNil(t, v)
	assert.Equal(t, domain.ReasonTooLong, v.Reason)

	// Length is counted in runes, not bytes.
	assert.Nil(t, BoundedText("actionLabel", strings.Repeat("é", 25), 25))

	v = BoundedText("actionLabel", "", 25)
	require.NotNil(t, v)
	assert.Equal(t, domain.ReasonMissingOrEmpty, v.Reason)
}

func TestMessageID(t *testing.T) {
	assert.Nil(t, MessageID("msgID", "0"))
	assert.Nil(t, MessageID("msgID", "123456789012345"))

	v := MessageID("msgID", "")
	require.NotNil(t, v)
	assert.Equal(t, domain.ReasonMissingOrEmpty, v.Reason)

	for _, bad := range []string{"12a", "-1", "1.5", " 12", "abc"} {
		v := MessageID("msgID", bad)
		require.NotNil(t, v, "input: %q", bad)
		assert.Equal(t, domain.ReasonNonNumericID, v.Reason, "input: %q", bad)
	}
}

func TestLanID(t *testing.T) {
	for _, ok := range []string{"a", "abc123", "ABCD1234", "12345678"} {
		assert.Nil(t, LanID("lanId", ok), "input: %q", ok)
	}

	for _, bad := range []string{"", "user name", "user-1", "user!", "abcd12345", "a b"} {
		v := LanID("lanId", bad)
		require.NotNil(t, v, "input: %q", bad)
		assert.Equal(t, domain.Violation{Field: "lanId", Reason: domain.ReasonInvalidLanID}, *v, "input: %q", bad)
	}
}
