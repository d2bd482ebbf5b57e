package plaintext

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	cases := []struct{ input, want string }{
		{"plain text", "plain text"},
		{"<b>bold</b> move", "bold move"},
		{"<p>Your statement is <a href=\"https://x\">ready</a></p>", "Your statement is ready"},
		{"Fish &amp; Chips", "Fish & Chips"},
		{"  padded  ", "padded"},
		{"<script>alert(1)</script>", ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Extract(c.input), "input: %q", c.input)
	}
}
