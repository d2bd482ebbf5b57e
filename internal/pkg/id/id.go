package id

import (
	"crypto/rand"

	"github.com/oklog/ulid/v2"
)

// New generates a new ULID string. Used as the DynamoDB client request token
// so each logical create request maps to exactly one transaction.
func New() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
