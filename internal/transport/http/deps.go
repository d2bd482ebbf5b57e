package http

import (
	"github.com/go-inbox-api/internal/application/inbox"
	jwtinfra "github.com/go-inbox-api/internal/infrastructure/jwt"
)

// Deps holds all infrastructure dependencies for the router. Events may be
// nil when no SNS topic is configured.
type Deps struct {
	MessageRepo inbox.MessageRepository
	Events      inbox.EventPublisher
	JWTProvider *jwtinfra.Provider
}
