package inbox

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-inbox-api/internal/domain"
	"github.com/go-inbox-api/internal/pkg/validate"
)

// MessageRepository is the persistence contract the inbox service requires.
// InsertAll must write either every message or none; Delete must return the
// removed row or domain.ErrNotFound in a single atomic step.
type MessageRepository interface {
	InsertAll(ctx context.Context, msgs []domain.Message) ([]domain.Message, error)
	Get(ctx context.Context, msgID string) (*domain.Message, error)
	ListByRecipient(ctx context.Context, lanID string, filter domain.ExpirationFilter) ([]domain.Message, error)
	Delete(ctx context.Context, msgID string) (*domain.Message, error)
	DeleteExpired(ctx context.Context, lanID string) (int, error)
}

// EventPublisher announces committed inbox changes to interested systems.
type EventPublisher interface {
	MessageCreated(ctx context.Context, msg *domain.Message) error
}

type Service interface {
	// Trusted-service operations: no ownership restriction.
	Get(ctx context.Context, msgID string) (*domain.Message, error)
	List(ctx context.Context, lanID string, filter domain.ExpirationFilter) ([]domain.Message, error)
	Create(ctx context.Context, msg *domain.Message, lanIDs []string) ([]domain.Message, error)
	Delete(ctx context.Context, msgID string) (*domain.Message, error)

	// Session-user operations: callerLanID is the identity resolved for this
	// request and must match the addressed recipient.
	GetForRecipient(ctx context.Context, callerLanID, lanID, msgID string) (*domain.Message, error)
	ListForRecipient(ctx context.Context, callerLanID, lanID string, filter domain.ExpirationFilter) ([]domain.Message, error)
	DeleteForRecipient(ctx context.Context, callerLanID, lanID, msgID string) (*domain.Message, error)
	DeleteExpired(ctx context.Context, callerLanID, lanID string) (int, error)
}

// ServiceDeps holds the collaborators an inbox service needs. Events may be
// nil when no publisher is configured.
type ServiceDeps struct {
	Repo   MessageRepository
	Events EventPublisher
}

type service struct {
	repo   MessageRepository
	events EventPublisher
}

func NewService(deps ServiceDeps) Service {
	return &service{repo: deps.Repo, events: deps.Events}
}

func (s *service) Get(ctx context.Context, msgID string) (*domain.Message, error) {
	if v := validate.MessageID("msgID", msgID); v != nil {
		return nil, domain.NewValidationError([]domain.Violation{*v})
	}
	return s.repo.Get(ctx, msgID)
}

func (s *service) List(ctx context.Context, lanID string, filter domain.ExpirationFilter) ([]domain.Message, error) {
	if v := validate.LanID("lanId", lanID); v != nil {
		return nil, domain.NewValidationError([]domain.Violation{*v})
	}
	return s.repo.ListByRecipient(ctx, domain.NormalizeLanID(lanID), filter)
}

// Create validates the request, fans the message out to every unique
// recipient, and persists all copies as one atomic unit. On any violation
// nothing is written.
func (s *service) Create(ctx context.Context, msg *domain.Message, lanIDs []string) ([]domain.Message, error) {
	if violations := ValidateCreate(msg, lanIDs); len(violations) > 0 {
		return nil, domain.NewValidationError(violations)
	}

	unique := make(map[string]struct{}, len(lanIDs))
	for _, lanID := range lanIDs {
		unique[domain.NormalizeLanID(lanID)] = struct{}{}
	}

	copies := make([]domain.Message, 0, len(unique))
	for lanID := range unique {
		c := *msg
		c.LanID = lanID
		copies = append(copies, c)
	}

	created, err := s.repo.InsertAll(ctx, copies)
	if err != nil {
		return nil, fmt.Errorf("create messages: %w", err)
	}

	// Post-commit announcements are best effort; a publish failure never
	// rolls back persisted messages.
	if s.events != nil {
		for i := range created {
			if err := s.events.MessageCreated(ctx, &created[i]); err != nil {
				slog.Warn("failed to publish message-created event", "msg_id", created[i].ID, "lan_id", created[i].LanID, "err", err)
			}
		}
	}

	return created, nil
}

func (s *service) Delete(ctx context.Context, msgID string) (*domain.Message, error) {
	if v := validate.MessageID("msgID", msgID); v != nil {
		return nil, domain.NewValidationError([]domain.Violation{*v})
	}
	return s.repo.Delete(ctx, msgID)
}

func (s *service) GetForRecipient(ctx context.Context, callerLanID, lanID, msgID string) (*domain.Message, error) {
	if err := requireRecipient(callerLanID, lanID); err != nil {
		return nil, err
	}
	msg, err := s.Get(ctx, msgID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(msg.LanID, callerLanID) {
		return nil, fmt.Errorf("message %s is not owned by %s: %w", msgID, lanID, domain.ErrForbidden)
	}
	return msg, nil
}

func (s *service) ListForRecipient(ctx context.Context, callerLanID, lanID string, filter domain.ExpirationFilter) ([]domain.Message, error) {
	if err := requireRecipient(callerLanID, lanID); err != nil {
		return nil, err
	}
	return s.List(ctx, lanID, filter)
}

// DeleteForRecipient is the self-service deletion path. Task messages cannot
// be removed through it; both that rule and the ownership check run before
// any store mutation.
func (s *service) DeleteForRecipient(ctx context.Context, callerLanID, lanID, msgID string) (*domain.Message, error) {
	msg, err := s.GetForRecipient(ctx, callerLanID, lanID, msgID)
	if err != nil {
		return nil, err
	}
	if msg.Type == domain.TypeTask {
		return nil, fmt.Errorf("task messages cannot be deleted by their recipient: %w", domain.ErrForbidden)
	}
	return s.repo.Delete(ctx, msgID)
}

// DeleteExpired removes the recipient's expired Information messages.
// Deleting when nothing has expired is a success with count zero.
func (s *service) DeleteExpired(ctx context.Context, callerLanID, lanID string) (int, error) {
	if err := requireRecipient(callerLanID, lanID); err != nil {
		return 0, err
	}
	return s.repo.DeleteExpired(ctx, domain.NormalizeLanID(lanID))
}

func requireRecipient(callerLanID, lanID string) error {
	if v := validate.LanID("lanId", lanID); v != nil {
		return domain.NewValidationError([]domain.Violation{*v})
	}
	if !strings.EqualFold(strings.TrimSpace(callerLanID), strings.TrimSpace(lanID)) {
		return fmt.Errorf("caller %s cannot act on inbox %s: %w", callerLanID, lanID, domain.ErrForbidden)
	}
	return nil
}
