package inbox

import (
	"context"
	"errors"
	"testing"

	"github.com/go-inbox-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockMessageRepo struct{ mock.Mock }

func (m *mockMessageRepo) InsertAll(ctx context.Context, msgs []domain.Message) ([]domain.Message, error) {
	args := m.Called(ctx, msgs)
	if out, _ := args.Get(0).([]domain.Message); out != nil {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) Get(ctx context.Context, msgID string) (*domain.Message, error) {
	args := m.Called(ctx, msgID)
	if msg, _ := args.Get(0).(*domain.Message); msg != nil {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) ListByRecipient(ctx context.Context, lanID string, filter domain.ExpirationFilter) ([]domain.Message, error) {
	args := m.Called(ctx, lanID, filter)
	if out, _ := args.Get(0).([]domain.Message); out != nil {
		return out, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) Delete(ctx context.Context, msgID string) (*domain.Message, error) {
	args := m.Called(ctx, msgID)
	if msg, _ := args.Get(0).(*domain.Message); msg != nil {
		return msg, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockMessageRepo) DeleteExpired(ctx context.Context, lanID string) (int, error) {
	args := m.Called(ctx, lanID)
	return args.Int(0), args.Error(1)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) MessageCreated(ctx context.Context, msg *domain.Message) error {
	return m.Called(ctx, msg).Error(0)
}

// --- Create ---

func TestCreate_FansOutToUniqueRecipients(t *testing.T) {
	pinClock(t)
	repo := &mockMessageRepo{}
	repo.On("InsertAll", mock.Anything, mock.Anything).Return([]domain.Message{{ID: "1", LanID: "test"}}, nil)

	created, err := NewService(ServiceDeps{Repo: repo}).Create(context.Background(), validTask(), []string{"test", "Test ", "TEST"})

	require.NoError(t, err)
	assert.Len(t, created, 1)

	inserted := repo.Calls[0].Arguments.Get(1).([]domain.Message)
	require.Len(t, inserted, 1, "recipients differing only in case and whitespace collapse to one copy")
	assert.Equal(t, "test", inserted[0].LanID)
}

func TestCreate_OneCopyPerDistinctRecipient(t *testing.T) {
	pinClock(t)
	repo := &mockMessageRepo{}
	repo.On("InsertAll", mock.Anything, mock.Anything).Return([]domain.Message{}, nil)

	_, err := NewService(ServiceDeps{Repo: repo}).Create(context.Background(), validTask(), []string{"alice", "bob", "carol"})

	require.NoError(t, err)
	inserted := repo.Calls[0].Arguments.Get(1).([]domain.Message)
	assert.Len(t, inserted, 3)
	lanIDs := make([]string, 0, 3)
	for _, msg := range inserted {
		lanIDs = append(lanIDs, msg.LanID)
		assert.Equal(t, validTask().Summary, msg.Summary)
	}
	assert.ElementsMatch(t, []string{"alice", "bob", "carol"}, lanIDs)
}

func TestCreate_ValidationFailureSkipsStore(t *testing.T) {
	pinClock(t)
	repo := &mockMessageRepo{}

	_, err := NewService(ServiceDeps{Repo: repo}).Create(context.Background(), &domain.Message{}, []string{"test"})

	require.Error(t, err)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.NotEmpty(t, verr.Violations)
	repo.AssertNotCalled(t, "InsertAll", mock.Anything, mock.Anything)
}

func TestCreate_StoreErrorPropagates(t *testing.T) {
	pinClock(t)
	repo := &mockMessageRepo{}
	repo.On("InsertAll", mock.Anything, mock.Anything).Return(nil, errors.New("transaction canceled"))

	_, err := NewService(ServiceDeps{Repo: repo}).Create(context.Background(), validTask(), []string{"test"})

	require.Error(t, err)
}

func TestCreate_PublishesPerCreatedMessage(t *testing.T) {
	pinClock(t)
	repo := &mockMessageRepo{}
	created := []domain.Message{{ID: "1", LanID: "alice"}, {ID: "2", LanID: "bob"}}
	repo.On("InsertAll", mock.Anything, mock.Anything).Return(created, nil)
	events := &mockPublisher{}
	events.On("MessageCreated", mock.Anything, mock.Anything).Return(nil)

	_, err := NewService(ServiceDeps{Repo: repo, Events: events}).Create(context.Background(), validTask(), []string{"alice", "bob"})

	require.NoError(t, err)
	events.AssertNumberOfCalls(t, "MessageCreated", 2)
}

func TestCreate_PublishFailureDoesNotFailCreate(t *testing.T) {
	pinClock(t)
	repo := &mockMessageRepo{}
	repo.On("InsertAll", mock.Anything, mock.Anything).Return([]domain.Message{{ID: "1", LanID: "test"}}, nil)
	events := &mockPublisher{}
	events.On("MessageCreated", mock.Anything, mock.Anything).Return(errors.New("topic unreachable"))

	created, err := NewService(ServiceDeps{Repo: repo, Events: events}).Create(context.Background(), validTask(), []string{"test"})

	require.NoError(t, err)
	assert.Len(t, created, 1)
}

// --- trusted lookups ---

func TestGet_RejectsNonNumericID(t *testing.T) {
	repo := &mockMessageRepo{}

	_, err := NewService(ServiceDeps{Repo: repo}).Get(context.Background(), "abc")

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, domain.ReasonNonNumericID, verr.Violations[0].Reason)
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestList_NormalizesRecipient(t *testing.T) {
	repo := &mockMessageRepo{}
	repo.On("ListByRecipient", mock.Anything, "alice", domain.FilterActive).Return([]domain.Message{}, nil)

	out, err := NewService(ServiceDeps{Repo: repo}).List(context.Background(), "ALICE", domain.FilterActive)

	require.NoError(t, err)
	assert.Empty(t, out)
	repo.AssertCalled(t, "ListByRecipient", mock.Anything, "alice", domain.FilterActive)
}

// --- session-user operations ---

func TestGetForRecipient_OwnershipEnforced(t *testing.T) {
	repo := &mockMessageRepo{}
	repo.On("Get", mock.Anything, "7").Return(&domain.Message{ID: "7", LanID: "bob"}, nil)

	_, err := NewService(ServiceDeps{Repo: repo}).GetForRecipient(context.Background(), "alice", "alice", "7")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestGetForRecipient_CallerRecipientMismatch(t *testing.T) {
	repo := &mockMessageRepo{}

	_, err := NewService(ServiceDeps{Repo: repo}).GetForRecipient(context.Background(), "alice", "bob", "7")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetForRecipient_OwnerVariesOnlyByCase(t *testing.T) {
	repo := &mockMessageRepo{}
	repo.On("Get", mock.Anything, "7").Return(&domain.Message{ID: "7", LanID: "alice"}, nil)

	msg, err := NewService(ServiceDeps{Repo: repo}).GetForRecipient(context.Background(), "ALICE", "Alice", "7")

	require.NoError(t, err)
	assert.Equal(t, "7", msg.ID)
}

func TestDeleteForRecipient_TaskMessagesProtected(t *testing.T) {
	repo := &mockMessageRepo{}
	repo.On("Get", mock.Anything, "7").Return(&domain.Message{ID: "7", LanID: "alice", Type: domain.TypeTask}, nil)

	_, err := NewService(ServiceDeps{Repo: repo}).DeleteForRecipient(context.Background(), "alice", "alice", "7")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteForRecipient_InformationMessageRemoved(t *testing.T) {
	repo := &mockMessageRepo{}
	stored := &domain.Message{ID: "7", LanID: "alice", Type: domain.TypeInformation}
	repo.On("Get", mock.Anything, "7").Return(stored, nil)
	repo.On("Delete", mock.Anything, "7").Return(stored, nil)

	msg, err := NewService(ServiceDeps{Repo: repo}).DeleteForRecipient(context.Background(), "alice", "alice", "7")

	require.NoError(t, err)
	assert.Equal(t, "7", msg.ID)
}

func TestDeleteForRecipient_NotFound(t *testing.T) {
	repo := &mockMessageRepo{}
	repo.On("Get", mock.Anything, "7").Return(nil, domain.ErrNotFound)

	_, err := NewService(ServiceDeps{Repo: repo}).DeleteForRecipient(context.Background(), "alice", "alice", "7")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDeleteExpired_NothingExpiredIsSuccess(t *testing.T) {
	repo := &mockMessageRepo{}
	repo.On("DeleteExpired", mock.Anything, "alice").Return(0, nil)

	n, err := NewService(ServiceDeps{Repo: repo}).DeleteExpired(context.Background(), "alice", "alice")

	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestDeleteExpired_MismatchedCaller(t *testing.T) {
	repo := &mockMessageRepo{}

	_, err := NewService(ServiceDeps{Repo: repo}).DeleteExpired(context.Background(), "mallory", "alice")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
	repo.AssertNotCalled(t, "DeleteExpired", mock.Anything, mock.Anything)
}

func TestDelete_BadLanIDInPath(t *testing.T) {
	repo := &mockMessageRepo{}

	_, err := NewService(ServiceDeps{Repo: repo}).ListForRecipient(context.Background(), "al!ce", "al!ce", domain.FilterAll)

	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, domain.ReasonInvalidLanID, verr.Violations[0].Reason)
}
