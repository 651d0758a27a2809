package notifications

import (
	"context"
	"errors"
	"testing"

	"waitly/internal/waitlist"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockProducer struct {
	publishFn func(ctx context.Context, event *QueueEvent) error
}

func (m *mockProducer) PublishQueueEvent(ctx context.Context, event *QueueEvent) error {
	return m.publishFn(ctx, event)
}

func (m *mockProducer) Close() error { return nil }

type mockRepo struct {
	created []Notification
	ctxErr  error
	err     error
}

func (m *mockRepo) Create(ctx context.Context, n *Notification) error {
	m.ctxErr = ctx.Err()
	if m.err != nil {
		return m.err
	}
	m.created = append(m.created, *n)
	return nil
}

func (m *mockRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	return nil, nil
}

func (m *mockRepo) MarkRead(ctx context.Context, id, userID uuid.UUID) (*Notification, error) {
	return nil, ErrNotificationNotFound
}

func queueNotification() waitlist.QueueNotification {
	return waitlist.QueueNotification{
		UserID:  uuid.New(),
		VenueID: uuid.New(),
		EntryID: uuid.New(),
		Status:  waitlist.StatusWaiting,
		Message: "You have been approved. Position: 1",
	}
}

func TestNotify_PublishesToKafka(t *testing.T) {
	var published *QueueEvent
	producer := &mockProducer{
		publishFn: func(ctx context.Context, event *QueueEvent) error {
			published = event
			return nil
		},
	}
	repo := &mockRepo{}
	notifier := NewQueueNotifier(producer, repo)

	n := queueNotification()
	notifier.Notify(context.Background(), n)

	require.NotNil(t, published)
	assert.Equal(t, n.UserID, published.UserID)
	assert.Equal(t, n.EntryID, published.EntryID)
	assert.Equal(t, waitlist.StatusWaiting, published.Status)
	assert.Empty(t, repo.created, "repo fallback should not fire when publish succeeds")
}

func TestNotify_NilProducerWritesDirectly(t *testing.T) {
	repo := &mockRepo{}
	notifier := NewQueueNotifier(nil, repo)

	n := queueNotification()
	notifier.Notify(context.Background(), n)

	require.Len(t, repo.created, 1)
	assert.Equal(t, n.UserID, repo.created[0].UserID)
	assert.Equal(t, n.Message, repo.created[0].Message)
	assert.False(t, repo.created[0].Read)
}

func TestNotify_PublishFailureFallsBackToStore(t *testing.T) {
	producer := &mockProducer{
		publishFn: func(ctx context.Context, event *QueueEvent) error {
			return errors.New("broker unreachable")
		},
	}
	repo := &mockRepo{}
	notifier := NewQueueNotifier(producer, repo)

	n := queueNotification()
	notifier.Notify(context.Background(), n)

	require.Len(t, repo.created, 1)
	assert.Equal(t, n.UserID, repo.created[0].UserID)
}

func TestNotify_SurvivesCancelledRequestContext(t *testing.T) {
	repo := &mockRepo{}
	notifier := NewQueueNotifier(nil, repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	notifier.Notify(ctx, queueNotification())

	require.Len(t, repo.created, 1)
	assert.NoError(t, repo.ctxErr, "store should run on a detached context")
}
