package notifications

import (
	"context"
	"log"
	"time"

	"waitly/internal/waitlist"
)

// QueueNotifier implements the waitlist.Notifier interface by publishing queue
// events to Kafka. When no producer is configured (tests, single-node deploys)
// it falls back to writing the notification row directly.
type QueueNotifier struct {
	producer Producer
	repo     Repository
}

// NewQueueNotifier creates the notifier adapter used by the waitlist engine.
func NewQueueNotifier(producer Producer, repo Repository) *QueueNotifier {
	return &QueueNotifier{
		producer: producer,
		repo:     repo,
	}
}

// Notify publishes the queue event. Delivery failures are logged and swallowed;
// the triggering waitlist mutation has already committed.
func (qn *QueueNotifier) Notify(ctx context.Context, n waitlist.QueueNotification) {
	// Detach from the request context so an aborted request does not drop
	// the event.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	event := NewQueueEvent(n)

	if qn.producer == nil {
		if err := qn.repo.Create(ctx, event.ToNotification()); err != nil {
			log.Printf("Failed to store notification for user %s: %v", n.UserID, err)
		}
		return
	}

	if err := qn.producer.PublishQueueEvent(ctx, event); err != nil {
		log.Printf("Failed to publish queue event for user %s: %v", n.UserID, err)
		// Last resort so the user still sees the update in their feed
		if err := qn.repo.Create(ctx, event.ToNotification()); err != nil {
			log.Printf("Failed to store notification fallback for user %s: %v", n.UserID, err)
		}
	}
}

var _ waitlist.Notifier = (*QueueNotifier)(nil)
