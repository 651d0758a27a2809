package notifications

import (
	"encoding/json"
	"time"

	"waitly/internal/waitlist"

	"github.com/google/uuid"
)

// Notification is the persisted, user-facing record of a queue event. Rows are
// written by the Kafka consumer so the waitlist engine never blocks on them.
type Notification struct {
	ID        uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID    uuid.UUID       `json:"user_id" gorm:"type:uuid;not null;index"`
	VenueID   uuid.UUID       `json:"venue_id" gorm:"type:uuid;not null"`
	Status    waitlist.Status `json:"status" gorm:"type:varchar(20);not null"`
	Message   string          `json:"message" gorm:"type:text;not null"`
	Read      bool            `json:"read" gorm:"not null;default:false"`
	CreatedAt time.Time       `json:"created_at" gorm:"autoCreateTime"`
}

func (Notification) TableName() string {
	return "notifications"
}

// QueueEvent is the wire format published to Kafka for every queue change.
type QueueEvent struct {
	EventID   uuid.UUID       `json:"event_id"`
	UserID    uuid.UUID       `json:"user_id"`
	VenueID   uuid.UUID       `json:"venue_id"`
	EntryID   uuid.UUID       `json:"entry_id"`
	Status    waitlist.Status `json:"status"`
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewQueueEvent wraps an engine notification into a publishable event.
func NewQueueEvent(n waitlist.QueueNotification) *QueueEvent {
	return &QueueEvent{
		EventID:   uuid.New(),
		UserID:    n.UserID,
		VenueID:   n.VenueID,
		EntryID:   n.EntryID,
		Status:    n.Status,
		Message:   n.Message,
		CreatedAt: time.Now(),
	}
}

// ToJSON serializes the event for the Kafka message value.
func (e *QueueEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// QueueEventFromJSON parses a Kafka message value back into an event.
func QueueEventFromJSON(data []byte) (*QueueEvent, error) {
	var event QueueEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// ToNotification converts the event into its persisted form.
func (e *QueueEvent) ToNotification() *Notification {
	return &Notification{
		UserID:  e.UserID,
		VenueID: e.VenueID,
		Status:  e.Status,
		Message: e.Message,
	}
}
