package types

import (
	"time"

	"github.com/google/uuid"
)

// NotificationType classifies a notification for client rendering and
// aggregation rules.
type NotificationType string

// Notification types.
const (
	NotificationNewApplication       NotificationType = "new_application"
	NotificationApplicationSubmitted NotificationType = "application_submitted"
	NotificationStatusChange         NotificationType = "status_change"
	NotificationNewMessage           NotificationType = "new_message"
)

// Notification is a user-facing event record. Message notifications from
// the same sender within an hour collapse into one entry with a count.
type Notification struct {
	ID        uuid.UUID        `json:"id"`
	UserID    uuid.UUID        `json:"user_id"`
	Type      NotificationType `json:"type"`
	Message   string           `json:"message"`
	RelatedID *uuid.UUID       `json:"related_id,omitempty"`
	Count     int              `json:"count"`
	Read      bool             `json:"read"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
