package types

import (
	"time"

	"github.com/google/uuid"
)

// Conversation is a two-party message thread, usually opened
// automatically when a candidate applies to a job.
type Conversation struct {
	ID           uuid.UUID  `json:"id"`
	ParticipantA uuid.UUID  `json:"-"`
	ParticipantB uuid.UUID  `json:"-"`
	JobID        *uuid.UUID `json:"job_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Enriched for the requesting user's view.
	OtherParticipant *User    `json:"other_participant,omitempty"`
	LastMessage      *Message `json:"last_message,omitempty"`
	UnreadCount      int      `json:"unread_count"`
}

// Message is a single message within a conversation. System messages are
// generated by the portal (application notices) rather than typed by a
// participant.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Content        string    `json:"content"`
	IsSystem       bool      `json:"is_system"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreateConversationRequest opens (or returns the existing) thread with
// another user.
type CreateConversationRequest struct {
	ParticipantID uuid.UUID  `json:"participant_id" validate:"required"`
	JobID         *uuid.UUID `json:"job_id,omitempty"`
}

// SendMessageRequest posts a message to a conversation.
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
