package db

import (
	"time"

	"github.com/google/uuid"
)

// Conversation represents a two-party thread row. Archive and delete
// flags are tracked per participant.
type Conversation struct {
	ID           uuid.UUID  `json:"id"`
	ParticipantA uuid.UUID  `json:"participant_a"`
	ParticipantB uuid.UUID  `json:"participant_b"`
	JobID        *uuid.UUID `json:"job_id,omitempty"`
	ArchivedByA  bool       `json:"-"`
	ArchivedByB  bool       `json:"-"`
	DeletedByA   bool       `json:"-"`
	DeletedByB   bool       `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// OtherParticipant returns the participant that is not the given user.
func (c *Conversation) OtherParticipant(userID uuid.UUID) uuid.UUID {
	if c.ParticipantA == userID {
		return c.ParticipantB
	}
	return c.ParticipantA
}

// HasParticipant reports whether the user is part of the conversation.
func (c *Conversation) HasParticipant(userID uuid.UUID) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// ArchivedBy reports whether the given participant archived the thread.
func (c *Conversation) ArchivedBy(userID uuid.UUID) bool {
	if c.ParticipantA == userID {
		return c.ArchivedByA
	}
	return c.ArchivedByB
}

// DeletedBy reports whether the given participant deleted the thread.
func (c *Conversation) DeletedBy(userID uuid.UUID) bool {
	if c.ParticipantA == userID {
		return c.DeletedByA
	}
	return c.DeletedByB
}

// Message represents a message row within a conversation.
type Message struct {
	ID             uuid.UUID `json:"id"`
	ConversationID uuid.UUID `json:"conversation_id"`
	SenderID       uuid.UUID `json:"sender_id"`
	Content        string    `json:"content"`
	IsSystem       bool      `json:"is_system"`
	Read           bool      `json:"read"`
	CreatedAt      time.Time `json:"created_at"`
}
