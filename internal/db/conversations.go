package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const conversationColumns = `id, participant_a, participant_b, job_id,
	archived_by_a, archived_by_b, deleted_by_a, deleted_by_b, created_at, updated_at`

func scanConversation(row pgx.Row) (*Conversation, error) {
	var conv Conversation
	err := row.Scan(&conv.ID, &conv.ParticipantA, &conv.ParticipantB, &conv.JobID,
		&conv.ArchivedByA, &conv.ArchivedByB, &conv.DeletedByA, &conv.DeletedByB,
		&conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &conv, nil
}

// CreateConversation creates a thread between two users and returns its
// ID
func (db *DB) CreateConversation(ctx context.Context, participantA, participantB uuid.UUID, jobID *uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO conversations (participant_a, participant_b, job_id)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		participantA, participantB, jobID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return id, nil
}

// GetConversation retrieves a thread by ID. Returns nil without error
// when no such thread exists.
func (db *DB) GetConversation(ctx context.Context, conversationID uuid.UUID) (*Conversation, error) {
	conv, err := scanConversation(db.pool.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE id = $1`, conversationID))
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return conv, nil
}

// FindConversationBetween retrieves the existing thread between two users
// regardless of participant order. Returns nil without error when none
// exists.
func (db *DB) FindConversationBetween(ctx context.Context, userA, userB uuid.UUID) (*Conversation, error) {
	conv, err := scanConversation(db.pool.QueryRow(ctx,
		`SELECT `+conversationColumns+` FROM conversations
		 WHERE (participant_a = $1 AND participant_b = $2)
		    OR (participant_a = $2 AND participant_b = $1)`,
		userA, userB))
	if err != nil {
		return nil, fmt.Errorf("failed to find conversation: %w", err)
	}
	return conv, nil
}

// ListConversations retrieves a user's threads, most recently active
// first. Threads the user deleted are excluded; archived threads are
// included only when requested.
func (db *DB) ListConversations(ctx context.Context, userID uuid.UUID, includeArchived bool) ([]Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations
		 WHERE ((participant_a = $1 AND NOT deleted_by_a)
		     OR (participant_b = $1 AND NOT deleted_by_b))`
	if !includeArchived {
		query += ` AND NOT ((participant_a = $1 AND archived_by_a)
		                 OR (participant_b = $1 AND archived_by_b))`
	}
	query += ` ORDER BY updated_at DESC`

	rows, err := db.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	defer rows.Close()

	var convs []Conversation
	for rows.Next() {
		var conv Conversation
		if err := rows.Scan(&conv.ID, &conv.ParticipantA, &conv.ParticipantB, &conv.JobID,
			&conv.ArchivedByA, &conv.ArchivedByB, &conv.DeletedByA, &conv.DeletedByB,
			&conv.CreatedAt, &conv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		convs = append(convs, conv)
	}
	return convs, nil
}

// SetConversationArchived sets the archive flag for one participant
func (db *DB) SetConversationArchived(ctx context.Context, conversationID, userID uuid.UUID, archived bool) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE conversations SET
		   archived_by_a = CASE WHEN participant_a = $2 THEN $3 ELSE archived_by_a END,
		   archived_by_b = CASE WHEN participant_b = $2 THEN $3 ELSE archived_by_b END,
		   updated_at = NOW()
		 WHERE id = $1 AND (participant_a = $2 OR participant_b = $2)`,
		conversationID, userID, archived,
	)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("conversation not found: %s", conversationID)
	}
	return nil
}

// SetConversationDeleted marks the thread deleted for one participant
func (db *DB) SetConversationDeleted(ctx context.Context, conversationID, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE conversations SET
		   deleted_by_a = CASE WHEN participant_a = $2 THEN TRUE ELSE deleted_by_a END,
		   deleted_by_b = CASE WHEN participant_b = $2 THEN TRUE ELSE deleted_by_b END,
		   updated_at = NOW()
		 WHERE id = $1 AND (participant_a = $2 OR participant_b = $2)`,
		conversationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update conversation: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("conversation not found: %s", conversationID)
	}
	return nil
}

// CreateMessage appends a message to a thread and bumps the thread's
// activity timestamp
func (db *DB) CreateMessage(ctx context.Context, conversationID, senderID uuid.UUID, content string, isSystem bool) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO messages (conversation_id, sender_id, content, is_system)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		conversationID, senderID, content, isSystem,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create message: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`UPDATE conversations SET updated_at = NOW() WHERE id = $1`, conversationID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to touch conversation: %w", err)
	}
	return id, nil
}

// ListMessages retrieves a thread's messages in chronological order
func (db *DB) ListMessages(ctx context.Context, conversationID uuid.UUID) ([]Message, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, conversation_id, sender_id, content, is_system, read, created_at
		 FROM messages WHERE conversation_id = $1
		 ORDER BY created_at ASC`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer rows.Close()

	var messages []Message
	for rows.Next() {
		var msg Message
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content,
			&msg.IsSystem, &msg.Read, &msg.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// GetLastMessage retrieves the newest message in a thread. Returns nil
// without error when the thread is empty.
func (db *DB) GetLastMessage(ctx context.Context, conversationID uuid.UUID) (*Message, error) {
	var msg Message
	err := db.pool.QueryRow(ctx,
		`SELECT id, conversation_id, sender_id, content, is_system, read, created_at
		 FROM messages WHERE conversation_id = $1
		 ORDER BY created_at DESC LIMIT 1`,
		conversationID,
	).Scan(&msg.ID, &msg.ConversationID, &msg.SenderID, &msg.Content,
		&msg.IsSystem, &msg.Read, &msg.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last message: %w", err)
	}
	return &msg, nil
}

// CountUnreadMessages counts messages in a thread sent by others and not
// yet read
func (db *DB) CountUnreadMessages(ctx context.Context, conversationID, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM messages
		 WHERE conversation_id = $1 AND sender_id <> $2 AND NOT read`,
		conversationID, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread messages: %w", err)
	}
	return count, nil
}

// MarkMessagesRead marks all messages from others in a thread as read
func (db *DB) MarkMessagesRead(ctx context.Context, conversationID, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE messages SET read = TRUE
		 WHERE conversation_id = $1 AND sender_id <> $2 AND NOT read`,
		conversationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}
