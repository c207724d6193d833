package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// messageAggregationWindow is how far back an unread message
// notification from the same sender is reused instead of creating a new
// row.
const messageAggregationWindow = time.Hour

// CreateNotification records a notification. Message notifications
// repeat the aggregation behavior of the inbox: an unread new_message
// entry for the same related thread within the last hour has its count
// bumped and message replaced instead of inserting a new row.
func (db *DB) CreateNotification(ctx context.Context, userID uuid.UUID, kind, message string, relatedID *uuid.UUID) (uuid.UUID, error) {
	if kind == "new_message" && relatedID != nil {
		var id uuid.UUID
		err := db.pool.QueryRow(ctx,
			`UPDATE notifications
			 SET count = count + 1, message = $1, updated_at = NOW()
			 WHERE id = (
			   SELECT id FROM notifications
			   WHERE user_id = $2 AND type = 'new_message' AND related_id = $3
			     AND NOT read AND updated_at > $4
			   ORDER BY updated_at DESC LIMIT 1
			 )
			 RETURNING id`,
			message, userID, *relatedID, time.Now().Add(-messageAggregationWindow),
		).Scan(&id)
		if err == nil {
			return id, nil
		}
		if err != pgx.ErrNoRows {
			return uuid.Nil, fmt.Errorf("failed to aggregate notification: %w", err)
		}
	}

	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO notifications (user_id, type, message, related_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, kind, message, relatedID,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return id, nil
}

// ListNotifications retrieves a user's newest notifications, at most 50
func (db *DB) ListNotifications(ctx context.Context, userID uuid.UUID) ([]Notification, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, type, message, related_id, count, read, created_at, updated_at
		 FROM notifications WHERE user_id = $1
		 ORDER BY updated_at DESC LIMIT 50`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Message, &n.RelatedID,
			&n.Count, &n.Read, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// CountUnreadNotifications counts a user's unread notifications
func (db *DB) CountUnreadNotifications(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND NOT read`,
		userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead marks one of the user's notifications as read
func (db *DB) MarkNotificationRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE, updated_at = NOW()
		 WHERE id = $1 AND user_id = $2`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("notification not found: %s", notificationID)
	}
	return nil
}

// MarkAllNotificationsRead marks all of a user's notifications as read
func (db *DB) MarkAllNotificationsRead(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE, updated_at = NOW()
		 WHERE user_id = $1 AND NOT read`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notifications read: %w", err)
	}
	return nil
}

// ClearNotifications deletes all of a user's notifications
func (db *DB) ClearNotifications(ctx context.Context, userID uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`DELETE FROM notifications WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear notifications: %w", err)
	}
	return nil
}
