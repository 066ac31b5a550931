package inbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/pickup-notifier/internal/model"
)

var ErrNotificationNotFound = errors.New("notification not found")

const createQuery = `
		INSERT INTO user_notifications (user_id, order_id, record_id, kind, title, message)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (record_id) DO NOTHING
		RETURNING id;
`

const getQuery = `
		SELECT id, user_id, order_id, record_id, kind, title, message, is_read, created_at
		FROM user_notifications
		WHERE id = $1;
`

const listQuery = `
		SELECT id, user_id, order_id, record_id, kind, title, message, is_read, created_at
		FROM user_notifications
		WHERE user_id = $1 AND ($2 = FALSE OR is_read = FALSE)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4;
`

const countQuery = `
		SELECT COUNT(*)
		FROM user_notifications
		WHERE user_id = $1 AND ($2 = FALSE OR is_read = FALSE);
`

const markReadQuery = `
		UPDATE user_notifications
		SET is_read = TRUE
		WHERE id = $1;
`

const markAllReadQuery = `
		UPDATE user_notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE;
`

const deleteQuery = `
		DELETE FROM user_notifications
		WHERE id = $1;
`

// Repository provides methods to interact with the user_notifications table.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new inbox repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts an inbox entry and returns its ID.
//
// An entry tied to a record that already has one is not inserted again and
// uuid.Nil is returned.
func (r *Repository) Create(ctx context.Context, n model.UserNotification) (uuid.UUID, error) {
	var id uuid.UUID

	err := r.db.Master.QueryRowContext(
		ctx, createQuery, n.UserID, n.OrderID, n.RecordID, n.Kind, n.Title, n.Message,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}

		return uuid.Nil, fmt.Errorf("create user notification: %w", err)
	}

	return id, nil
}

// Get returns a single inbox entry.
func (r *Repository) Get(ctx context.Context, id uuid.UUID) (model.UserNotification, error) {
	rows, err := r.db.Master.QueryContext(ctx, getQuery, id)
	if err != nil {
		return model.UserNotification{}, fmt.Errorf("get user notification: %w", err)
	}

	list, err := scanNotifications(rows)
	if err != nil {
		return model.UserNotification{}, fmt.Errorf("scan user notification: %w", err)
	}

	if len(list) == 0 {
		return model.UserNotification{}, ErrNotificationNotFound
	}

	return list[0], nil
}

// List returns a page of a user's entries, newest first.
func (r *Repository) List(
	ctx context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int,
) ([]model.UserNotification, error) {
	rows, err := r.db.QueryContext(ctx, listQuery, userID, unreadOnly, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list user notifications: %w", err)
	}

	list, err := scanNotifications(rows)
	if err != nil {
		return nil, fmt.Errorf("scan user notifications: %w", err)
	}

	return list, nil
}

// Count returns the number of a user's entries, optionally unread only.
func (r *Repository) Count(ctx context.Context, userID uuid.UUID, unreadOnly bool) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, countQuery, userID, unreadOnly).Scan(&n); err != nil {
		return 0, fmt.Errorf("count user notifications: %w", err)
	}

	return n, nil
}

// MarkRead marks one entry as read.
func (r *Repository) MarkRead(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Master.ExecContext(ctx, markReadQuery, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

// MarkAllRead marks every unread entry of a user as read and returns how many changed.
func (r *Repository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	res, err := r.db.Master.ExecContext(ctx, markAllReadQuery, userID)
	if err != nil {
		return 0, fmt.Errorf("mark all notifications read: %w", err)
	}

	return res.RowsAffected()
}

// Delete removes one entry.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.Master.ExecContext(ctx, deleteQuery, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}

	if rows, _ := res.RowsAffected(); rows == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func scanNotifications(rows *sql.Rows) ([]model.UserNotification, error) {
	defer rows.Close()

	var list []model.UserNotification
	for rows.Next() {
		var (
			n        model.UserNotification
			orderID  uuid.NullUUID
			recordID uuid.NullUUID
		)

		if err := rows.Scan(
			&n.ID, &n.UserID, &orderID, &recordID, &n.Kind, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt,
		); err != nil {
			return nil, err
		}

		if orderID.Valid {
			n.OrderID = &orderID.UUID
		}
		if recordID.Valid {
			n.RecordID = &recordID.UUID
		}

		list = append(list, n)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}
