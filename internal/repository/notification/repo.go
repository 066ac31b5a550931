package notification

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/pickup-notifier/internal/model"
)

var (
	ErrRecordNotFound = errors.New("notification record not found")
	ErrNotClaimed     = errors.New("notification record is not claimed")
)

const recordColumns = `id, order_id, target_user_id, kind, scheduled_for, status, attempt_count,
		       error, sent_at, claimed_at, claimed_by, created_at, updated_at`

// SupersededReason marks scheduled rows dropped because a new plan no longer has
// their kind. Such rows come back when a later plan has the kind again.
const SupersededReason = "superseded"

const upsertScheduledQuery = `
		INSERT INTO notification_records (order_id, target_user_id, kind, scheduled_for, status)
		VALUES ($1, $2, $3, $4, 'scheduled')
		ON CONFLICT (order_id, kind) DO UPDATE
		SET scheduled_for = EXCLUDED.scheduled_for,
		    target_user_id = EXCLUDED.target_user_id,
		    status = 'scheduled',
		    error = NULL,
		    updated_at = NOW()
		WHERE notification_records.status = 'scheduled'
		   OR (notification_records.status = 'skipped' AND notification_records.error = $5);
`

const supersedeQuery = `
		UPDATE notification_records
		SET status = 'skipped', error = $3, updated_at = NOW()
		WHERE order_id = $1 AND status = 'scheduled' AND NOT (kind = ANY($2::text[]));
`

const selectDueQuery = `
		SELECT id
		FROM notification_records
		WHERE (status = 'scheduled' AND scheduled_for <= $1)
		   OR (status = 'processing' AND claimed_at <= $2)
		ORDER BY scheduled_for
		LIMIT $3
		FOR UPDATE SKIP LOCKED;
`

const claimQuery = `
		UPDATE notification_records
		SET status = 'processing',
		    attempt_count = attempt_count + 1,
		    claimed_at = $1,
		    claimed_by = $2,
		    updated_at = $1
		WHERE id = ANY($3::uuid[])
		RETURNING ` + recordColumns + `;
`

const markSentQuery = `
		UPDATE notification_records
		SET status = 'sent', sent_at = $3, error = NULL, claimed_at = NULL, updated_at = $3
		WHERE id = $1 AND status = 'processing' AND claimed_by = $2;
`

const markSkippedQuery = `
		UPDATE notification_records
		SET status = 'skipped', error = $3, claimed_at = NULL, updated_at = NOW()
		WHERE id = $1 AND status = 'processing' AND claimed_by = $2;
`

const releaseQuery = `
		UPDATE notification_records
		SET status = CASE WHEN attempt_count >= $4 THEN 'failed' ELSE 'scheduled' END,
		    error = $3,
		    claimed_at = NULL,
		    claimed_by = NULL,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'processing' AND claimed_by = $2
		RETURNING status;
`

const cancelQuery = `
		UPDATE notification_records
		SET status = 'skipped', error = $2, updated_at = NOW()
		WHERE order_id = $1 AND status = 'scheduled';
`

const listByOrderQuery = `
		SELECT ` + recordColumns + `
		FROM notification_records
		WHERE order_id = $1
		ORDER BY scheduled_for;
`

const getByIDQuery = `
		SELECT ` + recordColumns + `
		FROM notification_records
		WHERE id = $1;
`

// Repository provides methods to interact with the notification_records table.
//
// Every write that depends on a previous read runs against the master node.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new notification record repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// SaveSchedule stores the planned reminders of an order.
//
// New kinds are inserted. Scheduled rows of the same kind, and rows an earlier
// plan superseded, take the new time and are scheduled again. Rows in any other
// state are left untouched. Scheduled rows whose kind is not in records are
// skipped as superseded. Both steps run in one transaction.
func (r *Repository) SaveSchedule(ctx context.Context, orderID uuid.UUID, records []model.NotificationRecord) (err error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schedule tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	kinds := make([]string, 0, len(records))
	for _, rec := range records {
		if _, err = tx.ExecContext(
			ctx, upsertScheduledQuery, orderID, rec.TargetUserID, string(rec.Kind), rec.ScheduledFor, SupersededReason,
		); err != nil {
			return fmt.Errorf("upsert %s reminder: %w", rec.Kind, err)
		}

		kinds = append(kinds, string(rec.Kind))
	}

	if _, err = tx.ExecContext(ctx, supersedeQuery, orderID, pq.Array(kinds), SupersededReason); err != nil {
		return fmt.Errorf("supersede stale reminders: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit schedule tx: %w", err)
	}

	return nil
}

// ClaimDueBatch atomically claims up to limit due records for workerID.
//
// Due means scheduled with scheduled_for <= now, or processing with a claim older
// than leaseCutoff. Rows locked by another transaction are skipped, so concurrent
// dispatchers never claim the same record. Claimed rows move to processing with
// attempt_count incremented and are returned oldest-due first.
func (r *Repository) ClaimDueBatch(
	ctx context.Context, now time.Time, leaseCutoff time.Time, limit int, workerID string,
) (records []model.NotificationRecord, err error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin claim tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	ids, err := selectIDs(ctx, tx, now, leaseCutoff, limit)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		if err = tx.Commit(); err != nil {
			return nil, fmt.Errorf("commit claim tx: %w", err)
		}

		return nil, nil
	}

	rows, err := tx.QueryContext(ctx, claimQuery, now, workerID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("claim due records: %w", err)
	}

	records, err = scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("scan claimed records: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit claim tx: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ScheduledFor.Before(records[j].ScheduledFor)
	})

	return records, nil
}

func selectIDs(ctx context.Context, tx *sql.Tx, now, leaseCutoff time.Time, limit int) ([]string, error) {
	rows, err := tx.QueryContext(ctx, selectDueQuery, now, leaseCutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("select due records: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan due record id: %w", err)
		}

		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate due records: %w", err)
	}

	return ids, nil
}

// MarkSent moves a record claimed by workerID to sent.
//
// ErrNotClaimed is returned when the claim has been taken over or finished.
func (r *Repository) MarkSent(ctx context.Context, id uuid.UUID, workerID string, sentAt time.Time) error {
	res, err := r.db.Master.ExecContext(ctx, markSentQuery, id, workerID, sentAt)
	if err != nil {
		return fmt.Errorf("mark record sent: %w", err)
	}

	return expectOneRow(res)
}

// MarkSkipped moves a record claimed by workerID to skipped with the given reason.
func (r *Repository) MarkSkipped(ctx context.Context, id uuid.UUID, workerID, reason string) error {
	res, err := r.db.Master.ExecContext(ctx, markSkippedQuery, id, workerID, reason)
	if err != nil {
		return fmt.Errorf("mark record skipped: %w", err)
	}

	return expectOneRow(res)
}

// Release hands a record claimed by workerID back after a failed attempt.
//
// The record returns to scheduled while attempt_count < maxAttempts and becomes
// failed otherwise. The resulting status is returned. A claim that another
// worker has taken over is left alone and ErrNotClaimed is returned.
func (r *Repository) Release(
	ctx context.Context, id uuid.UUID, workerID, reason string, maxAttempts int,
) (model.Status, error) {
	var status string
	err := r.db.Master.QueryRowContext(ctx, releaseQuery, id, workerID, reason, maxAttempts).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrNotClaimed
		}

		return "", fmt.Errorf("release record: %w", err)
	}

	return model.Status(status), nil
}

// CancelScheduled skips every scheduled record of an order and returns how many changed.
func (r *Repository) CancelScheduled(ctx context.Context, orderID uuid.UUID, reason string) (int64, error) {
	res, err := r.db.Master.ExecContext(ctx, cancelQuery, orderID, reason)
	if err != nil {
		return 0, fmt.Errorf("cancel scheduled records: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cancel scheduled records: %w", err)
	}

	return n, nil
}

// ListByOrder returns all records of an order ordered by due time.
func (r *Repository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.NotificationRecord, error) {
	rows, err := r.db.QueryContext(ctx, listByOrderQuery, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order records: %w", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return nil, fmt.Errorf("scan order records: %w", err)
	}

	return records, nil
}

// GetByID returns a single record.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (model.NotificationRecord, error) {
	rows, err := r.db.Master.QueryContext(ctx, getByIDQuery, id)
	if err != nil {
		return model.NotificationRecord{}, fmt.Errorf("get record: %w", err)
	}

	records, err := scanRecords(rows)
	if err != nil {
		return model.NotificationRecord{}, fmt.Errorf("scan record: %w", err)
	}

	if len(records) == 0 {
		return model.NotificationRecord{}, ErrRecordNotFound
	}

	return records[0], nil
}

func expectOneRow(res sql.Result) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}

	if rows == 0 {
		return ErrNotClaimed
	}

	return nil
}

// scanRecords reads all rows and closes them.
func scanRecords(rows *sql.Rows) ([]model.NotificationRecord, error) {
	defer rows.Close()

	var records []model.NotificationRecord
	for rows.Next() {
		var (
			rec       model.NotificationRecord
			kind      string
			status    string
			errText   sql.NullString
			sentAt    sql.NullTime
			claimedAt sql.NullTime
			claimedBy sql.NullString
		)

		if err := rows.Scan(
			&rec.ID, &rec.OrderID, &rec.TargetUserID, &kind, &rec.ScheduledFor, &status, &rec.AttemptCount,
			&errText, &sentAt, &claimedAt, &claimedBy, &rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, err
		}

		rec.Kind = model.Kind(kind)
		rec.Status = model.Status(status)
		if errText.Valid {
			rec.Error = &errText.String
		}
		if sentAt.Valid {
			rec.SentAt = &sentAt.Time
		}
		if claimedAt.Valid {
			rec.ClaimedAt = &claimedAt.Time
		}
		if claimedBy.Valid {
			rec.ClaimedBy = &claimedBy.String
		}

		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
