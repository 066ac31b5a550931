package inbox

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/pickup-notifier/internal/model"
)

var notificationColumns = []string{
	"id", "user_id", "order_id", "record_id", "kind", "title", "message", "is_read", "created_at",
}

func setupMockDB(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(&dbpg.DB{Master: db}), mock
}

func TestCreate(t *testing.T) {
	repo, mock := setupMockDB(t)

	id, userID, orderID, recordID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	n := model.UserNotification{
		UserID:   userID,
		OrderID:  &orderID,
		RecordID: &recordID,
		Kind:     "day_before",
		Title:    "Order Pickup Reminder",
		Message:  "Your order #12 is ready for pickup tomorrow at 03:00 PM",
	}

	mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
		WithArgs(userID, orderID, recordID, n.Kind, n.Title, n.Message).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(id.String()))

	got, err := repo.Create(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	// Second insert for the same record hits the unique record_id and returns nothing.
	mock.ExpectQuery(regexp.QuoteMeta(createQuery)).
		WithArgs(userID, orderID, recordID, n.Kind, n.Title, n.Message).
		WillReturnError(sql.ErrNoRows)

	got, err = repo.Create(context.Background(), n)
	require.NoError(t, err)
	assert.Equal(t, uuid.Nil, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID, orderID := uuid.New(), uuid.New()
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(listQuery)).
		WithArgs(userID, true, 50, 0).
		WillReturnRows(sqlmock.NewRows(notificationColumns).
			AddRow(uuid.NewString(), userID.String(), orderID.String(), nil, "same_day", "Pickup Today!", "msg", false, now).
			AddRow(uuid.NewString(), userID.String(), nil, nil, "test", "Test", "msg", false, now))

	list, err := repo.List(context.Background(), userID, true, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].OrderID)
	assert.Equal(t, orderID, *list[0].OrderID)
	assert.Nil(t, list[0].RecordID)
	assert.Nil(t, list[1].OrderID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta(countQuery)).
		WithArgs(userID, true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := repo.Count(context.Background(), userID, true)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkReadAndDelete_NotFound(t *testing.T) {
	repo, mock := setupMockDB(t)

	id := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(markReadQuery)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(deleteQuery)).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.MarkRead(context.Background(), id), ErrNotificationNotFound)
	assert.ErrorIs(t, repo.Delete(context.Background(), id), ErrNotificationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAllRead(t *testing.T) {
	repo, mock := setupMockDB(t)

	userID := uuid.New()

	mock.ExpectExec(regexp.QuoteMeta(markAllReadQuery)).
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.MarkAllRead(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}
