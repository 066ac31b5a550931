package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/dbpg"

	"github.com/aliskhannn/pickup-notifier/internal/model"
)

var ErrOrderNotFound = errors.New("order not found")

const getOrderQuery = `
		SELECT id, order_no, pickup_at, status, created_by, customer_name, deleted_at
		FROM orders
		WHERE id = $1;
`

// Repository reads orders owned by the order service.
type Repository struct {
	db *dbpg.DB
}

// NewRepository creates a new order repository.
func NewRepository(db *dbpg.DB) *Repository {
	return &Repository{db: db}
}

// GetOrder returns the order with the given id.
//
// Soft-deleted orders are returned with DeletedAt set.
func (r *Repository) GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error) {
	var (
		o         model.Order
		status    string
		deletedAt sql.NullTime
	)

	err := r.db.Master.QueryRowContext(ctx, getOrderQuery, id).Scan(
		&o.ID, &o.OrderNo, &o.PickupAt, &status, &o.CreatedBy, &o.CustomerName, &deletedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Order{}, ErrOrderNotFound
		}

		return model.Order{}, fmt.Errorf("get order: %w", err)
	}

	o.Status = model.OrderStatus(status)
	if deletedAt.Valid {
		o.DeletedAt = &deletedAt.Time
	}

	return o, nil
}
