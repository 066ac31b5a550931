// Package reminder decides which pickup reminders an order gets and records them.
package reminder

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/model"
	"github.com/aliskhannn/pickup-notifier/internal/schedule"
)

// CancelReason is recorded on reminders skipped because their order left the pickup flow.
const CancelReason = "order no longer awaiting pickup"

//go:generate mockgen -source=service.go -destination=../../mocks/service/reminder/mock.go -package=mocks
type orderReader interface {
	GetOrder(ctx context.Context, id uuid.UUID) (model.Order, error)
}

type recordStore interface {
	SaveSchedule(ctx context.Context, orderID uuid.UUID, records []model.NotificationRecord) error
	CancelScheduled(ctx context.Context, orderID uuid.UUID, reason string) (int64, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]model.NotificationRecord, error)
}

// Service schedules and cancels the reminders of orders.
type Service struct {
	orders   orderReader
	store    recordStore
	planner  schedule.Planner
	strategy retry.Strategy
	now      func() time.Time
}

// NewService creates a reminder service. Store writes are retried with strategy.
func NewService(orders orderReader, store recordStore, planner schedule.Planner, strategy retry.Strategy) *Service {
	return &Service{
		orders:   orders,
		store:    store,
		planner:  planner,
		strategy: strategy,
		now:      time.Now,
	}
}

// Schedule records the future reminders of an order and returns how many are planned.
//
// Calling it again for the same order is safe: each (order, kind) pair keeps a
// single record, scheduled ones follow the current pickup time and kinds that no
// longer apply are skipped. Orders that are no longer awaiting pickup are ignored.
func (s *Service) Schedule(ctx context.Context, orderID uuid.UUID) (int, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return 0, fmt.Errorf("get order %s: %w", orderID, err)
	}

	if order.Terminal() {
		zlog.Logger.Info().
			Str("order_id", orderID.String()).
			Str("status", string(order.Status)).
			Msg("order is terminal, nothing to schedule")
		return 0, nil
	}

	slots := s.planner.Plan(order.PickupAt, s.now())

	records := make([]model.NotificationRecord, 0, len(slots))
	for _, slot := range slots {
		records = append(records, model.NotificationRecord{
			OrderID:      order.ID,
			TargetUserID: order.CreatedBy,
			Kind:         slot.Kind,
			ScheduledFor: slot.At,
			Status:       model.StatusScheduled,
		})
	}

	err = retry.Do(func() error {
		return s.store.SaveSchedule(ctx, order.ID, records)
	}, s.strategy)
	if err != nil {
		return 0, fmt.Errorf("save schedule for order %s: %w", orderID, err)
	}

	zlog.Logger.Info().
		Str("order_id", orderID.String()).
		Int("reminders", len(records)).
		Msg("reminders scheduled")

	return len(records), nil
}

// Cancel skips all scheduled reminders of an order and returns how many were affected.
//
// A second call affects nothing.
func (s *Service) Cancel(ctx context.Context, orderID uuid.UUID) (int64, error) {
	var n int64

	err := retry.Do(func() error {
		var err error
		n, err = s.store.CancelScheduled(ctx, orderID, CancelReason)
		return err
	}, s.strategy)
	if err != nil {
		return 0, fmt.Errorf("cancel reminders of order %s: %w", orderID, err)
	}

	zlog.Logger.Info().
		Str("order_id", orderID.String()).
		Int64("skipped", n).
		Msg("reminders cancelled")

	return n, nil
}

// Records returns every reminder of an order, oldest due first.
func (s *Service) Records(ctx context.Context, orderID uuid.UUID) ([]model.NotificationRecord, error) {
	records, err := s.store.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("list reminders of order %s: %w", orderID, err)
	}

	return records, nil
}
