package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/retry"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/rabbitmq/queue"
	orderrepo "github.com/aliskhannn/pickup-notifier/internal/repository/order"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/rabbitmq/handlers/order/mock.go -package=mocks
type reminderService interface {
	Schedule(ctx context.Context, orderID uuid.UUID) (int, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// Handler turns order lifecycle events into scheduling and cancellation calls.
type Handler struct {
	service reminderService
}

func NewHandler(svc reminderService) *Handler {
	return &Handler{service: svc}
}

// HandleMessage applies one event. Created and updated orders are (re)scheduled,
// cancelled, completed and deleted ones have their pending reminders skipped.
func (h *Handler) HandleMessage(ctx context.Context, evt queue.OrderEvent, strategy retry.Strategy) {
	log := zlog.Logger.With().
		Str("order_id", evt.OrderID.String()).
		Str("event", string(evt.Event)).
		Logger()

	switch evt.Event {
	case queue.EventCreated, queue.EventUpdated:
		var missing bool

		err := retry.Do(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			_, err := h.service.Schedule(ctx, evt.OrderID)
			if errors.Is(err, orderrepo.ErrOrderNotFound) {
				missing = true
				return nil
			}
			return err
		}, strategy)

		switch {
		case missing:
			log.Warn().Msg("order not found, event dropped")
		case err != nil:
			log.Error().Err(err).Msg("failed to schedule reminders")
		}

	case queue.EventCancelled, queue.EventCompleted, queue.EventDeleted:
		if _, err := h.service.Cancel(ctx, evt.OrderID); err != nil {
			// The dispatcher re-checks the order before delivering.
			log.Error().Err(err).Msg("failed to cancel reminders")
		}

	default:
		log.Warn().Msg("unknown order event, ignored")
	}
}
