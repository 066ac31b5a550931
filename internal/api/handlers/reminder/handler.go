package reminder

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/api/respond"
	"github.com/aliskhannn/pickup-notifier/internal/model"
	"github.com/aliskhannn/pickup-notifier/internal/repository/order"
)

// reminderService is what the order service calls on order transitions.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/reminder/mock.go -package=mocks
type reminderService interface {
	Schedule(ctx context.Context, orderID uuid.UUID) (int, error)
	Cancel(ctx context.Context, orderID uuid.UUID) (int64, error)
	Records(ctx context.Context, orderID uuid.UUID) ([]model.NotificationRecord, error)
}

// Handler exposes scheduling and cancellation of an order's reminders.
type Handler struct {
	service reminderService
}

func NewHandler(s reminderService) *Handler {
	return &Handler{service: s}
}

// Schedule handles POST /api/orders/:id/reminders.
func (h *Handler) Schedule(c *ginext.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	n, err := h.service.Schedule(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			zlog.Logger.Warn().Str("order_id", id.String()).Msg("order not found")
			respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("order not found"))
			return
		}

		zlog.Logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to schedule reminders")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, map[string]int{"scheduled": n})
}

// Cancel handles DELETE /api/orders/:id/reminders.
func (h *Handler) Cancel(c *ginext.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	n, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to cancel reminders")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]int64{"skipped": n})
}

// List handles GET /api/orders/:id/reminders.
func (h *Handler) List(c *ginext.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	records, err := h.service.Records(c.Request.Context(), id)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to list reminders")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	if records == nil {
		records = []model.NotificationRecord{}
	}

	respond.OK(c.Writer, records)
}

func parseOrderID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")

	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		zlog.Logger.Warn().Str("id", idStr).Msg("invalid order id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid order id"))
		return uuid.Nil, false
	}

	return id, true
}
