package inbox

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"

	"github.com/aliskhannn/pickup-notifier/internal/api/dto"
	"github.com/aliskhannn/pickup-notifier/internal/api/respond"
	"github.com/aliskhannn/pickup-notifier/internal/middlewares"
	"github.com/aliskhannn/pickup-notifier/internal/model"
	inboxrepo "github.com/aliskhannn/pickup-notifier/internal/repository/inbox"
	inboxsvc "github.com/aliskhannn/pickup-notifier/internal/service/inbox"
)

// inboxService defines what the inbox endpoints need.
//
//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/inbox/mock.go -package=mocks
type inboxService interface {
	List(ctx context.Context, userID uuid.UUID, q inboxsvc.Query) (inboxsvc.Page, error)
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, userID, id uuid.UUID) error
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
	SendTest(ctx context.Context, userID uuid.UUID) (model.UserNotification, int, error)
}

// Handler serves the in-app inbox of the current user.
type Handler struct {
	service   inboxService
	validator *validator.Validate
}

func NewHandler(s inboxService, v *validator.Validate) *Handler {
	return &Handler{service: s, validator: v}
}

// List handles GET /api/notifications.
func (h *Handler) List(c *ginext.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var q dto.ListNotificationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to parse query")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid query"))
		return
	}

	if err := h.validator.Struct(q); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate query")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	page, err := h.service.List(c.Request.Context(), userID, inboxsvc.Query{
		UnreadOnly: q.UnreadOnly,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, page)
}

// UnreadCount handles GET /api/notifications/unread-count.
func (h *Handler) UnreadCount(c *ginext.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	n, err := h.service.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to count unread notifications")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]int{"count": n})
}

// MarkRead handles PATCH /api/notifications/:id/read.
func (h *Handler) MarkRead(c *ginext.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.MarkRead(c.Request.Context(), userID, id); err != nil {
		failOwned(c, err, id, "failed to mark notification read")
		return
	}

	respond.OK(c.Writer, "notification marked as read")
}

// MarkAllRead handles POST /api/notifications/read-all.
func (h *Handler) MarkAllRead(c *ginext.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	n, err := h.service.MarkAllRead(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to mark all notifications read")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.OK(c.Writer, map[string]int64{"updated": n})
}

// Delete handles DELETE /api/notifications/:id.
func (h *Handler) Delete(c *ginext.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), userID, id); err != nil {
		failOwned(c, err, id, "failed to delete notification")
		return
	}

	respond.OK(c.Writer, "notification deleted")
}

// SendTest handles POST /api/notifications/test.
func (h *Handler) SendTest(c *ginext.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	n, delivered, err := h.service.SendTest(c.Request.Context(), userID)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to send test notification")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, map[string]interface{}{
		"notification": n,
		"push_sent":    delivered,
	})
}

func currentUser(c *ginext.Context) (uuid.UUID, bool) {
	id, ok := middlewares.UserID(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
		return uuid.Nil, false
	}

	return id, true
}

func parseID(c *ginext.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")

	id, err := uuid.Parse(idStr)
	if err != nil || id == uuid.Nil {
		zlog.Logger.Warn().Str("id", idStr).Msg("invalid notification id")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid id"))
		return uuid.Nil, false
	}

	return id, true
}

func failOwned(c *ginext.Context, err error, id uuid.UUID, msg string) {
	switch {
	case errors.Is(err, inboxrepo.ErrNotificationNotFound):
		respond.Fail(c.Writer, http.StatusNotFound, fmt.Errorf("notification not found"))
	case errors.Is(err, inboxsvc.ErrForbidden):
		respond.Fail(c.Writer, http.StatusForbidden, fmt.Errorf("forbidden"))
	default:
		zlog.Logger.Error().Err(err).Str("id", id.String()).Msg(msg)
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
	}
}
