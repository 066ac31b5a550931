package device

import (
	"context"
	"encoding/json"
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
	"github.com/aliskhannn/pickup-notifier/pkg/push"
)

//go:generate mockgen -source=handler.go -destination=../../../mocks/api/handlers/device/mock.go -package=mocks
type deviceRegistry interface {
	RegisterToken(ctx context.Context, userID uuid.UUID, platform, token string) (model.DeviceToken, error)
}

type Handler struct {
	registry  deviceRegistry
	validator *validator.Validate
}

func NewHandler(r deviceRegistry, v *validator.Validate) *Handler {
	return &Handler{registry: r, validator: v}
}

// RegisterToken handles POST /api/devices/token.
func (h *Handler) RegisterToken(c *ginext.Context) {
	userID, ok := middlewares.UserID(c)
	if !ok {
		respond.Fail(c.Writer, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
		return
	}

	var req dto.RegisterTokenRequest

	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		zlog.Logger.Error().Err(err).Msg("failed to decode request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	if err := h.validator.Struct(req); err != nil {
		zlog.Logger.Warn().Err(err).Msg("failed to validate request body")
		respond.Fail(c.Writer, http.StatusBadRequest, fmt.Errorf("validation error: %s", err.Error()))
		return
	}

	if !push.ValidToken(req.Token) {
		zlog.Logger.Warn().Str("user_id", userID.String()).Msg("rejected malformed push token")
		respond.Fail(c.Writer, http.StatusBadRequest, push.ErrInvalidToken)
		return
	}

	d, err := h.registry.RegisterToken(c.Request.Context(), userID, req.Platform, req.Token)
	if err != nil {
		zlog.Logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to register device token")
		respond.Fail(c.Writer, http.StatusInternalServerError, fmt.Errorf("internal server error"))
		return
	}

	respond.Created(c.Writer, d)
}
