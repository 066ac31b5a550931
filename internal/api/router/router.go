package router

import (
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/pickup-notifier/internal/api/handlers/device"
	"github.com/aliskhannn/pickup-notifier/internal/api/handlers/inbox"
	"github.com/aliskhannn/pickup-notifier/internal/api/handlers/reminder"
	"github.com/aliskhannn/pickup-notifier/internal/middlewares"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Reminders *reminder.Handler
	Inbox     *inbox.Handler
	Devices   *device.Handler
}

func New(h Handlers) *ginext.Engine {
	e := ginext.New()
	e.Use(middlewares.CORS())
	e.Use(ginext.Logger())
	e.Use(ginext.Recovery())

	orders := e.Group("/api/orders/:id/reminders")
	{
		orders.POST("", h.Reminders.Schedule)
		orders.DELETE("", h.Reminders.Cancel)
		orders.GET("", h.Reminders.List)
	}

	notifications := e.Group("/api/notifications", middlewares.RequireUser())
	{
		notifications.GET("", h.Inbox.List)
		notifications.GET("/unread-count", h.Inbox.UnreadCount)
		notifications.POST("/read-all", h.Inbox.MarkAllRead)
		notifications.POST("/test", h.Inbox.SendTest)
		notifications.PATCH("/:id/read", h.Inbox.MarkRead)
		notifications.DELETE("/:id", h.Inbox.Delete)
	}

	devices := e.Group("/api/devices", middlewares.RequireUser())
	{
		devices.POST("/token", h.Devices.RegisterToken)
	}

	return e
}
