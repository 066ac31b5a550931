// Package middlewares holds the HTTP middlewares shared by all API routes.
package middlewares

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"

	"github.com/aliskhannn/pickup-notifier/internal/api/respond"
)

// UserIDHeader carries the authenticated user, set by the gateway in front of the service.
const UserIDHeader = "X-User-ID"

const userIDKey = "user_id"

// CORS allows browser clients from any origin.
func CORS() func(c *ginext.Context) {
	return func(c *ginext.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+UserIDHeader)

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// RequireUser rejects requests without a valid user id header.
func RequireUser() func(c *ginext.Context) {
	return func(c *ginext.Context) {
		id, err := uuid.Parse(c.GetHeader(UserIDHeader))
		if err != nil || id == uuid.Nil {
			respond.Fail(c.Writer, http.StatusUnauthorized, errors.New("missing or invalid "+UserIDHeader))
			c.Abort()
			return
		}

		c.Set(userIDKey, id)
		c.Next()
	}
}

// UserID returns the user stored by RequireUser.
func UserID(c *ginext.Context) (uuid.UUID, bool) {
	v, ok := c.Get(userIDKey)
	if !ok {
		return uuid.Nil, false
	}

	id, ok := v.(uuid.UUID)
	return id, ok
}

// SetUserID stores the user on the request context.
func SetUserID(c *ginext.Context, id uuid.UUID) {
	c.Set(userIDKey, id)
}
