package handlers

import (
	"github.com/devhasib/buzznet/backend/internal/middleware"
	"github.com/labstack/echo/v4"
)

// currentUID returns the authenticated user's UID stored by the auth
// middleware, or "" when the request is unauthenticated.
func currentUID(c echo.Context) string {
	uid, _ := c.Get(middleware.ContextUIDKey).(string)
	return uid
}
