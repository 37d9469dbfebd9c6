package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
)

// ContextUser is the echo context key the session middleware stores the
// authenticated user under.
const ContextUser = "current_user"

// Error maps the core error taxonomy onto HTTP statuses.
func Error(c echo.Context, err error) error {
	msg := map[string]string{"error": err.Error()}
	switch {
	case errors.Is(err, versioning.ErrInvalidArgument), errors.Is(err, versioning.ErrInvalidState):
		return c.JSON(http.StatusBadRequest, msg)
	case errors.Is(err, versioning.ErrNotFound):
		return c.JSON(http.StatusNotFound, msg)
	case errors.Is(err, versioning.ErrConflict):
		return c.JSON(http.StatusConflict, msg)
	default:
		return c.JSON(http.StatusInternalServerError, msg)
	}
}

// User returns the authenticated user, or nil outside a guarded route.
func User(c echo.Context) *entities.User {
	u, _ := c.Get(ContextUser).(*entities.User)
	return u
}

// ActorID returns the authenticated user's id for created_by/updated_by
// attribution.
func ActorID(c echo.Context) *uint {
	if u := User(c); u != nil {
		id := u.ID
		return &id
	}
	return nil
}
