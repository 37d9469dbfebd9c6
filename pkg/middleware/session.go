package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lcorrigan704/client-management-system/pkg/auth/service"
	"github.com/lcorrigan704/client-management-system/pkg/web"
)

// Session resolves the session cookie to a user and stores it on the
// context. Requests without a valid session still pass through; guarded
// routes add RequireUser on top.
func Session(auth service.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ck, err := c.Cookie("session_token"); err == nil && ck.Value != "" {
				if u, err := auth.Authenticate(ck.Value); err == nil {
					c.Set(web.ContextUser, u)
				}
			}
			return next(c)
		}
	}
}

// RequireUser rejects requests that did not authenticate.
func RequireUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if web.User(c) == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
			}
			return next(c)
		}
	}
}
