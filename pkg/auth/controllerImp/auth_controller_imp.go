package controllerImp

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lcorrigan704/client-management-system/pkg/auth/controller"
	"github.com/lcorrigan704/client-management-system/pkg/auth/service"
	"github.com/lcorrigan704/client-management-system/pkg/web"
)

const sessionCookie = "session_token"

type AuthCtrl struct {
	svc          service.AuthService
	cookieSecure bool
}

func New(svc service.AuthService, cookieSecure bool) controller.AuthController {
	return &AuthCtrl{svc: svc, cookieSecure: cookieSecure}
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthCtrl) Login(c echo.Context) error {
	var body loginBody
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "bad json"})
	}
	token, u, err := h.svc.Login(body.Email, body.Password)
	if err != nil {
		// Wrong email and wrong password look the same to the caller.
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	return c.JSON(http.StatusOK, u)
}

func (h *AuthCtrl) Logout(c echo.Context) error {
	if ck, err := c.Cookie(sessionCookie); err == nil {
		if err := h.svc.Logout(ck.Value); err != nil {
			return web.Error(c, err)
		}
	}
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		Expires:  time.Unix(0, 0),
	})
	return c.NoContent(http.StatusNoContent)
}

func (h *AuthCtrl) WhoAmI(c echo.Context) error {
	u := web.User(c)
	if u == nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "not authenticated"})
	}
	return c.JSON(http.StatusOK, u)
}

func (h *AuthCtrl) SearchUsers(c echo.Context) error {
	out, err := h.svc.SearchUsers(c.QueryParam("q"))
	if err != nil {
		return web.Error(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
