package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcorrigan704/client-management-system/entities"
	"github.com/lcorrigan704/client-management-system/pkg/versioning"
	"github.com/lcorrigan704/client-management-system/pkg/web"
)

type stubAuth struct {
	token string
	user  *entities.User
}

func (s *stubAuth) Login(string, string) (string, *entities.User, error) { return "", nil, nil }
func (s *stubAuth) Logout(string) error                                  { return nil }
func (s *stubAuth) SeedAdmin(string, string) error                       { return nil }
func (s *stubAuth) SearchUsers(string) ([]entities.User, error)          { return nil, nil }

func (s *stubAuth) Authenticate(token string) (*entities.User, error) {
	if token == s.token {
		return s.user, nil
	}
	return nil, versioning.ErrNotFound
}

func call(t *testing.T, auth *stubAuth, cookie string) (*httptest.ResponseRecorder, *entities.User) {
	t.Helper()
	e := echo.New()
	var seen *entities.User
	handler := func(c echo.Context) error {
		seen = web.User(c)
		return c.NoContent(http.StatusOK)
	}
	e.GET("/guarded", handler, Session(auth), RequireUser())

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: "session_token", Value: cookie})
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionResolvesUser(t *testing.T) {
	auth := &stubAuth{token: "good", user: &entities.User{ID: 7, Email: "a@example.com"}}

	rec, seen := call(t, auth, "good")
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, seen)
	assert.Equal(t, uint(7), seen.ID)
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	auth := &stubAuth{token: "good", user: &entities.User{ID: 7}}

	rec, _ := call(t, auth, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = call(t, auth, "stale")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
