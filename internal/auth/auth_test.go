package auth

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/repository"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

func TestPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NoError(t, ComparePassword(hash, "s3cret"))
	assert.Error(t, ComparePassword(hash, "wrong"))

	_, err = HashPassword("", bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("secret", 5, 60)
	user := &domain.User{ID: "u-1", Username: "nurse", IsStaff: true}

	access, expires, err := tm.GenerateToken(user, domain.TokenTypeAccess)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), expires, 5*time.Second)

	claims, err := tm.ParseToken(access, domain.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "u-1", claims.Subject)
	assert.Equal(t, "nurse", claims.Username)
	assert.True(t, claims.IsStaff)

	_, err = tm.ParseToken(access, domain.TokenTypeRefresh)
	assert.Error(t, err)

	_, err = NewTokenManager("other", 5, 60).ParseToken(access, domain.TokenTypeAccess)
	assert.Error(t, err)

	tm.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = tm.ParseToken(access, domain.TokenTypeAccess)
	assert.Error(t, err)
}

type authFixture struct {
	app    *fiber.App
	tokens *TokenManager
	staff  *domain.User
	plain  *domain.User
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	users := repository.NewMemoryStore().Users()
	staff := &domain.User{Username: "admin", IsStaff: true, IsActive: true}
	plain := &domain.User{Username: "porter", IsActive: true}
	require.NoError(t, users.Create(context.Background(), staff))
	require.NoError(t, users.Create(context.Background(), plain))

	tokens := NewTokenManager("secret", 5, 60)
	mw := NewAuthMiddleware(tokens, users)

	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		de := apperrors.ToDomainError(err)
		return c.Status(de.HTTPStatus).SendString(de.Message)
	}})
	app.Use(mw.Handle)
	app.Get("/whoami", func(c *fiber.Ctx) error {
		if name := CallerName(c); name != nil {
			return c.SendString(*name)
		}
		return c.SendString("anonymous")
	})
	app.Delete("/admin", RequireStaff(), func(c *fiber.Ctx) error { return c.SendStatus(http.StatusNoContent) })
	return authFixture{app: app, tokens: tokens, staff: staff, plain: plain}
}

func (f authFixture) do(t *testing.T, method, path string, user *domain.User) (int, string) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	if user != nil {
		token, _, err := f.tokens.GenerateToken(user, domain.TokenTypeAccess)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

func TestAuthMiddleware_OptionalPrincipal(t *testing.T) {
	f := newAuthFixture(t)

	status, body := f.do(t, http.MethodGet, "/whoami", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "anonymous", body)

	status, body = f.do(t, http.MethodGet, "/whoami", f.plain)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "porter", body)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	resp, err := f.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireStaff(t *testing.T) {
	f := newAuthFixture(t)

	status, _ := f.do(t, http.MethodDelete, "/admin", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = f.do(t, http.MethodDelete, "/admin", f.plain)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = f.do(t, http.MethodDelete, "/admin", f.staff)
	assert.Equal(t, http.StatusNoContent, status)
}
