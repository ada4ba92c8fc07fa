package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/spec-kit/facility-complaints/internal/config"
	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/repository"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	svc := NewAuthService(config.AuthConfig{JWTSecret: "secret", BcryptCost: bcrypt.MinCost}, repository.NewMemoryStore().Users(), zap.NewNop())
	_, err := svc.EnsureUser(context.Background(), "admin", "s3cret", true)
	require.NoError(t, err)
	return svc
}

func TestAuthService_ObtainAndRefresh(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	pair, err := svc.ObtainPair(ctx, "admin", "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, pair.Access)
	assert.NotEmpty(t, pair.Refresh)

	claims, err := svc.TokenManager().ParseToken(pair.Access, domain.TokenTypeAccess)
	require.NoError(t, err)
	assert.True(t, claims.IsStaff)

	refreshed, err := svc.Refresh(ctx, pair.Refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.Access)
	assert.Empty(t, refreshed.Refresh)

	_, err = svc.Refresh(ctx, pair.Access)
	requireStatus(t, err, http.StatusUnauthorized, "Token is invalid or expired")
}

func TestAuthService_RejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.ObtainPair(ctx, "admin", "wrong")
	requireStatus(t, err, http.StatusUnauthorized, msgBadCredentials)
	_, err = svc.ObtainPair(ctx, "ghost", "s3cret")
	requireStatus(t, err, http.StatusUnauthorized, msgBadCredentials)
	_, err = svc.ObtainPair(ctx, "", "")
	requireStatus(t, err, http.StatusBadRequest, "Invalid input")
}

func TestAuthService_EnsureUserIsIdempotent(t *testing.T) {
	svc := newAuthService(t)
	first, err := svc.users.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	again, err := svc.EnsureUser(context.Background(), "admin", "different", false)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.True(t, again.IsStaff)
}
