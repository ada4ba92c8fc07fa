package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/facility-complaints/internal/auth"
	"github.com/spec-kit/facility-complaints/internal/config"
	"github.com/spec-kit/facility-complaints/internal/domain"
	"github.com/spec-kit/facility-complaints/internal/repository"
	apperrors "github.com/spec-kit/facility-complaints/pkg/util/errorutil"
)

const msgBadCredentials = "No active account found with the given credentials"

// TokenPair is the result of a successful token request. Refresh is empty when only the
// access token was renewed.
type TokenPair struct {
	Access           string
	AccessExpiresAt  time.Time
	Refresh          string
	RefreshExpiresAt time.Time
}

// AuthService issues bearer tokens for operator accounts.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, users repository.UserRepository, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:      users,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes, cfg.RefreshTokenTTLMinutes),
		bcryptCost: cfg.BcryptCost,
		logger:     logger,
	}
}

// TokenManager exposes the token manager for the bearer middleware.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// ObtainPair checks the credentials and issues an access and a refresh token.
func (s *AuthService) ObtainPair(ctx context.Context, username, password string) (TokenPair, error) {
	errs := fieldErrors{}
	errs.required("username", username)
	errs.required("password", password)
	if err := errs.err(); err != nil {
		return TokenPair{}, err
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenPair{}, apperrors.NewUnauthorized(msgBadCredentials)
		}
		return TokenPair{}, apperrors.MapError(err)
	}
	if !user.IsActive || auth.ComparePassword(user.PasswordHash, password) != nil {
		return TokenPair{}, apperrors.NewUnauthorized(msgBadCredentials)
	}

	var pair TokenPair
	if pair.Access, pair.AccessExpiresAt, err = s.tokenMgr.GenerateToken(user, domain.TokenTypeAccess); err != nil {
		return TokenPair{}, apperrors.NewInternalError(err)
	}
	if pair.Refresh, pair.RefreshExpiresAt, err = s.tokenMgr.GenerateToken(user, domain.TokenTypeRefresh); err != nil {
		return TokenPair{}, apperrors.NewInternalError(err)
	}
	return pair, nil
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	errs := fieldErrors{}
	errs.required("refresh", refreshToken)
	if err := errs.err(); err != nil {
		return TokenPair{}, err
	}

	claims, err := s.tokenMgr.ParseToken(refreshToken, domain.TokenTypeRefresh)
	if err != nil {
		return TokenPair{}, apperrors.NewUnauthorized("Token is invalid or expired")
	}
	user, err := s.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return TokenPair{}, apperrors.NewUnauthorized("Token is invalid or expired")
		}
		return TokenPair{}, apperrors.MapError(err)
	}
	if !user.IsActive {
		return TokenPair{}, apperrors.NewUnauthorized(msgBadCredentials)
	}

	var pair TokenPair
	if pair.Access, pair.AccessExpiresAt, err = s.tokenMgr.GenerateToken(user, domain.TokenTypeAccess); err != nil {
		return TokenPair{}, apperrors.NewInternalError(err)
	}
	return pair, nil
}

// EnsureUser creates the account when no user with username exists yet. It is used to
// bootstrap the first staff account at start-up.
func (s *AuthService) EnsureUser(ctx context.Context, username, password string, isStaff bool) (*domain.User, error) {
	existing, err := s.users.GetByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		IsStaff:      isStaff,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	s.logger.Info("user created", zap.String("username", username), zap.Bool("is_staff", isStaff))
	return user, nil
}
