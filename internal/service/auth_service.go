package service

import (
	"time"

	"github.com/spec-kit/redemption-service/internal/auth"
	"github.com/spec-kit/redemption-service/internal/config"
	apperrors "github.com/spec-kit/redemption-service/pkg/util"
)

// AuthService issues tokens for the admin surface. There are no per-staff
// accounts; a single operator credential guards the admin listing.
type AuthService struct {
	tokens       *auth.TokenManager
	passwordHash string
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig) *AuthService {
	return &AuthService{
		tokens:       auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		passwordHash: cfg.AdminPasswordHash,
	}
}

// TokenManager exposes the underlying manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// LoginAdmin verifies the operator password and issues an admin token.
func (s *AuthService) LoginAdmin(password string) (string, time.Time, error) {
	if s.passwordHash == "" {
		return "", time.Time{}, apperrors.NewUnauthorized("admin login disabled")
	}
	if err := auth.ComparePassword(s.passwordHash, password); err != nil {
		return "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	return s.tokens.GenerateAdminToken()
}
