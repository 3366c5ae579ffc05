package identity

import (
	"context"

	"github.com/dukkan/backoffice/internal/domain/shared"
	"github.com/dukkan/backoffice/internal/infrastructure/auth"
	"github.com/dukkan/backoffice/internal/infrastructure/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any username/password mismatch
var ErrInvalidCredentials = shared.NewDomainError("INVALID_CREDENTIALS", "Invalid username or password")

// AuthService authenticates the back-office operator. This is a
// single-operator system: the credential comes from configuration (bcrypt
// hash), and sessions are server-validated JWTs with a revocation list,
// not a fixed cookie value.
type AuthService struct {
	authCfg    config.AuthConfig
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(
	authCfg config.AuthConfig,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		authCfg:    authCfg,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login verifies the operator credential and issues a token pair
func (s *AuthService) Login(ctx context.Context, username, password string) (*auth.TokenPair, error) {
	if username != s.authCfg.AdminUsername {
		s.logger.Warn("Login attempt with unknown username", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.authCfg.AdminPasswordHash), []byte(password)); err != nil {
		s.logger.Warn("Login attempt with wrong password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	pair, err := s.jwtService.GenerateTokenPair(username)
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("Operator logged in", zap.String("username", username))
	return pair, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	claims, err := s.jwtService.ValidateAccessToken(accessToken)
	if err != nil {
		// an already invalid token has nothing left to revoke
		return nil
	}
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Error("Failed to revoke token", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to revoke session")
	}
	return nil
}

// Refresh exchanges a valid refresh token for a fresh token pair
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.jwtService.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, shared.ErrUnauthorized
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		s.logger.Error("Failed to check token revocation", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to validate session")
	}
	if revoked {
		return nil, shared.ErrUnauthorized
	}

	// rotate: the used refresh token is revoked for its remaining lifetime
	if err := s.blacklist.Revoke(ctx, claims.ID, claims.GetRemainingTTL()); err != nil {
		s.logger.Warn("Failed to revoke rotated refresh token", zap.Error(err))
	}

	return s.jwtService.GenerateTokenPair(claims.Username)
}
