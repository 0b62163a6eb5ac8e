package services

import (
	"context"
	"crypto/subtle"
	"errors"

	"luco/internal/config"
	"luco/internal/utils"
	"luco/pkg/logger"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	AdminLogin(ctx context.Context, username, password string) (*utils.TokenPair, error)
	ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error)
}

type authService struct {
	security *config.SecurityConfig
	logger   *logger.Logger
}

func NewAuthService(security *config.SecurityConfig, log *logger.Logger) AuthService {
	return &authService{
		security: security,
		logger:   log,
	}
}

func (s *authService) AdminLogin(ctx context.Context, username, password string) (*utils.TokenPair, error) {
	if s.security.AdminPassword == "" {
		s.logger.Warn("admin login attempted but ADMIN_PASSWORD is not configured")
		return nil, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.security.AdminUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(s.security.AdminPassword)) == 1
	if !userOK || !passOK {
		s.logger.WithField("username", username).Warn("failed admin login")
		return nil, ErrInvalidCredentials
	}

	tokens, err := utils.GenerateTokenPair(username, utils.UserTypeAdmin, username, s.security.JWTSecret)
	if err != nil {
		return nil, err
	}

	s.logger.LogAdminAction(username, "login", nil)
	return tokens, nil
}

func (s *authService) ValidateToken(ctx context.Context, token string) (*utils.JWTClaims, error) {
	return utils.ParseToken(token, s.security.JWTSecret)
}
