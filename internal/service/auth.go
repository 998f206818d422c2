package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"clinicdesk/config"
	"clinicdesk/internal/domain"
	"clinicdesk/pkg/auth"
)

type AuthServiceImpl struct {
	jwtConfig config.JWTConfig
	logger    *zap.Logger
}

func NewAuthService(jwtConfig config.JWTConfig, logger *zap.Logger) *AuthServiceImpl {
	return &AuthServiceImpl{
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

func (s *AuthServiceImpl) ParseToken(_ context.Context, token string) (domain.Actor, error) {
	claims, err := auth.ParseToken(s.jwtConfig.SigningKey, token)
	if err != nil {
		s.logger.Debug("токен отклонен", zap.Error(err))
		return domain.Actor{}, err
	}

	role := domain.UserRole(claims.Role)
	if !role.IsValid() {
		s.logger.Warn("неизвестная роль в токене", zap.Int64("user_id", claims.UserID), zap.String("role", claims.Role))
		return domain.Actor{}, fmt.Errorf("роль %q: %w", claims.Role, auth.ErrInvalidToken)
	}

	return domain.Actor{ID: claims.UserID, Role: role}, nil
}
