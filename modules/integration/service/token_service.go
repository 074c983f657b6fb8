package service

import (
	"context"
	"fmt"
	"time"

	"meetning-api/core/cache"
	"meetning-api/core/errors"
	"meetning-api/core/logger"
	"meetning-api/modules/integration/entity"
	"meetning-api/modules/integration/provider"
	"meetning-api/modules/integration/repository"
)

// TokenService decides whether a stored access token is still usable and
// refreshes it through the provider when it is not.
type TokenService struct {
	repo  repository.IntegrationRepository
	locks cache.Locker
}

func NewTokenService(repo repository.IntegrationRepository, locks cache.Locker) *TokenService {
	return &TokenService{
		repo:  repo,
		locks: locks,
	}
}

// EnsureValidToken returns a usable access token for the integration.
// A nil expiry means the token never expires under this provider's model and
// is returned unchanged; an unexpired token is returned unchanged; an expired
// one is refreshed and the new credentials persisted before returning.
//
// The refresh path holds a per-(userId, appType) lock and re-reads the row
// under it, so two concurrent callers seeing the same expired token perform
// exactly one refresh between them and neither overwrites the other's
// still-valid credentials.
func (s *TokenService) EnsureValidToken(ctx context.Context, integration *entity.Integration, prov provider.CalendarProvider) (string, *errors.AppError) {
	if !tokenExpired(integration) {
		return integration.AccessToken, nil
	}

	lockKey := fmt.Sprintf("integration:refresh:%s:%s", integration.UserID, integration.AppType)
	release, err := s.locks.Lock(ctx, lockKey)
	if err != nil {
		logger.Error("TokenService:EnsureValidToken:Lock:Error", "error", err, "key", lockKey)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to acquire refresh lock", err)
	}
	defer release()

	// Another request may have refreshed while we waited for the lock.
	current, err := s.repo.GetByUserAndAppType(ctx, integration.UserID, integration.AppType)
	if err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to reload integration", err)
	}
	if current == nil {
		return "", errors.NewAppError(errors.ErrNotConnected, "integration no longer exists", nil)
	}
	if !tokenExpired(current) {
		return current.AccessToken, nil
	}

	if current.RefreshToken == nil || *current.RefreshToken == "" {
		return "", errors.NewAppError(errors.ErrTokenRefreshFailed, "token expired and no refresh token available", nil)
	}
	refreshToken := *current.RefreshToken

	bundle, err := prov.RefreshAccessToken(ctx, refreshToken)
	if err != nil {
		logger.Error("TokenService:EnsureValidToken:Refresh:Error",
			"error", err, "user_id", current.UserID, "app_type", current.AppType)
		return "", errors.NewAppError(errors.ErrTokenRefreshFailed, "failed to refresh access token", err)
	}

	if err := s.repo.UpdateTokens(ctx, refreshToken, bundle.AccessToken, bundle.ExpiryDate); err != nil {
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to persist refreshed token", err)
	}

	logger.Info("TokenService:EnsureValidToken:Refreshed",
		"user_id", current.UserID, "app_type", current.AppType)
	return bundle.AccessToken, nil
}

func tokenExpired(integration *entity.Integration) bool {
	if integration.ExpiryDate == nil {
		return false
	}
	return !time.Now().Before(*integration.ExpiryDate)
}
