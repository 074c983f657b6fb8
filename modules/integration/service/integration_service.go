package service

import (
	"context"
	"database/sql"

	"meetning-api/core/errors"
	"meetning-api/core/logger"
	"meetning-api/modules/integration/dto"
	"meetning-api/modules/integration/entity"
	"meetning-api/modules/integration/provider"
	"meetning-api/modules/integration/repository"
)

// IntegrationService owns the OAuth connection lifecycle: building
// authorization URLs, handling callbacks, and exposing the catalog of
// connectable apps.
type IntegrationService struct {
	repo     repository.IntegrationRepository
	registry *provider.Registry
	state    *StateCodec
}

func NewIntegrationService(repo repository.IntegrationRepository, registry *provider.Registry, state *StateCodec) *IntegrationService {
	return &IntegrationService{
		repo:     repo,
		registry: registry,
		state:    state,
	}
}

// ConnectApp builds the provider authorization URL for the given app type,
// with the caller's identity embedded as signed transit state.
func (s *IntegrationService) ConnectApp(ctx context.Context, userID string, appType entity.AppType) (string, *errors.AppError) {
	prov, ok := s.registry.Get(appType)
	if !ok {
		return "", errors.NewAppError(errors.ErrUnsupportedAppType, "Unsupported app type", nil)
	}

	state, err := s.state.Encode(userID, appType)
	if err != nil {
		logger.Error("IntegrationService:ConnectApp:EncodeState:Error", "error", err, "user_id", userID)
		return "", errors.NewAppError(errors.ErrInternalServer, "failed to encode state", err)
	}

	return prov.AuthCodeURL(state), nil
}

// HandleCallback finishes the authorization round trip: it validates the
// callback parameters, exchanges the code for tokens, and upserts the
// connection record. Failures are returned for the HTTP boundary to turn
// into a redirect; this never answers JSON itself.
func (s *IntegrationService) HandleCallback(ctx context.Context, code string, state string) (entity.AppType, *errors.AppError) {
	if code == "" {
		return "", errors.NewAppError(errors.ErrInvalidAuthorization, "Invalid authorization", nil)
	}
	if state == "" {
		return "", errors.NewAppError(errors.ErrInvalidState, "Invalid state parameter", nil)
	}

	payload, appErr := s.state.Decode(state)
	if appErr != nil {
		return "", appErr
	}

	prov, ok := s.registry.Get(payload.AppType)
	if !ok {
		return payload.AppType, errors.NewAppError(errors.ErrUnsupportedAppType, "Unsupported app type", nil)
	}

	bundle, err := prov.ExchangeCode(ctx, code)
	if err != nil {
		logger.Error("IntegrationService:HandleCallback:Exchange:Error", "error", err, "user_id", payload.UserID)
		if ae, ok := err.(*errors.AppError); ok {
			return payload.AppType, ae
		}
		return payload.AppType, errors.NewAppError(errors.ErrRemoteProvider, "failed to exchange authorization code", err)
	}
	if bundle.AccessToken == "" {
		return payload.AppType, errors.NewAppError(errors.ErrMissingAccessToken, "Access Token not passed", nil)
	}

	integration := &entity.Integration{
		UserID:      payload.UserID,
		Provider:    entity.ProviderFor(payload.AppType),
		Category:    entity.CategoryFor(payload.AppType),
		AppType:     payload.AppType,
		AccessToken: bundle.AccessToken,
		ExpiryDate:  bundle.ExpiryDate,
		Metadata: entity.Metadata{
			"scope":      bundle.Scope,
			"token_type": bundle.TokenType,
		},
	}
	if bundle.RefreshToken != "" {
		refreshToken := bundle.RefreshToken
		integration.RefreshToken = &refreshToken
	}

	if _, err := s.repo.Upsert(ctx, integration); err != nil {
		return payload.AppType, errors.NewAppError(errors.ErrInternalServer, "failed to save integration", err)
	}

	logger.Info("IntegrationService:HandleCallback:Connected",
		"user_id", payload.UserID, "app_type", payload.AppType)
	return payload.AppType, nil
}

// ListIntegrations returns the full static catalog with the user's
// connection status, not merely the connected rows.
func (s *IntegrationService) ListIntegrations(ctx context.Context, userID string) ([]dto.IntegrationItem, *errors.AppError) {
	connected, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to list integrations", err)
	}

	connectedMap := make(map[entity.AppType]bool, len(connected))
	for _, integration := range connected {
		connectedMap[integration.AppType] = true
	}

	items := make([]dto.IntegrationItem, 0, len(entity.AllAppTypes()))
	for _, appType := range entity.AllAppTypes() {
		items = append(items, dto.IntegrationItem{
			Provider:    entity.ProviderFor(appType),
			Title:       entity.TitleFor(appType),
			AppType:     appType,
			Category:    entity.CategoryFor(appType),
			IsConnected: connectedMap[appType],
		})
	}
	return items, nil
}

// CheckIntegration reports whether the user has a stored connection for the
// app type.
func (s *IntegrationService) CheckIntegration(ctx context.Context, userID string, appType entity.AppType) (bool, *errors.AppError) {
	integration, err := s.repo.GetByUserAndAppType(ctx, userID, appType)
	if err != nil {
		return false, errors.NewAppError(errors.ErrInternalServer, "failed to check integration", err)
	}
	return integration != nil, nil
}

// DisconnectIntegration removes the stored connection record.
func (s *IntegrationService) DisconnectIntegration(ctx context.Context, userID string, appType entity.AppType) *errors.AppError {
	if err := s.repo.Delete(ctx, userID, appType); err != nil {
		if err == sql.ErrNoRows {
			return errors.NewAppError(errors.ErrNotFound, "Integration not found", nil)
		}
		return errors.NewAppError(errors.ErrInternalServer, "failed to disconnect integration", err)
	}
	return nil
}
