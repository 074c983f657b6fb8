package repository

import (
	"context"
	"database/sql"
	"time"

	"meetning-api/core/database"
	"meetning-api/core/logger"
	"meetning-api/modules/integration/entity"

	"github.com/google/uuid"
)

// IntegrationRepository owns the integrations table. All other components
// read and write connection records through it.
type IntegrationRepository interface {
	Upsert(ctx context.Context, integration *entity.Integration) (*entity.Integration, error)
	GetByUserAndAppType(ctx context.Context, userID string, appType entity.AppType) (*entity.Integration, error)
	ListByUser(ctx context.Context, userID string) ([]entity.Integration, error)
	Delete(ctx context.Context, userID string, appType entity.AppType) error
	UpdateTokens(ctx context.Context, refreshToken string, accessToken string, expiryDate *time.Time) error
}

type integrationRepository struct {
	db database.IDatabase
}

func NewIntegrationRepository(db database.IDatabase) IntegrationRepository {
	return &integrationRepository{db: db}
}

// Upsert inserts the connection record, or replaces tokens and metadata in
// place when the (user_id, app_type) row already exists. Reconnecting always
// forces is_connected back to true and never produces a second row.
func (r *integrationRepository) Upsert(ctx context.Context, integration *entity.Integration) (*entity.Integration, error) {
	query := `
		INSERT INTO integrations
			(user_id, provider, category, app_type, access_token, refresh_token, expiry_date, metadata, is_connected)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
		ON CONFLICT (user_id, app_type) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = EXCLUDED.refresh_token,
			expiry_date = EXCLUDED.expiry_date,
			metadata = EXCLUDED.metadata,
			is_connected = true,
			updated_at = NOW()
		RETURNING id, is_connected, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		integration.UserID, integration.Provider, integration.Category, integration.AppType,
		integration.AccessToken, integration.RefreshToken, integration.ExpiryDate, integration.Metadata,
	).Scan(&integration.ID, &integration.IsConnected, &integration.CreatedAt, &integration.UpdatedAt)

	if err != nil {
		logger.Error("IntegrationRepository:Upsert:Error", "error", err, "user_id", integration.UserID, "app_type", integration.AppType)
		return nil, err
	}
	return integration, nil
}

func (r *integrationRepository) GetByUserAndAppType(ctx context.Context, userID string, appType entity.AppType) (*entity.Integration, error) {
	query := `
		SELECT id, user_id, provider, category, app_type, access_token, refresh_token,
		       expiry_date, metadata, is_connected, created_at, updated_at
		FROM integrations
		WHERE user_id = $1 AND app_type = $2
		LIMIT 1
	`
	var integration entity.Integration
	err := r.db.GetContext(ctx, &integration, query, userID, appType)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("IntegrationRepository:GetByUserAndAppType:Error", "error", err, "user_id", userID, "app_type", appType)
		return nil, err
	}
	return &integration, nil
}

func (r *integrationRepository) ListByUser(ctx context.Context, userID string) ([]entity.Integration, error) {
	query := `
		SELECT id, user_id, provider, category, app_type, access_token, refresh_token,
		       expiry_date, metadata, is_connected, created_at, updated_at
		FROM integrations
		WHERE user_id = $1
	`
	var integrations []entity.Integration
	err := r.db.SelectContext(ctx, &integrations, query, userID)
	if err != nil {
		logger.Error("IntegrationRepository:ListByUser:Error", "error", err, "user_id", userID)
		return nil, err
	}
	return integrations, nil
}

// Delete removes the connection record. sql.ErrNoRows is returned when no
// row matched so the caller can answer 404.
func (r *integrationRepository) Delete(ctx context.Context, userID string, appType entity.AppType) error {
	query := `
		DELETE FROM integrations
		WHERE user_id = $1 AND app_type = $2
		RETURNING id
	`
	var id uuid.UUID
	err := r.db.QueryRowContext(ctx, query, userID, appType).Scan(&id)
	if err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		logger.Error("IntegrationRepository:Delete:Error", "error", err, "user_id", userID, "app_type", appType)
		return err
	}
	return nil
}

// UpdateTokens persists a refreshed access token. The row is matched by the
// refresh token value, which is what the token service has in hand after a
// refresh exchange.
func (r *integrationRepository) UpdateTokens(ctx context.Context, refreshToken string, accessToken string, expiryDate *time.Time) error {
	query := `
		UPDATE integrations
		SET access_token = $1, expiry_date = $2, updated_at = NOW()
		WHERE refresh_token = $3
	`
	err := r.db.ExecContext(ctx, query, accessToken, expiryDate, refreshToken)
	if err != nil {
		logger.Error("IntegrationRepository:UpdateTokens:Error", "error", err)
		return err
	}
	return nil
}
