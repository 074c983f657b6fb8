package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"meetning-api/modules/integration/entity"
	"meetning-api/modules/integration/provider"

	"github.com/google/uuid"
)

type fakeIntegrationRepo struct {
	mu                sync.Mutex
	rows              map[string]*entity.Integration
	upserts           int
	updateTokensCalls int
	updateTokensErr   error
}

func newFakeIntegrationRepo() *fakeIntegrationRepo {
	return &fakeIntegrationRepo{rows: make(map[string]*entity.Integration)}
}

func repoKey(userID string, appType entity.AppType) string {
	return userID + "|" + string(appType)
}

func (r *fakeIntegrationRepo) Upsert(_ context.Context, integration *entity.Integration) (*entity.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++

	key := repoKey(integration.UserID, integration.AppType)
	if existing, ok := r.rows[key]; ok {
		existing.AccessToken = integration.AccessToken
		existing.RefreshToken = integration.RefreshToken
		existing.ExpiryDate = integration.ExpiryDate
		existing.Metadata = integration.Metadata
		existing.IsConnected = true
		existing.UpdatedAt = time.Now()
		*integration = *existing
		return integration, nil
	}

	integration.ID = uuid.New()
	integration.IsConnected = true
	integration.CreatedAt = time.Now()
	integration.UpdatedAt = integration.CreatedAt
	stored := *integration
	r.rows[key] = &stored
	return integration, nil
}

func (r *fakeIntegrationRepo) GetByUserAndAppType(_ context.Context, userID string, appType entity.AppType) (*entity.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row, ok := r.rows[repoKey(userID, appType)]
	if !ok {
		return nil, nil
	}
	copied := *row
	return &copied, nil
}

func (r *fakeIntegrationRepo) ListByUser(_ context.Context, userID string) ([]entity.Integration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []entity.Integration
	for _, row := range r.rows {
		if row.UserID == userID {
			out = append(out, *row)
		}
	}
	return out, nil
}

func (r *fakeIntegrationRepo) Delete(_ context.Context, userID string, appType entity.AppType) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := repoKey(userID, appType)
	if _, ok := r.rows[key]; !ok {
		return sql.ErrNoRows
	}
	delete(r.rows, key)
	return nil
}

func (r *fakeIntegrationRepo) UpdateTokens(_ context.Context, refreshToken string, accessToken string, expiryDate *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updateTokensCalls++
	if r.updateTokensErr != nil {
		return r.updateTokensErr
	}

	for _, row := range r.rows {
		if row.RefreshToken != nil && *row.RefreshToken == refreshToken {
			row.AccessToken = accessToken
			row.ExpiryDate = expiryDate
			row.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (r *fakeIntegrationRepo) seed(integration entity.Integration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if integration.ID == uuid.Nil {
		integration.ID = uuid.New()
	}
	r.rows[repoKey(integration.UserID, integration.AppType)] = &integration
}

func (r *fakeIntegrationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

type fakeProvider struct {
	mu             sync.Mutex
	exchangeBundle *provider.TokenBundle
	exchangeErr    error
	refreshBundle  *provider.TokenBundle
	refreshErr     error
	refreshDelay   time.Duration
	refreshCalls   int
}

func (p *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.example/auth?state=" + state
}

func (p *fakeProvider) ExchangeCode(_ context.Context, _ string) (*provider.TokenBundle, error) {
	if p.exchangeErr != nil {
		return nil, p.exchangeErr
	}
	return p.exchangeBundle, nil
}

func (p *fakeProvider) RefreshAccessToken(_ context.Context, _ string) (*provider.TokenBundle, error) {
	p.mu.Lock()
	p.refreshCalls++
	p.mu.Unlock()

	if p.refreshDelay > 0 {
		time.Sleep(p.refreshDelay)
	}
	if p.refreshErr != nil {
		return nil, p.refreshErr
	}
	return p.refreshBundle, nil
}

func (p *fakeProvider) CreateEvent(_ context.Context, _ string, _ *provider.EventSpec) (*provider.CreatedEvent, error) {
	return nil, nil
}

func (p *fakeProvider) DeleteEvent(_ context.Context, _ string, _ string) error {
	return nil
}

func (p *fakeProvider) refreshCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refreshCalls
}
