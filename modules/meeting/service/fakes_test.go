package service

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"time"

	integrationEntity "meetning-api/modules/integration/entity"
	"meetning-api/modules/integration/provider"
	"meetning-api/modules/meeting/entity"

	"github.com/google/uuid"
)

type fakeMeetingRepo struct {
	mu        sync.Mutex
	rows      map[string]*entity.Meeting
	createErr error
}

func newFakeMeetingRepo() *fakeMeetingRepo {
	return &fakeMeetingRepo{rows: make(map[string]*entity.Meeting)}
}

func (f *fakeMeetingRepo) Create(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	meeting.ID = uuid.New()
	meeting.CreatedAt = time.Now()
	meeting.UpdatedAt = meeting.CreatedAt
	cp := *meeting
	f.rows[meeting.ID.String()] = &cp
	return meeting, nil
}

func (f *fakeMeetingRepo) GetByIDAndUser(ctx context.Context, meetingID string, userID string) (*entity.Meeting, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[meetingID]
	if !ok || m.UserID != userID {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMeetingRepo) UpdateStatus(ctx context.Context, meetingID string, status entity.MeetingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[meetingID]
	if !ok {
		return sql.ErrNoRows
	}
	m.Status = status
	m.UpdatedAt = time.Now()
	return nil
}

func (f *fakeMeetingRepo) seed(m *entity.Meeting) *entity.Meeting {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	cp := *m
	f.rows[m.ID.String()] = &cp
	return m
}

func (f *fakeMeetingRepo) get(id string) *entity.Meeting {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.rows[id]
	if !ok {
		return nil
	}
	cp := *m
	return &cp
}

func (f *fakeMeetingRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows)
}

type fakeIntegrationRepo struct {
	mu   sync.Mutex
	rows map[string]*integrationEntity.Integration
}

func newFakeIntegrationRepo() *fakeIntegrationRepo {
	return &fakeIntegrationRepo{rows: make(map[string]*integrationEntity.Integration)}
}

func integrationKey(userID string, appType integrationEntity.AppType) string {
	return userID + "|" + string(appType)
}

func (f *fakeIntegrationRepo) seed(i *integrationEntity.Integration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *i
	f.rows[integrationKey(i.UserID, i.AppType)] = &cp
}

func (f *fakeIntegrationRepo) Upsert(ctx context.Context, i *integrationEntity.Integration) (*integrationEntity.Integration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *i
	cp.IsConnected = true
	f.rows[integrationKey(i.UserID, i.AppType)] = &cp
	return &cp, nil
}

func (f *fakeIntegrationRepo) GetByUserAndAppType(ctx context.Context, userID string, appType integrationEntity.AppType) (*integrationEntity.Integration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	i, ok := f.rows[integrationKey(userID, appType)]
	if !ok {
		return nil, nil
	}
	cp := *i
	return &cp, nil
}

func (f *fakeIntegrationRepo) ListByUser(ctx context.Context, userID string) ([]integrationEntity.Integration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []integrationEntity.Integration
	for _, i := range f.rows {
		if i.UserID == userID {
			out = append(out, *i)
		}
	}
	return out, nil
}

func (f *fakeIntegrationRepo) Delete(ctx context.Context, userID string, appType integrationEntity.AppType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := integrationKey(userID, appType)
	if _, ok := f.rows[key]; !ok {
		return sql.ErrNoRows
	}
	delete(f.rows, key)
	return nil
}

func (f *fakeIntegrationRepo) UpdateTokens(ctx context.Context, refreshToken string, accessToken string, expiryDate *time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, i := range f.rows {
		if i.RefreshToken != nil && *i.RefreshToken == refreshToken {
			i.AccessToken = accessToken
			i.ExpiryDate = expiryDate
		}
	}
	return nil
}

type fakeProvider struct {
	mu sync.Mutex

	refreshBundle *provider.TokenBundle
	refreshErr    error

	createResult *provider.CreatedEvent
	createErr    error
	createCalls  int
	createToken  string
	createSpec   *provider.EventSpec

	deleteErr     error
	deleteCalls   int
	deletedEvents []string
}

func (f *fakeProvider) AuthCodeURL(state string) string {
	return "https://provider.example/auth?state=" + state
}

func (f *fakeProvider) ExchangeCode(ctx context.Context, code string) (*provider.TokenBundle, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProvider) RefreshAccessToken(ctx context.Context, refreshToken string) (*provider.TokenBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	return f.refreshBundle, nil
}

func (f *fakeProvider) CreateEvent(ctx context.Context, accessToken string, spec *provider.EventSpec) (*provider.CreatedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.createToken = accessToken
	f.createSpec = spec
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createResult, nil
}

func (f *fakeProvider) DeleteEvent(ctx context.Context, accessToken string, remoteEventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	f.deletedEvents = append(f.deletedEvents, remoteEventID)
	return f.deleteErr
}
