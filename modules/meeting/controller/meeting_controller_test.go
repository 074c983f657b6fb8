package controller

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"meetning-api/core/cache"
	integrationEntity "meetning-api/modules/integration/entity"
	"meetning-api/modules/integration/provider"
	integrationService "meetning-api/modules/integration/service"
	"meetning-api/modules/meeting/entity"
	"meetning-api/modules/meeting/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMeetingRepo struct{}

func (stubMeetingRepo) Create(ctx context.Context, m *entity.Meeting) (*entity.Meeting, error) {
	m.ID = uuid.New()
	return m, nil
}

func (stubMeetingRepo) GetByIDAndUser(ctx context.Context, meetingID, userID string) (*entity.Meeting, error) {
	return nil, nil
}

func (stubMeetingRepo) UpdateStatus(ctx context.Context, meetingID string, status entity.MeetingStatus) error {
	return nil
}

type stubIntegrationRepo struct {
	integration *integrationEntity.Integration
}

func (s stubIntegrationRepo) Upsert(ctx context.Context, i *integrationEntity.Integration) (*integrationEntity.Integration, error) {
	return i, nil
}

func (s stubIntegrationRepo) GetByUserAndAppType(ctx context.Context, userID string, appType integrationEntity.AppType) (*integrationEntity.Integration, error) {
	return s.integration, nil
}

func (s stubIntegrationRepo) ListByUser(ctx context.Context, userID string) ([]integrationEntity.Integration, error) {
	return nil, nil
}

func (s stubIntegrationRepo) Delete(ctx context.Context, userID string, appType integrationEntity.AppType) error {
	return sql.ErrNoRows
}

func (s stubIntegrationRepo) UpdateTokens(ctx context.Context, refreshToken, accessToken string, expiryDate *time.Time) error {
	return nil
}

type stubProvider struct {
	lastSpec *provider.EventSpec
}

func (s *stubProvider) AuthCodeURL(state string) string { return "" }

func (s *stubProvider) ExchangeCode(ctx context.Context, code string) (*provider.TokenBundle, error) {
	return nil, nil
}

func (s *stubProvider) RefreshAccessToken(ctx context.Context, refreshToken string) (*provider.TokenBundle, error) {
	return nil, nil
}

func (s *stubProvider) CreateEvent(ctx context.Context, accessToken string, spec *provider.EventSpec) (*provider.CreatedEvent, error) {
	s.lastSpec = spec
	return &provider.CreatedEvent{RemoteEventID: "rid1", ConferenceLink: "https://meet.example/abc"}, nil
}

func (s *stubProvider) DeleteEvent(ctx context.Context, accessToken, remoteEventID string) error {
	return nil
}

func newTestController(prov provider.CalendarProvider) *MeetingController {
	registry := provider.NewRegistry()
	registry.Register(integrationEntity.AppTypeGoogleMeetAndCalendar, prov)
	integrations := stubIntegrationRepo{integration: &integrationEntity.Integration{
		UserID:      "42",
		AppType:     integrationEntity.AppTypeGoogleMeetAndCalendar,
		AccessToken: "access-token",
		IsConnected: true,
	}}
	tokens := integrationService.NewTokenService(integrations, cache.NewMemoryLocker())
	svc := service.NewMeetingService(stubMeetingRepo{}, integrations, registry, tokens)
	return NewMeetingController(svc)
}

func performCreate(t *testing.T, ctrl *MeetingController, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/meetings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)
	ctx.Set("user_id", "42")

	err := ctrl.Create(ctx)
	if err != nil {
		e.HTTPErrorHandler(err, ctx)
	}
	return rec
}

func TestCreateMeetingRejectsMissingEventID(t *testing.T) {
	ctrl := newTestController(&stubProvider{})
	rec := performCreate(t, ctrl, `{"startTime":"2026-09-10T14:00:00Z","endTime":"2026-09-10T15:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMeetingRejectsMissingTimes(t *testing.T) {
	ctrl := newTestController(&stubProvider{})
	rec := performCreate(t, ctrl, `{"eventId":"evt-123"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMeetingRejectsMalformedBody(t *testing.T) {
	ctrl := newTestController(&stubProvider{})
	rec := performCreate(t, ctrl, `{"eventId":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateMeetingAppliesDefaults(t *testing.T) {
	prov := &stubProvider{}
	ctrl := newTestController(prov)
	rec := performCreate(t, ctrl, `{"eventId":"evt-123","startTime":"2026-09-10T14:00:00Z","endTime":"2026-09-10T15:00:00Z"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	require.NotNil(t, prov.lastSpec)
	assert.Equal(t, "New Meeting", prov.lastSpec.Title)
	assert.Equal(t, "UTC", prov.lastSpec.Timezone)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "https://meet.example/abc", resp["meetLink"])
	assert.Equal(t, "rid1", resp["calendarEventId"])
}
