package provider

import (
	"context"
	"errors"
	"time"

	"meetning-api/modules/integration/entity"
)

// TokenBundle is what a provider hands back from a code exchange or a
// refresh. ExpiryDate is nil when the provider's token model has no expiry.
type TokenBundle struct {
	AccessToken  string
	RefreshToken string
	ExpiryDate   *time.Time
	Scope        string
	TokenType    string
}

// EventSpec describes the calendar event a meeting should become.
type EventSpec struct {
	EventID     string
	Title       string
	Description string
	StartTime   time.Time
	EndTime     time.Time
	Timezone    string
	Attendees   []string
}

// CreatedEvent is the remote side of a created meeting.
type CreatedEvent struct {
	RemoteEventID  string
	ConferenceLink string
}

// ErrEventNotFound is returned by DeleteEvent when the remote event no
// longer exists. Callers treat this as confirmation the event is gone.
var ErrEventNotFound = errors.New("remote event not found")

func IsEventNotFound(err error) bool {
	return errors.Is(err, ErrEventNotFound)
}

// CalendarProvider abstracts one provider's remote operations. Adding a
// provider means implementing this interface and registering it; no
// orchestration code changes.
type CalendarProvider interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenBundle, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*TokenBundle, error)
	CreateEvent(ctx context.Context, accessToken string, spec *EventSpec) (*CreatedEvent, error)
	DeleteEvent(ctx context.Context, accessToken string, remoteEventID string) error
}

// Registry holds the providers available for connection, keyed by app type.
type Registry struct {
	providers map[entity.AppType]CalendarProvider
}

func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[entity.AppType]CalendarProvider),
	}
}

func (r *Registry) Register(appType entity.AppType, p CalendarProvider) {
	r.providers[appType] = p
}

func (r *Registry) Get(appType entity.AppType) (CalendarProvider, bool) {
	p, ok := r.providers[appType]
	return p, ok
}
