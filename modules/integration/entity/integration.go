package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Provider string

const (
	ProviderGoogle    Provider = "GOOGLE"
	ProviderZoom      Provider = "ZOOM"
	ProviderMicrosoft Provider = "MICROSOFT"
)

type Category string

const (
	CategoryCalendar             Category = "CALENDAR"
	CategoryVideoConferencing    Category = "VIDEO_CONFERENCING"
	CategoryCalendarAndVideoConf Category = "CALENDAR_AND_VIDEO_CONFERENCING"
)

type AppType string

const (
	AppTypeGoogleMeetAndCalendar AppType = "GOOGLE_MEET_AND_CALENDAR"
	AppTypeZoomMeeting           AppType = "ZOOM_MEETING"
	AppTypeOutlookCalendar       AppType = "OUTLOOK_CALENDAR"
)

// Metadata is the opaque key/value bag recorded alongside an integration
// (token scope, token type). Stored as JSONB.
type Metadata map[string]string

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(src any) error {
	if src == nil {
		*m = Metadata{}
		return nil
	}
	var raw []byte
	switch v := src.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata type %T", src)
	}
	return json.Unmarshal(raw, m)
}

// Integration is a per-user, per-app connection record. Exactly one row
// exists per (user_id, app_type); reconnecting replaces tokens in place.
type Integration struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"`
	Provider     Provider   `db:"provider" json:"provider"`
	Category     Category   `db:"category" json:"category"`
	AppType      AppType    `db:"app_type" json:"app_type"`
	AccessToken  string     `db:"access_token" json:"-"`
	RefreshToken *string    `db:"refresh_token" json:"-"`
	ExpiryDate   *time.Time `db:"expiry_date" json:"expiry_date,omitempty"` // nil = token does not expire
	Metadata     Metadata   `db:"metadata" json:"metadata"`
	IsConnected  bool       `db:"is_connected" json:"is_connected"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}
