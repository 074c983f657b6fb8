package entity

import (
	"time"

	integrationEntity "meetning-api/modules/integration/entity"

	"github.com/google/uuid"
)

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// Meeting is the local record of a remotely created calendar event.
// CalendarEventID is the provider's event id; EventID is the caller-supplied
// id used as the idempotency anchor for conference creation.
type Meeting struct {
	ID              uuid.UUID                 `json:"id" db:"id"`
	UserID          string                    `json:"userId" db:"user_id"`
	EventID         string                    `json:"eventId" db:"event_id"`
	Title           string                    `json:"title" db:"title"`
	Description     string                    `json:"description" db:"description"`
	StartTime       time.Time                 `json:"startTime" db:"start_time"`
	EndTime         time.Time                 `json:"endTime" db:"end_time"`
	MeetLink        string                    `json:"meetLink" db:"meet_link"`
	CalendarEventID string                    `json:"calendarEventId" db:"calendar_event_id"`
	CalendarAppType integrationEntity.AppType `json:"calendarAppType" db:"calendar_app_type"`
	Status          MeetingStatus             `json:"status" db:"status"`
	CreatedAt       time.Time                 `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time                 `json:"updatedAt" db:"updated_at"`
}
