package dto

import (
	"time"

	"meetning-api/modules/meeting/entity"
)

// CreateMeetingRequest carries everything needed to place a calendar event
// with an attached conference. EventID anchors idempotent conference
// creation, so it is required; title and timezone fall back to defaults.
type CreateMeetingRequest struct {
	EventID     string    `json:"eventId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	Attendees   []string  `json:"attendees"`
	Timezone    string    `json:"timezone"`
}

type CreateMeetingResponse struct {
	Message         string          `json:"message"`
	MeetLink        string          `json:"meetLink"`
	CalendarEventID string          `json:"calendarEventId"`
	Meeting         *entity.Meeting `json:"meeting"`
}

type CancelMeetingResult struct {
	Success bool            `json:"success"`
	Meeting *entity.Meeting `json:"meeting"`
}

type CancelMeetingResponse struct {
	Message string              `json:"message"`
	Result  CancelMeetingResult `json:"result"`
}
