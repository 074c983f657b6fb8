package repository

import (
	"context"
	"database/sql"

	"meetning-api/core/database"
	"meetning-api/core/logger"
	"meetning-api/modules/meeting/entity"
)

type MeetingRepository interface {
	Create(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error)
	GetByIDAndUser(ctx context.Context, meetingID string, userID string) (*entity.Meeting, error)
	UpdateStatus(ctx context.Context, meetingID string, status entity.MeetingStatus) error
}

type meetingRepository struct {
	db database.IDatabase
}

func NewMeetingRepository(db database.IDatabase) MeetingRepository {
	return &meetingRepository{db: db}
}

func (r *meetingRepository) Create(ctx context.Context, meeting *entity.Meeting) (*entity.Meeting, error) {
	query := `
		INSERT INTO meetings
			(user_id, event_id, title, description, start_time, end_time,
			 meet_link, calendar_event_id, calendar_app_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		meeting.UserID, meeting.EventID, meeting.Title, meeting.Description,
		meeting.StartTime, meeting.EndTime, meeting.MeetLink,
		meeting.CalendarEventID, meeting.CalendarAppType, meeting.Status,
	).Scan(&meeting.ID, &meeting.CreatedAt, &meeting.UpdatedAt)

	if err != nil {
		logger.Error("MeetingRepository:Create:Error", "error", err, "user_id", meeting.UserID, "event_id", meeting.EventID)
		return nil, err
	}
	return meeting, nil
}

// GetByIDAndUser looks a meeting up scoped to its owner. A meeting id that
// exists but belongs to another user is indistinguishable from one that does
// not exist: both return nil, nil.
func (r *meetingRepository) GetByIDAndUser(ctx context.Context, meetingID string, userID string) (*entity.Meeting, error) {
	query := `
		SELECT id, user_id, event_id, title, description, start_time, end_time,
		       meet_link, calendar_event_id, calendar_app_type, status, created_at, updated_at
		FROM meetings
		WHERE id = $1 AND user_id = $2
		LIMIT 1
	`
	var meeting entity.Meeting
	err := r.db.GetContext(ctx, &meeting, query, meetingID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		logger.Error("MeetingRepository:GetByIDAndUser:Error", "error", err, "meeting_id", meetingID, "user_id", userID)
		return nil, err
	}
	return &meeting, nil
}

func (r *meetingRepository) UpdateStatus(ctx context.Context, meetingID string, status entity.MeetingStatus) error {
	query := `
		UPDATE meetings
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`
	err := r.db.ExecContext(ctx, query, status, meetingID)
	if err != nil {
		logger.Error("MeetingRepository:UpdateStatus:Error", "error", err, "meeting_id", meetingID, "status", status)
		return err
	}
	return nil
}
