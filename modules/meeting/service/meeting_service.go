package service

import (
	"context"

	"meetning-api/core/errors"
	"meetning-api/core/logger"
	integrationEntity "meetning-api/modules/integration/entity"
	"meetning-api/modules/integration/provider"
	integrationRepository "meetning-api/modules/integration/repository"
	integrationService "meetning-api/modules/integration/service"
	"meetning-api/modules/meeting/dto"
	"meetning-api/modules/meeting/entity"
	"meetning-api/modules/meeting/repository"
)

// MeetingService orchestrates the two-step meeting lifecycle: the remote
// calendar event with its conference link first, the local record second.
type MeetingService struct {
	meetings     repository.MeetingRepository
	integrations integrationRepository.IntegrationRepository
	registry     *provider.Registry
	tokens       *integrationService.TokenService
}

func NewMeetingService(
	meetings repository.MeetingRepository,
	integrations integrationRepository.IntegrationRepository,
	registry *provider.Registry,
	tokens *integrationService.TokenService,
) *MeetingService {
	return &MeetingService{
		meetings:     meetings,
		integrations: integrations,
		registry:     registry,
		tokens:       tokens,
	}
}

// CreateMeeting creates the remote calendar event through the user's
// connected provider and then records the meeting locally. The two phases are
// not transactional: a local insert failure after a successful remote create
// leaves the remote event in place and surfaces the error.
func (s *MeetingService) CreateMeeting(ctx context.Context, userID string, appType integrationEntity.AppType, req *dto.CreateMeetingRequest) (*entity.Meeting, *errors.AppError) {
	integration, err := s.integrations.GetByUserAndAppType(ctx, userID, appType)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load integration", err)
	}
	if integration == nil || !integration.IsConnected {
		return nil, errors.NewAppError(errors.ErrNotConnected, "no integration found for this calendar", nil)
	}

	prov, ok := s.registry.Get(appType)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnsupportedAppType, "unsupported calendar app type", nil)
	}

	accessToken, appErr := s.tokens.EnsureValidToken(ctx, integration, prov)
	if appErr != nil {
		return nil, appErr
	}

	created, err := prov.CreateEvent(ctx, accessToken, &provider.EventSpec{
		EventID:     req.EventID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Timezone:    req.Timezone,
		Attendees:   req.Attendees,
	})
	if err != nil {
		if ae, ok := err.(*errors.AppError); ok {
			return nil, ae
		}
		return nil, errors.NewAppError(errors.ErrRemoteProvider, "failed to create calendar event", err)
	}

	meeting := &entity.Meeting{
		UserID:          userID,
		EventID:         req.EventID,
		Title:           req.Title,
		Description:     req.Description,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		MeetLink:        created.ConferenceLink,
		CalendarEventID: created.RemoteEventID,
		CalendarAppType: appType,
		Status:          entity.MeetingStatusScheduled,
	}
	if _, err := s.meetings.Create(ctx, meeting); err != nil {
		logger.Error("MeetingService:CreateMeeting:LocalInsert:Error",
			"error", err, "user_id", userID, "calendar_event_id", created.RemoteEventID)
		return nil, errors.NewAppError(errors.ErrInternalServer, "calendar event created but meeting could not be saved", err)
	}

	logger.Info("MeetingService:CreateMeeting:Created",
		"user_id", userID, "meeting_id", meeting.ID, "calendar_event_id", meeting.CalendarEventID)
	return meeting, nil
}

// CancelMeeting removes the remote calendar event, then marks the local
// record cancelled. The provider is resolved from the app type recorded on
// the meeting, not from the user's current connections. A missing integration
// or an already-deleted remote event both count as the remote side being
// gone, so cancellation proceeds. Any other remote failure aborts and leaves
// the meeting scheduled.
func (s *MeetingService) CancelMeeting(ctx context.Context, userID string, meetingID string) (*entity.Meeting, *errors.AppError) {
	meeting, err := s.meetings.GetByIDAndUser(ctx, meetingID, userID)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load meeting", err)
	}
	if meeting == nil {
		return nil, errors.NewAppError(errors.ErrNotFound, "meeting not found", nil)
	}

	integration, err := s.integrations.GetByUserAndAppType(ctx, userID, meeting.CalendarAppType)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to load integration", err)
	}

	if integration != nil {
		prov, ok := s.registry.Get(meeting.CalendarAppType)
		if !ok {
			return nil, errors.NewAppError(errors.ErrUnsupportedAppType, "unsupported calendar app type", nil)
		}

		accessToken, appErr := s.tokens.EnsureValidToken(ctx, integration, prov)
		if appErr != nil {
			return nil, appErr
		}

		if err := prov.DeleteEvent(ctx, accessToken, meeting.CalendarEventID); err != nil {
			if !provider.IsEventNotFound(err) {
				logger.Error("MeetingService:CancelMeeting:RemoteDelete:Error",
					"error", err, "meeting_id", meetingID, "calendar_event_id", meeting.CalendarEventID)
				if ae, ok := err.(*errors.AppError); ok {
					return nil, ae
				}
				return nil, errors.NewAppError(errors.ErrRemoteProvider, "failed to delete calendar event", err)
			}
			logger.Warn("MeetingService:CancelMeeting:RemoteAlreadyGone",
				"meeting_id", meetingID, "calendar_event_id", meeting.CalendarEventID)
		}
	} else {
		logger.Warn("MeetingService:CancelMeeting:NoIntegration",
			"meeting_id", meetingID, "app_type", meeting.CalendarAppType)
	}

	if err := s.meetings.UpdateStatus(ctx, meeting.ID.String(), entity.MeetingStatusCancelled); err != nil {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to update meeting status", err)
	}
	meeting.Status = entity.MeetingStatusCancelled

	logger.Info("MeetingService:CancelMeeting:Cancelled",
		"user_id", userID, "meeting_id", meetingID)
	return meeting, nil
}
