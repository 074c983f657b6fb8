package controller

import (
	"net/http"

	"meetning-api/core/controller"
	coreerrors "meetning-api/core/errors"
	"meetning-api/core/middleware"
	integrationEntity "meetning-api/modules/integration/entity"
	"meetning-api/modules/meeting/dto"
	"meetning-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

type MeetingController struct {
	controller.BaseController
	service *service.MeetingService
}

func NewMeetingController(svc *service.MeetingService) *MeetingController {
	return &MeetingController{
		BaseController: controller.NewBaseController(),
		service:        svc,
	}
}

// Create schedules a meeting: remote calendar event with conference link
// first, local record second.
// POST /api/meetings
func (c *MeetingController) Create(ctx echo.Context) error {
	userID := middleware.UserID(ctx)

	var req dto.CreateMeetingRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(coreerrors.ErrInvalidRequestData, "Invalid request body")
	}
	if req.EventID == "" {
		return c.BadRequest(coreerrors.ErrInvalidRequestData, "eventId is required")
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		return c.BadRequest(coreerrors.ErrInvalidRequestData, "startTime and endTime are required")
	}
	if req.Title == "" {
		req.Title = "New Meeting"
	}
	if req.Timezone == "" {
		req.Timezone = "UTC"
	}

	meeting, appErr := c.service.CreateMeeting(ctx.Request().Context(), userID,
		integrationEntity.AppTypeGoogleMeetAndCalendar, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusCreated, dto.CreateMeetingResponse{
		Message:         "Meeting created successfully",
		MeetLink:        meeting.MeetLink,
		CalendarEventID: meeting.CalendarEventID,
		Meeting:         meeting,
	})
}

// Cancel removes the remote event and marks the meeting cancelled.
// DELETE /api/meetings/:meetingId
func (c *MeetingController) Cancel(ctx echo.Context) error {
	userID := middleware.UserID(ctx)

	meetingID := ctx.Param("meetingId")
	if meetingID == "" {
		return c.BadRequest(coreerrors.ErrInvalidInput, "meetingId is required")
	}

	meeting, appErr := c.service.CancelMeeting(ctx.Request().Context(), userID, meetingID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.CancelMeetingResponse{
		Message: "Meeting cancelled successfully",
		Result: dto.CancelMeetingResult{
			Success: true,
			Meeting: meeting,
		},
	})
}
