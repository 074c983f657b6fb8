package router

import (
	"meetning-api/core/middleware"
	"meetning-api/modules/meeting/controller"

	"github.com/labstack/echo/v4"
)

type MeetingRouter struct {
	Controller *controller.MeetingController
}

func NewMeetingRouter(ctrl *controller.MeetingController) *MeetingRouter {
	return &MeetingRouter{Controller: ctrl}
}

func (r *MeetingRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	g := e.Group("/api/meetings", mw.AuthMiddleware())
	g.POST("", r.Controller.Create)
	g.DELETE("/:meetingId", r.Controller.Cancel)
}
