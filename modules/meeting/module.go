package meeting

import (
	"meetning-api/core/database"
	"meetning-api/core/middleware"
	"meetning-api/modules/integration"
	"meetning-api/modules/meeting/controller"
	"meetning-api/modules/meeting/repository"
	"meetning-api/modules/meeting/router"
	"meetning-api/modules/meeting/service"

	"github.com/labstack/echo/v4"
)

func Init(e *echo.Echo, db database.IDatabase, integrations *integration.Module, mw *middleware.Middleware) {
	repo := repository.NewMeetingRepository(db)
	svc := service.NewMeetingService(repo, integrations.Repository, integrations.Registry, integrations.Tokens)
	ctrl := controller.NewMeetingController(svc)
	router.NewMeetingRouter(ctrl).Setup(e, mw)
}
