package integration

import (
	"meetning-api/core/cache"
	"meetning-api/core/config"
	"meetning-api/core/database"
	"meetning-api/core/middleware"
	"meetning-api/modules/integration/controller"
	"meetning-api/modules/integration/entity"
	"meetning-api/modules/integration/provider"
	"meetning-api/modules/integration/repository"
	"meetning-api/modules/integration/router"
	"meetning-api/modules/integration/service"

	"github.com/labstack/echo/v4"
)

// Module bundles the pieces other modules need: the repository and token
// service for credential access, and the registry for provider lookup.
type Module struct {
	Repository repository.IntegrationRepository
	Registry   *provider.Registry
	Tokens     *service.TokenService
}

func Init(e *echo.Echo, cfg *config.Config, db database.IDatabase, locks cache.Locker, mw *middleware.Middleware) *Module {
	repo := repository.NewIntegrationRepository(db)

	registry := provider.NewRegistry()
	google := provider.NewGoogleProvider(cfg.GoogleAPI)
	registry.Register(entity.AppTypeGoogleMeetAndCalendar, google)

	state := service.NewStateCodec(cfg.JWT.Secret)
	svc := service.NewIntegrationService(repo, registry, state)
	tokens := service.NewTokenService(repo, locks)

	ctrl := controller.NewIntegrationController(svc, cfg.Frontend.IntegrationURL)
	router.NewIntegrationRouter(ctrl).Setup(e, mw)

	return &Module{
		Repository: repo,
		Registry:   registry,
		Tokens:     tokens,
	}
}
