package router

import (
	"meetning-api/core/middleware"
	"meetning-api/modules/integration/controller"

	"github.com/labstack/echo/v4"
)

type IntegrationRouter struct {
	Controller *controller.IntegrationController
}

func NewIntegrationRouter(ctrl *controller.IntegrationController) *IntegrationRouter {
	return &IntegrationRouter{Controller: ctrl}
}

func (r *IntegrationRouter) Setup(e *echo.Echo, mw *middleware.Middleware) {
	// The OAuth callback is hit by the provider redirect, not by our client,
	// so it cannot carry an auth token.
	e.GET("/api/integration/google/callback", r.Controller.GoogleCallback)

	g := e.Group("/api/integration", mw.AuthMiddleware())
	g.GET("/all", r.Controller.GetAll)
	g.GET("/check/:appType", r.Controller.Check)
	g.GET("/connect/:appType", r.Controller.Connect)
	g.DELETE("/disconnect/:appType", r.Controller.Disconnect)
}
