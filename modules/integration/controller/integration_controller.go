package controller

import (
	"net/http"
	"net/url"

	"meetning-api/core/controller"
	coreerrors "meetning-api/core/errors"
	"meetning-api/core/logger"
	"meetning-api/core/middleware"
	"meetning-api/modules/integration/dto"
	"meetning-api/modules/integration/entity"
	"meetning-api/modules/integration/service"

	"github.com/labstack/echo/v4"
)

type IntegrationController struct {
	controller.BaseController
	service     *service.IntegrationService
	frontendURL string
}

func NewIntegrationController(svc *service.IntegrationService, frontendURL string) *IntegrationController {
	return &IntegrationController{
		BaseController: controller.NewBaseController(),
		service:        svc,
		frontendURL:    frontendURL,
	}
}

// GetAll returns the full app catalog with connection status
// GET /api/integration/all
func (c *IntegrationController) GetAll(ctx echo.Context) error {
	userID := middleware.UserID(ctx)

	items, appErr := c.service.ListIntegrations(ctx.Request().Context(), userID)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.IntegrationListResponse{
		Message:      "Fetched user integrations successfully",
		Integrations: items,
	})
}

// Check reports whether one app type is connected
// GET /api/integration/check/:appType
func (c *IntegrationController) Check(ctx echo.Context) error {
	userID := middleware.UserID(ctx)

	appType := entity.AppType(ctx.Param("appType"))
	if !entity.IsValidAppType(appType) {
		return c.BadRequest(coreerrors.ErrInvalidInput, "Invalid app type")
	}

	connected, appErr := c.service.CheckIntegration(ctx.Request().Context(), userID, appType)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.CheckIntegrationResponse{
		Message:     "Integration checked successfully",
		IsConnected: connected,
	})
}

// Connect starts the OAuth flow for an app type
// GET /api/integration/connect/:appType
func (c *IntegrationController) Connect(ctx echo.Context) error {
	userID := middleware.UserID(ctx)

	appType := entity.AppType(ctx.Param("appType"))
	if !entity.IsValidAppType(appType) {
		return c.BadRequest(coreerrors.ErrInvalidInput, "Invalid app type")
	}

	authURL, appErr := c.service.ConnectApp(ctx.Request().Context(), userID, appType)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.ConnectAppResponse{URL: authURL})
}

// GoogleCallback handles the provider redirect. It always answers with a
// redirect back to the frontend, never JSON — the browser is mid-flow here.
// GET /api/integration/google/callback
func (c *IntegrationController) GoogleCallback(ctx echo.Context) error {
	code := ctx.QueryParam("code")
	state := ctx.QueryParam("state")
	errorParam := ctx.QueryParam("error")

	if errorParam != "" {
		logger.Error("IntegrationController:GoogleCallback:ProviderError",
			"error", errorParam, "description", ctx.QueryParam("error_description"))
		return c.redirectWithError(ctx, errorParam)
	}

	_, appErr := c.service.HandleCallback(ctx.Request().Context(), code, state)
	if appErr != nil {
		return c.redirectWithError(ctx, appErr.Message)
	}

	return ctx.Redirect(http.StatusFound, c.frontendURL+"?app_type=google&success=true")
}

func (c *IntegrationController) redirectWithError(ctx echo.Context, message string) error {
	return ctx.Redirect(http.StatusFound,
		c.frontendURL+"?app_type=google&error="+url.QueryEscape(message))
}

// Disconnect removes a stored integration
// DELETE /api/integration/disconnect/:appType
func (c *IntegrationController) Disconnect(ctx echo.Context) error {
	userID := middleware.UserID(ctx)

	appType := entity.AppType(ctx.Param("appType"))
	if !entity.IsValidAppType(appType) {
		return c.BadRequest(coreerrors.ErrInvalidInput, "Invalid app type")
	}

	if appErr := c.service.DisconnectIntegration(ctx.Request().Context(), userID, appType); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}

	return ctx.JSON(http.StatusOK, dto.DisconnectResponse{
		Message: "Integration disconnected successfully",
		Success: true,
	})
}
