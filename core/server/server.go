package server

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"meetning-api/core/cache"
	"meetning-api/core/config"
	"meetning-api/core/constants"
	"meetning-api/core/database"
	"meetning-api/core/logger"
	coreMiddleware "meetning-api/core/middleware"
	"meetning-api/modules/integration"
	"meetning-api/modules/meeting"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// Run wires configuration, storage, and the modules into an Echo server and
// blocks until shutdown.
func Run() error {
	logger.Init(slog.LevelInfo)

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	db, err := database.InitDB(cfg.Database)
	if err != nil {
		return err
	}
	defer db.Close()

	// Redis backs the refresh lock when configured; a single-process
	// deployment falls back to the in-memory locker.
	var locks cache.Locker
	if cfg.Redis.Addr != "" {
		locks, err = cache.NewRedisLocker(cfg.Redis)
		if err != nil {
			return err
		}
	} else {
		logger.Warn("Server:Run", "message", "REDIS_ADDR not set, using in-process refresh locks")
		locks = cache.NewMemoryLocker()
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("Request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
			)
			return nil
		},
	}))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	mw := coreMiddleware.NewMiddleware(cfg.JWT)
	integrationModule := integration.Init(e, cfg, &db, locks, mw)
	meeting.Init(e, &db, integrationModule, mw)

	go func() {
		if err := e.Start(":" + cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			logger.Error("Server:Run:Start", "error", err)
		}
	}()
	logger.Info("Server started", "port", cfg.Server.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), constants.DefaultTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return err
	}
	logger.Info("Server stopped")
	return nil
}
