// Package server assembles the fiber application: middleware, routes, static assets and metrics.
package server

import (
	"activity-signup/config"
	api "activity-signup/internal/oapi"
	"activity-signup/internal/transport/http/middleware"
	handlers_fiber "activity-signup/internal/transport/http/server/handlers-fiber"
	"activity-signup/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// New builds the HTTP application for the activity registry.
func New(cfg *config.Config, log *zap.SugaredLogger, uc usecase.InterfaceUsecase) *fiber.App {
	serv := fiber.New(fiber.Config{
		ReadTimeout:           cfg.HTTP.RequestTimeout,
		WriteTimeout:          cfg.HTTP.RequestTimeout,
		CaseSensitive:         true,
		DisableStartupMessage: true,
	})
	serv.Use(recover.New())
	serv.Use(requestid.New())
	serv.Use(middleware.RequestLogger(log))
	serv.Use(middleware.Metrics())

	serv.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	serv.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	if cfg.Static.Dir != "" {
		serv.Static("/static", cfg.Static.Dir)
	}

	h := handlers_fiber.NewHandler(log, uc, cfg.Static.Index)
	api.RegisterHandlers(serv, h)

	return serv
}
