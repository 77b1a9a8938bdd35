package main

import (
	"strings"
	"sync"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"phonebook/docs"
	"phonebook/internal/config"
	"phonebook/internal/database"
	handlers "phonebook/internal/http/handler"
	"phonebook/internal/http/middleware"
	"phonebook/internal/service"
)

type appDeps struct {
	cfg       *config.AppConfig
	log       *zap.Logger
	registry  *prometheus.Registry
	pinger    database.Pinger
	contacts  service.ContactService
	snapshots service.SnapshotService
}

// untraced keeps probes and scrapes out of traces.
func untraced(c *fiber.Ctx) bool {
	switch c.Path() {
	case "/metrics", "/health", "/healthz":
		return true
	}
	return strings.HasPrefix(c.Path(), "/swagger")
}

func newApp(d appDeps) (*fiber.App, error) {
	promMW, err := middleware.NewPrometheusMiddleware(d.registry)
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "phonebook",
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
		BodyLimit:             64 * 1024,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  d.cfg.CORSAllowOrigins,
		ExposeHeaders: strings.Join([]string{middleware.RequestIDHeader, handlers.TotalCountHeader}, ","),
	}))
	app.Use(otelfiber.Middleware(otelfiber.WithNext(untraced)))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(d.log))
	app.Use(promMW.Handler())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.registry, promhttp.HandlerOpts{})))

	handlers.RegisterRoutes(app, d.pinger, d.contacts, d.snapshots)

	// Swagger UI with dynamic host and scheme. docs.SwaggerInfo is shared, so the
	// write and the doc rendering happen under one lock.
	var swaggerMu sync.Mutex
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		swaggerMu.Lock()
		defer swaggerMu.Unlock()
		docs.SwaggerInfo.Host = utils.CopyString(c.Get("Host"))
		docs.SwaggerInfo.Schemes = []string{utils.CopyString(scheme)}

		return swagger.HandlerDefault(c)
	})

	return app, nil
}
