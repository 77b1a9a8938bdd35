package handler

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"phonebook/internal/database"
	"phonebook/internal/http/middleware"
	"phonebook/internal/service"
)

const healthTimeout = 2 * time.Second

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// db may be nil for stores without a connection (memory); snapshots may be nil when
// object storage is not configured.
func RegisterRoutes(app *fiber.App, db database.Pinger, contacts service.ContactService, snapshots service.SnapshotService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/info", PhonebookInfo(contacts))

	app.Get("/contacts", ListContacts(contacts))
	app.Post("/contacts", CreateContact(contacts))
	app.Post("/contacts/upsert", UpsertContact(contacts))
	app.Get("/contacts/:id", GetContact(contacts))
	app.Put("/contacts/:id", UpdateContact(contacts))
	app.Delete("/contacts/:id", DeleteContact(contacts))

	if snapshots == nil {
		app.Post("/snapshots", snapshotsDisabled)
		app.Post("/snapshots/:id/restore", snapshotsDisabled)
		app.Delete("/snapshots/:id", snapshotsDisabled)
		return
	}
	app.Post("/snapshots", CreateSnapshot(snapshots))
	app.Post("/snapshots/:id/restore", RestoreSnapshot(snapshots))
	app.Delete("/snapshots/:id", DeleteSnapshot(snapshots))
}

// HealthCheck godoc
// @Summary  Readiness probe
// @Tags     health
// @Produce  json
// @Success  200 {object} map[string]string
// @Failure  503 {object} errorPayload
// @Router   /health [get]
func HealthCheck(db database.Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				middleware.LoggerFrom(c).Warn("health_check_failed", zap.Error(err))
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe godoc
// @Summary  Liveness probe
// @Tags     health
// @Success  200
// @Router   /healthz [get]
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
