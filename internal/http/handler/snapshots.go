package handler

import (
	"github.com/gofiber/fiber/v2"

	"phonebook/internal/service"
)

// CreateSnapshot godoc
// @Summary     Export the phonebook
// @Description Writes every contact to object storage and returns a presigned download URL.
// @Tags        snapshots
// @Produce     json
// @Success     201 {object} model.Snapshot
// @Failure     503 {object} errorPayload "object storage not configured"
// @Router      /snapshots [post]
func CreateSnapshot(svc service.SnapshotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snap, err := svc.Export(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(snap)
	}
}

// RestoreSnapshot godoc
// @Summary     Restore a snapshot
// @Description Upserts every entry of the snapshot by name. Contacts absent from it are kept.
// @Tags        snapshots
// @Produce     json
// @Param       id  path     string true "snapshot id (uuid)"
// @Success     200 {object} service.RestoreResult
// @Failure     400 {object} errorPayload
// @Failure     404 {object} errorPayload
// @Router      /snapshots/{id}/restore [post]
func RestoreSnapshot(svc service.SnapshotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := svc.Restore(c.UserContext(), c.Params("id"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// DeleteSnapshot godoc
// @Summary  Delete a snapshot
// @Tags     snapshots
// @Param    id  path string true "snapshot id (uuid)"
// @Success  204
// @Failure  400 {object} errorPayload
// @Router   /snapshots/{id} [delete]
func DeleteSnapshot(svc service.SnapshotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.Delete(c.UserContext(), c.Params("id")); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// snapshotsDisabled answers every snapshot route when object storage is not configured.
func snapshotsDisabled(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusServiceUnavailable, "SNAPSHOTS_DISABLED", "object storage is not configured")
}
