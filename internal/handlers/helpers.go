package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/freelanceflow/backend/internal/services/payments"
	"github.com/freelanceflow/backend/internal/services/projects"
	"github.com/freelanceflow/backend/internal/store"
)

func itoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

// projectFilter maps the optional ?project_id= query parameter to an
// explicit store filter. No parameter means all projects.
func projectFilter(c *fiber.Ctx) store.ProjectFilter {
	if id := c.Query("project_id"); id != "" {
		return store.ByProject(id)
	}
	return store.AllProjects()
}

func fail(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}

// serviceError translates workflow errors into HTTP responses.
func serviceError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, payments.ErrValidation), errors.Is(err, projects.ErrValidation):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, payments.ErrDisputeOpen),
		errors.Is(err, payments.ErrDisputeSettled),
		errors.Is(err, payments.ErrMilestoneFinal),
		errors.Is(err, payments.ErrEscrowUnlinked),
		errors.Is(err, payments.ErrEscrowNotHeld):
		return fail(c, fiber.StatusConflict, err.Error())
	default:
		return fail(c, fiber.StatusInternalServerError, "internal error")
	}
}
