package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/freelanceflow/backend/internal/store"
)

type NotificationHandler struct {
	Store *store.Store
}

func NewNotificationHandler(s *store.Store) *NotificationHandler {
	return &NotificationHandler{Store: s}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 50)
	rows, err := h.Store.Notifications(c.Context(), limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}
