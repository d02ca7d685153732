package handler

import (
	"time"

	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SystemHandler struct {
	service service.LedgerService
}

func NewSystemHandler(s service.LedgerService) *SystemHandler {
	return &SystemHandler{service: s}
}

func (h *SystemHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"today":  h.service.Today(),
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// GetSnapshot returns the whole ledger as {items:{mrp,bar}, salesByDate}.
func (h *SystemHandler) GetSnapshot(c *fiber.Ctx) error {
	return c.JSON(h.service.Snapshot())
}

func (h *SystemHandler) Restore(c *fiber.Ctx) error {
	var snap ledger.Snapshot
	if err := c.BodyParser(&snap); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	err := h.service.Restore(snap)
	return respond(c, 200, "Ledger restored", nil, err)
}

func (h *SystemHandler) Reset(c *fiber.Ctx) error {
	err := h.service.Reset()
	return respond(c, 200, "Ledger reset", h.service.Snapshot(), err)
}
