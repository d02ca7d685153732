package handler

import (
	"strconv"

	"go-shop-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	service service.DashboardService
}

func NewDashboardHandler(s service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: s}
}

// GetDailyTotals returns per-date sales rows, newest first.
// Query params: days (default all)
func (h *DashboardHandler) GetDailyTotals(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "0"))
	if err != nil || days < 0 {
		days = 0
	}
	return c.JSON(fiber.Map{
		"period": days,
		"data":   h.service.GetDailyTotals(days),
	})
}

// GetDashboardStats returns overview statistics
func (h *DashboardHandler) GetDashboardStats(c *fiber.Ctx) error {
	stats, err := h.service.GetDashboardStats()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch dashboard stats"})
	}
	return c.JSON(stats)
}
