package handler

import (
	"go-shop-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type LedgerHandler struct {
	service service.LedgerService
}

func NewLedgerHandler(s service.LedgerService) *LedgerHandler {
	return &LedgerHandler{service: s}
}

func (h *LedgerHandler) GetItems(c *fiber.Ctx) error {
	items, err := h.service.Items(c.Params("pool"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"data": items})
}

func (h *LedgerHandler) EnsureItem(c *fiber.Ctx) error {
	var req service.EnsureItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	item, err := h.service.EnsureItem(c.Params("pool"), req)
	return respond(c, 200, "Item ready", item, err)
}

func (h *LedgerHandler) AdjustField(c *fiber.Ctx) error {
	var req service.AdjustFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	item, err := h.service.AdjustField(c.Params("pool"), param(c, "name"), req)
	return respond(c, 200, "Item updated", item, err)
}

func (h *LedgerHandler) RecordSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	event, err := h.service.RecordSale(req)
	return respond(c, 201, "Sale recorded", event, err)
}

func (h *LedgerHandler) Transfer(c *fiber.Ctx) error {
	var req service.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	event, err := h.service.Transfer(req)
	return respond(c, 201, "Transfer completed", event, err)
}

func (h *LedgerHandler) GetDays(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": h.service.Days()})
}

func (h *LedgerHandler) GetDay(c *fiber.Ctx) error {
	events, err := h.service.Day(c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"date": c.Params("date"), "data": events})
}

func (h *LedgerHandler) ReplaceDay(c *fiber.Ctx) error {
	var entries []service.EntryRequest
	if err := c.BodyParser(&entries); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	events, err := h.service.ReplaceDay(c.Params("date"), entries)
	return respond(c, 200, "Day saved", events, err)
}

func (h *LedgerHandler) AddEntry(c *fiber.Ctx) error {
	var entry service.EntryRequest
	if err := c.BodyParser(&entry); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	event, err := h.service.AddEntry(c.Params("date"), entry)
	return respond(c, 201, "Entry added", event, err)
}

func (h *LedgerHandler) RemoveEntry(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid entry ID"})
	}
	err = h.service.RemoveEntry(c.Params("date"), id)
	return respond(c, 200, "Entry removed", nil, err)
}

func (h *LedgerHandler) DeleteDay(c *fiber.Ctx) error {
	err := h.service.DeleteDay(c.Params("date"))
	return respond(c, 200, "Day deleted", nil, err)
}

func (h *LedgerHandler) GetSummary(c *fiber.Ctx) error {
	sum, err := h.service.Summary(c.Params("date"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"date": c.Params("date"), "data": sum})
}
