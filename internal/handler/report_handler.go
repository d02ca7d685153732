package handler

import (
	"fmt"

	"go-shop-ledger/internal/report"
	"go-shop-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	service service.ReportService
}

func NewReportHandler(s service.ReportService) *ReportHandler {
	return &ReportHandler{service: s}
}

// CloseBill sends the day's report. A day without sales answers 200 with
// success false.
func (h *ReportHandler) CloseBill(c *fiber.Ctx) error {
	res, err := h.service.CloseBill(c.Params("date"))
	if err != nil && !service.IsSyncError(err) {
		return respondError(c, err)
	}
	body := fiber.Map{"success": res.Success, "message": res.Message}
	if res.Report != nil {
		body["data"] = res.Report
	}
	if err != nil {
		body["warning"] = err.Error()
	}
	return c.JSON(body)
}

func (h *ReportHandler) Export(c *fiber.Ctx) error {
	date := c.Params("date")
	data, err := h.service.Export(date)
	if err != nil {
		return respondError(c, err)
	}
	c.Attachment(fmt.Sprintf("sales_%s.xlsx", date))
	c.Set(fiber.HeaderContentType, report.ContentTypeXLSX)
	return c.Send(data)
}
