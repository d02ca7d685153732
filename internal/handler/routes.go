package handler

import "github.com/gofiber/fiber/v2"

// RegisterRoutes mounts the ledger API on api (normally /api/v1).
func RegisterRoutes(api fiber.Router, lh *LedgerHandler, dh *DashboardHandler, rh *ReportHandler, sh *SystemHandler) {
	// Items
	api.Get("/items/:pool", lh.GetItems)
	api.Post("/items/:pool", lh.EnsureItem)
	api.Put("/items/:pool/:name", lh.AdjustField)

	// Sales & transfers
	api.Post("/sales", lh.RecordSale)
	api.Post("/transfers", lh.Transfer)

	// Day log
	api.Get("/days", lh.GetDays)
	api.Get("/days/:date", lh.GetDay)
	api.Put("/days/:date", lh.ReplaceDay)
	api.Delete("/days/:date", lh.DeleteDay)
	api.Post("/days/:date/entries", lh.AddEntry)
	api.Delete("/days/:date/entries/:id", lh.RemoveEntry)

	// Reports
	api.Get("/days/:date/summary", lh.GetSummary)
	api.Get("/days/:date/export.xlsx", rh.Export)
	api.Post("/days/:date/close", rh.CloseBill)

	// Dashboard
	api.Get("/dashboard/daily", dh.GetDailyTotals)
	api.Get("/dashboard/stats", dh.GetDashboardStats)

	// Whole ledger
	api.Get("/snapshot", sh.GetSnapshot)
	api.Put("/snapshot", sh.Restore)
	api.Post("/reset", sh.Reset)
}
