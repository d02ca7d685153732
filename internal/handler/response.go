package handler

import (
	"errors"
	"net/url"

	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/report"
	"go-shop-ledger/internal/service"

	"github.com/gofiber/fiber/v2"
)

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ledger.ErrInsufficientStock),
		errors.Is(err, ledger.ErrTransferDirection):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrInvalidQuantity),
		errors.Is(err, ledger.ErrInvalidPrice),
		errors.Is(err, ledger.ErrInvalidPool),
		errors.Is(err, ledger.ErrSamePool),
		errors.Is(err, ledger.ErrInvalidDate),
		errors.Is(err, ledger.ErrInvalidField),
		errors.Is(err, ledger.ErrInvalidName),
		errors.Is(err, ledger.ErrDuplicateItem),
		errors.Is(err, ledger.ErrDuplicateEntry),
		errors.Is(err, service.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, service.ErrAlreadyClosed):
		return fiber.StatusConflict
	case errors.Is(err, report.ErrDelivery):
		return fiber.StatusBadGateway
	case errors.Is(err, service.ErrMailDisabled):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
}

// respond writes data, or the error when the operation was rejected. A
// SyncError still succeeds and is reported as a warning.
func respond(c *fiber.Ctx, status int, message string, data interface{}, err error) error {
	if err != nil && !service.IsSyncError(err) {
		return respondError(c, err)
	}
	body := fiber.Map{"message": message, "data": data}
	if err != nil {
		body["warning"] = err.Error()
	}
	return c.Status(status).JSON(body)
}

// param returns a path parameter with percent-escapes decoded.
func param(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}
