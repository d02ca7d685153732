package service

import (
	"errors"
	"fmt"

	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/report"
)

var (
	ErrValidation    = errors.New("validation failed")
	ErrAlreadyClosed = errors.New("bill already closed for this date")
	ErrMailDisabled  = errors.New("email delivery is not configured")
)

// SyncError reports a mutation that was applied in memory but could not be
// saved. The in-memory ledger stays authoritative.
type SyncError struct {
	Op  string
	Err error
}

func (e *SyncError) Error() string {
	return fmt.Sprintf("%s applied but not saved: %v", e.Op, e.Err)
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

// IsSyncError reports whether err only signals a failed save.
func IsSyncError(err error) bool {
	var se *SyncError
	return errors.As(err, &se)
}

// reason labels a rejected operation for metrics.
func reason(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidQuantity):
		return "invalid_quantity"
	case errors.Is(err, ledger.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, ledger.ErrNotFound):
		return "not_found"
	case errors.Is(err, ledger.ErrInvalidPrice):
		return "invalid_price"
	case errors.Is(err, ledger.ErrInvalidPool):
		return "invalid_pool"
	case errors.Is(err, ledger.ErrSamePool):
		return "same_pool"
	case errors.Is(err, ledger.ErrTransferDirection):
		return "transfer_direction"
	case errors.Is(err, ledger.ErrInvalidDate):
		return "invalid_date"
	case errors.Is(err, ledger.ErrInvalidField):
		return "invalid_field"
	case errors.Is(err, ledger.ErrDuplicateEntry):
		return "duplicate_entry"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrAlreadyClosed):
		return "already_closed"
	case errors.Is(err, report.ErrDelivery):
		return "delivery"
	default:
		return "other"
	}
}
