package ledger

import "errors"

// Errors returned by ledger operations. A call that fails with any of these
// leaves the ledger exactly as it was.
var (
	ErrInvalidQuantity   = errors.New("quantity must be a positive integer")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrNotFound          = errors.New("item not found")
	ErrInvalidPrice      = errors.New("price must be non-negative, below 1e10, with at most two decimals")
	ErrInvalidPool       = errors.New("invalid pool, use MRP or Bar")
	ErrSamePool          = errors.New("source and destination pool must differ")
	ErrTransferDirection = errors.New("transfers from Bar to MRP are disabled")
	ErrInvalidDate       = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidField      = errors.New("field must be opening, unitPrice or inward")
	ErrInvalidName       = errors.New("product name is required")
	ErrDuplicateItem     = errors.New("duplicate item in pool")
	ErrDuplicateEntry    = errors.New("duplicate entry id")
)
