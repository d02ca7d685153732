package service

import (
	"fmt"

	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/pkg/validator"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Quantities are left to the ledger so that a non-positive value surfaces as
// ledger.ErrInvalidQuantity.

type EnsureItemRequest struct {
	Name      string          `json:"name" validate:"required"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Opening   int             `json:"opening" validate:"gte=0"`
}

type AdjustFieldRequest struct {
	Field string          `json:"field" validate:"required"`
	Value decimal.Decimal `json:"value"`
}

type SaleRequest struct {
	Pool        string           `json:"pool" validate:"required,pool"`
	ProductName string           `json:"productName" validate:"required"`
	Quantity    int              `json:"quantity"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	Date        string           `json:"date" validate:"omitempty,isodate"`
}

// TransferRequest moves stock between pools; From and To default to MRP and
// Bar.
type TransferRequest struct {
	From        string `json:"from" validate:"omitempty,pool"`
	To          string `json:"to" validate:"omitempty,pool"`
	ProductName string `json:"productName" validate:"required"`
	Quantity    int    `json:"quantity"`
	Date        string `json:"date" validate:"omitempty,isodate"`
}

// EntryRequest is one manually edited log entry.
type EntryRequest struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"productName" validate:"required"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Pool        string          `json:"pool" validate:"required,pool"`
	IsTransfer  bool            `json:"isTransfer"`
}

func (r EntryRequest) event() (ledger.SaleEvent, error) {
	pool, err := ledger.ParsePool(r.Pool)
	if err != nil {
		return ledger.SaleEvent{}, err
	}
	return ledger.SaleEvent{
		ID:          r.ID,
		ProductName: r.ProductName,
		Quantity:    r.Quantity,
		UnitPrice:   r.UnitPrice,
		Pool:        pool,
		IsTransfer:  r.IsTransfer,
	}, nil
}

func validate(req interface{}) error {
	if errs := validator.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrValidation, validator.Message(errs))
	}
	return nil
}
