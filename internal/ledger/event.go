package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the ISO 8601 calendar date used to group events.
const DateLayout = "2006-01-02"

// SaleEvent is one entry of a day's log. UnitPrice is the price at the time
// the event was recorded, never a reference to the item's current price.
type SaleEvent struct {
	ID          uuid.UUID       `json:"id"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Pool        Pool            `json:"pool"`
	IsTransfer  bool            `json:"isTransfer"`
}

// NewSaleEvent builds a validated event with a fresh ID.
func NewSaleEvent(pool Pool, name string, qty int, price decimal.Decimal, isTransfer bool) (SaleEvent, error) {
	e := SaleEvent{
		ID:          uuid.New(),
		ProductName: strings.TrimSpace(name),
		Quantity:    qty,
		UnitPrice:   price,
		Pool:        pool,
		IsTransfer:  isTransfer,
	}
	if err := e.Validate(); err != nil {
		return SaleEvent{}, err
	}
	return e, nil
}

func (e SaleEvent) Validate() error {
	if !e.Pool.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPool, e.Pool)
	}
	if e.ProductName == "" {
		return ErrInvalidName
	}
	if e.Quantity <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQuantity, e.Quantity)
	}
	if err := checkPrice(e.UnitPrice); err != nil {
		return err
	}
	return nil
}

// Amount is quantity * unit price.
func (e SaleEvent) Amount() decimal.Decimal {
	return e.UnitPrice.Mul(decimal.NewFromInt(int64(e.Quantity)))
}

func (e SaleEvent) equal(o SaleEvent) bool {
	return e.ID == o.ID &&
		e.ProductName == o.ProductName &&
		e.Quantity == o.Quantity &&
		e.UnitPrice.Equal(o.UnitPrice) &&
		e.Pool == o.Pool &&
		e.IsTransfer == o.IsTransfer
}

// ParseDate checks that s is a strict YYYY-MM-DD date.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil || t.Format(DateLayout) != s {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return s, nil
}
