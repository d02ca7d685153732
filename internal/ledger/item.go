package ledger

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Pool is one of the two independent stock and price contexts.
type Pool string

const (
	PoolMRP Pool = "MRP"
	PoolBar Pool = "Bar"
)

// Pools lists every pool in display order.
var Pools = []Pool{PoolMRP, PoolBar}

// ParsePool accepts the pool name in any letter case.
func ParsePool(s string) (Pool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mrp":
		return PoolMRP, nil
	case "bar":
		return PoolBar, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPool, s)
}

func (p Pool) Valid() bool {
	return p == PoolMRP || p == PoolBar
}

// Field names an item attribute that can be set directly.
type Field string

const (
	FieldOpening   Field = "opening"
	FieldUnitPrice Field = "unitPrice"
	FieldInward    Field = "inward"
)

func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldOpening, FieldUnitPrice, FieldInward:
		return Field(s), nil
	case "price":
		return FieldUnitPrice, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidField, s)
}

// Item is the stock record of one product in one pool.
type Item struct {
	Name           string          `json:"name"`
	Opening        int             `json:"opening"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	Inward         int             `json:"inward"`
	TransferredOut int             `json:"transferredOut"`
	Sold           int             `json:"sold"`
}

// NewItem returns an item with zeroed counters.
func NewItem(name string, price decimal.Decimal) (Item, error) {
	it := Item{Name: strings.TrimSpace(name), UnitPrice: price}
	if err := it.Validate(); err != nil {
		return Item{}, err
	}
	return it, nil
}

// Prices are stored as numeric(12,2), so they stay below 1e10 with at most
// two decimal places.
var maxUnitPrice = decimal.New(1, 10)

// MaxUnits caps a single opening or inward count, keeping balance sums far
// from int overflow.
const MaxUnits = math.MaxInt32

func checkPrice(p decimal.Decimal) error {
	switch {
	case p.IsNegative():
		return fmt.Errorf("%w: got %s", ErrInvalidPrice, p)
	case !p.Equal(p.Truncate(2)):
		return fmt.Errorf("%w: %s has more than two decimals", ErrInvalidPrice, p)
	case p.GreaterThanOrEqual(maxUnitPrice):
		return fmt.Errorf("%w: %s is too large", ErrInvalidPrice, p)
	}
	return nil
}

// Closing is opening + inward - sold - transferredOut.
func (it Item) Closing() int {
	return it.Opening + it.Inward - it.Sold - it.TransferredOut
}

// Validate checks the record invariants: non-negative fields and a
// non-negative closing balance.
func (it Item) Validate() error {
	if it.Name == "" {
		return ErrInvalidName
	}
	if err := checkPrice(it.UnitPrice); err != nil {
		return fmt.Errorf("%s: %w", it.Name, err)
	}
	if it.Opening < 0 || it.Inward < 0 || it.TransferredOut < 0 || it.Sold < 0 {
		return fmt.Errorf("%w: negative counter on %s", ErrInvalidQuantity, it.Name)
	}
	if it.Closing() < 0 {
		return fmt.Errorf("%w: closing of %s would be %d", ErrInsufficientStock, it.Name, it.Closing())
	}
	return nil
}

func (it Item) equal(o Item) bool {
	return it.Name == o.Name &&
		it.Opening == o.Opening &&
		it.UnitPrice.Equal(o.UnitPrice) &&
		it.Inward == o.Inward &&
		it.TransferredOut == o.TransferredOut &&
		it.Sold == o.Sold
}
