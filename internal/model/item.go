package model

import (
	"go-shop-ledger/internal/ledger"

	"github.com/shopspring/decimal"
)

// Item is the stored form of one pool's product record.
type Item struct {
	BaseModel
	Pool           string          `gorm:"type:varchar(8);not null;uniqueIndex:idx_items_pool_name" json:"pool"`
	Name           string          `gorm:"type:varchar(255);not null;uniqueIndex:idx_items_pool_name" json:"name"`
	Position       int             `gorm:"not null;default:0" json:"position"` // listing order within the pool
	Opening        int             `gorm:"not null;default:0" json:"opening"`
	UnitPrice      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"unit_price"`
	Inward         int             `gorm:"not null;default:0" json:"inward"`
	TransferredOut int             `gorm:"not null;default:0" json:"transferred_out"`
	Sold           int             `gorm:"not null;default:0" json:"sold"`
}

func (Item) TableName() string {
	return "ledger_items"
}

// NewItem converts a ledger item for storage.
func NewItem(pool ledger.Pool, position int, it ledger.Item) Item {
	return Item{
		Pool:           string(pool),
		Name:           it.Name,
		Position:       position,
		Opening:        it.Opening,
		UnitPrice:      it.UnitPrice,
		Inward:         it.Inward,
		TransferredOut: it.TransferredOut,
		Sold:           it.Sold,
	}
}

// ToLedger converts the record back to a ledger item.
func (i Item) ToLedger() ledger.Item {
	return ledger.Item{
		Name:           i.Name,
		Opening:        i.Opening,
		UnitPrice:      i.UnitPrice,
		Inward:         i.Inward,
		TransferredOut: i.TransferredOut,
		Sold:           i.Sold,
	}
}
