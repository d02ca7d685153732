package model

import (
	"go-shop-ledger/internal/ledger"

	"github.com/shopspring/decimal"
)

// SaleEntry is one stored event of a day's log. The ID is the event ID.
type SaleEntry struct {
	BaseModel
	Date        string          `gorm:"type:varchar(10);not null;index:idx_sale_entries_date_seq" json:"date"`
	Seq         int             `gorm:"not null;index:idx_sale_entries_date_seq" json:"seq"` // position within the day
	ProductName string          `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"unit_price"` // snapshot of the price at sale time
	Pool        string          `gorm:"type:varchar(8);not null" json:"pool"`
	IsTransfer  bool            `gorm:"not null;default:false" json:"is_transfer"`
}

func (SaleEntry) TableName() string {
	return "sale_entries"
}

func NewSaleEntry(date string, seq int, e ledger.SaleEvent) SaleEntry {
	entry := SaleEntry{
		Date:        date,
		Seq:         seq,
		ProductName: e.ProductName,
		Quantity:    e.Quantity,
		UnitPrice:   e.UnitPrice,
		Pool:        string(e.Pool),
		IsTransfer:  e.IsTransfer,
	}
	entry.ID = e.ID
	return entry
}

func (s SaleEntry) ToLedger() ledger.SaleEvent {
	return ledger.SaleEvent{
		ID:          s.ID,
		ProductName: s.ProductName,
		Quantity:    s.Quantity,
		UnitPrice:   s.UnitPrice,
		Pool:        ledger.Pool(s.Pool),
		IsTransfer:  s.IsTransfer,
	}
}
