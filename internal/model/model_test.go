package model

import (
	"testing"

	"go-shop-ledger/internal/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestItemConversion(t *testing.T) {
	it := ledger.Item{Name: "Soda", Opening: 10, UnitPrice: decimal.RequireFromString("19.50"), Inward: 2, TransferredOut: 4, Sold: 3}
	rec := NewItem(ledger.PoolBar, 3, it)

	assert.Equal(t, "Bar", rec.Pool)
	assert.Equal(t, 3, rec.Position)
	back := rec.ToLedger()
	assert.Equal(t, it.Name, back.Name)
	assert.Equal(t, it.Closing(), back.Closing())
	assert.True(t, it.UnitPrice.Equal(back.UnitPrice))
}

func TestSaleEntryKeepsEventID(t *testing.T) {
	e := ledger.SaleEvent{ID: uuid.New(), ProductName: "Cola", Quantity: 2, UnitPrice: decimal.NewFromInt(15), Pool: ledger.PoolMRP, IsTransfer: true}
	entry := NewSaleEntry("2024-03-15", 0, e)

	assert.Equal(t, e.ID, entry.ID)
	assert.NoError(t, entry.BeforeCreate(nil))
	assert.Equal(t, e.ID, entry.ID)

	back := entry.ToLedger()
	assert.Equal(t, e.ID, back.ID)
	assert.Equal(t, ledger.PoolMRP, back.Pool)
	assert.True(t, back.IsTransfer)
}

func TestBaseModelAssignsID(t *testing.T) {
	var b BaseModel
	assert.NoError(t, b.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, b.ID)
}
