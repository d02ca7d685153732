package repository

import (
	"fmt"

	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Change is the part of the ledger touched by one mutation: whole pools and
// whole days. An empty day removes the stored entries of that date.
type Change struct {
	Pools map[ledger.Pool][]ledger.Item
	Days  map[string][]ledger.SaleEvent
}

// LedgerRepository mirrors the in-memory ledger into postgres. Every write
// replaces the affected pools and days inside one transaction.
type LedgerRepository interface {
	Load() (ledger.Snapshot, error)
	Apply(change Change) error
	ReplaceAll(snap ledger.Snapshot) error
}

type ledgerRepo struct {
	db *gorm.DB
}

func NewLedgerRepo(db *gorm.DB) LedgerRepository {
	return &ledgerRepo{db}
}

func (r *ledgerRepo) Load() (ledger.Snapshot, error) {
	snap := ledger.Snapshot{SalesByDate: map[string][]ledger.SaleEvent{}}

	var items []model.Item
	if err := r.db.Order("pool ASC, position ASC").Find(&items).Error; err != nil {
		return snap, err
	}
	for _, it := range items {
		switch ledger.Pool(it.Pool) {
		case ledger.PoolMRP:
			snap.Items.MRP = append(snap.Items.MRP, it.ToLedger())
		case ledger.PoolBar:
			snap.Items.Bar = append(snap.Items.Bar, it.ToLedger())
		default:
			return snap, fmt.Errorf("%w: stored item %q has pool %q", ledger.ErrInvalidPool, it.Name, it.Pool)
		}
	}

	var entries []model.SaleEntry
	if err := r.db.Order("date ASC, seq ASC").Find(&entries).Error; err != nil {
		return snap, err
	}
	for _, e := range entries {
		snap.SalesByDate[e.Date] = append(snap.SalesByDate[e.Date], e.ToLedger())
	}
	return snap, nil
}

func (r *ledgerRepo) Apply(change Change) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for pool, items := range change.Pools {
			if err := savePool(tx, pool, items); err != nil {
				return err
			}
		}
		for date, events := range change.Days {
			if err := saveDay(tx, date, events); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ledgerRepo) ReplaceAll(snap ledger.Snapshot) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.SaleEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if err := savePool(tx, ledger.PoolMRP, snap.Items.MRP); err != nil {
			return err
		}
		if err := savePool(tx, ledger.PoolBar, snap.Items.Bar); err != nil {
			return err
		}
		for date, events := range snap.SalesByDate {
			if err := saveDay(tx, date, events); err != nil {
				return err
			}
		}
		return nil
	})
}

// savePool upserts the pool's items by (pool, name) and drops stored items
// that are no longer listed.
func savePool(tx *gorm.DB, pool ledger.Pool, items []ledger.Item) error {
	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}
	stale := tx.Where("pool = ?", string(pool))
	if len(names) > 0 {
		stale = stale.Where("name NOT IN ?", names)
	}
	if err := stale.Delete(&model.Item{}).Error; err != nil {
		return err
	}
	if len(items) == 0 {
		return nil
	}

	records := make([]model.Item, 0, len(items))
	for i, it := range items {
		records = append(records, model.NewItem(pool, i, it))
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "pool"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"position", "opening", "unit_price", "inward", "transferred_out", "sold", "updated_at",
		}),
	}).Create(&records).Error
}

func saveDay(tx *gorm.DB, date string, events []ledger.SaleEvent) error {
	if err := tx.Where("date = ?", date).Delete(&model.SaleEntry{}).Error; err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}
	entries := make([]model.SaleEntry, 0, len(events))
	for i, e := range events {
		entries = append(entries, model.NewSaleEntry(date, i, e))
	}
	return tx.Create(&entries).Error
}
