package repository

import (
	"go-shop-ledger/internal/ledger"
	"go-shop-ledger/internal/model"

	"gorm.io/gorm"
)

// SummaryRepository stores the per-day units projection.
type SummaryRepository interface {
	SaveDaily(date string, units map[string]ledger.Units) error
	FindByDate(date string) (map[string]ledger.Units, error)
	FindAll() (map[string]map[string]ledger.Units, error)
	DeleteDaily(date string) error
	DeleteAll() error
}

type summaryRepo struct {
	db *gorm.DB
}

func NewSummaryRepo(db *gorm.DB) SummaryRepository {
	return &summaryRepo{db}
}

// SaveDaily overwrites the projection stored for date.
func (r *summaryRepo) SaveDaily(date string, units map[string]ledger.Units) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("date = ?", date).Delete(&model.DailySalesSummary{}).Error; err != nil {
			return err
		}
		if len(units) == 0 {
			return nil
		}
		rows := make([]model.DailySalesSummary, 0, len(units))
		for name, u := range units {
			rows = append(rows, model.DailySalesSummary{
				Date:        date,
				ProductName: name,
				MRPUnits:    u.MRP,
				BarUnits:    u.Bar,
			})
		}
		return tx.Create(&rows).Error
	})
}

func (r *summaryRepo) FindByDate(date string) (map[string]ledger.Units, error) {
	var rows []model.DailySalesSummary
	if err := r.db.Where("date = ?", date).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]ledger.Units, len(rows))
	for _, row := range rows {
		out[row.ProductName] = ledger.Units{MRP: row.MRPUnits, Bar: row.BarUnits}
	}
	return out, nil
}

func (r *summaryRepo) FindAll() (map[string]map[string]ledger.Units, error) {
	var rows []model.DailySalesSummary
	if err := r.db.Order("date DESC, product_name ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := map[string]map[string]ledger.Units{}
	for _, row := range rows {
		if out[row.Date] == nil {
			out[row.Date] = map[string]ledger.Units{}
		}
		out[row.Date][row.ProductName] = ledger.Units{MRP: row.MRPUnits, Bar: row.BarUnits}
	}
	return out, nil
}

func (r *summaryRepo) DeleteDaily(date string) error {
	return r.db.Where("date = ?", date).Delete(&model.DailySalesSummary{}).Error
}

func (r *summaryRepo) DeleteAll() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.DailySalesSummary{}).Error
}
