package repository

import (
	"errors"

	"go-shop-ledger/internal/model"

	"gorm.io/gorm"
)

type BillRepository interface {
	Create(bill *model.BillClosure) error
	// FindByDate returns nil, nil when the day has not been closed.
	FindByDate(date string) (*model.BillClosure, error)
	Delete(date string) error
	DeleteAll() error
}

type billRepo struct {
	db *gorm.DB
}

func NewBillRepo(db *gorm.DB) BillRepository {
	return &billRepo{db}
}

func (r *billRepo) Create(bill *model.BillClosure) error {
	return r.db.Create(bill).Error
}

func (r *billRepo) FindByDate(date string) (*model.BillClosure, error) {
	var bill model.BillClosure
	err := r.db.First(&bill, "date = ?", date).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepo) Delete(date string) error {
	return r.db.Where("date = ?", date).Delete(&model.BillClosure{}).Error
}

func (r *billRepo) DeleteAll() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.BillClosure{}).Error
}
