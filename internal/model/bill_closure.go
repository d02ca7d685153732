package model

import "time"

// BillClosure marks a day whose report has been sent.
type BillClosure struct {
	BaseModel
	Date       string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"date"`
	Recipient  string    `gorm:"type:varchar(255)" json:"recipient"`
	TotalUnits int       `gorm:"not null;default:0" json:"total_units"`
	ClosedAt   time.Time `gorm:"not null" json:"closed_at"`
}

func (BillClosure) TableName() string {
	return "bill_closures"
}
