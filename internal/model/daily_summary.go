package model

// DailySalesSummary is the units-per-pool projection of one product on one
// day, kept for external reporting.
type DailySalesSummary struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Date        string `gorm:"type:varchar(10);not null;uniqueIndex:idx_daily_summary_date_product" json:"date"`
	ProductName string `gorm:"type:varchar(255);not null;uniqueIndex:idx_daily_summary_date_product" json:"product_name"`
	MRPUnits    int    `gorm:"column:mrp_units;not null;default:0" json:"mrp"`
	BarUnits    int    `gorm:"column:bar_units;not null;default:0" json:"bar"`
}

func (DailySalesSummary) TableName() string {
	return "daily_sales_summaries"
}
