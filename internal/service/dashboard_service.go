package service

import (
	"go-shop-ledger/internal/ledger"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the closing balance below which an item counts as low.
const LowStockThreshold = 10

type PoolStats struct {
	Items     int             `json:"items"`
	Closing   int             `json:"closing"`
	LowStock  int             `json:"low_stock"`
	Valuation decimal.Decimal `json:"valuation"`
}

// DashboardStats is the stock overview of both pools. Valuation is closing
// units times the current unit price.
type DashboardStats struct {
	TotalProducts  int                       `json:"total_products"`
	LowStockCount  int                       `json:"low_stock_count"`
	TotalValuation decimal.Decimal           `json:"total_valuation"`
	Pools          map[ledger.Pool]PoolStats `json:"pools"`
}

type DashboardService interface {
	GetDailyTotals(days int) []ledger.DayTotals
	GetDashboardStats() (*DashboardStats, error)
}

type dashboardService struct {
	ledger LedgerService
	policy ledger.RevenuePolicy
}

func NewDashboardService(l LedgerService, policy ledger.RevenuePolicy) DashboardService {
	return &dashboardService{ledger: l, policy: policy}
}

// GetDailyTotals returns one row per logged date, newest first. days > 0
// keeps only that many most recent dates.
func (s *dashboardService) GetDailyTotals(days int) []ledger.DayTotals {
	rows := ledger.SummarizeDays(s.ledger.Sales(), s.policy)
	if days > 0 && len(rows) > days {
		rows = rows[:days]
	}
	return rows
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	snap := s.ledger.Snapshot()
	stats := DashboardStats{
		TotalValuation: decimal.Zero,
		Pools:          make(map[ledger.Pool]PoolStats, len(ledger.Pools)),
	}
	names := map[string]struct{}{}
	for _, pool := range ledger.Pools {
		ps := PoolStats{Valuation: decimal.Zero}
		items := snap.Items.MRP
		if pool == ledger.PoolBar {
			items = snap.Items.Bar
		}
		for _, it := range items {
			closing := it.Closing()
			ps.Items++
			ps.Closing += closing
			if closing < LowStockThreshold {
				ps.LowStock++
			}
			ps.Valuation = ps.Valuation.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(closing))))
			names[it.Name] = struct{}{}
		}
		stats.LowStockCount += ps.LowStock
		stats.TotalValuation = stats.TotalValuation.Add(ps.Valuation)
		stats.Pools[pool] = ps
	}
	stats.TotalProducts = len(names)
	return &stats, nil
}
