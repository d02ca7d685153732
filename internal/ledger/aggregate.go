package ledger

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// RevenuePolicy decides whether transferred units count as revenue.
type RevenuePolicy string

const (
	// ExcludeTransfers reports transfers as units only.
	ExcludeTransfers RevenuePolicy = "exclude_transfers"
	// IncludeTransfers adds transfer value to the source pool's revenue.
	IncludeTransfers RevenuePolicy = "include_transfers"
)

func ParseRevenuePolicy(s string) (RevenuePolicy, error) {
	switch RevenuePolicy(s) {
	case "", ExcludeTransfers:
		return ExcludeTransfers, nil
	case IncludeTransfers:
		return IncludeTransfers, nil
	}
	return "", fmt.Errorf("unknown revenue policy %q", s)
}

// ProductSummary is one product's line in a daily summary.
type ProductSummary struct {
	MRPSold        int             `json:"mrpSold"`
	MRPTransferred int             `json:"mrpTransferred"`
	BarSold        int             `json:"barSold"`
	BarTransferred int             `json:"barTransferred"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// DailySummary is the fold of one date's events.
type DailySummary struct {
	PerProduct   map[string]ProductSummary `json:"perProduct"`
	TotalRevenue decimal.Decimal           `json:"totalRevenue"`
}

// Summarize folds events with the canonical policy (transfers excluded from
// revenue).
func Summarize(events []SaleEvent) DailySummary {
	return SummarizeWithPolicy(events, ExcludeTransfers)
}

// SummarizeWithPolicy folds events into per-product totals. It only
// accumulates, so any ordering of the same events gives the same result.
func SummarizeWithPolicy(events []SaleEvent, policy RevenuePolicy) DailySummary {
	sum := DailySummary{
		PerProduct:   make(map[string]ProductSummary),
		TotalRevenue: decimal.Zero,
	}
	for _, e := range events {
		ps, ok := sum.PerProduct[e.ProductName]
		if !ok {
			ps.Revenue = decimal.Zero
		}
		counted := !e.IsTransfer || policy == IncludeTransfers
		switch {
		case e.Pool == PoolMRP && e.IsTransfer:
			ps.MRPTransferred += e.Quantity
		case e.Pool == PoolMRP:
			ps.MRPSold += e.Quantity
		case e.IsTransfer:
			ps.BarTransferred += e.Quantity
		default:
			ps.BarSold += e.Quantity
		}
		if counted {
			amount := e.Amount()
			ps.Revenue = ps.Revenue.Add(amount)
			sum.TotalRevenue = sum.TotalRevenue.Add(amount)
		}
		sum.PerProduct[e.ProductName] = ps
	}
	return sum
}

// Equal compares two summaries by value.
func (s DailySummary) Equal(o DailySummary) bool {
	if !s.TotalRevenue.Equal(o.TotalRevenue) || len(s.PerProduct) != len(o.PerProduct) {
		return false
	}
	for name, a := range s.PerProduct {
		b, ok := o.PerProduct[name]
		if !ok {
			return false
		}
		if a.MRPSold != b.MRPSold || a.MRPTransferred != b.MRPTransferred ||
			a.BarSold != b.BarSold || a.BarTransferred != b.BarTransferred ||
			!a.Revenue.Equal(b.Revenue) {
			return false
		}
	}
	return true
}

// Products returns the product names of the summary in alphabetical order.
func (s DailySummary) Products() []string {
	names := make([]string, 0, len(s.PerProduct))
	for name := range s.PerProduct {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Units is the per-pool units projection of one product.
type Units struct {
	MRP int `json:"mrp"`
	Bar int `json:"bar"`
}

// Project reduces a summary to sold units per pool, the shape stored for
// external reporting.
func Project(sum DailySummary) map[string]Units {
	out := make(map[string]Units, len(sum.PerProduct))
	for name, ps := range sum.PerProduct {
		out[name] = Units{MRP: ps.MRPSold, Bar: ps.BarSold}
	}
	return out
}

// DayTotals is one dashboard row.
type DayTotals struct {
	Date           string          `json:"date"`
	MRPSold        int             `json:"mrpSold"`
	MRPTransferred int             `json:"mrpTransferred"`
	MRPRevenue     decimal.Decimal `json:"mrpRevenue"`
	BarSold        int             `json:"barSold"`
	BarTransferred int             `json:"barTransferred"`
	BarRevenue     decimal.Decimal `json:"barRevenue"`
	Revenue        decimal.Decimal `json:"revenue"`
}

// SummarizeDays folds every date independently, newest date first.
func SummarizeDays(sales map[string][]SaleEvent, policy RevenuePolicy) []DayTotals {
	rows := make([]DayTotals, 0, len(sales))
	for date, events := range sales {
		row := DayTotals{
			Date:       date,
			MRPRevenue: decimal.Zero,
			BarRevenue: decimal.Zero,
			Revenue:    decimal.Zero,
		}
		for _, e := range events {
			counted := !e.IsTransfer || policy == IncludeTransfers
			amount := decimal.Zero
			if counted {
				amount = e.Amount()
			}
			if e.Pool == PoolMRP {
				if e.IsTransfer {
					row.MRPTransferred += e.Quantity
				} else {
					row.MRPSold += e.Quantity
				}
				row.MRPRevenue = row.MRPRevenue.Add(amount)
			} else {
				if e.IsTransfer {
					row.BarTransferred += e.Quantity
				} else {
					row.BarSold += e.Quantity
				}
				row.BarRevenue = row.BarRevenue.Add(amount)
			}
			row.Revenue = row.Revenue.Add(amount)
		}
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date > rows[j].Date })
	return rows
}
