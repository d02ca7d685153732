package report

import (
	"bytes"

	"go-shop-ledger/internal/ledger"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX is the media type of Workbook output.
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var workbookHeader = []interface{}{
	"Product", "MRP Sold", "MRP Transferred", "Bar Sold", "Bar Transferred", "Revenue",
}

// Workbook exports a day's summary as an xlsx file with one sheet named after
// the date and a totals row at the bottom.
func Workbook(date string, sum ledger.DailySummary) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := date
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: 2})
	if err != nil {
		return nil, err
	}

	header := workbookHeader
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, "A1", "F1", bold); err != nil {
		return nil, err
	}

	var totals ledger.ProductSummary
	row := 2
	for _, name := range sum.Products() {
		p := sum.PerProduct[name]
		totals.MRPSold += p.MRPSold
		totals.MRPTransferred += p.MRPTransferred
		totals.BarSold += p.BarSold
		totals.BarTransferred += p.BarTransferred
		if err := writeRow(f, sheet, row, name, p); err != nil {
			return nil, err
		}
		row++
	}
	totals.Revenue = sum.TotalRevenue
	if err := writeRow(f, sheet, row, "Total", totals); err != nil {
		return nil, err
	}
	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(workbookHeader), row)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(sheet, first, last, bold); err != nil {
		return nil, err
	}

	top, _ := excelize.CoordinatesToCellName(6, 2)
	bottom, _ := excelize.CoordinatesToCellName(6, row)
	if err := f.SetCellStyle(sheet, top, bottom, money); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, name string, p ledger.ProductSummary) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	values := []interface{}{
		name,
		p.MRPSold,
		p.MRPTransferred,
		p.BarSold,
		p.BarTransferred,
		p.Revenue.InexactFloat64(),
	}
	return f.SetSheetRow(sheet, cell, &values)
}
