// Package report renders the daily sales report and delivers it.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"

	"go-shop-ledger/internal/ledger"
)

// Row is one product line of the report.
type Row struct {
	Product string `json:"product"`
	MRP     int    `json:"mrp"`
	Bar     int    `json:"bar"`
}

// DailyReport lists units sold per product and pool for one date.
type DailyReport struct {
	Date       string `json:"date"`
	Rows       []Row  `json:"rows"`
	TotalUnits int    `json:"totalUnits"`
}

// NewDailyReport builds the report from a day's units projection; rows are
// sorted by product name.
func NewDailyReport(date string, units map[string]ledger.Units) DailyReport {
	r := DailyReport{Date: date, Rows: make([]Row, 0, len(units))}
	for name, u := range units {
		r.Rows = append(r.Rows, Row{Product: name, MRP: u.MRP, Bar: u.Bar})
		r.TotalUnits += u.MRP + u.Bar
	}
	sort.Slice(r.Rows, func(i, j int) bool { return r.Rows[i].Product < r.Rows[j].Product })
	return r
}

func (r DailyReport) Subject() string {
	return fmt.Sprintf("Daily Sales Report - %s (Units: %d)", r.Date, r.TotalUnits)
}

var reportTemplate = template.Must(template.New("daily").Parse(`<h2>Daily Sales Report - {{.Date}}</h2>
<table border="1" cellpadding="8" cellspacing="0" style="border-collapse: collapse;">
  <tr style="background:#eef">
    <th>Product</th>
    <th>MRP Sales</th>
    <th>Bar Sales</th>
  </tr>
{{- range .Rows}}
  <tr>
    <td>{{.Product}}</td>
    <td>{{.MRP}}</td>
    <td>{{.Bar}}</td>
  </tr>
{{- end}}
</table>
<p><b>Total Units Sold:</b> {{.TotalUnits}}</p>
`))

// HTML renders the report body. Product names are escaped.
func (r DailyReport) HTML() (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Message renders the report as an email.
func (r DailyReport) Message() (Message, error) {
	html, err := r.HTML()
	if err != nil {
		return Message{}, err
	}
	return Message{Subject: r.Subject(), HTML: html}, nil
}
