package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/cuppanote/cuppa-backend/internal/modules/order"
)

// csvHeader is the per-day row contract. Field order matters to downstream
// spreadsheet consumers; do not reorder.
var csvHeader = []string{"date", "totalSales", "orders", "avgOrderValue", "uniqueCustomers", "avgPrepTime", "itemsSold"}

// ExportCSV renders the window as one row per calendar day followed by a
// period summary block with top items and the category breakdown.
func ExportCSV(orders []order.Order, w Window) ([]byte, error) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	if err := cw.Write(csvHeader); err != nil {
		return nil, err
	}

	type dayStats struct {
		sales         float64
		orders        int
		revenueOrders int
		prepTotal     int
		prepCount     int
		items         int
		customers     map[string]struct{}
	}
	stats := map[string]*dayStats{}
	for _, o := range orders {
		key := o.Timestamp.Format(dateLayout)
		ds, ok := stats[key]
		if !ok {
			ds = &dayStats{customers: map[string]struct{}{}}
			stats[key] = ds
		}
		ds.orders++
		ds.customers[o.CustomerName] = struct{}{}
		if !o.IsComplimentary {
			ds.sales += o.Total
			ds.revenueOrders++
		}
		if o.PreparationTime != nil {
			ds.prepTotal += *o.PreparationTime
			ds.prepCount++
		}
		for _, it := range o.Items {
			ds.items += it.Quantity
		}
	}

	for day := dateOf(w.Start); !day.After(w.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		ds := stats[key]
		if ds == nil {
			ds = &dayStats{customers: map[string]struct{}{}}
		}
		avgValue := 0.0
		if ds.revenueOrders > 0 {
			avgValue = ds.sales / float64(ds.revenueOrders)
		}
		avgPrep := 0
		if ds.prepCount > 0 {
			avgPrep = ds.prepTotal / ds.prepCount
		}
		row := []string{
			key,
			fmt.Sprintf("%.2f", ds.sales),
			strconv.Itoa(ds.orders),
			fmt.Sprintf("%.2f", avgValue),
			strconv.Itoa(len(ds.customers)),
			formatMinSec(avgPrep),
			strconv.Itoa(ds.items),
		}
		if err := cw.Write(row); err != nil {
			return nil, err
		}
	}

	m := Reduce(orders)
	summary := [][]string{
		{},
		{"Period Summary"},
		{"Total Sales", humanize.CommafWithDigits(m.TotalSales, 2)},
		{"Total Orders", strconv.Itoa(m.TotalOrders)},
		{"Average Order Value", humanize.CommafWithDigits(m.AverageOrderValue, 2)},
		{"Unique Customers", strconv.Itoa(m.UniqueCustomers)},
		{"Average Prep Time", formatMinSec(int(m.AveragePreparationTime))},
		{},
		{"Top Items"},
		{"name", "quantity", "revenue"},
	}
	for _, rec := range summary {
		if err := writeRecord(cw, rec); err != nil {
			return nil, err
		}
	}
	for _, item := range TopItems(orders) {
		rec := []string{item.Name, strconv.Itoa(item.Quantity), fmt.Sprintf("%.2f", item.Revenue)}
		if err := cw.Write(rec); err != nil {
			return nil, err
		}
	}

	breakdown := [][]string{
		{},
		{"Category Breakdown"},
		{"category", "quantity", "revenue"},
	}
	for _, rec := range breakdown {
		if err := writeRecord(cw, rec); err != nil {
			return nil, err
		}
	}
	for _, cat := range m.SalesByCategory {
		rec := []string{cat.Category, strconv.Itoa(cat.Quantity), fmt.Sprintf("%.2f", cat.Revenue)}
		if err := cw.Write(rec); err != nil {
			return nil, err
		}
	}

	cw.Flush()
	return buf.Bytes(), cw.Error()
}

// writeRecord writes a record, turning the empty record into a blank line.
func writeRecord(cw *csv.Writer, rec []string) error {
	if len(rec) == 0 {
		return cw.Write([]string{""})
	}
	return cw.Write(rec)
}

// formatMinSec renders seconds as mm:ss.
func formatMinSec(secs int) string {
	d := time.Duration(secs) * time.Second
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), secs%60)
}
