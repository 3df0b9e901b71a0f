// Package report derives read-only views over the historical order
// collection. Every function here is a pure reduction: no mutation, no
// errors on empty input, every denominator guarded.
package report

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cuppanote/cuppa-backend/internal/apperr"
	"github.com/cuppanote/cuppa-backend/internal/modules/order"
)

const dateLayout = "2006-01-02"

// movingAvgWindow is the trailing window for the daily trend series. It
// shrinks at the start of the series and never borrows days outside it.
const movingAvgWindow = 7

// ResolveWindow turns a named range into an inclusive day-aligned window.
// Supported names: today, week (trailing 7 days), month (trailing 30 days),
// and custom with explicit start/end dates.
func ResolveWindow(name string, now time.Time, start, end string) (Window, error) {
	today := dateOf(now)
	switch name {
	case "", "today", "day":
		return Window{Start: today, End: endOfDay(today)}, nil
	case "week":
		return Window{Start: today.AddDate(0, 0, -6), End: endOfDay(today)}, nil
	case "month":
		return Window{Start: today.AddDate(0, 0, -29), End: endOfDay(today)}, nil
	case "custom":
		from, err := time.ParseInLocation(dateLayout, start, now.Location())
		if err != nil {
			return Window{}, fmt.Errorf("%w: invalid start date %q", apperr.ErrValidation, start)
		}
		to, err := time.ParseInLocation(dateLayout, end, now.Location())
		if err != nil {
			return Window{}, fmt.Errorf("%w: invalid end date %q", apperr.ErrValidation, end)
		}
		if to.Before(from) {
			return Window{}, fmt.Errorf("%w: end date precedes start date", apperr.ErrValidation)
		}
		return Window{Start: from, End: endOfDay(to)}, nil
	default:
		return Window{}, fmt.Errorf("%w: unknown range %q", apperr.ErrValidation, name)
	}
}

// Filter keeps orders whose timestamp falls inside the inclusive window and
// which match every given filter.
func Filter(orders []order.Order, w Window, f Filters) []order.Order {
	out := []order.Order{}
	for _, o := range orders {
		if o.Timestamp.Before(w.Start) || o.Timestamp.After(w.End) {
			continue
		}
		if !matches(o, f) {
			continue
		}
		out = append(out, o)
	}
	return out
}

func matches(o order.Order, f Filters) bool {
	if f.Customer != "" && !containsFold(o.CustomerName, f.Customer) {
		return false
	}
	if f.Category != "" {
		found := false
		for _, it := range o.Items {
			if strings.EqualFold(it.Category, f.Category) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.Query != "" {
		if containsFold(o.CustomerName, f.Query) || strconv.Itoa(o.ID) == f.Query {
			return true
		}
		for _, it := range o.Items {
			if containsFold(it.Name, f.Query) {
				return true
			}
		}
		return false
	}
	return true
}

// DailySeries aggregates orders into one point per calendar day across the
// whole window, zero-filling days with no orders. The result length always
// equals the number of days in the window, in ascending date order.
func DailySeries(orders []order.Order, w Window) []DailyPoint {
	points := make([]DailyPoint, 0, w.Days())
	index := map[string]int{}
	for day := dateOf(w.Start); !day.After(w.End); day = day.AddDate(0, 0, 1) {
		key := day.Format(dateLayout)
		index[key] = len(points)
		points = append(points, DailyPoint{Date: key})
	}
	for _, o := range orders {
		i, ok := index[o.Timestamp.Format(dateLayout)]
		if !ok {
			continue
		}
		points[i].Orders++
		if !o.IsComplimentary {
			points[i].Sales = round2(points[i].Sales + o.Total)
		}
	}
	return points
}

// TopItems groups line items by name across the filtered orders, summing
// quantity and revenue, and returns at most the ten highest by quantity.
// Equal quantities keep first-appearance order.
func TopItems(orders []order.Order) []TopItem {
	index := map[string]int{}
	items := []TopItem{}
	for _, o := range orders {
		for _, it := range o.Items {
			i, ok := index[it.Name]
			if !ok {
				i = len(items)
				index[it.Name] = i
				items = append(items, TopItem{Name: it.Name})
			}
			items[i].Quantity += it.Quantity
			items[i].Revenue = round2(items[i].Revenue + it.Price*float64(it.Quantity))
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Quantity > items[j].Quantity
	})
	if len(items) > 10 {
		items = items[:10]
	}
	return items
}

// Reduce computes the scalar dashboard metrics over the filtered set.
func Reduce(orders []order.Order) Metrics {
	m := Metrics{PeakHour: PeakHourNone, SalesByCategory: []CategorySales{}}
	if len(orders) == 0 {
		return m
	}

	var (
		revenueOrders int
		prepTotal     int
		prepCount     int
		itemCount     int
		customers     = map[string]int{}
		hourSales     [24]float64
		catIndex      = map[string]int{}
	)

	for _, o := range orders {
		m.TotalOrders++
		m.OrdersByHour[o.Timestamp.Hour()]++
		customers[o.CustomerName]++
		if !o.IsComplimentary {
			m.TotalSales += o.Total
			revenueOrders++
			hourSales[o.Timestamp.Hour()] += o.Total
		}
		if o.PreparationTime != nil {
			prepTotal += *o.PreparationTime
			prepCount++
		}
		for _, it := range o.Items {
			itemCount += it.Quantity
			i, ok := catIndex[it.Category]
			if !ok {
				i = len(m.SalesByCategory)
				catIndex[it.Category] = i
				m.SalesByCategory = append(m.SalesByCategory, CategorySales{Category: it.Category})
			}
			m.SalesByCategory[i].Quantity += it.Quantity
			m.SalesByCategory[i].Revenue = round2(m.SalesByCategory[i].Revenue + it.Price*float64(it.Quantity))
		}
	}

	m.TotalSales = round2(m.TotalSales)
	if revenueOrders > 0 {
		m.AverageOrderValue = round2(m.TotalSales / float64(revenueOrders))
	}
	if prepCount > 0 {
		m.AveragePreparationTime = float64(prepTotal) / float64(prepCount)
	}
	m.UniqueCustomers = len(customers)
	if m.UniqueCustomers > 0 {
		repeat := 0
		for _, n := range customers {
			if n > 1 {
				repeat++
			}
		}
		m.RepeatCustomerRate = round2(float64(repeat) / float64(m.UniqueCustomers) * 100)
	}
	if m.TotalOrders > 0 {
		m.AverageItemsPerOrder = round2(float64(itemCount) / float64(m.TotalOrders))
	}

	// First-found wins on equal bucket sums, scanning hours ascending.
	peak := 0
	for h := 1; h < 24; h++ {
		if hourSales[h] > hourSales[peak] {
			peak = h
		}
	}
	m.PeakHour = peak

	return m
}

// Trends decorates the daily series with trailing moving averages and
// day-over-day growth. The first point always reports zero growth.
func Trends(series []DailyPoint) []TrendPoint {
	out := make([]TrendPoint, 0, len(series))
	for i, p := range series {
		start := i - movingAvgWindow + 1
		if start < 0 {
			start = 0
		}
		var salesSum float64
		var ordersSum int
		for _, q := range series[start : i+1] {
			salesSum += q.Sales
			ordersSum += q.Orders
		}
		n := float64(i - start + 1)

		tp := TrendPoint{
			DailyPoint:      p,
			SalesMovingAvg:  round2(salesSum / n),
			OrdersMovingAvg: round2(float64(ordersSum) / n),
		}
		if i > 0 {
			tp.SalesGrowthPct = growthPct(series[i-1].Sales, p.Sales)
			tp.OrdersGrowthPct = growthPct(float64(series[i-1].Orders), float64(p.Orders))
		}
		out = append(out, tp)
	}
	return out
}

// SalesGrowthRate compares total sales in the window against the equal-length
// immediately preceding window. A zero prior total reports 100% growth by
// convention.
func SalesGrowthRate(orders []order.Order, w Window, f Filters) float64 {
	days := w.Days()
	prior := Window{
		Start: dateOf(w.Start).AddDate(0, 0, -days),
		End:   endOfDay(dateOf(w.Start).AddDate(0, 0, -1)),
	}

	current := totalSales(Filter(orders, w, f))
	previous := totalSales(Filter(orders, prior, f))
	if previous == 0 {
		return 100
	}
	return round2((current - previous) / previous * 100)
}

func totalSales(orders []order.Order) float64 {
	var sum float64
	for _, o := range orders {
		if !o.IsComplimentary {
			sum += o.Total
		}
	}
	return round2(sum)
}

func growthPct(prev, cur float64) float64 {
	if prev == 0 {
		return 0
	}
	return round2((cur - prev) / prev * 100)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(day time.Time) time.Time {
	return day.AddDate(0, 0, 1).Add(-time.Nanosecond)
}

func round2(v float64) float64 {
	if v < 0 {
		return -float64(int(-v*100+0.5)) / 100
	}
	return float64(int(v*100+0.5)) / 100
}
