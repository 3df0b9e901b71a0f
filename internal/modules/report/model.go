package report

import "time"

// Window is an inclusive [Start, End] reporting interval, day-aligned.
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Days returns the number of calendar days the window spans.
func (w Window) Days() int {
	start := dateOf(w.Start)
	end := dateOf(w.End)
	return int(end.Sub(start).Hours()/24) + 1
}

// Filters narrows the order set beyond the time window. All matches are
// case-insensitive substrings.
type Filters struct {
	Category string
	Customer string
	Query    string
}

// DailyPoint is one day of the aggregated series. Sales excludes
// complimentary revenue; Orders counts every order that day.
type DailyPoint struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Orders int     `json:"orders"`
}

// TrendPoint decorates a daily point with trailing averages and growth.
type TrendPoint struct {
	DailyPoint
	SalesMovingAvg  float64 `json:"salesMovingAvg"`
	OrdersMovingAvg float64 `json:"ordersMovingAvg"`
	SalesGrowthPct  float64 `json:"salesGrowthPct"`
	OrdersGrowthPct float64 `json:"ordersGrowthPct"`
}

// TopItem is one row of the top-selling items table.
type TopItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// CategorySales is revenue and volume grouped by item category.
type CategorySales struct {
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}

// PeakHourNone is the sentinel peak hour when the filtered set is empty.
const PeakHourNone = -1

// Metrics is the scalar dashboard block for a window.
type Metrics struct {
	TotalSales             float64         `json:"totalSales"`
	TotalOrders            int             `json:"totalOrders"`
	AverageOrderValue      float64         `json:"averageOrderValue"`
	AveragePreparationTime float64         `json:"averagePreparationTime"`
	UniqueCustomers        int             `json:"uniqueCustomers"`
	RepeatCustomerRate     float64         `json:"repeatCustomerRate"`
	AverageItemsPerOrder   float64         `json:"averageItemsPerOrder"`
	PeakHour               int             `json:"peakHour"`
	SalesByCategory        []CategorySales `json:"salesByCategory"`
	OrdersByHour           [24]int         `json:"ordersByHour"`
}

// Summary is the full dashboard payload.
type Summary struct {
	Window          Window  `json:"window"`
	Metrics         Metrics `json:"metrics"`
	SalesGrowthRate float64 `json:"salesGrowthRate"`
}
