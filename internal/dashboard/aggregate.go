// Package dashboard derives back-office metrics from the order set:
// customer rollups, status histograms, daily series, and revenue deltas.
package dashboard

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/madhavavarma/storeadminnom/internal/checkoutform"
	"github.com/madhavavarma/storeadminnom/pkg/db/models"
	"github.com/madhavavarma/storeadminnom/pkg/timerange"
)

// UnknownBucket is the histogram label for blank or unrecognized statuses.
const UnknownBucket = "Unknown"

// CustomerSummary is the derived per-customer view. Customers have no
// stored lifecycle; everything here is folded from their orders.
type CustomerSummary struct {
	CustomerID  string          `json:"customer_id"`
	DisplayName string          `json:"display_name"`
	Orders      int             `json:"orders"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	FirstOrder  time.Time       `json:"first_order"`
}

// DailyPoint is one day's order count and revenue.
type DailyPoint struct {
	Date    string          `json:"date"`
	Orders  int             `json:"orders"`
	Revenue decimal.Decimal `json:"revenue"`
}

// RevenueDelta compares the active window against the window of equal
// length immediately before it.
type RevenueDelta struct {
	Current       decimal.Decimal `json:"current"`
	Previous      decimal.Decimal `json:"previous"`
	PercentChange float64         `json:"percent_change"`
}

// FilterByRange keeps orders created inside [from, to). Nil bounds keep
// everything. Records with a zero creation timestamp cannot be placed
// in any window and are skipped; the count of skipped records is
// returned so callers can surface it.
func FilterByRange(orders []models.Order, r timerange.Range) (kept []models.Order, skipped int) {
	for _, order := range orders {
		if order.CreatedAt.IsZero() {
			skipped++
			continue
		}
		if r.Contains(order.CreatedAt) {
			kept = append(kept, order)
		}
	}
	return kept, skipped
}

// CustomerRollup groups orders by customer id. First order keeps the
// earliest timestamp; exact ties keep the earliest-encountered order.
// Results are sorted by total spent descending, customer id as the
// tie-break, so output is deterministic.
func CustomerRollup(orders []models.Order) []CustomerSummary {
	byCustomer := map[string]*CustomerSummary{}
	var order []string

	for _, o := range orders {
		summary, ok := byCustomer[o.CustomerID]
		if !ok {
			summary = &CustomerSummary{
				CustomerID: o.CustomerID,
				TotalSpent: decimal.Zero,
				FirstOrder: o.CreatedAt,
			}
			byCustomer[o.CustomerID] = summary
			order = append(order, o.CustomerID)
		}
		summary.Orders++
		summary.TotalSpent = summary.TotalSpent.Add(o.TotalPrice)
		if o.CreatedAt.Before(summary.FirstOrder) {
			summary.FirstOrder = o.CreatedAt
		}
	}

	out := make([]CustomerSummary, 0, len(order))
	for _, id := range order {
		out = append(out, *byCustomer[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].TotalSpent.Equal(out[j].TotalSpent) {
			return out[i].TotalSpent.GreaterThan(out[j].TotalSpent)
		}
		return out[i].CustomerID < out[j].CustomerID
	})
	return out
}

// StatusHistogram counts orders by exact status string. Blank or
// unrecognized statuses land in the Unknown bucket rather than being
// dropped.
func StatusHistogram(orders []models.Order) map[string]int {
	histogram := map[string]int{}
	for _, order := range orders {
		label := string(order.Status)
		if strings.TrimSpace(label) == "" || !order.Status.IsValid() {
			label = UnknownBucket
		}
		histogram[label]++
	}
	return histogram
}

// DailySeries buckets orders by calendar day in the given location,
// ascending. Days without orders are absent, not zero-filled.
func DailySeries(orders []models.Order, loc *time.Location) []DailyPoint {
	if loc == nil {
		loc = time.Local
	}
	byDay := map[string]*DailyPoint{}
	for _, order := range orders {
		day := order.CreatedAt.In(loc).Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			point = &DailyPoint{Date: day, Revenue: decimal.Zero}
			byDay[day] = point
		}
		point.Orders++
		point.Revenue = point.Revenue.Add(order.TotalPrice)
	}

	series := make([]DailyPoint, 0, len(byDay))
	for _, point := range byDay {
		series = append(series, *point)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })
	return series
}

// ComputeRevenueDelta sums revenue inside the active window and the
// equal-length window immediately before it. The previous window is
// always evaluated over the full unfiltered order set. Unbounded ranges
// have no previous window, so its revenue is zero.
func ComputeRevenueDelta(allOrders []models.Order, r timerange.Range) RevenueDelta {
	current := sumRevenue(allOrders, r)
	previous := decimal.Zero
	if prev := r.Previous(); prev.Bounded() {
		previous = sumRevenue(allOrders, prev)
	}

	delta := RevenueDelta{Current: current, Previous: previous}
	switch {
	case current.IsZero() && previous.IsZero():
		delta.PercentChange = 0
	case previous.IsZero():
		delta.PercentChange = 100
	default:
		change, _ := current.Sub(previous).Div(previous).Mul(decimal.NewFromInt(100)).Float64()
		delta.PercentChange = change
	}
	return delta
}

// CustomerDisplayName resolves a human label for an order: non-empty
// values of schema fields flagged show-on-orders, joined with " | ",
// falling back to phone, then email, then "Unknown".
func CustomerDisplayName(order models.Order, schema checkoutform.Schema) string {
	var parts []string
	for _, field := range schema.ShowOnOrdersFields() {
		value := stringValue(order.CheckoutData[field.Name])
		if strings.TrimSpace(value) != "" {
			parts = append(parts, value)
		}
	}
	if len(parts) > 0 {
		return strings.Join(parts, " | ")
	}
	if phone := stringValue(order.CheckoutData["phone"]); strings.TrimSpace(phone) != "" {
		return phone
	}
	if email := stringValue(order.CheckoutData["email"]); strings.TrimSpace(email) != "" {
		return email
	}
	return UnknownBucket
}

func sumRevenue(orders []models.Order, r timerange.Range) decimal.Decimal {
	total := decimal.Zero
	for _, order := range orders {
		if order.CreatedAt.IsZero() {
			continue
		}
		if r.Contains(order.CreatedAt) {
			total = total.Add(order.TotalPrice)
		}
	}
	return total
}

func stringValue(value any) string {
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return s
}
