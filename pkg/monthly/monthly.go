// Package monthly groups dated cent amounts into year-month buckets.
// Rows are materialized and grouped in memory because group-by-month
// does not push down uniformly to every supported store.
package monthly

import (
	"sort"
	"time"
)

// Point is a single dated amount.
type Point struct {
	When  time.Time
	Cents int64
}

// Total is one month bucket. Months with no points are absent; gaps
// are not zero-filled.
type Total struct {
	Month      string `json:"month"`
	TotalCents int64  `json:"total_cents"`
}

// Flow is one month of the combined cash-flow view.
type Flow struct {
	Month        string `json:"month"`
	RevenueCents int64  `json:"revenue_cents"`
	ExpenseCents int64  `json:"expense_cents"`
	NetCents     int64  `json:"net_cents"`
}

// Key extracts the year-month bucket key for a date.
func Key(t time.Time) string {
	return t.Format("2006-01")
}

// Group sums points per year-month, ascending by month key.
func Group(points []Point) []Total {
	if len(points) == 0 {
		return nil
	}

	sums := make(map[string]int64, len(points))
	for _, p := range points {
		sums[Key(p.When)] += p.Cents
	}

	totals := make([]Total, 0, len(sums))
	for month, cents := range sums {
		totals = append(totals, Total{Month: month, TotalCents: cents})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Month < totals[j].Month })
	return totals
}

// Merge outer-joins revenue and expense totals on month; a missing
// side counts as zero and net is revenue minus expenses.
func Merge(revenue, expenses []Total) []Flow {
	byMonth := make(map[string]*Flow, len(revenue)+len(expenses))
	for _, r := range revenue {
		byMonth[r.Month] = &Flow{Month: r.Month, RevenueCents: r.TotalCents}
	}
	for _, e := range expenses {
		row, ok := byMonth[e.Month]
		if !ok {
			row = &Flow{Month: e.Month}
			byMonth[e.Month] = row
		}
		row.ExpenseCents = e.TotalCents
	}

	flows := make([]Flow, 0, len(byMonth))
	for _, row := range byMonth {
		row.NetCents = row.RevenueCents - row.ExpenseCents
		flows = append(flows, *row)
	}
	sort.Slice(flows, func(i, j int) bool { return flows[i].Month < flows[j].Month })
	return flows
}
