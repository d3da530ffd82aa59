package reports

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/warungkapten/kasir-backend/internal/modules/sales"
)

// Period selects which slice of the transaction history a report covers.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod validates a period string.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return p, nil
	default:
		return "", fmt.Errorf("invalid period: %s (allowed: daily, weekly, monthly, yearly)", s)
	}
}

// ItemCount is one row of the best-seller ranking.
type ItemCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Summary is the sales report for one period.
type Summary struct {
	Period       Period      `json:"period"`
	TotalSales   int64       `json:"total_sales"`
	OrderCount   int         `json:"order_count"`
	AverageOrder int64       `json:"average_order"`
	TopItems     []ItemCount `json:"top_items"`
}

const topItemLimit = 10

// inPeriod reports whether a transaction at t falls in the period relative
// to now. Daily, monthly and yearly are calendar comparisons; weekly is a
// rolling seven-day window, not calendar-week aligned. No lower bound on
// the window: server-stamped timestamps can run a little ahead of the app
// clock and must still count.
func inPeriod(t, now time.Time, p Period) bool {
	switch p {
	case PeriodDaily:
		ty, tm, td := t.Date()
		ny, nm, nd := now.Date()
		return ty == ny && tm == nm && td == nd
	case PeriodWeekly:
		return now.Sub(t) <= 7*24*time.Hour
	case PeriodMonthly:
		return t.Year() == now.Year() && t.Month() == now.Month()
	case PeriodYearly:
		return t.Year() == now.Year()
	default:
		return false
	}
}

// Aggregate buckets transactions into the period ending at now and totals
// them. The average is zero when nothing sold; no division by zero. Top
// items are ranked by summed quantity, ties broken by first appearance in
// the filtered list, truncated to ten.
func Aggregate(txs []*sales.Transaction, p Period, now time.Time) Summary {
	s := Summary{Period: p, TopItems: []ItemCount{}}

	counts := make(map[string]int)
	var order []string
	for _, tx := range txs {
		if !inPeriod(tx.Timestamp, now, p) {
			continue
		}
		s.TotalSales += tx.Total
		s.OrderCount++
		for _, item := range tx.Items {
			if _, seen := counts[item.Name]; !seen {
				order = append(order, item.Name)
			}
			counts[item.Name] += item.Quantity
		}
	}
	if s.OrderCount > 0 {
		s.AverageOrder = s.TotalSales / int64(s.OrderCount)
	}

	ranking := make([]ItemCount, 0, len(order))
	for _, name := range order {
		ranking = append(ranking, ItemCount{Name: name, Count: counts[name]})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Count > ranking[j].Count
	})
	if len(ranking) > topItemLimit {
		ranking = ranking[:topItemLimit]
	}
	s.TopItems = ranking
	return s
}
