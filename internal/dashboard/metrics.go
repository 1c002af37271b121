// Package dashboard derives the overview metrics: monthly
// revenue/expense/profit series, recent activity, and summary ratios.
package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/openbooks-dev/openbooks/internal/accounts"
	"github.com/openbooks-dev/openbooks/internal/model"
)

// RecentEntryCount is how many entries the dashboard lists.
const RecentEntryCount = 8

var hundred = decimal.NewFromInt(100)

// MonthMetrics is one month's revenue/expense/profit bucket.
type MonthMetrics struct {
	Month   string // "YYYY-MM"
	Revenue decimal.Decimal
	Expense decimal.Decimal
	Profit  decimal.Decimal
}

// Metrics is the derived dashboard view.
type Metrics struct {
	Months        []MonthMetrics // ascending by month for charting
	RecentEntries []model.JournalEntry
	Revenue       decimal.Decimal
	Expense       decimal.Decimal
	Profit        decimal.Decimal
	// MarginPercent is profit/revenue*100, defined as zero when
	// revenue is zero.
	MarginPercent decimal.Decimal
}

// Build computes dashboard metrics over the full unfiltered entry
// list. Revenue lines contribute credit-debit, expense lines
// debit-credit; lines against other account types (or deleted
// accounts) are ignored.
func Build(entries []model.JournalEntry, chart *accounts.Chart) Metrics {
	byMonth := make(map[string]*MonthMetrics)
	var metrics Metrics

	for _, e := range entries {
		key := e.MonthKey()
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthMetrics{Month: key}
			byMonth[key] = bucket
		}
		for _, line := range e.Lines {
			account, ok := chart.Get(line.AccountID)
			if !ok {
				continue
			}
			switch account.Type {
			case model.AccountTypeRevenue:
				amount := line.Credit.Sub(line.Debit)
				bucket.Revenue = bucket.Revenue.Add(amount)
				metrics.Revenue = metrics.Revenue.Add(amount)
			case model.AccountTypeExpense:
				amount := line.Debit.Sub(line.Credit)
				bucket.Expense = bucket.Expense.Add(amount)
				metrics.Expense = metrics.Expense.Add(amount)
			}
		}
	}

	for _, bucket := range byMonth {
		bucket.Profit = bucket.Revenue.Sub(bucket.Expense)
		metrics.Months = append(metrics.Months, *bucket)
	}
	sort.Slice(metrics.Months, func(i, j int) bool {
		return metrics.Months[i].Month < metrics.Months[j].Month
	})

	metrics.Profit = metrics.Revenue.Sub(metrics.Expense)
	if !metrics.Revenue.IsZero() {
		metrics.MarginPercent = metrics.Profit.Div(metrics.Revenue).Mul(hundred)
	}

	metrics.RecentEntries = recentEntries(entries)
	return metrics
}

func recentEntries(entries []model.JournalEntry) []model.JournalEntry {
	sorted := make([]model.JournalEntry, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > RecentEntryCount {
		sorted = sorted[:RecentEntryCount]
	}
	return sorted
}
