// Package metrics contains the calendar-bucketed aggregation use cases.
package metrics

import (
	"sort"
	"time"

	"github.com/finance-records/backend/internal/application/query"
	"github.com/finance-records/backend/internal/domain/entity"
)

const (
	// summaryMonths is the number of calendar buckets in a trailing summary:
	// the end month plus the twelve months before it.
	summaryMonths = 13

	// rankingLimit caps the biggest-expenses and category rankings.
	rankingLimit = 10

	// monthKeyLayout formats a calendar bucket key.
	monthKeyLayout = "2006-01"
)

// MonthBucket is one calendar month of accumulated income and expense
// totals, in minor currency units.
type MonthBucket struct {
	Date          string
	IncomesTotal  int64
	ExpensesTotal int64
}

// BalancePoint is one calendar month of net balance (incomes minus
// expenses), in minor currency units.
type BalancePoint struct {
	Date    string
	Balance int64
}

// Delta reports one record kind's totals for the current and previous
// calendar month. Amount is the sum of both months combined, and
// DiffFromLastMonth is the percentage-style ratio current*100/last, zero
// when last month had no activity. Both formulas reproduce the reference
// behavior exactly; see DESIGN.md.
type Delta struct {
	Amount            int64
	DiffFromLastMonth int64
}

// CategoryRanking counts how many income and expense records reference a
// category.
type CategoryRanking struct {
	Name             string
	IncomesQuantity  int
	ExpensesQuantity int
}

// MonthKey returns the calendar bucket key of a timestamp.
func MonthKey(t time.Time) string {
	return t.UTC().Format(monthKeyLayout)
}

// startOfMonth truncates a timestamp to the first instant of its calendar
// month in UTC.
func startOfMonth(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// MonthlySummary buckets records by calendar month over the trailing window
// ending at the given month. Months with no activity still appear with zero
// totals; output is ordered chronologically.
func MonthlySummary(incomes, expenses []*entity.Record, end time.Time) []MonthBucket {
	first := startOfMonth(end).AddDate(0, -(summaryMonths - 1), 0)

	index := make(map[string]int, summaryMonths)
	buckets := make([]MonthBucket, summaryMonths)
	for i := range buckets {
		key := MonthKey(first.AddDate(0, i, 0))
		buckets[i] = MonthBucket{Date: key}
		index[key] = i
	}

	for _, record := range incomes {
		if i, ok := index[MonthKey(record.CreatedAt)]; ok {
			buckets[i].IncomesTotal += record.Value
		}
	}
	for _, record := range expenses {
		if i, ok := index[MonthKey(record.CreatedAt)]; ok {
			buckets[i].ExpensesTotal += record.Value
		}
	}

	return buckets
}

// MonthlyBalance derives the net balance series from a monthly summary.
func MonthlyBalance(buckets []MonthBucket) []BalancePoint {
	points := make([]BalancePoint, len(buckets))
	for i, bucket := range buckets {
		points[i] = BalancePoint{
			Date:    bucket.Date,
			Balance: bucket.IncomesTotal - bucket.ExpensesTotal,
		}
	}
	return points
}

// MonthlyDelta sums one kind's values in the current calendar month and the
// month before it, relative to now.
func MonthlyDelta(records []*entity.Record, now time.Time) Delta {
	currentKey := MonthKey(now)
	lastKey := MonthKey(startOfMonth(now).AddDate(0, -1, 0))

	var current, last int64
	for _, record := range records {
		switch MonthKey(record.CreatedAt) {
		case currentKey:
			current += record.Value
		case lastKey:
			last += record.Value
		}
	}

	delta := Delta{Amount: current + last}
	if last != 0 {
		delta.DiffFromLastMonth = current * 100 / last
	}
	return delta
}

// BiggestExpenses returns up to the top ten expense records by value
// descending. When end is given, only records created within the trailing
// window of months ending at that month are considered. Ties are broken by
// created_at descending, then ID, so the ranking is deterministic.
func BiggestExpenses(expenses []*entity.Record, end *time.Time) []*entity.Record {
	candidates := expenses
	if end != nil {
		lo := startOfMonth(*end).AddDate(0, -(summaryMonths - 1), 0)
		hi := startOfMonth(*end).AddDate(0, 1, 0)
		candidates = make([]*entity.Record, 0, len(expenses))
		for _, record := range expenses {
			created := record.CreatedAt.UTC()
			if !created.Before(lo) && created.Before(hi) {
				candidates = append(candidates, record)
			}
		}
	}

	ranked := make([]*entity.Record, len(candidates))
	copy(ranked, candidates)
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Value != ranked[j].Value {
			return ranked[i].Value > ranked[j].Value
		}
		return query.Compare(ranked[i], ranked[j], query.DirectionDesc) < 0
	})

	if len(ranked) > rankingLimit {
		ranked = ranked[:rankingLimit]
	}
	return ranked
}

// CategoriesWithMostRecords counts, for every category, how many income and
// expense records reference it and returns up to the top ten by combined
// count descending, name ascending on ties.
func CategoriesWithMostRecords(
	categories []*entity.Category,
	incomes, expenses []*entity.Record,
) []CategoryRanking {
	incomeCounts := make(map[string]int, len(categories))
	expenseCounts := make(map[string]int, len(categories))
	for _, record := range incomes {
		if record.CategoryID != nil {
			incomeCounts[record.CategoryID.String()]++
		}
	}
	for _, record := range expenses {
		if record.CategoryID != nil {
			expenseCounts[record.CategoryID.String()]++
		}
	}

	rankings := make([]CategoryRanking, 0, len(categories))
	for _, category := range categories {
		key := category.ID.String()
		rankings = append(rankings, CategoryRanking{
			Name:             category.Name,
			IncomesQuantity:  incomeCounts[key],
			ExpensesQuantity: expenseCounts[key],
		})
	}

	sort.Slice(rankings, func(i, j int) bool {
		ci := rankings[i].IncomesQuantity + rankings[i].ExpensesQuantity
		cj := rankings[j].IncomesQuantity + rankings[j].ExpensesQuantity
		if ci != cj {
			return ci > cj
		}
		return rankings[i].Name < rankings[j].Name
	})

	if len(rankings) > rankingLimit {
		rankings = rankings[:rankingLimit]
	}
	return rankings
}
