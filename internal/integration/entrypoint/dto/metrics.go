package dto

import (
	"github.com/finance-records/backend/internal/application/usecase/metrics"
)

// MonthBucketResponse is one calendar month of the financial summary.
type MonthBucketResponse struct {
	Date          string `json:"date"`
	IncomesTotal  int64  `json:"incomes_total"`
	ExpensesTotal int64  `json:"expenses_total"`
}

// BalancePointResponse is one point of the balance-over-time series.
type BalancePointResponse struct {
	Date    string `json:"date"`
	Balance int64  `json:"balance"`
}

// CategoryRankingResponse is one entry of the most-used-categories ranking.
type CategoryRankingResponse struct {
	Name             string `json:"name"`
	IncomesQuantity  int    `json:"incomes_quantity"`
	ExpensesQuantity int    `json:"expenses_quantity"`
}

// MetricsSummaryResponse represents the full metrics payload.
type MetricsSummaryResponse struct {
	MonthlyFinancialSummary   []MonthBucketResponse     `json:"monthly_financial_summary"`
	CategoriesWithMostRecords []CategoryRankingResponse `json:"categories_with_most_records"`
	BiggestExpenses           []RecordResponse          `json:"biggest_expenses"`
	MonthlyBalanceOverTime    []BalancePointResponse    `json:"monthly_balance_over_time"`
}

// DeltaResponse represents the month-over-month delta payload.
type DeltaResponse struct {
	Amount            int64 `json:"amount"`
	DiffFromLastMonth int64 `json:"diff_from_last_month"`
}

// ToMetricsSummaryResponse converts a summary output to its wire form.
func ToMetricsSummaryResponse(output *metrics.GetSummaryOutput) MetricsSummaryResponse {
	summary := make([]MonthBucketResponse, len(output.MonthlyFinancialSummary))
	for i, bucket := range output.MonthlyFinancialSummary {
		summary[i] = MonthBucketResponse{
			Date:          bucket.Date,
			IncomesTotal:  bucket.IncomesTotal,
			ExpensesTotal: bucket.ExpensesTotal,
		}
	}

	rankings := make([]CategoryRankingResponse, len(output.CategoriesWithMostRecords))
	for i, ranking := range output.CategoriesWithMostRecords {
		rankings[i] = CategoryRankingResponse{
			Name:             ranking.Name,
			IncomesQuantity:  ranking.IncomesQuantity,
			ExpensesQuantity: ranking.ExpensesQuantity,
		}
	}

	expenses := make([]RecordResponse, len(output.BiggestExpenses))
	for i, expense := range output.BiggestExpenses {
		expenses[i] = ToRecordResponse(expense)
	}

	balance := make([]BalancePointResponse, len(output.MonthlyBalanceOverTime))
	for i, point := range output.MonthlyBalanceOverTime {
		balance[i] = BalancePointResponse{
			Date:    point.Date,
			Balance: point.Balance,
		}
	}

	return MetricsSummaryResponse{
		MonthlyFinancialSummary:   summary,
		CategoriesWithMostRecords: rankings,
		BiggestExpenses:           expenses,
		MonthlyBalanceOverTime:    balance,
	}
}
