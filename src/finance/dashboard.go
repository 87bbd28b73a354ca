// Package finance holds the aggregation and projection logic. Both engines
// are pure: they take a user's records and return derived numbers, so the
// handlers own all storage access and the math is reproducible in isolation.
//
// Monetary sums are carried as decimals and rounded only at emission, to two
// places, half away from zero.
package finance

import (
	"sort"

	"finote-server/src/models"

	"github.com/shopspring/decimal"
)

// RecentTransactionLimit is how many transactions the dashboard surfaces.
const RecentTransactionLimit = 5

type DashboardSummary struct {
	Balance              float64              `json:"balance"`
	TotalIncome          float64              `json:"total_income"`
	TotalExpenses        float64              `json:"total_expenses"`
	MonthlySubscriptions float64              `json:"monthly_subscriptions"`
	CategoryBreakdown    map[string]float64   `json:"category_breakdown"`
	RecentTransactions   []models.Transaction `json:"recent_transactions"`
	TransactionCount     int                  `json:"transaction_count"`
}

// Summarize computes the dashboard metrics from all of a user's transactions
// and their active subscriptions. Categories with no expense are absent from
// the breakdown rather than reported as zero.
func Summarize(transactions []models.Transaction, subscriptions []models.Subscription) DashboardSummary {
	totalIncome := decimal.Zero
	totalExpenses := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)

	for _, t := range transactions {
		amount := decimal.NewFromFloat(t.Amount)
		switch t.Type {
		case models.TransactionIncome:
			totalIncome = totalIncome.Add(amount)
		case models.TransactionExpense:
			totalExpenses = totalExpenses.Add(amount)
			byCategory[t.Category] = byCategory[t.Category].Add(amount)
		}
	}

	subscriptionTotal := decimal.Zero
	for _, sub := range subscriptions {
		if sub.Active {
			subscriptionTotal = subscriptionTotal.Add(decimal.NewFromFloat(sub.Amount))
		}
	}

	breakdown := make(map[string]float64, len(byCategory))
	for category, amount := range byCategory {
		breakdown[category] = round2(amount)
	}

	return DashboardSummary{
		Balance:              round2(totalIncome.Sub(totalExpenses)),
		TotalIncome:          round2(totalIncome),
		TotalExpenses:        round2(totalExpenses),
		MonthlySubscriptions: round2(subscriptionTotal),
		CategoryBreakdown:    breakdown,
		RecentTransactions:   recentTransactions(transactions, RecentTransactionLimit),
		TransactionCount:     len(transactions),
	}
}

// recentTransactions returns the n latest transactions by date, descending.
// The sort is stable so ties keep their retrieval order.
func recentTransactions(transactions []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func round1(d decimal.Decimal) float64 {
	return d.Round(1).InexactFloat64()
}
