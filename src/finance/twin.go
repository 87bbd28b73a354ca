package finance

import (
	"finote-server/src/models"

	"github.com/shopspring/decimal"
)

// ProjectionMonths is the fixed horizon of every scenario.
const ProjectionMonths = 12

// Scenario assumptions. The growth multiplier is applied to the monthly
// income as a constant factor each month; it is not compounded across months.
// The conservative rate is clamped at zero but its growth multiplier is not,
// matching the product's published numbers.
var scenarioRules = []struct {
	Name      string
	RateDelta decimal.Decimal
	Growth    decimal.Decimal
	ClampZero bool
}{
	{Name: "baseline", RateDelta: decimal.Zero, Growth: decimal.RequireFromString("1.00")},
	{Name: "optimistic", RateDelta: decimal.NewFromInt(10), Growth: decimal.RequireFromString("1.05")},
	{Name: "conservative", RateDelta: decimal.NewFromInt(-5), Growth: decimal.RequireFromString("0.95"), ClampZero: true},
	{Name: "aggressive", RateDelta: decimal.NewFromInt(20), Growth: decimal.RequireFromString("1.10")},
}

type CurrentMetrics struct {
	MonthlyIncome     float64 `json:"monthlyIncome"`
	MonthlyExpense    float64 `json:"monthlyExpense"`
	SavingsRate       float64 `json:"savingsRate"`
	SubscriptionsCost float64 `json:"subscriptionsCost"`
}

type MonthProjection struct {
	Month    int     `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Savings  float64 `json:"savings"`
	Balance  float64 `json:"balance"`
}

type Scenario struct {
	Months       []MonthProjection `json:"months"`
	FinalBalance float64           `json:"finalBalance"`
}

type TwinProjection struct {
	CurrentMetrics CurrentMetrics      `json:"currentMetrics"`
	Scenarios      map[string]Scenario `json:"scenarios"`
}

// ProjectTwin derives current metrics from the user's records and runs the
// four scenario projections over them.
//
// Monthly income comes from declared Income records, not income-typed
// transactions. Monthly expense is total expense spend divided by the number
// of distinct calendar months among all transactions (at least 1).
func ProjectTwin(incomes []models.Income, transactions []models.Transaction, subscriptions []models.Subscription) TwinProjection {
	monthlyIncome := decimal.Zero
	for _, inc := range incomes {
		monthlyIncome = monthlyIncome.Add(decimal.NewFromFloat(inc.Amount))
	}

	totalExpenses := decimal.Zero
	months := make(map[string]struct{})
	for _, t := range transactions {
		if t.Type == models.TransactionExpense {
			totalExpenses = totalExpenses.Add(decimal.NewFromFloat(t.Amount))
		}
		months[t.Date.UTC().Format("2006-01")] = struct{}{}
	}
	divisor := len(months)
	if divisor < 1 {
		divisor = 1
	}
	monthlyExpense := totalExpenses.Div(decimal.NewFromInt(int64(divisor)))

	// Defined as 0 when there is no declared income.
	savingsRate := decimal.Zero
	if monthlyIncome.IsPositive() {
		denominator := decimal.Max(monthlyIncome, decimal.NewFromInt(1))
		savingsRate = monthlyIncome.Sub(monthlyExpense).Div(denominator).Mul(decimal.NewFromInt(100))
	}

	subscriptionsCost := decimal.Zero
	for _, sub := range subscriptions {
		if sub.Active {
			subscriptionsCost = subscriptionsCost.Add(decimal.NewFromFloat(sub.Amount))
		}
	}

	scenarios := make(map[string]Scenario, len(scenarioRules))
	for _, rule := range scenarioRules {
		rate := savingsRate.Add(rule.RateDelta)
		if rule.ClampZero && rate.IsNegative() {
			rate = decimal.Zero
		}
		scenarios[rule.Name] = generateScenario(monthlyIncome, monthlyExpense, rate, rule.Growth)
	}

	return TwinProjection{
		CurrentMetrics: CurrentMetrics{
			MonthlyIncome:     round2(monthlyIncome),
			MonthlyExpense:    round2(monthlyExpense),
			SavingsRate:       round1(savingsRate),
			SubscriptionsCost: round2(subscriptionsCost),
		},
		Scenarios: scenarios,
	}
}

func generateScenario(income, expense, rate, growth decimal.Decimal) Scenario {
	monthlyIncome := income.Mul(growth)
	saving := monthlyIncome.Mul(rate).Div(decimal.NewFromInt(100))

	balance := decimal.Zero
	months := make([]MonthProjection, 0, ProjectionMonths)
	for i := 1; i <= ProjectionMonths; i++ {
		balance = balance.Add(saving)
		months = append(months, MonthProjection{
			Month:    i,
			Income:   round2(monthlyIncome),
			Expenses: round2(expense),
			Savings:  round2(saving),
			Balance:  round2(balance),
		})
	}
	return Scenario{Months: months, FinalBalance: round2(balance)}
}
