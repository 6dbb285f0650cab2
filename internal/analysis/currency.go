package analysis

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dersalik/fibscope/internal/model"
)

// CurrencyAnalysis aggregates the filtered transactions of one currency.
// Amounts are in that currency; outflows are reported as absolute values.
type CurrencyAnalysis struct {
	Currency         model.Currency `json:"currency"`
	TransactionCount int            `json:"transaction_count"`

	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	NetAmount    decimal.Decimal `json:"net_amount"`
	TotalFees    decimal.Decimal `json:"total_fees"`

	Monthly        []MonthlyAnalysis `json:"monthly"`
	Yearly         []YearlyAnalysis  `json:"yearly"`
	BalanceHistory []BalancePoint    `json:"balance_history"`

	Types                []TypeAnalysis                        `json:"types"`
	LargestByType        []TypeAnalysis                        `json:"largest_by_type"`
	Counterparties       []CounterpartyAnalysis                `json:"counterparties"`
	CounterpartiesByType map[string][]CounterpartyTypeAnalysis `json:"counterparties_by_type"`
	Statuses             []StatusCount                         `json:"statuses"`

	AverageMonthlyIncome decimal.Decimal  `json:"average_monthly_income"`
	MaxMonthlyIncome     decimal.Decimal  `json:"max_monthly_income"`
	MinMonthlyIncome     decimal.Decimal  `json:"min_monthly_income"`
	BestIncomeMonth      *MonthlyAnalysis `json:"best_income_month,omitempty"`
	WorstIncomeMonth     *MonthlyAnalysis `json:"worst_income_month,omitempty"`
	IncomeTrend          []IncomeChange   `json:"income_trend"`

	// Transactions is the partition in input order.
	Transactions []model.Transaction `json:"-"`
}

func analyzeCurrency(c model.Currency, txns []model.Transaction) *CurrencyAnalysis {
	a := &CurrencyAnalysis{
		Currency:         c,
		TransactionCount: len(txns),
		TotalInflow:      inflow(txns),
		TotalOutflow:     outflow(txns),
		NetAmount:        net(txns),
		TotalFees:        fees(txns),
		Transactions:     txns,
	}

	a.Monthly = monthlySeries(txns)
	a.Yearly = yearlySeries(txns)
	a.BalanceHistory = balanceHistory(txns)

	a.Types = typeBreakdown(txns)
	a.LargestByType = largestByType(txns)
	a.Counterparties = counterpartyBreakdown(txns)
	a.CounterpartiesByType = counterpartiesByType(txns)
	a.Statuses = statusBreakdown(txns)

	a.incomeStatistics()
	a.IncomeTrend = incomeTrend(a.Monthly)
	return a
}

// Largest returns up to n transactions with the largest absolute amount.
// Ties keep input order.
func (a *CurrencyAnalysis) Largest(n int) []model.Transaction {
	sorted := slices.Clone(a.Transactions)
	slices.SortStableFunc(sorted, func(x, y model.Transaction) int {
		return y.Amount.Abs().Cmp(x.Amount.Abs())
	})
	return head(sorted, n)
}

func inflow(txns []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		if t.Amount.Amount.IsPositive() {
			sum = sum.Add(t.Amount.Amount)
		}
	}
	return sum
}

func outflow(txns []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		if t.Amount.Amount.IsNegative() {
			sum = sum.Add(t.Amount.Amount.Abs())
		}
	}
	return sum
}

func net(txns []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		sum = sum.Add(t.Amount.Amount)
	}
	return sum
}

func fees(txns []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		sum = sum.Add(t.Fee.Amount)
	}
	return sum
}

func absTotal(txns []model.Transaction) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range txns {
		sum = sum.Add(t.Amount.Abs())
	}
	return sum
}

// average divides total by count, yielding zero for an empty group.
func average(total decimal.Decimal, count int) decimal.Decimal {
	if count == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(count)))
}
