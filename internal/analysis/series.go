package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dersalik/fibscope/internal/model"
)

// MonthlyAnalysis summarizes one calendar month.
type MonthlyAnalysis struct {
	Year             int             `json:"year"`
	Month            time.Month      `json:"month"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	TransactionCount int             `json:"transaction_count"`
}

// Label renders the month as "Jan 2006".
func (m MonthlyAnalysis) Label() string {
	return time.Date(m.Year, m.Month, 1, 0, 0, 0, 0, time.UTC).Format("Jan 2006")
}

// NetIncome is income minus expenses.
func (m MonthlyAnalysis) NetIncome() decimal.Decimal { return m.Income.Sub(m.Expenses) }

// AverageTransactionSize is the mean absolute amount per transaction.
func (m MonthlyAnalysis) AverageTransactionSize() decimal.Decimal {
	return average(m.Income.Add(m.Expenses), m.TransactionCount)
}

// YearlyAnalysis summarizes one calendar year.
type YearlyAnalysis struct {
	Year             int             `json:"year"`
	Income           decimal.Decimal `json:"income"`
	Expenses         decimal.Decimal `json:"expenses"`
	TransactionCount int             `json:"transaction_count"`
}

// NetIncome is income minus expenses.
func (y YearlyAnalysis) NetIncome() decimal.Decimal { return y.Income.Sub(y.Expenses) }

// IncomeChange compares a month's income with the month before it in the series.
type IncomeChange struct {
	Month    MonthlyAnalysis `json:"month"`
	Previous MonthlyAnalysis `json:"previous"`
	Change   decimal.Decimal `json:"change"`
	// Percent is zero when the previous month had no income.
	Percent decimal.Decimal `json:"percent"`
}

type yearMonth struct {
	year  int
	month time.Month
}

func dated(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.HasDate() {
			out = append(out, t)
		}
	}
	return out
}

// monthlySeries groups dated transactions by month, newest first.
func monthlySeries(txns []model.Transaction) []MonthlyAnalysis {
	groups := groupBy(dated(txns), func(t model.Transaction) yearMonth {
		return yearMonth{year: t.Date.Year(), month: t.Date.Month()}
	})

	series := make([]MonthlyAnalysis, 0, len(groups))
	for _, g := range groups {
		series = append(series, MonthlyAnalysis{
			Year:             g.key.year,
			Month:            g.key.month,
			Income:           inflow(g.txns),
			Expenses:         outflow(g.txns),
			TransactionCount: len(g.txns),
		})
	}
	slices.SortStableFunc(series, func(a, b MonthlyAnalysis) int {
		if c := cmp.Compare(b.Year, a.Year); c != 0 {
			return c
		}
		return cmp.Compare(b.Month, a.Month)
	})
	return series
}

// yearlySeries groups dated transactions by year, newest first.
func yearlySeries(txns []model.Transaction) []YearlyAnalysis {
	groups := groupBy(dated(txns), func(t model.Transaction) int { return t.Date.Year() })

	series := make([]YearlyAnalysis, 0, len(groups))
	for _, g := range groups {
		series = append(series, YearlyAnalysis{
			Year:             g.key,
			Income:           inflow(g.txns),
			Expenses:         outflow(g.txns),
			TransactionCount: len(g.txns),
		})
	}
	slices.SortStableFunc(series, func(a, b YearlyAnalysis) int {
		return cmp.Compare(b.Year, a.Year)
	})
	return series
}

// incomeStatistics derives the income figures from months with positive
// income. Best and worst are the first extreme in series order.
func (a *CurrencyAnalysis) incomeStatistics() {
	var earning []int
	for i, m := range a.Monthly {
		if m.Income.IsPositive() {
			earning = append(earning, i)
		}
	}
	if len(earning) == 0 {
		return
	}

	best, worst := earning[0], earning[0]
	total := decimal.Zero
	for _, i := range earning {
		income := a.Monthly[i].Income
		total = total.Add(income)
		if income.GreaterThan(a.Monthly[best].Income) {
			best = i
		}
		if income.LessThan(a.Monthly[worst].Income) {
			worst = i
		}
	}

	bestMonth, worstMonth := a.Monthly[best], a.Monthly[worst]
	a.AverageMonthlyIncome = average(total, len(earning))
	a.MaxMonthlyIncome = bestMonth.Income
	a.MinMonthlyIncome = worstMonth.Income
	a.BestIncomeMonth = &bestMonth
	a.WorstIncomeMonth = &worstMonth
}

// trendMonths is how many of the most recent months the income trend covers.
const trendMonths = 3

var hundred = decimal.NewFromInt(100)

// incomeTrend compares each of the most recent months with the one before it.
func incomeTrend(monthly []MonthlyAnalysis) []IncomeChange {
	recent := head(monthly, trendMonths)
	if len(recent) < 2 {
		return nil
	}

	trend := make([]IncomeChange, 0, len(recent)-1)
	for i := 0; i < len(recent)-1; i++ {
		cur, prev := recent[i], recent[i+1]
		change := cur.Income.Sub(prev.Income)
		percent := decimal.Zero
		if prev.Income.IsPositive() {
			percent = change.Div(prev.Income).Mul(hundred)
		}
		trend = append(trend, IncomeChange{Month: cur, Previous: prev, Change: change, Percent: percent})
	}
	return trend
}
