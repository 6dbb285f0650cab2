package analysis

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/dersalik/fibscope/internal/model"
)

// TypeAnalysis summarizes the transactions of one transaction type.
type TypeAnalysis struct {
	Type          string          `json:"type"`
	Count         int             `json:"count"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	LargestAmount decimal.Decimal `json:"largest_amount"`
	// LargestTransaction is set only in CurrencyAnalysis.LargestByType.
	LargestTransaction *model.Transaction `json:"largest_transaction,omitempty"`
}

// AverageAmount is the mean absolute amount.
func (t TypeAnalysis) AverageAmount() decimal.Decimal { return average(t.TotalAmount, t.Count) }

// CounterpartyAnalysis summarizes the transactions with one counterparty.
type CounterpartyAnalysis struct {
	Counterparty     string          `json:"counterparty"`
	TransactionCount int             `json:"transaction_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AmountSent       decimal.Decimal `json:"amount_sent"`
	AmountReceived   decimal.Decimal `json:"amount_received"`
	NetAmount        decimal.Decimal `json:"net_amount"`
}

// AverageAmount is the mean absolute amount.
func (c CounterpartyAnalysis) AverageAmount() decimal.Decimal {
	return average(c.TotalAmount, c.TransactionCount)
}

// CounterpartyTypeAnalysis summarizes one counterparty within one transaction type.
type CounterpartyTypeAnalysis struct {
	Counterparty string          `json:"counterparty"`
	Type         string          `json:"type"`
	Count        int             `json:"count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// AverageAmount is the mean absolute amount.
func (c CounterpartyTypeAnalysis) AverageAmount() decimal.Decimal { return average(c.TotalAmount, c.Count) }

// StatusCount is the number of transactions with one status.
type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

func byType(t model.Transaction) string { return t.Type }

func byCounterparty(t model.Transaction) string { return t.Counterparty }

// typeBreakdown groups by transaction type, most frequent first.
func typeBreakdown(txns []model.Transaction) []TypeAnalysis {
	groups := groupBy(txns, byType)

	out := make([]TypeAnalysis, 0, len(groups))
	for _, g := range groups {
		out = append(out, TypeAnalysis{
			Type:          g.key,
			Count:         len(g.txns),
			TotalAmount:   absTotal(g.txns),
			LargestAmount: largest(g.txns).Amount.Abs(),
		})
	}
	slices.SortStableFunc(out, func(a, b TypeAnalysis) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}

// largestByType picks the largest transaction of every type and orders the
// types by that amount, largest first.
func largestByType(txns []model.Transaction) []TypeAnalysis {
	groups := groupBy(txns, byType)

	out := make([]TypeAnalysis, 0, len(groups))
	for _, g := range groups {
		top := largest(g.txns)
		out = append(out, TypeAnalysis{
			Type:               g.key,
			Count:              len(g.txns),
			TotalAmount:        absTotal(g.txns),
			LargestAmount:      top.Amount.Abs(),
			LargestTransaction: &top,
		})
	}
	slices.SortStableFunc(out, func(a, b TypeAnalysis) int {
		return b.LargestAmount.Cmp(a.LargestAmount)
	})
	return out
}

// largest returns the first transaction with the greatest absolute amount.
// txns must not be empty.
func largest(txns []model.Transaction) model.Transaction {
	top := txns[0]
	for _, t := range txns[1:] {
		if t.Amount.Abs().GreaterThan(top.Amount.Abs()) {
			top = t
		}
	}
	return top
}

func withCounterparty(txns []model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Counterparty != "" {
			out = append(out, t)
		}
	}
	return out
}

// counterpartyBreakdown groups by counterparty, largest total first.
// Transactions without a counterparty are left out.
func counterpartyBreakdown(txns []model.Transaction) []CounterpartyAnalysis {
	groups := groupBy(withCounterparty(txns), byCounterparty)

	out := make([]CounterpartyAnalysis, 0, len(groups))
	for _, g := range groups {
		sent, received := outflow(g.txns), inflow(g.txns)
		out = append(out, CounterpartyAnalysis{
			Counterparty:     g.key,
			TransactionCount: len(g.txns),
			TotalAmount:      absTotal(g.txns),
			AmountSent:       sent,
			AmountReceived:   received,
			NetAmount:        received.Sub(sent),
		})
	}
	slices.SortStableFunc(out, func(a, b CounterpartyAnalysis) int {
		return b.TotalAmount.Cmp(a.TotalAmount)
	})
	return out
}

// counterpartiesByType groups by type, then by counterparty within each
// type, largest total first.
func counterpartiesByType(txns []model.Transaction) map[string][]CounterpartyTypeAnalysis {
	out := make(map[string][]CounterpartyTypeAnalysis)
	for _, tg := range groupBy(withCounterparty(txns), byType) {
		cgroups := groupBy(tg.txns, byCounterparty)
		leaves := make([]CounterpartyTypeAnalysis, 0, len(cgroups))
		for _, cg := range cgroups {
			leaves = append(leaves, CounterpartyTypeAnalysis{
				Counterparty: cg.key,
				Type:         tg.key,
				Count:        len(cg.txns),
				TotalAmount:  absTotal(cg.txns),
			})
		}
		slices.SortStableFunc(leaves, func(a, b CounterpartyTypeAnalysis) int {
			return b.TotalAmount.Cmp(a.TotalAmount)
		})
		out[tg.key] = leaves
	}
	return out
}

// statusBreakdown counts transactions per status, most frequent first.
func statusBreakdown(txns []model.Transaction) []StatusCount {
	groups := groupBy(txns, func(t model.Transaction) string { return t.Status })

	out := make([]StatusCount, 0, len(groups))
	for _, g := range groups {
		out = append(out, StatusCount{Status: g.key, Count: len(g.txns)})
	}
	slices.SortStableFunc(out, func(a, b StatusCount) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return out
}
