// Package analysis computes per-currency aggregates over decoded transactions.
//
// Analysis is pure: it never mutates its input and keeps no state between
// calls, so independent inputs can be analyzed concurrently.
package analysis

import (
	"cmp"
	"context"
	"slices"
	"time"

	"github.com/dersalik/fibscope/internal/fault"
	"github.com/dersalik/fibscope/internal/model"
)

// Options selects which transactions take part in an analysis.
type Options struct {
	// IgnoreInternal drops money box transfers.
	IgnoreInternal bool
	// From and To bound the transaction date, both inclusive.
	From time.Time
	To   time.Time
}

// AllTime returns Options whose range admits every date, including the
// unset one.
func AllTime() Options {
	return Options{
		From: time.Time{},
		To:   time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// Result is the outcome of one analysis run.
type Result struct {
	TotalTransactionCount    int                                  `json:"total_transaction_count"`
	FilteredTransactionCount int                                  `json:"filtered_transaction_count"`
	From                     time.Time                            `json:"from"`
	To                       time.Time                            `json:"to"`
	IgnoreInternal           bool                                 `json:"ignore_internal"`
	Currencies               map[model.Currency]*CurrencyAnalysis `json:"currencies"`

	filtered []model.Transaction
}

// Ordered returns the per-currency analyses in reporting order.
func (r *Result) Ordered() []*CurrencyAnalysis {
	out := make([]*CurrencyAnalysis, 0, len(r.Currencies))
	for _, a := range r.Currencies {
		out = append(out, a)
	}
	slices.SortFunc(out, func(a, b *CurrencyAnalysis) int {
		return cmp.Compare(a.Currency.Rank(), b.Currency.Rank())
	})
	return out
}

// Recent returns up to n filtered transactions, newest first.
// Transactions sharing a timestamp keep their input order.
func (r *Result) Recent(n int) []model.Transaction {
	sorted := slices.Clone(r.filtered)
	slices.SortStableFunc(sorted, func(a, b model.Transaction) int {
		return b.Timestamp().Compare(a.Timestamp())
	})
	return head(sorted, n)
}

// Analyze filters txns by opts, partitions the remainder by currency and
// computes a CurrencyAnalysis for every currency present.
func Analyze(txns []model.Transaction, opts Options) (*Result, error) {
	if txns == nil {
		return nil, &fault.ValidationError{Field: "transactions", Reason: "must not be nil"}
	}

	filtered := filter(txns, opts)
	result := &Result{
		TotalTransactionCount:    len(txns),
		FilteredTransactionCount: len(filtered),
		From:                     opts.From,
		To:                       opts.To,
		IgnoreInternal:           opts.IgnoreInternal,
		Currencies:               make(map[model.Currency]*CurrencyAnalysis),
		filtered:                 filtered,
	}

	for _, g := range groupBy(filtered, func(t model.Transaction) model.Currency { return t.Amount.Currency }) {
		result.Currencies[g.key] = analyzeCurrency(g.key, g.txns)
	}
	return result, nil
}

// AnalyzeContext is Analyze with an up-front cancellation check.
func AnalyzeContext(ctx context.Context, txns []model.Transaction, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Analyze(txns, opts)
}

func filter(txns []model.Transaction, opts Options) []model.Transaction {
	out := make([]model.Transaction, 0, len(txns))
	for _, t := range txns {
		if t.Date.Before(opts.From) || t.Date.After(opts.To) {
			continue
		}
		if opts.IgnoreInternal && t.IsInternal() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// group is one bucket of a groupBy, in first-seen order.
type group[K comparable] struct {
	key  K
	txns []model.Transaction
}

// groupBy buckets txns by key. Buckets appear in the order their key was
// first seen and each keeps its transactions in input order.
func groupBy[K comparable](txns []model.Transaction, key func(model.Transaction) K) []group[K] {
	index := make(map[K]int)
	var groups []group[K]
	for _, t := range txns {
		k := key(t)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, group[K]{key: k})
		}
		groups[i].txns = append(groups[i].txns, t)
	}
	return groups
}

func head[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if n < len(s) {
		return s[:n]
	}
	return s
}
