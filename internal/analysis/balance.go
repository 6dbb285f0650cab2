package analysis

import (
	"cmp"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/dersalik/fibscope/internal/model"
)

// BalancePoint is the account balance right after a transaction.
type BalancePoint struct {
	At      time.Time       `json:"at"`
	Balance decimal.Decimal `json:"balance"`
}

// balanceHistory reports the balance over time for dated transactions.
// When any transaction carries a balance, the non-zero balances are used
// as reported. Otherwise a running total of amounts from zero is built.
func balanceHistory(txns []model.Transaction) []BalancePoint {
	chrono := dated(txns)
	slices.SortStableFunc(chrono, func(a, b model.Transaction) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Time, b.Time)
	})

	var history []BalancePoint
	for _, t := range chrono {
		if !t.BalanceAfter.IsZero() {
			history = append(history, BalancePoint{At: t.Timestamp(), Balance: t.BalanceAfter.Amount})
		}
	}

	if len(history) == 0 && len(chrono) > 0 {
		running := decimal.Zero
		for _, t := range chrono {
			running = running.Add(t.Amount.Amount)
			history = append(history, BalancePoint{At: t.Timestamp(), Balance: running})
		}
	}

	slices.SortStableFunc(history, func(a, b BalancePoint) int {
		return a.At.Compare(b.At)
	})
	return history
}
