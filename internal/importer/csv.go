package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/dersalik/fibscope/internal/id"
	"github.com/dersalik/fibscope/internal/model"
)

// WriteTransactions writes txns in FIB export layout (including header).
// The output decodes back to the same transactions: amounts keep every
// decimal place past the second, and times past midnight or with fractional
// seconds are written as duration literals.
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row ordered like Columns.
func MarshalTransaction(txn model.Transaction) []string {
	return []string{
		id.Format(txn.ID),
		txn.Counterparty,
		txn.Amount.Exact(),
		txn.Fee.Exact(),
		txn.BalanceAfter.Exact(),
		txn.Type,
		model.FormatDate(txn.Date),
		model.FormatClockExact(txn.Time),
		txn.Status,
		id.Format(txn.ExternalID),
		txn.Note,
	}
}
