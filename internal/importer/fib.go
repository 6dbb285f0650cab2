package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/dersalik/fibscope/internal/fault"
	"github.com/dersalik/fibscope/internal/id"
	"github.com/dersalik/fibscope/internal/model"
	"github.com/dersalik/fibscope/internal/parse"
)

// FIB export column headers.
const (
	ColID           = "ID"
	ColCounterparty = "COUNTERPARTY"
	ColAmount       = "AMOUNT"
	ColFee          = "FEE"
	ColBalanceAfter = "BALANCE AFTER"
	ColType         = "TRANSACTION TYPE"
	ColDate         = "DATE"
	ColTime         = "TIME"
	ColStatus       = "STATUS"
	ColExternalID   = "TRANSACTION ID"
	ColNote         = "NOTE"
)

// Columns lists the FIB export headers in export order.
var Columns = []string{
	ColID, ColCounterparty, ColAmount, ColFee, ColBalanceAfter, ColType,
	ColDate, ColTime, ColStatus, ColExternalID, ColNote,
}

const bom = "\ufeff"

// FIBParser parses First Iraqi Bank transaction exports.
type FIBParser struct{}

// Format returns the parser name.
func (p *FIBParser) Format() string { return "fib" }

// Parse reads a FIB CSV and returns its rows in source order.
// Columns are located by header name; their order does not matter.
func (p *FIBParser) Parse(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading FIB CSV: %w", err)
	}

	txns := []model.Transaction{}
	if len(records) == 0 {
		return txns, nil
	}

	cols, err := indexColumns(records[0])
	if err != nil {
		return nil, err
	}

	for i, rec := range records[1:] {
		txn, err := cols.unmarshal(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d, %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// columnIndex maps a header name to its position in a record.
type columnIndex map[string]int

func indexColumns(header []string) (columnIndex, error) {
	cols := make(columnIndex, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, bom)
		}
		if _, dup := cols[name]; !dup {
			cols[name] = i
		}
	}

	var missing []string
	for _, c := range Columns {
		if _, ok := cols[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, &fault.FormatError{
			Input:    strings.Join(header, ","),
			Expected: strings.Join(Columns, ","),
			Reason:   "missing columns " + strings.Join(missing, ", "),
		}
	}
	return cols, nil
}

// columnError names the column whose value failed to parse.
func columnError(col string, err error) error {
	return fmt.Errorf("column %s: %w", col, err)
}

func (c columnIndex) unmarshal(rec []string) (model.Transaction, error) {
	field := func(col string) string { return rec[c[col]] }

	var (
		txn model.Transaction
		err error
	)

	if txn.ID, err = id.Parse(field(ColID)); err != nil {
		return model.Transaction{}, columnError(ColID, err)
	}
	txn.Counterparty = field(ColCounterparty)
	if txn.Amount, err = parse.Money(field(ColAmount)); err != nil {
		return model.Transaction{}, columnError(ColAmount, err)
	}
	if txn.Fee, err = parse.Money(field(ColFee)); err != nil {
		return model.Transaction{}, columnError(ColFee, err)
	}
	if txn.BalanceAfter, err = parse.Money(field(ColBalanceAfter)); err != nil {
		return model.Transaction{}, columnError(ColBalanceAfter, err)
	}
	txn.Type = field(ColType)
	if txn.Date, err = parse.Date(field(ColDate)); err != nil {
		return model.Transaction{}, columnError(ColDate, err)
	}
	if txn.Time, err = parse.Clock(field(ColTime)); err != nil {
		return model.Transaction{}, columnError(ColTime, err)
	}
	txn.Status = field(ColStatus)
	if txn.ExternalID, err = id.Parse(field(ColExternalID)); err != nil {
		return model.Transaction{}, columnError(ColExternalID, err)
	}
	txn.Note = field(ColNote)

	return txn, nil
}
