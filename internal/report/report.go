// Package report renders analysis results for people and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dersalik/fibscope/internal/analysis"
	"github.com/dersalik/fibscope/internal/model"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Options limits the length of ranked sections.
type Options struct {
	TopTypes          int
	TopCounterparties int
	Largest           int
	Recent            int
}

// DefaultOptions mirrors the default report configuration.
func DefaultOptions() Options {
	return Options{TopTypes: 10, TopCounterparties: 5, Largest: 3, Recent: 10}
}

// Write renders r in the named format.
func Write(w io.Writer, format string, r *analysis.Result, opts Options) error {
	switch format {
	case FormatText, "":
		return Text(w, r, opts)
	case FormatJSON:
		return JSON(w, r, opts)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

type jsonCurrency struct {
	*analysis.CurrencyAnalysis
	Largest []model.Transaction `json:"largest"`
}

type jsonReport struct {
	*analysis.Result
	Currencies []jsonCurrency      `json:"currencies"`
	Recent     []model.Transaction `json:"recent"`
}

// JSON writes r as indented JSON. Currencies appear in reporting order.
func JSON(w io.Writer, r *analysis.Result, opts Options) error {
	out := jsonReport{
		Result:     r,
		Currencies: []jsonCurrency{},
		Recent:     r.Recent(opts.Recent),
	}
	for _, a := range r.Ordered() {
		out.Currencies = append(out.Currencies, jsonCurrency{CurrencyAnalysis: a, Largest: a.Largest(opts.Largest)})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}
