// Package parse converts raw FIB export fields into typed values.
package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/dersalik/fibscope/internal/fault"
	"github.com/dersalik/fibscope/internal/model"
)

// MoneyLayout describes the accepted monetary literal.
const MoneyLayout = "<number>[ ]<3-letter code>"

var moneyPattern = regexp.MustCompile(`^(-?\d+(?:[,.]\d+)*)\s*([A-Za-z]{3})?$`)

// Money parses literals such as "100.50 USD", "-1,234.56EUR" or "123,45".
// A blank field yields zero in the default currency; a missing code yields
// the default currency.
func Money(s string) (model.Money, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return model.Zero(model.DefaultCurrency), nil
	}

	m := moneyPattern.FindStringSubmatch(trimmed)
	if m == nil {
		return model.Money{}, &fault.FormatError{Input: s, Expected: MoneyLayout, Reason: "unable to parse monetary value"}
	}

	amount, err := decimal.NewFromString(normalizeAmount(m[1]))
	if err != nil {
		return model.Money{}, &fault.FormatError{Input: s, Expected: MoneyLayout, Reason: "unable to parse amount"}
	}

	currency, err := model.ParseCurrency(m[2])
	if err != nil {
		return model.Money{}, &fault.FormatError{
			Input:    s,
			Expected: MoneyLayout,
			Reason:   fmt.Sprintf("unknown currency code %q in monetary value", m[2]),
		}
	}

	return model.NewMoney(amount, currency), nil
}

// normalizeAmount rewrites a numeric literal into decimal.NewFromString form.
// A lone comma followed by at most two digits is a decimal separator;
// any other comma groups thousands and is dropped.
func normalizeAmount(lit string) string {
	if strings.Count(lit, ",") == 1 && !strings.Contains(lit, ".") {
		i := strings.IndexByte(lit, ',')
		if len(lit)-i-1 <= 2 {
			return lit[:i] + "." + lit[i+1:]
		}
	}
	return strings.ReplaceAll(lit, ",", "")
}
