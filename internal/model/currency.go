package model

import (
	"strings"

	"github.com/dersalik/fibscope/internal/fault"
)

// Currency is one of the currencies a FIB account can hold.
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
	IQD Currency = "IQD"
)

// DefaultCurrency is assumed when an amount carries no code.
const DefaultCurrency = IQD

// Currencies lists the supported currencies in reporting order.
var Currencies = []Currency{USD, EUR, IQD}

type currencyInfo struct {
	symbol string
	locale string
}

var currencyTable = map[Currency]currencyInfo{
	USD: {symbol: "$", locale: "en-US"},
	EUR: {symbol: "€", locale: "de-DE"},
	IQD: {symbol: "د.ع", locale: "ar-IQ"},
}

// ParseCurrency maps a currency code to a Currency. Matching is
// case-insensitive; a blank code yields DefaultCurrency.
func ParseCurrency(code string) (Currency, error) {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return DefaultCurrency, nil
	}
	c := Currency(strings.ToUpper(trimmed))
	if _, ok := currencyTable[c]; !ok {
		return "", &fault.FormatError{Input: code, Expected: "USD, EUR or IQD", Reason: "unknown currency code"}
	}
	return c, nil
}

// Code returns the ISO code. The zero Currency reports DefaultCurrency.
func (c Currency) Code() string {
	if c == "" {
		return string(DefaultCurrency)
	}
	return string(c)
}

// Symbol returns the display symbol, or the code for an unknown currency.
func (c Currency) Symbol() string {
	if info, ok := currencyTable[c]; ok {
		return info.symbol
	}
	return string(c)
}

// Locale returns the BCP 47 tag used when formatting amounts for display.
func (c Currency) Locale() string {
	if info, ok := currencyTable[c]; ok {
		return info.locale
	}
	return "en-US"
}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	_, ok := currencyTable[c]
	return ok
}

// Rank orders currencies as listed in Currencies.
func (c Currency) Rank() int {
	for i, known := range Currencies {
		if known == c {
			return i
		}
	}
	return len(Currencies)
}
