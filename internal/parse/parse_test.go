package parse

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dersalik/fibscope/internal/fault"
	"github.com/dersalik/fibscope/internal/model"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func hms(h, m, s int) time.Duration {
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(s)*time.Second
}

func requireFormatError(t *testing.T, err error, input string) *fault.FormatError {
	t.Helper()
	require.Error(t, err, "expected error for %q", input)
	var fe *fault.FormatError
	require.True(t, errors.As(err, &fe), "expected FormatError for %q, got %T", input, err)
	assert.Equal(t, input, fe.Input)
	return fe
}

func TestMoney_Valid(t *testing.T) {
	tests := []struct {
		in       string
		amount   string
		currency model.Currency
	}{
		{"100.50 USD", "100.50", model.USD},
		{"50.25 EUR", "50.25", model.EUR},
		{"75.00 IQD", "75", model.IQD},
		{"100.50", "100.50", model.IQD},
		{"100", "100", model.IQD},
		{"-50.25 USD", "-50.25", model.USD},
		{"1000.00USD", "1000", model.USD},
		{"1,234.56 USD", "1234.56", model.USD},
		{"1,234,567.89 USD", "1234567.89", model.USD},
		{"123,45 EUR", "123.45", model.EUR},
		{"123,4 EUR", "123.4", model.EUR},
		{"1,000 IQD", "1000", model.IQD},
		{"-1,250,000 IQD", "-1250000", model.IQD},
		{"999999999.99 USD", "999999999.99", model.USD},
		{"  123.45   USD  ", "123.45", model.USD},
		{"123.45 usd", "123.45", model.USD},
		{"0 EUR", "0", model.EUR},
	}
	for _, tt := range tests {
		got, err := Money(tt.in)
		require.NoError(t, err, "Money(%q)", tt.in)
		assert.True(t, got.Amount.Equal(dec(tt.amount)), "Money(%q) amount = %s, want %s", tt.in, got.Amount, tt.amount)
		assert.Equal(t, tt.currency, got.Currency, "Money(%q)", tt.in)
	}
}

func TestMoney_Blank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		got, err := Money(in)
		require.NoError(t, err)
		assert.True(t, got.Amount.IsZero())
		assert.Equal(t, model.IQD, got.Currency)
	}
}

func TestMoney_Invalid(t *testing.T) {
	tests := []string{
		"abc",
		"USD",
		"12.34.56 USD",
		"100 GBP",
		"100 USDX",
		"100 US",
		"$100",
		"100 USD extra",
		"--5 USD",
		"1.2.3",
	}
	for _, in := range tests {
		_, err := Money(in)
		fe := requireFormatError(t, err, in)
		assert.Equal(t, MoneyLayout, fe.Expected)
	}
}

func TestMoney_UnknownCurrencyNamesCode(t *testing.T) {
	_, err := Money("100 GBP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GBP")
	assert.Contains(t, err.Error(), "unknown currency code")
}

func TestMoney_RoundTrip(t *testing.T) {
	tests := map[string]string{
		"100.50 USD": "100.50 USD",
		"0 EUR":      "0.00 EUR",
		"-50.25 IQD": "-50.25 IQD",
		"123,45 EUR": "123.45 EUR",
	}
	for in, want := range tests {
		got, err := Money(in)
		require.NoError(t, err)
		assert.Equal(t, want, got.String())
	}
}

func TestDate_Valid(t *testing.T) {
	tests := []struct {
		in             string
		year, month, d int
	}{
		{"25/12/2023", 2023, 12, 25},
		{"01/01/2000", 2000, 1, 1},
		{"31/03/2024", 2024, 3, 31},
		{"05/09/2023", 2023, 9, 5},
		{"29/02/2024", 2024, 2, 29},
	}
	for _, tt := range tests {
		got, err := Date(tt.in)
		require.NoError(t, err, "Date(%q)", tt.in)
		assert.Equal(t, time.Date(tt.year, time.Month(tt.month), tt.d, 0, 0, 0, 0, time.UTC), got)
	}
}

func TestDate_Blank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		got, err := Date(in)
		require.NoError(t, err)
		assert.True(t, got.IsZero())
	}
}

func TestDate_Invalid(t *testing.T) {
	tests := []string{
		"2023-12-25",
		"12/25/2023",
		"25-12-2023",
		"invalid",
		"32/01/2023",
		"01/13/2023",
		"1/1/2023",
		"31/02/2023",
		"25/12/23",
	}
	for _, in := range tests {
		_, err := Date(in)
		fe := requireFormatError(t, err, in)
		assert.Contains(t, err.Error(), "unable to parse date")
		assert.Equal(t, "dd/MM/yyyy", fe.Expected)
	}
}

func TestClock_TwelveHour(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"11:06:44 AM", hms(11, 6, 44)},
		{"01:30:15 PM", hms(13, 30, 15)},
		{"9:45:30 PM", hms(21, 45, 30)},
		{"3:13:12 PM", hms(15, 13, 12)},
		{"12:00:00 AM", 0},
		{"12:00:00 PM", hms(12, 0, 0)},
		{"11:30:45 pm", hms(23, 30, 45)},
	}
	for _, tt := range tests {
		got, err := Clock(tt.in)
		require.NoError(t, err, "Clock(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Clock(%q)", tt.in)
	}
}

func TestClock_WithoutSeconds(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"2:30 PM", hms(14, 30, 0)},
		{"10:45 AM", hms(10, 45, 0)},
		{"12:00 AM", 0},
	}
	for _, tt := range tests {
		got, err := Clock(tt.in)
		require.NoError(t, err, "Clock(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Clock(%q)", tt.in)
	}
}

func TestClock_TwentyFourHour(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"14:30:45", hms(14, 30, 45)},
		{"09:15:30", hms(9, 15, 30)},
		{"9:15:30", hms(9, 15, 30)},
		{"23:59:59", hms(23, 59, 59)},
		{"00:00:01", hms(0, 0, 1)},
	}
	for _, tt := range tests {
		got, err := Clock(tt.in)
		require.NoError(t, err, "Clock(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Clock(%q)", tt.in)
	}
}

func TestClock_DurationLiteral(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"02:30:45", hms(2, 30, 45)},
		{"1.02:30:45", 24*time.Hour + hms(2, 30, 45)},
		{"14:30", hms(14, 30, 0)},
		{"10:20:30.5", hms(10, 20, 30) + 500*time.Millisecond},
		{"2", 48 * time.Hour},
	}
	for _, tt := range tests {
		got, err := Clock(tt.in)
		require.NoError(t, err, "Clock(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Clock(%q)", tt.in)
	}
}

func TestClock_Blank(t *testing.T) {
	for _, in := range []string{"", "   ", "\t"} {
		got, err := Clock(in)
		require.NoError(t, err)
		assert.Equal(t, time.Duration(0), got)
	}
}

func TestClock_Invalid(t *testing.T) {
	tests := []string{
		"invalid time",
		"25:61:61",
		"13:30 PM",
		"not a time",
		"1:2:3:4:5",
	}
	for _, in := range tests {
		_, err := Clock(in)
		requireFormatError(t, err, in)
		assert.Contains(t, err.Error(), "unable to parse time")
		assert.Contains(t, err.Error(), "h:mm:ss tt")
	}
}

func TestClock_FormatRoundTrip(t *testing.T) {
	for _, in := range []string{"11:06:44 AM", "1:30:15 PM", "12:00:00 PM", "11:59:59 PM"} {
		d, err := Clock(in)
		require.NoError(t, err)
		assert.Equal(t, in, model.FormatClock(d))
	}
}
