package report

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dersalik/fibscope/internal/analysis"
	"github.com/dersalik/fibscope/internal/importer"
	"github.com/dersalik/fibscope/internal/model"
)

func money(s string, c model.Currency) model.Money {
	return model.NewMoney(decimal.RequireFromString(s), c)
}

func day(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }

func sampleResult(t *testing.T) *analysis.Result {
	t.Helper()
	txns := []model.Transaction{
		{Amount: money("1234.50", model.USD), Type: "DEPOSIT", Counterparty: "Employer", Status: "COMPLETED", Date: day(2023, 9, 1), Time: 9 * time.Hour},
		{Amount: money("-200", model.USD), Type: "PAYMENT", Counterparty: "Landlord", Status: "COMPLETED", Date: day(2023, 10, 1), Time: 10 * time.Hour},
		{Amount: money("300", model.USD), Type: "DEPOSIT", Counterparty: "Employer", Status: "PENDING", Date: day(2023, 10, 15)},
		{Amount: money("42", model.EUR), Type: "TRANSFER", Counterparty: "Friend", Status: "COMPLETED", Date: day(2023, 10, 2)},
		{Amount: money("-1250000", model.IQD), Type: "WITHDRAWAL", Counterparty: "ATM", Status: "COMPLETED", Date: day(2023, 10, 3)},
	}
	r, err := analysis.Analyze(txns, analysis.AllTime())
	require.NoError(t, err)
	return r
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleResult(t), DefaultOptions()))
	out := buf.String()

	assert.Contains(t, out, "FIB TRANSACTION ANALYSIS")
	assert.Contains(t, out, "Transactions: 5 total, 5 analyzed")
	assert.Contains(t, out, "Period: all time")
	assert.Contains(t, out, "USD ($)")
	assert.Contains(t, out, "EUR (€)")
	assert.Contains(t, out, "1,534.50")
	assert.Contains(t, out, "Oct 2023")
	assert.Contains(t, out, "Sep 2023")
	assert.Contains(t, out, "Income trend:")
	assert.Contains(t, out, "Landlord")
	assert.Contains(t, out, "PENDING")
	assert.Contains(t, out, "Largest transactions:")
	assert.Contains(t, out, "Recent transactions (last 5):")
	assert.Contains(t, out, "€42,00")

	assert.Less(t, bytes.Index(buf.Bytes(), []byte("USD ($)")), bytes.Index(buf.Bytes(), []byte("EUR (€)")))
	assert.Less(t, bytes.Index(buf.Bytes(), []byte("EUR (€)")), bytes.Index(buf.Bytes(), []byte("IQD (د.ع)")))
}

func TestText_IraqiDinarLocale(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sampleResult(t), DefaultOptions()))
	out := buf.String()

	want := message.NewPrinter(language.MustParse("ar-IQ")).Sprintf("%.2f", 1250000.0)
	assert.Contains(t, out, "IQD (د.ع)")
	assert.Contains(t, out, "Outflow:       د.ع"+want)
	assert.Contains(t, out, "Net:           -د.ع"+want)
}

func TestText_ExactAmounts(t *testing.T) {
	txns := []model.Transaction{
		{Amount: money("12345678901234567.89", model.USD), Type: "DEPOSIT", Counterparty: "Vault", Date: day(2023, 9, 1)},
		{Amount: money("-0.01", model.USD), Type: "PAYMENT", Counterparty: "Vault", Date: day(2023, 9, 2)},
	}
	r, err := analysis.Analyze(txns, analysis.AllTime())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, r, DefaultOptions()))
	out := buf.String()

	assert.Contains(t, out, "Inflow:        $12,345,678,901,234,567.89")
	assert.Contains(t, out, "Outflow:       $0.01")
	assert.Contains(t, out, "Net:           +$12,345,678,901,234,567.88")
}

func TestText_Limits(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{TopTypes: 1, TopCounterparties: 1, Largest: 1, Recent: 2}
	require.NoError(t, Text(&buf, sampleResult(t), opts))
	out := buf.String()

	assert.Contains(t, out, "Recent transactions (last 2):")
	assert.NotContains(t, out, "Landlord")
}

func TestText_Empty(t *testing.T) {
	r, err := analysis.Analyze([]model.Transaction{}, analysis.AllTime())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, r, DefaultOptions()))
	assert.Contains(t, buf.String(), "No transactions to analyze.")
}

func TestText_Period(t *testing.T) {
	r, err := analysis.Analyze([]model.Transaction{}, analysis.Options{
		IgnoreInternal: true,
		From:           day(2023, 9, 1),
		To:             analysis.AllTime().To,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Text(&buf, r, DefaultOptions()))
	assert.Contains(t, buf.String(), "Period: 01/09/2023 to end")
	assert.Contains(t, buf.String(), "Money box transfers: excluded")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sampleResult(t), DefaultOptions()))

	var got struct {
		Total      int `json:"total_transaction_count"`
		Filtered   int `json:"filtered_transaction_count"`
		Currencies []struct {
			Currency         string `json:"currency"`
			TransactionCount int    `json:"transaction_count"`
			TotalInflow      string `json:"total_inflow"`
			Largest          []struct {
				Amount string `json:"amount"`
			} `json:"largest"`
		} `json:"currencies"`
		Recent []struct {
			Date string `json:"date"`
		} `json:"recent"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 5, got.Filtered)
	require.Len(t, got.Currencies, 3)
	assert.Equal(t, "USD", got.Currencies[0].Currency)
	assert.Equal(t, 3, got.Currencies[0].TransactionCount)
	assert.Equal(t, "1534.5", got.Currencies[0].TotalInflow)
	require.Len(t, got.Currencies[0].Largest, 3)
	assert.Equal(t, "1234.50 USD", got.Currencies[0].Largest[0].Amount)
	assert.Equal(t, "EUR", got.Currencies[1].Currency)
	assert.Equal(t, "IQD", got.Currencies[2].Currency)
	require.Len(t, got.Recent, 5)
	assert.Equal(t, "15/10/2023", got.Recent[0].Date)
}

func TestJSON_Fixture(t *testing.T) {
	txns, err := importer.ReadFile("../../testdata/fib_export.csv")
	require.NoError(t, err)
	r, err := analysis.Analyze(txns, analysis.AllTime())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, r, DefaultOptions()))
	assert.True(t, json.Valid(buf.Bytes()))
	assert.Contains(t, buf.String(), `"counterparties_by_type"`)
	assert.NotContains(t, buf.String(), `"Transactions"`)
}

func TestWrite_Dispatch(t *testing.T) {
	r := sampleResult(t)

	var text, js bytes.Buffer
	require.NoError(t, Write(&text, FormatText, r, DefaultOptions()))
	require.NoError(t, Write(&js, FormatJSON, r, DefaultOptions()))
	assert.Contains(t, text.String(), "FIB TRANSACTION ANALYSIS")
	assert.True(t, json.Valid(js.Bytes()))

	err := Write(&bytes.Buffer{}, "pdf", r, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pdf")
}
