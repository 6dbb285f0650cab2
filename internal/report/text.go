package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dersalik/fibscope/internal/analysis"
	"github.com/dersalik/fibscope/internal/model"
)

// printer writes formatted lines and keeps the first write error.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) linef(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format+"\n", args...)
}

// amounts formats numbers the way the currency's locale writes them.
type amounts struct {
	symbol  string
	digits  [10]string
	group   string
	decimal string
}

func newAmounts(c model.Currency) amounts {
	tag, err := language.Parse(c.Locale())
	if err != nil {
		tag = language.AmericanEnglish
	}
	a := amounts{symbol: c.Symbol(), group: ",", decimal: "."}
	a.learn(message.NewPrinter(tag))
	return a
}

// learn takes the locale's digits and separators from the printer. The
// amount itself is never passed through a float.
func (a *amounts) learn(p *message.Printer) {
	for i := range a.digits {
		a.digits[i] = p.Sprintf("%d", i)
	}

	// sample is 1<group>234<decimal>50 in the locale's digits.
	sample := p.Sprintf("%.2f", 1234.5)
	i := strings.Index(sample, a.digits[1])
	if i < 0 {
		return
	}
	rest := sample[i+len(a.digits[1]):]
	j := strings.Index(rest, a.digits[2])
	if j < 0 {
		return
	}
	group := rest[:j]
	rest = rest[j:]
	k := strings.Index(rest, a.digits[4])
	if k < 0 {
		return
	}
	rest = rest[k+len(a.digits[4]):]
	l := strings.Index(rest, a.digits[5])
	if l < 0 {
		return
	}
	a.group, a.decimal = group, rest[:l]
}

func (a amounts) money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + a.symbol + a.number(d.Abs())
	}
	return a.symbol + a.number(d)
}

func (a amounts) signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return a.money(d)
	}
	return "+" + a.money(d)
}

func (a amounts) number(d decimal.Decimal) string {
	lit := d.StringFixed(2)
	var b strings.Builder
	if strings.HasPrefix(lit, "-") {
		b.WriteByte('-')
		lit = lit[1:]
	}
	whole, frac, _ := strings.Cut(lit, ".")
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteString(a.group)
		}
		b.WriteString(a.digits[r-'0'])
	}
	b.WriteString(a.decimal)
	for _, r := range frac {
		b.WriteString(a.digits[r-'0'])
	}
	return b.String()
}

// Text writes a human-readable report.
func Text(w io.Writer, r *analysis.Result, opts Options) error {
	p := &printer{w: w}

	p.linef("FIB TRANSACTION ANALYSIS")
	p.linef("Transactions: %d total, %d analyzed", r.TotalTransactionCount, r.FilteredTransactionCount)
	p.linef("Period: %s", period(r))
	if r.IgnoreInternal {
		p.linef("Money box transfers: excluded")
	}

	if len(r.Currencies) == 0 {
		p.linef("")
		p.linef("No transactions to analyze.")
		return p.err
	}

	for _, a := range r.Ordered() {
		p.linef("")
		writeCurrency(p, a, opts)
	}

	if recent := r.Recent(opts.Recent); len(recent) > 0 {
		p.linef("")
		p.linef("Recent transactions (last %d):", len(recent))
		for _, t := range recent {
			p.linef("  %s %s | %s | %s | %s", dateOrDash(t), model.FormatClock(t.Time), t.Amount, t.Type, t.Counterparty)
		}
	}
	return p.err
}

func period(r *analysis.Result) string {
	all := analysis.AllTime()
	from, to := "start", "end"
	if !r.From.IsZero() {
		from = model.FormatDate(r.From)
	}
	if !r.To.Equal(all.To) {
		to = model.FormatDate(r.To)
	}
	if from == "start" && to == "end" {
		return "all time"
	}
	return from + " to " + to
}

func dateOrDash(t model.Transaction) string {
	if !t.HasDate() {
		return "-"
	}
	return model.FormatDate(t.Date)
}

func writeCurrency(p *printer, a *analysis.CurrencyAnalysis, opts Options) {
	f := newAmounts(a.Currency)
	title := fmt.Sprintf("%s (%s)", a.Currency.Code(), a.Currency.Symbol())
	p.linef("%s", title)
	p.linef("%s", strings.Repeat("=", len([]rune(title))))
	p.linef("  Transactions:  %d", a.TransactionCount)
	p.linef("  Inflow:        %s", f.money(a.TotalInflow))
	p.linef("  Outflow:       %s", f.money(a.TotalOutflow))
	p.linef("  Net:           %s", f.signed(a.NetAmount))
	p.linef("  Fees:          %s", f.money(a.TotalFees))

	if len(a.Monthly) > 0 {
		p.linef("")
		p.linef("Monthly:")
		for _, m := range a.Monthly {
			p.linef("  %s  income %s  expenses %s  net %s  (%d tx)",
				m.Label(), f.money(m.Income), f.money(m.Expenses), f.signed(m.NetIncome()), m.TransactionCount)
		}
	} else {
		p.linef("")
		p.linef("No dated transactions for monthly analysis.")
	}

	if a.BestIncomeMonth != nil {
		p.linef("")
		p.linef("Income:")
		p.linef("  Average monthly: %s", f.money(a.AverageMonthlyIncome))
		p.linef("  Highest:         %s (%s)", f.money(a.MaxMonthlyIncome), a.BestIncomeMonth.Label())
		p.linef("  Lowest:          %s (%s)", f.money(a.MinMonthlyIncome), a.WorstIncomeMonth.Label())
	}

	if len(a.IncomeTrend) > 0 {
		p.linef("")
		p.linef("Income trend:")
		for _, c := range a.IncomeTrend {
			p.linef("  %s vs %s: %s (%s%%)", c.Month.Label(), c.Previous.Label(), f.signed(c.Change), percent(c.Percent))
		}
	}

	if len(a.Types) > 0 {
		p.linef("")
		p.linef("Transaction types:")
		for _, t := range head(a.Types, opts.TopTypes) {
			p.linef("  %-20s %4d  total %s  avg %s  largest %s",
				t.Type, t.Count, f.money(t.TotalAmount), f.money(t.AverageAmount()), f.money(t.LargestAmount))
		}
	}

	if len(a.Statuses) > 0 {
		p.linef("")
		p.linef("Status:")
		for _, s := range a.Statuses {
			p.linef("  %-20s %4d", s.Status, s.Count)
		}
	}

	if len(a.Counterparties) > 0 {
		p.linef("")
		p.linef("Top counterparties:")
		for _, c := range head(a.Counterparties, opts.TopCounterparties) {
			p.linef("  %-24s %4d tx  sent %s  received %s  net %s",
				c.Counterparty, c.TransactionCount, f.money(c.AmountSent), f.money(c.AmountReceived), f.signed(c.NetAmount))
		}
	}

	if largest := a.Largest(opts.Largest); len(largest) > 0 {
		p.linef("")
		p.linef("Largest transactions:")
		for _, t := range largest {
			direction := "OUT"
			if t.Amount.Amount.IsPositive() {
				direction = "IN "
			}
			p.linef("  %s %s | %s | %s | %s", direction, f.money(t.Amount.Abs()), t.Type, t.Counterparty, dateOrDash(t))
		}
	}
}

func percent(d decimal.Decimal) string {
	if d.IsNegative() {
		return d.StringFixed(1)
	}
	return "+" + d.StringFixed(1)
}

func head[T any](s []T, n int) []T {
	if n >= 0 && n < len(s) {
		return s[:n]
	}
	return s
}
