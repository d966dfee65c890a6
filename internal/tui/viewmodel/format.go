package viewmodel

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter renders money and dates for one locale.
type Formatter struct {
	printer    *message.Printer
	location   *time.Location
	currency   string
	dateLayout string
}

// NewFormatter returns a formatter for tag that suffixes amounts with currency.
func NewFormatter(tag language.Tag, currency, dateLayout string, loc *time.Location) *Formatter {
	if dateLayout == "" {
		dateLayout = "1/2/2006"
	}
	if loc == nil {
		loc = time.Local
	}
	return &Formatter{
		printer:    message.NewPrinter(tag),
		currency:   currency,
		dateLayout: dateLayout,
		location:   loc,
	}
}

// Money formats d with locale grouping and exactly two decimals.
func (f *Formatter) Money(d decimal.Decimal) string {
	v, _ := d.Round(2).Float64()
	s := f.printer.Sprint(number.Decimal(v, number.Scale(2)))
	if f.currency == "" {
		return s
	}
	return s + " " + f.currency
}

// Date formats t in the formatter's zone.
func (f *Formatter) Date(t time.Time) string {
	return t.In(f.location).Format(f.dateLayout)
}

// Location returns the zone dates are shown in.
func (f *Formatter) Location() *time.Location {
	return f.location
}
