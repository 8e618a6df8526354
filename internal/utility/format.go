package utility

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var germanPrinter = message.NewPrinter(language.German)

// CentsToEuro converts a cent amount into an exact euro decimal.
func CentsToEuro(cents int64) decimal.Decimal {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100))
}

// FormatEuro renders a cent amount the way German invoices show it,
// e.g. 123456 becomes "1.234,56 €".
func FormatEuro(cents int64) string {
	euros := CentsToEuro(cents)
	f, _ := euros.Float64()
	return germanPrinter.Sprintf("%v €", number.Decimal(f,
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))
}

// FormatDateDE renders an ISO date (YYYY-MM-DD) as DD.MM.YYYY. Values
// that do not parse are returned unchanged so a malformed stored date
// never breaks display.
func FormatDateDE(isoDate string) string {
	t, err := time.Parse("2006-01-02", isoDate)
	if err != nil {
		return isoDate
	}
	return t.Format("02.01.2006")
}

// TodayISO returns the current date in the stored ISO format.
func TodayISO() string {
	return time.Now().Format("2006-01-02")
}
