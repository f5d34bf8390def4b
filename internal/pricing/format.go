package pricing

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders an amount the way Brazilian invoices do: "R$ 1.234,56".
func FormatBRL(value decimal.Decimal) string {
	return "R$ " + FormatNumber(value, 2)
}

func FormatNumber(value decimal.Decimal, places int32) string {
	return brPrinter.Sprintf("%.*f", int(places), value.Round(places).InexactFloat64())
}

func FormatPercent(value decimal.Decimal) string {
	return FormatNumber(value, 2) + "%"
}
