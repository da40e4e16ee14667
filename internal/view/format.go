package view

import (
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count renders an integer with thousands separators ("123,456").
func Count(n int) string {
	return printer.Sprintf("%d", n)
}

// Millions renders a value in millions with one decimal ("$12.5").
func Millions(d decimal.Decimal) string {
	return "$" + d.StringFixed(1)
}

// MillionsAxis renders an axis tick for a value in millions ("$12.5M").
func MillionsAxis(v float64) string {
	return fmt.Sprintf("$%sM", decimal.NewFromFloat(v).Round(1).String())
}

// Thousands renders a count in compact form ("45.2K").
func Thousands(n int) string {
	return decimal.NewFromInt(int64(n)).Div(decimal.NewFromInt(1000)).StringFixed(1) + "K"
}

// ThousandsAxis renders an axis tick as whole thousands ("120k").
func ThousandsAxis(v float64) string {
	return decimal.NewFromFloat(v / 1000).StringFixed(0) + "k"
}

// Percent renders a signed percentage with one decimal ("+20.0%", "-3.2%").
func Percent(pct decimal.Decimal) string {
	rounded := pct.Round(1)
	if rounded.Sign() >= 0 {
		return "+" + rounded.StringFixed(1) + "%"
	}
	return rounded.StringFixed(1) + "%"
}
