// Package format renders amounts and percentages for display.
package format

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale is used when a money book has no or an invalid locale.
var DefaultLocale = language.Indonesian

// Locale parses a BCP 47 language tag and falls back to DefaultLocale.
func Locale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		return DefaultLocale
	}
	return tag
}

// Currency formats an amount in the smallest currency unit with grouping
// separators of the locale, prefixed by the currency symbol.
func Currency(amount int64, symbol string, tag language.Tag) string {
	p := message.NewPrinter(tag)
	if symbol == "" {
		return p.Sprintf("%d", amount)
	}
	return p.Sprintf("%s %d", symbol, amount)
}

// Percentage formats a percentage with at most two decimals and without
// trailing zeros.
func Percentage(p decimal.Decimal) string {
	return p.Round(2).String() + "%"
}
