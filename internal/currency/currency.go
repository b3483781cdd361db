// Package currency provides the static catalog of currencies the tracker
// offers and a formatting helper used wherever amounts are rendered.
package currency

import (
	money "github.com/Rhymond/go-money"
)

// FallbackCode is used for formatting when a stored code is unknown. The
// stored data itself is never rewritten to the fallback.
const FallbackCode = "USD"

// Info describes one supported currency for display purposes.
type Info struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Supported lists the selectable currencies in menu order.
var Supported = []Info{
	{Code: "USD", Symbol: "$", Name: "US Dollar"},
	{Code: "EUR", Symbol: "€", Name: "Euro"},
	{Code: "INR", Symbol: "₹", Name: "Indian Rupee"},
	{Code: "GBP", Symbol: "£", Name: "British Pound"},
	{Code: "JPY", Symbol: "¥", Name: "Japanese Yen"},
	{Code: "AUD", Symbol: "A$", Name: "Australian Dollar"},
	{Code: "CAD", Symbol: "C$", Name: "Canadian Dollar"},
	{Code: "SGD", Symbol: "S$", Name: "Singapore Dollar"},
	{Code: "AED", Symbol: "د.إ", Name: "UAE Dirham"},
	{Code: "CNY", Symbol: "¥", Name: "Chinese Yuan"},
	{Code: "CHF", Symbol: "CHF", Name: "Swiss Franc"},
	{Code: "NZD", Symbol: "NZ$", Name: "New Zealand Dollar"},
	{Code: "ZAR", Symbol: "R", Name: "South African Rand"},
	{Code: "HKD", Symbol: "HK$", Name: "Hong Kong Dollar"},
	{Code: "KRW", Symbol: "₩", Name: "South Korean Won"},
}

// Lookup returns the catalog entry for a code, if present.
func Lookup(code string) (Info, bool) {
	for _, c := range Supported {
		if c.Code == code {
			return c, true
		}
	}
	return Info{}, false
}

// Format renders an amount in minor units with exactly two fraction
// digits and the currency's symbol conventions. Unknown codes fall back
// to the USD conventions for formatting only.
func Format(cents int64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(FallbackCode)
	}
	// Amounts are stored in cents, so the formatter fraction is fixed at
	// two regardless of the currency's native minor unit.
	f := money.NewFormatter(2, ".", ",", cur.Grapheme, cur.Template)
	return f.Format(cents)
}

// FormatWhole renders an amount in whole major units without fraction
// digits, e.g. "$90". Same fallback rules as Format.
func FormatWhole(units int64, code string) string {
	cur := money.GetCurrency(code)
	if cur == nil {
		cur = money.GetCurrency(FallbackCode)
	}
	f := money.NewFormatter(0, ".", ",", cur.Grapheme, cur.Template)
	return f.Format(units)
}
