package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownCurrency = errors.New("unknown currency")

// Currency describes how amounts are displayed and rounded.
type Currency struct {
	Code        string
	Decimals    int // fractional digits of the smallest display unit
	Symbol      string
	SymbolFirst bool
}

var (
	VND = Currency{Code: "VND", Decimals: 0, Symbol: "₫"}
	JPY = Currency{Code: "JPY", Decimals: 0, Symbol: "¥", SymbolFirst: true}
	KRW = Currency{Code: "KRW", Decimals: 0, Symbol: "₩", SymbolFirst: true}
	USD = Currency{Code: "USD", Decimals: 2, Symbol: "$", SymbolFirst: true}
	EUR = Currency{Code: "EUR", Decimals: 2, Symbol: "€"}
	GBP = Currency{Code: "GBP", Decimals: 2, Symbol: "£", SymbolFirst: true}
)

var currencies = map[string]Currency{
	VND.Code: VND,
	JPY.Code: JPY,
	KRW.Code: KRW,
	USD.Code: USD,
	EUR.Code: EUR,
	GBP.Code: GBP,
}

// LookupCurrency returns the registered currency for an ISO 4217 code.
func LookupCurrency(code string) (Currency, error) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return Currency{}, fmt.Errorf("%w: %q", ErrUnknownCurrency, code)
	}
	return c, nil
}

// Round rounds a to the currency's smallest display unit.
func (c Currency) Round(a Amount) Amount {
	return a.RoundTo(c.Decimals)
}

// Format renders a rounded, thousands-grouped amount with the currency symbol.
func (c Currency) Format(a Amount) string {
	r := c.Round(a)
	sign := ""
	if r < 0 {
		sign = "-"
	}
	if c.SymbolFirst {
		return sign + c.Symbol + c.digits(r)
	}
	return sign + c.digits(r) + " " + c.Symbol
}

// FormatCode is Format with the ISO code in place of the symbol, for
// outputs limited to Latin-1.
func (c Currency) FormatCode(a Amount) string {
	r := c.Round(a)
	sign := ""
	if r < 0 {
		sign = "-"
	}
	return sign + c.digits(r) + " " + c.Code
}

// digits groups the magnitude of an already rounded amount.
func (c Currency) digits(r Amount) string {
	abs := r.Abs()

	whole := strconv.FormatInt(int64(abs/unit), 10)
	var b strings.Builder
	for i, ch := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(ch)
	}
	if c.Decimals > 0 {
		frac := int64(abs%unit) / pow10(Scale-c.Decimals)
		b.WriteByte('.')
		b.WriteString(strconv.FormatInt(frac+pow10(c.Decimals), 10)[1:])
	}
	return b.String()
}

func (c Currency) String() string {
	return c.Code
}
