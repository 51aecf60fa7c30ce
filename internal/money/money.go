// Package money implements fixed-point monetary amounts.
//
// Amounts are held as int64 counts of 1/10 000 of a currency's major unit so
// that sums, equal splits and zero checks never go through binary floats.
// Rounding to what a currency can actually display happens only when a
// value leaves the engine (see Currency.Round).
package money

import (
	"errors"
	"strconv"
	"strings"
)

// Scale is the number of fractional digits an Amount carries.
const Scale = 4

const unit = 10000

// Epsilon is the smallest magnitude treated as non-zero (0.01 major units).
const Epsilon Amount = 100

var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a signed fixed-point monetary value in units of 10^-Scale.
type Amount int64

// New returns an Amount of whole major units.
func New(whole int64) Amount {
	return Amount(whole * unit)
}

// FromMinor converts a count of a currency's minor units (cents for USD,
// dong for VND) into an Amount.
func FromMinor(minor int64, c Currency) Amount {
	return Amount(minor * pow10(Scale-c.Decimals))
}

// Parse reads a decimal string such as "300", "12.50", "12,50" or "-0.015".
// Digits past the fourth fractional place are rounded half away from zero.
// A comma is a decimal separator, except that a comma followed by exactly
// three digits reads as thousands grouping and is rejected.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		if strings.Contains(s, ".") || len(s)-i-1 == 3 {
			return 0, ErrInvalidAmount
		}
		s = strings.Replace(s, ",", ".", 1)
	}

	negative := false
	switch s[0] {
	case '-':
		negative = true
		s = s[1:]
	case '+':
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" && fracPart == "" {
		return 0, ErrInvalidAmount
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxWhole = (1<<63 - 1) / unit
	if iv >= maxWhole {
		return 0, ErrInvalidAmount
	}

	var frac int64
	for i := 0; i < Scale; i++ {
		frac *= 10
		if i < len(fracPart) {
			frac += int64(fracPart[i] - '0')
		}
	}
	if len(fracPart) > Scale && fracPart[Scale] >= '5' {
		frac++
	}

	v := Amount(iv*unit + frac)
	if negative {
		v = -v
	}
	return v, nil
}

// MustParse is Parse for literals known to be valid. It panics otherwise.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic("money: invalid literal " + strconv.Quote(s))
	}
	return a
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String renders the canonical decimal form, trimming trailing zeros.
func (a Amount) String() string {
	var b strings.Builder
	if a < 0 {
		b.WriteByte('-')
	}
	abs := a.Abs()
	b.WriteString(strconv.FormatInt(int64(abs/unit), 10))
	if frac := int64(abs % unit); frac != 0 {
		digits := strconv.FormatInt(frac+unit, 10)[1:]
		b.WriteByte('.')
		b.WriteString(strings.TrimRight(digits, "0"))
	}
	return b.String()
}

// MarshalText implements encoding.TextMarshaler so amounts travel as
// decimal strings in JSON.
func (a Amount) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Amount) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// Abs returns the magnitude of a.
func (a Amount) Abs() Amount {
	if a < 0 {
		return -a
	}
	return a
}

// Negligible reports whether a is within Epsilon of zero.
func Negligible(a Amount) bool {
	return a.Abs() <= Epsilon
}

// Min returns the smaller of a and b.
func Min(a, b Amount) Amount {
	if a < b {
		return a
	}
	return b
}

// Split divides a into n equal parts. It returns the per-part quotient and
// the remainder, so that a == share*n + rem.
func (a Amount) Split(n int) (share, rem Amount) {
	if n <= 0 {
		return 0, a
	}
	return a / Amount(n), a % Amount(n)
}

// RoundTo rounds a half away from zero to the given number of fractional
// digits of the major unit.
func (a Amount) RoundTo(decimals int) Amount {
	if decimals >= Scale {
		return a
	}
	if decimals < 0 {
		decimals = 0
	}
	step := Amount(pow10(Scale - decimals))
	abs := a.Abs()
	q, r := abs/step, abs%step
	if r*2 >= step {
		q++
	}
	if a < 0 {
		return -q * step
	}
	return q * step
}

// Float64 converts a to major units. Use it for display ratios only.
func (a Amount) Float64() float64 {
	return float64(a) / unit
}

// Ratio returns part/whole as a float, or 0 when whole is zero.
func Ratio(part, whole Amount) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole)
}

func pow10(n int) int64 {
	p := int64(1)
	for i := 0; i < n; i++ {
		p *= 10
	}
	return p
}
