// Package money provides an exact fixed-point monetary value.
//
// Amounts are held as an integer number of minor units (cents) together with
// an ISO 4217 currency code. Every currency handled here uses two decimal
// places. Operations that combine two values require the same currency and
// report ErrCurrencyMismatch otherwise.
package money

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of decimal places in one major unit.
const Scale = 2

// MaxAmount is the largest magnitude, in minor units, that Parse accepts
// (100 billion major units).
const MaxAmount int64 = 1e13

var (
	// ErrCurrencyMismatch is returned when two values of different currencies are combined.
	ErrCurrencyMismatch = errors.New("currency mismatch")
	// ErrInvalidAmount is returned when a decimal string cannot be parsed into minor units.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrOverflow is returned when arithmetic would leave the int64 range.
	ErrOverflow = errors.New("amount out of range")
)

var decimalPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// Money is an immutable amount of minor units in a single currency.
type Money struct {
	amount   int64
	currency string
}

// New returns a Money of the given minor units.
func New(minor int64, currency string) Money {
	return Money{amount: minor, currency: currency}
}

// Zero returns a zero amount in currency.
func Zero(currency string) Money {
	return Money{currency: currency}
}

// Parse converts a non-negative base-10 string such as "12.50" into minor units.
// The conversion is exact: more than Scale decimal places are rejected, even
// trailing zeros, and so are values above MaxAmount.
func Parse(value, currency string) (Money, error) {
	s := strings.TrimSpace(value)
	if !decimalPattern.MatchString(s) {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	if i := strings.IndexByte(s, '.'); i >= 0 && len(s)-i-1 > Scale {
		return Money{}, fmt.Errorf("%w: %q has more than %d decimal places", ErrInvalidAmount, value, Scale)
	}
	minor := d.Shift(Scale)
	if minor.GreaterThan(decimal.NewFromInt(MaxAmount)) {
		return Money{}, fmt.Errorf("%w: %q exceeds the maximum amount", ErrInvalidAmount, value)
	}
	return Money{amount: minor.IntPart(), currency: currency}, nil
}

// MustParse is like Parse but panics on error. Intended for tests and constants.
func MustParse(value, currency string) Money {
	m, err := Parse(value, currency)
	if err != nil {
		panic(err)
	}
	return m
}

// Sum adds values together. An empty list yields Zero(currency).
func Sum(currency string, values ...Money) (Money, error) {
	total := Zero(currency)
	for _, v := range values {
		next, err := total.Add(v)
		if err != nil {
			return Money{}, err
		}
		total = next
	}
	return total, nil
}

// Amount returns the value in minor units.
func (m Money) Amount() int64 { return m.amount }

// Currency returns the ISO currency code.
func (m Money) Currency() string { return m.currency }

// Add returns m + other.
func (m Money) Add(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return checked(m.amount+other.amount, m.currency,
		(m.amount > 0 && other.amount > 0 && m.amount+other.amount < 0) ||
			(m.amount < 0 && other.amount < 0 && m.amount+other.amount >= 0))
}

// Subtract returns m - other.
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.sameCurrency(other); err != nil {
		return Money{}, err
	}
	return checked(m.amount-other.amount, m.currency,
		(m.amount >= 0 && other.amount < 0 && m.amount-other.amount < 0) ||
			(m.amount < 0 && other.amount > 0 && m.amount-other.amount >= 0))
}

// Negate returns -m. Every value produced by this package is within
// ±math.MaxInt64, so negation cannot overflow.
func (m Money) Negate() Money {
	return Money{amount: -m.amount, currency: m.currency}
}

// Multiply returns m scaled by an integer factor.
func (m Money) Multiply(factor int64) (Money, error) {
	product := m.amount * factor
	return checked(product, m.currency, m.amount != 0 && product/m.amount != factor)
}

// Absolute returns |m|.
func (m Money) Absolute() Money {
	if m.amount < 0 {
		return m.Negate()
	}
	return m
}

// IsZero reports whether m is exactly zero.
func (m Money) IsZero() bool { return m.amount == 0 }

// IsPositive reports whether m is greater than zero.
func (m Money) IsPositive() bool { return m.amount > 0 }

// IsNegative reports whether m is less than zero.
func (m Money) IsNegative() bool { return m.amount < 0 }

// Compare returns -1, 0 or +1 when m is less than, equal to or greater than other.
func (m Money) Compare(other Money) (int, error) {
	if err := m.sameCurrency(other); err != nil {
		return 0, err
	}
	switch {
	case m.amount < other.amount:
		return -1, nil
	case m.amount > other.amount:
		return 1, nil
	default:
		return 0, nil
	}
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) (bool, error) {
	c, err := m.Compare(other)
	if err != nil {
		return false, err
	}
	return c < 0, nil
}

// String renders the canonical fixed-point form, e.g. "12.50" or "-3.05".
func (m Money) String() string {
	return decimal.New(m.amount, -Scale).StringFixed(Scale)
}

// Float64 returns the amount in major units as a plain number (1250 -> 12.5).
// It exists for transport at the boundary; never use it for arithmetic.
func (m Money) Float64() float64 {
	return decimal.New(m.amount, -Scale).InexactFloat64()
}

// checked builds a result, reporting ErrOverflow if the operation wrapped.
// math.MinInt64 is treated as out of range so that Negate and Absolute stay exact.
func checked(amount int64, currency string, wrapped bool) (Money, error) {
	if wrapped || amount == math.MinInt64 {
		return Money{}, fmt.Errorf("%w: result does not fit in %d minor units", ErrOverflow, int64(math.MaxInt64))
	}
	return Money{amount: amount, currency: currency}, nil
}

func (m Money) sameCurrency(other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.currency, other.currency)
	}
	return nil
}
