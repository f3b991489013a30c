package entities

import (
	"github.com/shopspring/decimal"
)

// AmountUnit tells how Amount.Value must be read.
type AmountUnit string

const (
	AmountUnitMajor AmountUnit = "major"
	AmountUnitMinor AmountUnit = "minor"
)

var minorPerMajor = decimal.NewFromInt(100)

// Amount carries a currency value together with its unit so callers never have to
// guess whether a number is in cents.
type Amount struct {
	Value decimal.Decimal
	Unit  AmountUnit
}

func NewMajorAmount(v decimal.Decimal) Amount {
	return Amount{Value: v, Unit: AmountUnitMajor}
}

func NewMajorAmountFromFloat(v float64) Amount {
	return NewMajorAmount(decimal.NewFromFloat(v))
}

func NewMinorAmount(v int64) Amount {
	return Amount{Value: decimal.NewFromInt(v), Unit: AmountUnitMinor}
}

// MinorUnits rounds to the nearest minor unit.
func (a Amount) MinorUnits() int64 {
	if a.Unit == AmountUnitMinor {
		return a.Value.Round(0).IntPart()
	}
	return a.Value.Mul(minorPerMajor).Round(0).IntPart()
}

// MajorUnits is exact to the cent.
func (a Amount) MajorUnits() decimal.Decimal {
	return decimal.New(a.MinorUnits(), -2)
}

// Normalized returns the amount in major units.
func (a Amount) Normalized() Amount {
	return NewMajorAmount(a.MajorUnits())
}

func (a Amount) IsPositive() bool {
	return a.MinorUnits() > 0
}

func (a Amount) IsZero() bool {
	return a.Value.IsZero()
}

func (a Amount) String() string {
	return a.MajorUnits().StringFixed(2)
}

// ResolveIntegerAmount reads an integer provider amount whose unit is unknown.
//
// Without a known amount the integer is minor units, the provider wire format.
// With one, an integer equal to the known minor or major value is read in that unit;
// otherwise the reading whose magnitude is closer to the known amount wins, minor on a tie.
func ResolveIntegerAmount(n int64, known *Amount) Amount {
	asMinor := NewMinorAmount(n)
	if known == nil || !known.IsPositive() {
		return asMinor
	}
	want := known.MinorUnits()
	if n == want {
		return asMinor
	}
	asMajor := NewMajorAmount(decimal.NewFromInt(n))
	if asMajor.MinorUnits() == want {
		return asMajor
	}
	if absDiff(asMajor.MinorUnits(), want) < absDiff(n, want) {
		return asMajor
	}
	return asMinor
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}
