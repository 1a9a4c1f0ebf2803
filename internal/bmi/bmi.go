// Package bmi computes Body Mass Index values.
package bmi

import (
	"database/sql/driver"
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"bmi-tracker/internal/apperr"
)

// Places is the number of decimal places a BMI is rounded to.
const Places = 2

// Max is the largest BMI every store can hold (NUMERIC(7,2)).
const Max = "9999.99"

var (
	hundred  = decimal.NewFromInt(100)
	maxValue = decimal.RequireFromString(Max)
)

// Calculate returns weight (kg) divided by the square of height (cm)
// converted to metres, rounded half-up to Places decimals. Measurements whose
// rounded BMI is not in (0, Max] are rejected.
func Calculate(weight, height float64) (Value, error) {
	if err := checkMeasurement("weight", weight); err != nil {
		return Value{}, err
	}
	if err := checkMeasurement("height", height); err != nil {
		return Value{}, err
	}

	w := decimal.NewFromFloat(weight)
	m := decimal.NewFromFloat(height).Div(hundred)

	d := w.Div(m.Mul(m)).Round(Places)
	switch {
	case !d.IsPositive():
		return Value{}, apperr.Invalid("weight", "weight %g kg and height %g cm give a BMI that rounds to zero", weight, height)
	case d.GreaterThan(maxValue):
		return Value{}, apperr.Invalid("weight", "weight %g kg and height %g cm give a BMI above %s", weight, height, Max)
	}
	return Value{d: d}, nil
}

func checkMeasurement(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return apperr.Invalid(field, "must be a finite number")
	}
	if v <= 0 {
		return apperr.Invalid(field, "must be > 0, got %g", v)
	}
	return nil
}

// Value is a BMI held as a fixed-precision decimal.
type Value struct {
	d decimal.Decimal
}

// Parse reads a decimal string such as "22.86".
func Parse(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, err
	}
	return Value{d: d.Round(Places)}, nil
}

// MustParse is Parse that panics on malformed input.
func MustParse(s string) Value {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String formats the value with exactly Places decimals.
func (v Value) String() string {
	return v.d.StringFixed(Places)
}

// Float64 returns the nearest float64.
func (v Value) Float64() float64 {
	return v.d.InexactFloat64()
}

// Decimal exposes the underlying decimal.
func (v Value) Decimal() decimal.Decimal {
	return v.d
}

// IsZero reports whether v is the zero value, which no stored record has.
func (v Value) IsZero() bool {
	return v.d.IsZero()
}

// Equal compares numerically, so 22.5 equals 22.50.
func (v Value) Equal(o Value) bool {
	return v.d.Equal(o.d)
}

// MarshalJSON encodes the value as a quoted fixed-point string.
func (v Value) MarshalJSON() ([]byte, error) {
	return []byte(`"` + v.String() + `"`), nil
}

// UnmarshalJSON accepts both "22.86" and 22.86.
func (v *Value) UnmarshalJSON(b []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return err
	}
	v.d = d.Round(Places)
	return nil
}

// Value implements driver.Valuer.
func (v Value) Value() (driver.Value, error) {
	return v.String(), nil
}

// Scan implements sql.Scanner for NUMERIC, REAL and TEXT columns. A NaN or
// infinite REAL is an error.
func (v *Value) Scan(src any) error {
	if f, ok := src.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return fmt.Errorf("bmi: cannot scan non-finite value %v", f)
	}
	var d decimal.Decimal
	if err := d.Scan(src); err != nil {
		return err
	}
	v.d = d.Round(Places)
	return nil
}

// GormDataType tells GORM which column type to migrate.
func (Value) GormDataType() string {
	return "numeric"
}
