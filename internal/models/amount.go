package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits every amount carries.
const AmountPlaces = 2

// Amount is an exact monetary value that always renders with two fractional digits.
type Amount struct {
	decimal.Decimal
}

// NewAmount rounds d to two places, half to even.
func NewAmount(d decimal.Decimal) Amount {
	return Amount{Decimal: d.RoundBank(AmountPlaces)}
}

// MustAmount parses s and panics on failure. Intended for literals in tests and tables.
func MustAmount(s string) Amount {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(fmt.Sprintf("invalid amount literal %q: %v", s, err))
	}
	return NewAmount(d)
}

// ZeroAmount returns 0.00.
func ZeroAmount() Amount {
	return Amount{Decimal: decimal.Zero}
}

// Add returns a + other.
func (a Amount) Add(other Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(other.Decimal)}
}

// String renders the canonical "1234.50" form.
func (a Amount) String() string {
	return a.StringFixed(AmountPlaces)
}

// MarshalCSV implements gocsv.TypeMarshaller.
func (a Amount) MarshalCSV() (string, error) {
	return a.String(), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller. An empty cell is zero.
func (a *Amount) UnmarshalCSV(s string) error {
	if s == "" {
		*a = ZeroAmount()
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	*a = NewAmount(d)
	return nil
}

// MarshalJSON emits the amount as a JSON string with two fractional digits.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(`"` + a.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted and bare numbers.
func (a *Amount) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	*a = NewAmount(d)
	return nil
}
