// Package currencyutils turns vendor amount text into exact two-digit amounts.
package currencyutils

import (
	"strings"

	"fjacquet/bill-csv/internal/models"
	"fjacquet/bill-csv/internal/parsererror"

	"github.com/shopspring/decimal"
)

// DefaultStrip lists the currency symbols and thousands separators removed before parsing.
var DefaultStrip = []string{"¥", "￥", ","}

// AmountNormalizer parses amount cells. The zero value strips nothing.
type AmountNormalizer struct {
	strip *strings.Replacer
}

// NewAmountNormalizer returns a normalizer removing every string in strip.
func NewAmountNormalizer(strip []string) *AmountNormalizer {
	pairs := make([]string, 0, len(strip)*2)
	for _, s := range strip {
		if s != "" {
			pairs = append(pairs, s, "")
		}
	}
	return &AmountNormalizer{strip: strings.NewReplacer(pairs...)}
}

// Normalize strips symbols and separators, treats an empty result as zero and
// rounds the parsed decimal to two places, ties to even.
func (n *AmountNormalizer) Normalize(raw string) (models.Amount, error) {
	cleaned := raw
	if n != nil && n.strip != nil {
		cleaned = n.strip.Replace(cleaned)
	}
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return models.ZeroAmount(), nil
	}

	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return models.Amount{}, &parsererror.InvalidAmountError{Value: raw, Err: err}
	}
	return models.NewAmount(value), nil
}

var defaultNormalizer = NewAmountNormalizer(DefaultStrip)

// NormalizeAmount normalizes raw with DefaultStrip.
func NormalizeAmount(raw string) (models.Amount, error) {
	return defaultNormalizer.Normalize(raw)
}

// FormatAmount renders a with a currency symbol prefix, e.g. "¥1234.50".
func FormatAmount(a models.Amount, symbol string) string {
	return symbol + a.String()
}
