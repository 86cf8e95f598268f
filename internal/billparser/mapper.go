package billparser

import (
	"strings"

	"fjacquet/bill-csv/internal/currencyutils"
	"fjacquet/bill-csv/internal/models"
)

// Row is one vendor CSV row keyed by trimmed header.
type Row map[string]string

func (r Row) cell(column string) string {
	return strings.TrimSpace(r[column])
}

// MapperConfig carries the per-run values stamped on every record.
type MapperConfig struct {
	ReportPeriod string
	Tag          string
	Markers      models.TypeMarkers
	Amounts      *currencyutils.AmountNormalizer
}

// Mapper converts vendor rows into canonical transactions.
type Mapper struct {
	cfg MapperConfig
}

// NewMapper builds a Mapper. Zero-valued markers and amount normalizer fall back to the defaults.
func NewMapper(cfg MapperConfig) *Mapper {
	if len(cfg.Markers.Expense) == 0 && len(cfg.Markers.Income) == 0 && len(cfg.Markers.Uncounted) == 0 {
		cfg.Markers = models.DefaultTypeMarkers()
	}
	if cfg.Amounts == nil {
		cfg.Amounts = currencyutils.NewAmountNormalizer(currencyutils.DefaultStrip)
	}
	return &Mapper{cfg: cfg}
}

// MapRow maps row using schema. ok is false when the row is skipped: a blank
// transaction time, or a type that is neither income nor expense.
// A malformed amount is returned as *parsererror.InvalidAmountError.
func (m *Mapper) MapRow(schema Schema, row Row, source string) (tx models.Transaction, ok bool, err error) {
	timestamp := row.cell(schema.TimeColumn)
	if timestamp == "" {
		return models.Transaction{}, false, nil
	}

	txType := m.cfg.Markers.Normalize(row[schema.TypeColumn])
	if !txType.Counted() {
		return models.Transaction{}, false, nil
	}

	description := row.cell(schema.DescriptionColumn)
	if description == "" {
		description = row.cell(schema.FallbackDescription)
	}

	rawAmount, present := row[schema.AmountColumn]
	if !present {
		rawAmount = "0"
	}
	amount, err := m.cfg.Amounts.Normalize(rawAmount)
	if err != nil {
		return models.Transaction{}, false, err
	}
	if amount.IsNegative() {
		amount = models.NewAmount(amount.Abs())
	}

	return models.Transaction{
		TransactionTime: timestamp,
		Counterparty:    row.cell(schema.CounterpartyColumn),
		TransactionType: txType,
		Description:     description,
		Amount:          amount,
		Source:          source,
		ReportPeriod:    m.cfg.ReportPeriod,
		Category:        m.cfg.Tag,
	}, true, nil
}
