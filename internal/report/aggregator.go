// Package report folds canonical transactions into a ReportData summary and
// renders it for consumption.
package report

import (
	"sort"
	"strings"

	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
)

// DefaultTopN is the number of expenses kept in ReportData.TopExpenses.
const DefaultTopN = 10

// DefaultCategory labels expenses that carry no category.
const DefaultCategory = "其他"

// Options configures an Aggregator.
type Options struct {
	DefaultCategory string
	TopN            int
}

// Aggregator computes report summaries. It holds no state between calls.
type Aggregator struct {
	defaultCategory string
	topN            int
	logger          logging.Logger
}

// NewAggregator returns an aggregator; zero options take the package defaults.
func NewAggregator(opts Options, logger logging.Logger) *Aggregator {
	if strings.TrimSpace(opts.DefaultCategory) == "" {
		opts.DefaultCategory = DefaultCategory
	}
	if opts.TopN <= 0 {
		opts.TopN = DefaultTopN
	}
	return &Aggregator{
		defaultCategory: opts.DefaultCategory,
		topN:            opts.TopN,
		logger:          logging.OrDefault(logger),
	}
}

// Summarize folds transactions in order.
//
// Income only feeds the income totals. Each expense feeds the expense totals,
// its category summary and the expense detail list. Every other type is ignored.
// Categories and expenses are then ordered by descending amount; ties keep
// first-seen order. ReportPeriod is the last non-empty period encountered.
func (a *Aggregator) Summarize(transactions []models.Transaction) models.ReportData {
	report := models.ReportData{
		TotalIncome:  models.ZeroAmount(),
		TotalExpense: models.ZeroAmount(),
		Categories:   []models.CategorySummary{},
		TopExpenses:  []models.ExpenseRow{},
	}

	index := make(map[string]int)
	var expenses []models.ExpenseRow

	for _, tx := range transactions {
		if period := strings.TrimSpace(tx.ReportPeriod); period != "" {
			report.ReportPeriod = period
		}

		switch tx.TransactionType {
		case models.TypeIncome:
			report.TotalIncome = report.TotalIncome.Add(tx.Amount)
			report.IncomeCount++
		case models.TypeExpense:
			report.TotalExpense = report.TotalExpense.Add(tx.Amount)
			report.ExpenseCount++

			category := a.categoryOf(tx)
			i, seen := index[category]
			if !seen {
				i = len(report.Categories)
				index[category] = i
				report.Categories = append(report.Categories, models.CategorySummary{
					Name:  category,
					Total: models.ZeroAmount(),
				})
			}
			report.Categories[i].Add(tx.Amount)

			expenses = append(expenses, models.ExpenseRow{
				TransactionTime: tx.TransactionTime,
				Counterparty:    tx.Counterparty,
				Description:     tx.Description,
				Category:        category,
				Amount:          tx.Amount,
			})
		}
	}

	sort.SliceStable(report.Categories, func(i, j int) bool {
		return report.Categories[i].Total.GreaterThan(report.Categories[j].Total.Decimal)
	})
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].Amount.GreaterThan(expenses[j].Amount.Decimal)
	})
	if len(expenses) > a.topN {
		expenses = expenses[:a.topN]
	}
	report.TopExpenses = append(report.TopExpenses, expenses...)

	a.logger.Debug("Summarized transactions",
		logging.F(logging.FieldCount, len(transactions)),
		logging.F(logging.FieldPeriod, report.ReportPeriod),
		logging.F("categories", len(report.Categories)))
	return report
}

// SummarizeAnnotated summarizes annotated rows, using the category column or,
// failing that, the classifier's category name.
func (a *Aggregator) SummarizeAnnotated(rows []models.AnnotatedTransaction) models.ReportData {
	transactions := make([]models.Transaction, len(rows))
	for i, row := range rows {
		transactions[i] = row.Transaction
		transactions[i].Category = row.EffectiveCategory()
	}
	return a.Summarize(transactions)
}

func (a *Aggregator) categoryOf(tx models.Transaction) string {
	if c := strings.TrimSpace(tx.Category); c != "" {
		return c
	}
	return a.defaultCategory
}
