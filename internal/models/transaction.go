// Package models provides the data structures shared by the normalization,
// classification and reporting stages.
package models

import "strings"

// TransactionType is the normalized income/expense marker of a record.
// Values outside the four constants are vendor labels passed through unchanged.
type TransactionType string

const (
	TypeIncome       TransactionType = "收入"
	TypeExpense      TransactionType = "支出"
	TypeUnclassified TransactionType = "未知"
	TypeUncounted    TransactionType = "不计收支"
)

// Counted reports whether the type takes part in income/expense totals.
func (t TransactionType) Counted() bool {
	return t == TypeIncome || t == TypeExpense
}

// TypeMarkers are the substrings used to recognise vendor income/expense labels.
type TypeMarkers struct {
	Uncounted []string
	Expense   []string
	Income    []string
}

// DefaultTypeMarkers matches the labels used by Alipay and WeChat exports.
func DefaultTypeMarkers() TypeMarkers {
	return TypeMarkers{
		Uncounted: []string{"不计"},
		Expense:   []string{"支"},
		Income:    []string{"收", "入"},
	}
}

// Normalize maps a raw vendor label to a TransactionType.
// Precedence is uncounted, expense, income; unknown labels pass through trimmed.
func (m TypeMarkers) Normalize(raw string) TransactionType {
	label := strings.TrimSpace(raw)
	switch {
	case label == "":
		return TypeUnclassified
	case containsAny(label, m.Uncounted):
		return TypeUncounted
	case containsAny(label, m.Expense):
		return TypeExpense
	case containsAny(label, m.Income):
		return TypeIncome
	default:
		return TransactionType(label)
	}
}

func containsAny(s string, markers []string) bool {
	for _, marker := range markers {
		if marker != "" && strings.Contains(s, marker) {
			return true
		}
	}
	return false
}

// Transaction is the canonical record produced from any vendor export.
// Field order is the column order of the normalized CSV.
type Transaction struct {
	TransactionTime string          `csv:"transaction_time" json:"transaction_time"`
	Counterparty    string          `csv:"counterparty" json:"counterparty"`
	TransactionType TransactionType `csv:"transaction_type" json:"transaction_type"`
	Description     string          `csv:"description" json:"description"`
	Amount          Amount          `csv:"amount" json:"amount"`
	Source          string          `csv:"source" json:"source"`
	ReportPeriod    string          `csv:"report_period" json:"report_period"`
	Category        string          `csv:"category" json:"category"`
}

// AnnotatedTransaction is a Transaction together with the classifier's verdict.
type AnnotatedTransaction struct {
	Transaction
	CategoryID     int    `csv:"category_id" json:"category_id"`
	CategoryName   string `csv:"category_name" json:"category_name"`
	CategoryReason string `csv:"category_reason" json:"category_reason"`
}

// Annotate returns the annotated form of tx; the category column takes the classified name.
func Annotate(tx Transaction, c Classification) AnnotatedTransaction {
	tx.Category = c.CategoryName
	return AnnotatedTransaction{
		Transaction:    tx,
		CategoryID:     c.CategoryID,
		CategoryName:   c.CategoryName,
		CategoryReason: c.Reason,
	}
}

// EffectiveCategory returns the category column, falling back to the classifier name.
func (a AnnotatedTransaction) EffectiveCategory() string {
	if c := strings.TrimSpace(a.Category); c != "" {
		return c
	}
	return strings.TrimSpace(a.CategoryName)
}
