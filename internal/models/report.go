package models

// CategorySummary totals the expenses of one category.
type CategorySummary struct {
	Name  string `json:"category_name"`
	Total Amount `json:"total_amount"`
	Count int    `json:"count"`
}

// Add folds one expense into the summary.
func (s *CategorySummary) Add(amount Amount) {
	s.Total = s.Total.Add(amount)
	s.Count++
}

// ExpenseRow is the detail line kept for each expense.
type ExpenseRow struct {
	TransactionTime string `json:"transaction_time"`
	Counterparty    string `json:"counterparty"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Amount          Amount `json:"amount"`
}

// ReportData is the summary of one aggregation pass.
type ReportData struct {
	RunID        string            `json:"run_id,omitempty"`
	ReportPeriod string            `json:"report_period"`
	TotalIncome  Amount            `json:"total_income"`
	TotalExpense Amount            `json:"total_expense"`
	IncomeCount  int               `json:"income_count"`
	ExpenseCount int               `json:"expense_count"`
	Categories   []CategorySummary `json:"categories"`
	TopExpenses  []ExpenseRow      `json:"top_expenses"`
}
