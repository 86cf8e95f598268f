package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"fjacquet/bill-csv/internal/currencyutils"
	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"
)

// Supported report formats.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// currencySymbol prefixes rendered amounts.
const currencySymbol = "¥"

// Generator renders ReportData in the supported formats.
type Generator struct {
	topN   int
	logger logging.Logger
}

// NewGenerator creates a Generator. topN only affects the Markdown heading of
// the top-expense section.
func NewGenerator(topN int, logger logging.Logger) *Generator {
	if topN <= 0 {
		topN = DefaultTopN
	}
	return &Generator{topN: topN, logger: logging.OrDefault(logger)}
}

// Extension returns the file extension used for format.
func Extension(format string) string {
	switch format {
	case FormatJSON:
		return ".json"
	default:
		return ".md"
	}
}

// GenerateReport renders report in the given format (markdown or json).
func (g *Generator) GenerateReport(report models.ReportData, format string) ([]byte, error) {
	switch format {
	case FormatMarkdown, "md":
		return g.generateMarkdownReport(report), nil
	case FormatJSON:
		return g.generateJSONReport(report)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) generateJSONReport(report models.ReportData) ([]byte, error) {
	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) generateMarkdownReport(report models.ReportData) []byte {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s月报\n\n", report.ReportPeriod)
	b.WriteString("## 总览\n")
	fmt.Fprintf(&b, "- 收入：%s（%d 笔）\n", money(report.TotalIncome), report.IncomeCount)
	fmt.Fprintf(&b, "- 支出：%s（%d 笔）\n\n", money(report.TotalExpense), report.ExpenseCount)

	b.WriteString("## 支出分类\n\n")
	b.WriteString("| 分类 | 金额 | 笔数 |\n")
	b.WriteString("| --- | ---: | ---: |\n")
	if len(report.Categories) == 0 {
		b.WriteString("| 暂无支出记录 | - | - |\n")
	}
	for _, c := range report.Categories {
		fmt.Fprintf(&b, "| %s | %s | %d |\n", cell(c.Name), money(c.Total), c.Count)
	}

	fmt.Fprintf(&b, "\n## 金额最高的 %d 笔支出\n", g.topN)
	if len(report.TopExpenses) == 0 {
		b.WriteString("暂无支出记录\n")
		return []byte(b.String())
	}
	b.WriteString("| 时间 | 对方 | 描述 | 分类 | 金额 |\n")
	b.WriteString("| --- | --- | --- | --- | ---: |\n")
	for _, e := range report.TopExpenses {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			cell(e.TransactionTime), cell(e.Counterparty), cell(e.Description), cell(e.Category), money(e.Amount))
	}
	return []byte(b.String())
}

func money(a models.Amount) string {
	return currencyutils.FormatAmount(a, currencySymbol)
}

// cell keeps vendor text from breaking the table layout.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
