package report

import (
	"encoding/json"
	"strings"
	"testing"

	"fjacquet/bill-csv/internal/logging"
	"fjacquet/bill-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() models.ReportData {
	return newTestAggregator().Summarize([]models.Transaction{
		tx(models.TypeIncome, "1000.00", ""),
		tx(models.TypeExpense, "37.00", "餐饮"),
		tx(models.TypeExpense, "200.00", ""),
	})
}

func TestGenerateReport_Markdown(t *testing.T) {
	g := NewGenerator(0, &logging.MockLogger{})

	out, err := g.GenerateReport(sampleReport(), FormatMarkdown)
	require.NoError(t, err)

	md := string(out)
	assert.True(t, strings.HasPrefix(md, "# 2024-01月报\n"))
	assert.Contains(t, md, "- 收入：¥1000.00（1 笔）")
	assert.Contains(t, md, "- 支出：¥237.00（2 笔）")
	assert.Contains(t, md, "| 其他 | ¥200.00 | 1 |\n| 餐饮 | ¥37.00 | 1 |")
	assert.Contains(t, md, "## 金额最高的 10 笔支出")
	assert.Contains(t, md, "| 2024-01-05 12:00:00 | shop | item | 其他 | ¥200.00 |")
}

func TestGenerateReport_MarkdownEmpty(t *testing.T) {
	g := NewGenerator(5, nil)

	out, err := g.GenerateReport(newTestAggregator().Summarize(nil), "md")
	require.NoError(t, err)

	md := string(out)
	assert.Contains(t, md, "| 暂无支出记录 | - | - |")
	assert.Contains(t, md, "## 金额最高的 5 笔支出\n暂无支出记录\n")
	assert.NotContains(t, md, "| 时间 |")
}

func TestGenerateReport_MarkdownEscapesCells(t *testing.T) {
	r := sampleReport()
	r.TopExpenses[0].Description = "a|b\nc"

	out, err := NewGenerator(0, nil).GenerateReport(r, FormatMarkdown)
	require.NoError(t, err)
	assert.Contains(t, string(out), `| a\|b c |`)
}

func TestGenerateReport_JSON(t *testing.T) {
	g := NewGenerator(0, nil)
	r := sampleReport()
	r.RunID = "run-1"

	out, err := g.GenerateReport(r, FormatJSON)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "run-1", decoded["run_id"])
	assert.Equal(t, "2024-01", decoded["report_period"])
	assert.Equal(t, "237.00", decoded["total_expense"])
	categories, ok := decoded["categories"].([]interface{})
	require.True(t, ok)
	require.Len(t, categories, 2)
	first := categories[0].(map[string]interface{})
	assert.Equal(t, "其他", first["category_name"])
	assert.Equal(t, "200.00", first["total_amount"])
}

func TestGenerateReport_UnsupportedFormat(t *testing.T) {
	_, err := NewGenerator(0, nil).GenerateReport(sampleReport(), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format: xml")
}

func TestExtension(t *testing.T) {
	assert.Equal(t, ".json", Extension(FormatJSON))
	assert.Equal(t, ".md", Extension(FormatMarkdown))
}
