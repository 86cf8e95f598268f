// Package report implements the monthly summary command
package report

import (
	"fjacquet/bill-csv/cmd/common"
	"fjacquet/bill-csv/cmd/root"
	reports "fjacquet/bill-csv/internal/report"
	"fjacquet/bill-csv/internal/validation"

	"github.com/spf13/cobra"
)

var (
	format string
	input  string
	output string
)

// Cmd represents the report command
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Summarize a normalized or annotated CSV",
	Long: `Aggregate income, expenses per category and the largest expenses of a
transactions CSV and render the summary as Markdown or JSON.`,
	Run: reportFunc,
}

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", reports.FormatMarkdown, "Report format: markdown or json")
	Cmd.Flags().StringVarP(&input, "input", "i", "", "Transactions CSV (default: output.transactions)")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Report file (default: output.report or <period>月报 next to the CSV)")
}

func reportFunc(cmd *cobra.Command, args []string) {
	if err := validation.IsValidReportFormat(format); err != nil {
		root.Log.Fatalf("Invalid --format: %v", err)
	}
	if input != "" {
		if err := validation.IsValidInputFile(input); err != nil {
			root.Log.Fatalf("Invalid --input: %v", err)
		}
	}

	c, err := root.LoadContainer()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}
	defer func() { _ = c.Close() }()

	data, err := common.BuildReport(c, input)
	if err != nil {
		root.Log.Fatalf("Error building report: %v", err)
	}
	path, err := common.WriteReport(c, data, format, output)
	if err != nil {
		root.Log.Fatalf("Error writing report: %v", err)
	}
	cmd.Printf("Report written to %s\n", path)
}
