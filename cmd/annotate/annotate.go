// Package annotate implements the normalize-then-classify pipeline command
package annotate

import (
	"fjacquet/bill-csv/cmd/common"
	"fjacquet/bill-csv/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the annotate command
var Cmd = &cobra.Command{
	Use:   "annotate",
	Short: "Normalize exports and classify every transaction",
	Long: `Normalize all configured sources, classify each record with the configured
classifier and write the annotated CSV (category_id, category_name,
category_reason) to output.transactions. The first classification failure
aborts the run.`,
	Run: annotateFunc,
}

func annotateFunc(cmd *cobra.Command, args []string) {
	c, err := root.LoadContainer()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}
	defer func() { _ = c.Close() }()

	path, annotated, err := common.Annotate(cmd.Context(), c)
	if err != nil {
		root.Log.Fatalf("Error annotating transactions: %v", err)
	}
	cmd.Printf("Annotated %d transactions written to %s\n", len(annotated), path)
}
