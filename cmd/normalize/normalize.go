// Package normalize implements the command that merges vendor exports into the canonical CSV
package normalize

import (
	"fjacquet/bill-csv/cmd/common"
	"fjacquet/bill-csv/cmd/root"

	"github.com/spf13/cobra"
)

// Cmd represents the normalize command
var Cmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalize Alipay and WeChat exports into one CSV",
	Long: `Read every file of every configured source, map each row to the canonical
record shape and write the result to output.transactions.`,
	Run: normalizeFunc,
}

func normalizeFunc(cmd *cobra.Command, args []string) {
	c, err := root.LoadContainer()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}
	defer func() { _ = c.Close() }()

	result, err := common.Normalize(c)
	if err != nil {
		root.Log.Fatalf("Error normalizing transactions: %v", err)
	}
	cmd.Printf("Normalized %d transactions into %s\n", len(result.Records), result.OutputPath)
}
