// Package classify implements the command that classifies one ad-hoc transaction
package classify

import (
	"encoding/json"

	"fjacquet/bill-csv/cmd/common"
	"fjacquet/bill-csv/cmd/root"
	"fjacquet/bill-csv/internal/currencyutils"
	"fjacquet/bill-csv/internal/models"

	"github.com/spf13/cobra"
)

var (
	transactionTime string
	counterparty    string
	transactionType string
	description     string
	amount          string
)

// Cmd represents the classify command
var Cmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single transaction",
	Long:  `Classify one transaction given on the command line and print the classification as JSON.`,
	Run:   classifyFunc,
}

func init() {
	Cmd.Flags().StringVar(&transactionTime, "time", "", "Transaction time")
	Cmd.Flags().StringVarP(&counterparty, "counterparty", "p", "", "Counterparty name")
	Cmd.Flags().StringVarP(&transactionType, "type", "t", "支出", "Vendor income/expense label")
	Cmd.Flags().StringVarP(&description, "description", "d", "", "Description")
	Cmd.Flags().StringVarP(&amount, "amount", "a", "0", "Amount")
	_ = Cmd.MarkFlagRequired("counterparty")
}

// buildTransaction converts the flag values into a canonical transaction.
func buildTransaction() (models.Transaction, error) {
	value, err := currencyutils.NormalizeAmount(amount)
	if err != nil {
		return models.Transaction{}, err
	}
	return models.Transaction{
		TransactionTime: transactionTime,
		Counterparty:    counterparty,
		TransactionType: models.DefaultTypeMarkers().Normalize(transactionType),
		Description:     description,
		Amount:          value,
	}, nil
}

func classifyFunc(cmd *cobra.Command, args []string) {
	tx, err := buildTransaction()
	if err != nil {
		root.Log.Fatalf("Invalid transaction: %v", err)
	}

	c, err := root.LoadContainer()
	if err != nil {
		root.Log.Fatalf("Error loading configuration: %v", err)
	}
	defer func() { _ = c.Close() }()

	result, err := common.Classify(cmd.Context(), c, tx)
	if err != nil {
		root.Log.Fatalf("Error classifying transaction: %v", err)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		root.Log.Fatalf("Error encoding classification: %v", err)
	}
	cmd.Println(string(out))
}
