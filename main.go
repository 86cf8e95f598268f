package main

import (
	"fmt"
	"os"

	"fjacquet/bill-csv/cmd/annotate"
	"fjacquet/bill-csv/cmd/classify"
	"fjacquet/bill-csv/cmd/normalize"
	"fjacquet/bill-csv/cmd/report"
	"fjacquet/bill-csv/cmd/root"
	"fjacquet/bill-csv/internal/config"
)

func init() {
	// .env must be loaded before viper reads the environment
	config.LoadEnv()

	root.Init()

	root.Cmd.AddCommand(normalize.Cmd)
	root.Cmd.AddCommand(annotate.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(classify.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
