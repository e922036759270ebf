package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataqa-cli/internal/analysis"
	"github.com/KaramelBytes/dataqa-cli/internal/report"
)

var (
	diagColumn string
	diagFlags  datasetFlags
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose <file>",
	Short: "Count missing, non-numeric, infinite, boolean, zero and negative values in a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		t, err := diagFlags.loadTable(path)
		if err != nil {
			return err
		}
		rep, err := analysis.Diagnose(t, diagColumn)
		if err != nil {
			return err
		}
		run := report.NewRun(report.KindDiagnose, path, diagColumn)
		run.Diagnostics = rep
		return diagFlags.emit(cmd, run)
	},
}

func init() {
	rootCmd.AddCommand(diagnoseCmd)
	diagnoseCmd.Flags().StringVarP(&diagColumn, "column", "c", "", "column to diagnose")
	_ = diagnoseCmd.MarkFlagRequired("column")
	diagFlags.register(diagnoseCmd)
}
