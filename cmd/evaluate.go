package cmd

import (
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataqa-cli/internal/analysis"
	"github.com/KaramelBytes/dataqa-cli/internal/report"
)

var (
	evalActual    string
	evalPredicted string
	evalFlags     datasetFlags
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <file>",
	Short: "Score a prediction column against an actual column with MAE and RMSE",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		t, err := evalFlags.loadTable(path)
		if err != nil {
			return err
		}
		ev, err := analysis.EvaluateColumns(t, evalActual, evalPredicted)
		if err != nil {
			return err
		}
		run := report.NewRun(report.KindEvaluate, path, "")
		run.Actual = evalActual
		run.Predicted = evalPredicted
		run.Evaluation = &ev
		return evalFlags.emit(cmd, run)
	},
}

func init() {
	rootCmd.AddCommand(evaluateCmd)
	evaluateCmd.Flags().StringVar(&evalActual, "actual", "", "column holding actual values")
	evaluateCmd.Flags().StringVar(&evalPredicted, "predicted", "", "column holding predicted values")
	_ = evaluateCmd.MarkFlagRequired("actual")
	_ = evaluateCmd.MarkFlagRequired("predicted")
	evalFlags.register(evaluateCmd)
}
