package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/dataqa-cli/internal/analysis"
	"github.com/KaramelBytes/dataqa-cli/internal/report"
)

var (
	outColumn       string
	outFractionOnly bool
	outFlags        datasetFlags
)

var outliersCmd = &cobra.Command{
	Use:   "outliers <file>",
	Short: "Detect values outside the Tukey fences (1.5 x IQR) of a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		t, err := outFlags.loadTable(path)
		if err != nil {
			return err
		}
		bounds, err := analysis.IQRBounds(t, outColumn)
		if err != nil {
			return err
		}
		frac, err := analysis.OutlierFraction(t, outColumn)
		if err != nil {
			return err
		}
		run := report.NewRun(report.KindOutliers, path, outColumn)
		run.Bounds = &bounds
		run.Fraction = &frac
		if !outFractionOnly {
			recs, err := analysis.Outliers(t, outColumn)
			if err != nil {
				return err
			}
			run.Outliers = recs
		}
		logger.Debug("outliers computed",
			zap.String("column", outColumn),
			zap.Int("valid", bounds.Valid),
			zap.Float64("fraction", frac))
		return outFlags.emit(cmd, run)
	},
}

func init() {
	rootCmd.AddCommand(outliersCmd)
	outliersCmd.Flags().StringVarP(&outColumn, "column", "c", "", "column to scan")
	outliersCmd.Flags().BoolVar(&outFractionOnly, "fraction-only", false, "report bounds and outlier fraction without listing rows")
	_ = outliersCmd.MarkFlagRequired("column")
	outFlags.register(outliersCmd)
}
