package cmd

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataqa-cli/internal/analysis"
	"github.com/KaramelBytes/dataqa-cli/internal/report"
)

var (
	rngColumn string
	rngLower  float64
	rngUpper  float64
	rngFlags  datasetFlags
)

// rangeRequest is checked before any file is read.
type rangeRequest struct {
	Column string  `validate:"required"`
	Lower  float64 `validate:"ltefield=Upper"`
	Upper  float64 `validate:"gtefield=Lower"`
}

var requestValidator = validator.New()

var rangeCmd = &cobra.Command{
	Use:   "range <file>",
	Short: "List rows whose value is missing, non-numeric or outside [lower, upper]",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := rangeRequest{Column: rngColumn, Lower: rngLower, Upper: rngUpper}
		if err := requestValidator.Struct(req); err != nil {
			return fmt.Errorf("invalid range request (lower %g, upper %g): %w", rngLower, rngUpper, err)
		}
		path := args[0]
		t, err := rngFlags.loadTable(path)
		if err != nil {
			return err
		}
		rs := analysis.RangeSpec{Lower: rngLower, Upper: rngUpper}
		recs, err := analysis.OutOfRange(t, rngColumn, rs)
		if err != nil {
			return err
		}
		run := report.NewRun(report.KindRange, path, rngColumn)
		run.Range = &rs
		run.OutOfRange = recs
		return rngFlags.emit(cmd, run)
	},
}

func init() {
	rootCmd.AddCommand(rangeCmd)
	rangeCmd.Flags().StringVarP(&rngColumn, "column", "c", "", "column to validate")
	rangeCmd.Flags().Float64Var(&rngLower, "lower", 0, "inclusive lower bound")
	rangeCmd.Flags().Float64Var(&rngUpper, "upper", 0, "inclusive upper bound")
	_ = rangeCmd.MarkFlagRequired("column")
	_ = rangeCmd.MarkFlagRequired("lower")
	_ = rangeCmd.MarkFlagRequired("upper")
	rngFlags.register(rangeCmd)
}
