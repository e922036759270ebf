package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/dataqa-cli/internal/analysis"
	"github.com/KaramelBytes/dataqa-cli/internal/report"
)

var (
	batchColumn   string
	batchOutliers bool
	batchKeepOn   bool
	batchQuiet    bool
	batchFlags    datasetFlags
)

var batchCmd = &cobra.Command{
	Use:   "batch <files...>",
	Short: "Diagnose the same column across many CSV/TSV/XLSX/JSON files with progress",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		files := expandInputs(args)
		if len(files) == 0 {
			return fmt.Errorf("no input files matched")
		}
		if batchFlags.output != "" {
			return fmt.Errorf("--output is not supported by batch; use --save")
		}

		total := len(files)
		failed := 0
		for i, path := range files {
			if !batchQuiet {
				fmt.Fprintf(cmd.ErrOrStderr(), "[%d/%d] Processing %s...\n", i+1, total, filepath.Base(path))
			}
			run, err := diagnoseFile(path)
			if err != nil {
				if !batchKeepOn {
					return fmt.Errorf("%s: %w", path, err)
				}
				failed++
				logger.Warn("batch item failed", zap.String("path", path), zap.Error(err))
				fmt.Fprintf(cmd.ErrOrStderr(), "⚠ Skipped %s: %v\n", filepath.Base(path), err)
				continue
			}
			if err := batchFlags.emit(cmd, run); err != nil {
				return err
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d files failed", failed, total)
		}
		return nil
	},
}

// expandInputs resolves globs, keeps literal paths that exist and drops duplicates.
func expandInputs(args []string) []string {
	var files []string
	seen := map[string]struct{}{}
	for _, arg := range args {
		matches, _ := filepath.Glob(arg)
		if len(matches) == 0 {
			// treat as literal path if exists
			if _, err := os.Stat(arg); err == nil {
				matches = []string{arg}
			}
		}
		for _, m := range matches {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files
}

func diagnoseFile(path string) (*report.Run, error) {
	t, err := batchFlags.loadTable(path)
	if err != nil {
		return nil, err
	}
	rep, err := analysis.Diagnose(t, batchColumn)
	if err != nil {
		return nil, err
	}
	run := report.NewRun(report.KindDiagnose, path, batchColumn)
	run.Diagnostics = rep
	if batchOutliers {
		b, err := analysis.IQRBounds(t, batchColumn)
		if err != nil {
			return nil, err
		}
		frac, err := analysis.OutlierFraction(t, batchColumn)
		if err != nil {
			return nil, err
		}
		run.Bounds = &b
		run.Fraction = &frac
	}
	return run, nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().StringVarP(&batchColumn, "column", "c", "", "column to diagnose in every file")
	batchCmd.Flags().BoolVar(&batchOutliers, "outliers", false, "also report IQR bounds and outlier fraction")
	batchCmd.Flags().BoolVar(&batchKeepOn, "keep-going", false, "continue past files that fail to load or lack the column")
	batchCmd.Flags().BoolVar(&batchQuiet, "quiet", false, "suppress progress output")
	_ = batchCmd.MarkFlagRequired("column")
	batchFlags.register(batchCmd)
}
