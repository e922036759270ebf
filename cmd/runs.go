package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/KaramelBytes/dataqa-cli/internal/report"
)

var (
	runsKind  string
	runsLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List runs stored with --save",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := runsDir()
		if err != nil {
			return err
		}
		docs, err := report.List(dir)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		shown := 0
		for _, d := range docs {
			if runsKind != "" && string(d.Kind) != runsKind {
				continue
			}
			if runsLimit > 0 && shown >= runsLimit {
				break
			}
			target := d.Column
			if d.Evaluation != nil {
				target = d.Evaluation.Actual + " vs " + d.Evaluation.Predicted
			}
			fmt.Fprintf(out, "- %s  %-8s  %s  %s [%s]\n", d.ID, d.Kind, d.CreatedAt.Local().Format(time.DateTime), d.Source, target)
			shown++
		}
		if shown == 0 {
			fmt.Fprintln(out, "(no runs)")
		}
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print a stored run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := runsDir()
		if err != nil {
			return err
		}
		docs, err := report.List(dir)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if d.ID == args[0] {
				return report.EncodeDocument(cmd.OutOrStdout(), d, report.FormatYAML)
			}
		}
		return fmt.Errorf("run not found: %s", args[0])
	},
}

func init() {
	rootCmd.AddCommand(runsCmd)
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.Flags().StringVar(&runsKind, "kind", "", "only list runs of this check: diagnose | range | outliers | evaluate")
	runsCmd.Flags().IntVar(&runsLimit, "limit", 0, "maximum runs to list (0 = all)")
}
