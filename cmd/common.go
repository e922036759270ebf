package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KaramelBytes/dataqa-cli/internal/report"
	"github.com/KaramelBytes/dataqa-cli/internal/table"
	"github.com/KaramelBytes/dataqa-cli/internal/utils"
)

// datasetFlags are the input and output flags shared by the check commands.
type datasetFlags struct {
	delimiter string
	sheet     string
	maxRows   int
	format    string
	output    string
	save      bool
}

func (f *datasetFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.delimiter, "delimiter", "", "CSV delimiter: ',' | ';' | '|' | 'tab' (auto by extension if omitted)")
	c.Flags().StringVar(&f.sheet, "sheet", "", "XLSX: sheet name (first sheet if omitted)")
	c.Flags().IntVar(&f.maxRows, "max-rows", 0, "maximum data rows to read (0 = config value or unlimited)")
	c.Flags().StringVar(&f.format, "format", "", "output format: markdown | json | yaml (default from config)")
	c.Flags().StringVarP(&f.output, "output", "o", "", "write the report to this file instead of stdout")
	c.Flags().BoolVar(&f.save, "save", false, "also store the run under runs_dir")
}

func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab":
		return '\t', nil
	case ";":
		return ';', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported --delimiter: %s", s)
	}
}

func (f *datasetFlags) loadOptions() (table.LoadOptions, error) {
	c := settings()
	opt := table.DefaultLoadOptions()
	if len(c.NAValues) > 0 {
		opt.NAValues = c.NAValues
	}
	delim := c.Delimiter
	if f.delimiter != "" {
		delim = f.delimiter
	}
	d, err := parseDelimiter(delim)
	if err != nil {
		return opt, err
	}
	opt.Delimiter = d
	opt.MaxRows = c.MaxRows
	if f.maxRows > 0 {
		opt.MaxRows = f.maxRows
	}
	opt.Sheet = f.sheet
	return opt, nil
}

func (f *datasetFlags) loadTable(path string) (*table.Table, error) {
	opt, err := f.loadOptions()
	if err != nil {
		return nil, err
	}
	start := time.Now()
	t, err := table.Load(path, opt)
	if err != nil {
		return nil, err
	}
	logger.Debug("table loaded",
		zap.String("path", path),
		zap.Int("rows", t.Len()),
		zap.Strings("columns", t.Columns()),
		zap.Duration("elapsed", time.Since(start)))
	return t, nil
}

func (f *datasetFlags) outputFormat() (string, error) {
	format := strings.ToLower(strings.TrimSpace(f.format))
	if format == "" {
		format = settings().OutputFormat
	}
	switch format {
	case report.FormatMarkdown, report.FormatJSON, report.FormatYAML:
		return format, nil
	case "md":
		return report.FormatMarkdown, nil
	case "yml":
		return report.FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported --format: %s (use markdown, json or yaml)", f.format)
	}
}

// emit renders the run to stdout or --output and stores it when --save is set.
// Status lines go to stderr so structured output stays parseable.
func (f *datasetFlags) emit(cmd *cobra.Command, run *report.Run) error {
	format, err := f.outputFormat()
	if err != nil {
		return err
	}
	rows := settings().ReportRows
	if f.output != "" {
		var buf bytes.Buffer
		if err := report.Encode(&buf, run, format, rows); err != nil {
			return err
		}
		if err := utils.SafeWriteFile(f.output, buf.Bytes()); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s report to %s\n", run.Kind, f.output)
	} else if err := report.Encode(cmd.OutOrStdout(), run, format, rows); err != nil {
		return err
	}
	if f.save {
		return saveRun(cmd, run, format)
	}
	return nil
}

func saveRun(cmd *cobra.Command, run *report.Run, format string) error {
	dir, err := runsDir()
	if err != nil {
		return err
	}
	// markdown runs cannot be listed back
	if format == report.FormatMarkdown {
		format = report.FormatJSON
	}
	path, err := report.Save(dir, run, format)
	if err != nil {
		return err
	}
	logger.Debug("run saved", zap.String("id", run.ID), zap.String("path", path))
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Saved run %s\n", run.ID)
	return nil
}

func runsDir() (string, error) {
	dir := settings().RunsDir
	if dir == "" {
		return "", errors.New("runs_dir is not configured")
	}
	return utils.ExpandHome(dir)
}
