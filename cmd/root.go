package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/KaramelBytes/dataqa-cli/internal/config"
	"github.com/KaramelBytes/dataqa-cli/internal/logging"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Loaded configuration
	cfg *cfgpkg.Global
	// Diagnostic logger; a no-op until loadConfig runs.
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "dataqa",
	Short: "dataqa: quality checks for numeric columns in tabular data",
	Long: `dataqa inspects a numeric column of a CSV/TSV, XLSX or JSON dataset: it counts missing,
non-numeric and special values, flags out-of-range values, detects IQR outliers and
scores predictions against actual values with MAE and RMSE.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	err := rootCmd.Execute()
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	// Persistent global flags available to all subcommands
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dataqa/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging on stderr")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: fall back to defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = defaultConfig()
	}
	cfg = c

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	l, err := logging.New(level, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: logging disabled: %v\n", err)
		return
	}
	logger = l
	logger.Debug("config loaded",
		zap.String("config_file", cfgFile),
		zap.String("output_format", cfg.OutputFormat),
		zap.String("runs_dir", cfg.RunsDir))
}

func defaultConfig() *cfgpkg.Global {
	return &cfgpkg.Global{
		OutputFormat: "markdown",
		ReportRows:   20,
		LogLevel:     "warn",
		LogFormat:    "console",
	}
}

// settings returns the loaded config, or defaults when none was loaded.
func settings() *cfgpkg.Global {
	if cfg == nil {
		return defaultConfig()
	}
	return cfg
}
