package cmd

import (
	"fmt"
	"os"

	cfgpkg "github.com/KaramelBytes/tempstat-cli/internal/config"
	"github.com/KaramelBytes/tempstat-cli/internal/log"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	debug   bool

	// Input and output flags (override config if set)
	flagData      string
	flagMap       []string
	flagDelimiter string
	flagSheet     string
	flagFormat    string
	flagOutput    string

	// Loaded configuration
	cfg *cfgpkg.Global
)

var rootCmd = &cobra.Command{
	Use:   "tempstat",
	Short: "tempstat: streaks, extremes and trends in daily temperature records",
	Long: `tempstat loads a daily temperature table (CSV, TSV or XLSX with DATE, TMAX, TMIN
and optional TAVG columns) and answers questions about it: the longest hot or cold
streaks, the coldest or warmest N-day periods, seasons and date ranges, how often a
threshold is crossed each year, freeze dates, monthly anomalies and daily records.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return log.Init(debug)
	},
}

// Execute is the entry point called by main.main()
func Execute() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		log.Sync()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)

	// Persistent global flags available to all subcommands
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is ~/.tempstat/config.yaml)")
	pf.BoolVar(&debug, "debug", false, "enable debug logging to stderr")
	pf.StringVarP(&flagData, "data", "f", "", "daily temperature file: .csv, .tsv, .txt or .xlsx (overrides data_file)")
	pf.StringArrayVar(&flagMap, "map", nil, "map a source column to DATE, TMAX, TMIN or TAVG: SRC=DST (repeatable)")
	pf.StringVar(&flagDelimiter, "delimiter", "", "CSV delimiter: ',' | ';' | 'tab' (auto-detect if omitted)")
	pf.StringVar(&flagSheet, "sheet", "", "XLSX: sheet name (first sheet if omitted)")
	pf.StringVar(&flagFormat, "format", "", "output format: text | json | yaml (overrides output_format)")
	pf.StringVarP(&flagOutput, "output", "o", "", "write the report to this file instead of stdout")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		cfg = nil
		return
	}
	cfg = c
}

// currentConfig returns the loaded configuration, or the defaults when none
// could be loaded.
func currentConfig() *cfgpkg.Global {
	if cfg != nil {
		return cfg
	}
	return &cfgpkg.Global{
		DefaultMetric:   "TMAX",
		TopN:            10,
		PeriodDays:      7,
		FreezeThreshold: 32,
		TrendEpsilon:    0.01,
		Units:           "°F",
		OutputFormat:    "text",
		DateLayout:      "2006-01-02",
	}
}
