package cmd

import "github.com/spf13/cobra"

var histogramFlags analysisFlags

var histogramCmd = &cobra.Command{
	Use:     "histogram <M/D-M/D>",
	Short:   "Count, per year, the days in a date range that meet a threshold",
	Example: `  tempstat histogram 1/1-1/31 -f station.csv --metric TMIN --threshold 32 --direction below`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := histogramFlags.query(cmd, "histogram")
		q.Range = args[0]
		return runAnalysis(cmd, q)
	},
}

func init() {
	rootCmd.AddCommand(histogramCmd)
	histogramFlags.addMetric(histogramCmd)
	histogramFlags.addThreshold(histogramCmd, "temperature threshold (required)")
	histogramFlags.addDirection(histogramCmd)
	_ = histogramCmd.MarkFlagRequired("threshold")
}
