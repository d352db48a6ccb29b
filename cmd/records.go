package cmd

import "github.com/spf13/cobra"

var recordsFlags analysisFlags

var recordsCmd = &cobra.Command{
	Use:   "records [M/D-M/D]",
	Short: "Show record highs, lows and means for each day of the year",
	Long: `Show the record high, record low and mean of the metric for each day of the
year across all years, optionally limited to a date range. Feb 29 counts toward
Feb 28. With --year, that year's values are listed alongside; for a range that
crosses New Year, --year is the year the range starts in.`,
	Example: `  tempstat records -f station.csv --metric TMAX
  tempstat records 12/1-2/28 -f station.csv --metric TMIN --year 2020`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := recordsFlags.query(cmd, "records")
		if len(args) == 1 {
			q.Range = args[0]
		}
		return runAnalysis(cmd, q)
	},
}

func init() {
	rootCmd.AddCommand(recordsCmd)
	recordsFlags.addMetric(recordsCmd)
	recordsCmd.Flags().IntVar(&recordsFlags.year, "year", 0, "overlay this year's observed values")
}
