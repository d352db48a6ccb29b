package cmd

import "github.com/spf13/cobra"

var periodFlags analysisFlags

var periodCmd = &cobra.Command{
	Use:     "period",
	Short:   "Rank the coldest or warmest non-overlapping N-day periods",
	Example: `  tempstat period -f station.csv --metric TAVG --days 7 --extreme coldest`,
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, periodFlags.query(cmd, "period"))
	},
}

func init() {
	rootCmd.AddCommand(periodCmd)
	periodFlags.addMetric(periodCmd)
	periodFlags.addExtreme(periodCmd)
	periodFlags.addTop(periodCmd)
	periodCmd.Flags().IntVarP(&periodFlags.days, "days", "d", 0, "window length in days (default from config, 7)")
}
