package cmd

import "github.com/spf13/cobra"

var streakFlags analysisFlags

var streakCmd = &cobra.Command{
	Use:   "streak",
	Short: "Find the longest runs of consecutive days at or beyond a threshold",
	Example: `  tempstat streak -f station.csv --metric TMAX --threshold 90
  tempstat streak -f station.csv --metric TMIN --threshold 32 --direction below --top 5`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, streakFlags.query(cmd, "streak"))
	},
}

func init() {
	rootCmd.AddCommand(streakCmd)
	streakFlags.addMetric(streakCmd)
	streakFlags.addThreshold(streakCmd, "temperature threshold (required)")
	streakFlags.addDirection(streakCmd)
	streakFlags.addTop(streakCmd)
	_ = streakCmd.MarkFlagRequired("threshold")
}
