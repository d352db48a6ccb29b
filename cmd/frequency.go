package cmd

import "github.com/spf13/cobra"

var frequencyFlags analysisFlags

var frequencyCmd = &cobra.Command{
	Use:   "frequency",
	Short: "Count threshold days per calendar year and fit a linear trend",
	Example: `  tempstat frequency -f station.csv --metric TMAX --threshold 95
  tempstat frequency -f station.csv --metric TMIN --threshold 32 --direction below`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, frequencyFlags.query(cmd, "frequency"))
	},
}

func init() {
	rootCmd.AddCommand(frequencyCmd)
	frequencyFlags.addMetric(frequencyCmd)
	frequencyFlags.addThreshold(frequencyCmd, "temperature threshold (required)")
	frequencyFlags.addDirection(frequencyCmd)
	_ = frequencyCmd.MarkFlagRequired("threshold")
}
