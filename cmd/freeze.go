package cmd

import "github.com/spf13/cobra"

var freezeFlags analysisFlags

var freezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "Find the last spring and first fall freeze of each year",
	Long: `Find, per calendar year, the last day before July 1 and the first day on or
after July 1 where the metric (TMIN unless --metric is given) is at or below the
freeze threshold, and the growing season between them.`,
	Example: `  tempstat freeze -f station.csv
  tempstat freeze -f station.csv --metric TMIN --threshold 28`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, freezeFlags.query(cmd, "freeze"))
	},
}

func init() {
	rootCmd.AddCommand(freezeCmd)
	freezeFlags.addMetric(freezeCmd)
	freezeFlags.addThreshold(freezeCmd, "freeze threshold (default from config, 32)")
}
