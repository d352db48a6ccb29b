package cmd

import "github.com/spf13/cobra"

var seasonFlags analysisFlags

var seasonCmd = &cobra.Command{
	Use:   "season <winter|spring|summer|fall>",
	Short: "Rank seasons by mean temperature (winter = Dec-Feb, labeled by its December)",
	Example: `  tempstat season winter -f station.csv --extreme coldest
  tempstat season summer -f station.csv --extreme warmest --top 5`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"winter", "spring", "summer", "fall"},
	RunE: func(cmd *cobra.Command, args []string) error {
		q := seasonFlags.query(cmd, "season")
		q.Season = args[0]
		return runAnalysis(cmd, q)
	},
}

func init() {
	rootCmd.AddCommand(seasonCmd)
	seasonFlags.addMetric(seasonCmd)
	seasonFlags.addExtreme(seasonCmd)
	seasonFlags.addTop(seasonCmd)
}
