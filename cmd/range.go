package cmd

import "github.com/spf13/cobra"

var rangeFlags analysisFlags

var rangeCmd = &cobra.Command{
	Use:   "range <M/D-M/D>",
	Short: "Rank each year's instance of a recurring date range",
	Long: `Rank each year's instance of a recurring month/day window by its mean.
A window whose end precedes its start (12/20-1/5) crosses New Year and belongs to
the year it starts in; such instances count only when the data covers them fully.`,
	Example: `  tempstat range 1/3-1/20 -f station.csv --extreme coldest`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := rangeFlags.query(cmd, "range")
		q.Range = args[0]
		return runAnalysis(cmd, q)
	},
}

func init() {
	rootCmd.AddCommand(rangeCmd)
	rangeFlags.addMetric(rangeCmd)
	rangeFlags.addExtreme(rangeCmd)
	rangeFlags.addTop(rangeCmd)
}
