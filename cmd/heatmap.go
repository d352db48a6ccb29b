package cmd

import "github.com/spf13/cobra"

var heatmapFlags analysisFlags

var heatmapCmd = &cobra.Command{
	Use:   "heatmap",
	Short: "Show monthly means per year, as values or as anomalies from the monthly normal",
	Example: `  tempstat heatmap -f station.csv --metric TAVG
  tempstat heatmap -f station.csv --metric TAVG --mode anomaly --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, heatmapFlags.query(cmd, "heatmap"))
	},
}

func init() {
	rootCmd.AddCommand(heatmapCmd)
	heatmapFlags.addMetric(heatmapCmd)
	heatmapCmd.Flags().StringVar(&heatmapFlags.mode, "mode", "absolute", "cell values: absolute | anomaly")
}
