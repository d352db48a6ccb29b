package cmd

import "github.com/spf13/cobra"

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarize the loaded dataset: span, gaps and missing values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalysis(cmd, Query{Kind: "info"})
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
