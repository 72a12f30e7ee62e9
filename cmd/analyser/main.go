package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "analyser",
	Short: "INMET historical weather archive analyser",
	Long: `Analyser downloads a yearly INMET station archive, normalizes every
station file into one unified dataset, and reports monthly mean temperature
and humidity per region.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
