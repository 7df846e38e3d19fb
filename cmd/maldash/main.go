package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "maldash",
	Short: "Malaria surveillance dashboard service and tooling",
	Long: `maldash serves chart-ready dashboard data (render trees, summaries and
correlation statistics) over a JSON API, and ships CLI tooling for
ingesting surveillance workbooks and running one-off analyses.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional; real deployments set the environment directly.
		if err := godotenv.Load(); err == nil {
			log.Println("[Main] Loaded environment from .env")
		}
	},
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(analyzeCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
