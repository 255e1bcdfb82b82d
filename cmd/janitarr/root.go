package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	serverURL  string
	apiKey     string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "janitarr",
	Short: "CLI client for the janitarr retention daemon",
	Long: `janitarr - CLI client for the janitarr retention daemon

Checks media requests against your library, reminds requesters before
their media expires, and deletes media past its retention window.

Run 'janitarrd' to start the server daemon.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8787", "Server URL")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for the server")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("janitarr {{.Version}}\n")
}
