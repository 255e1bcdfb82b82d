package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Upstream connection status",
	Long: `Show whether the server can reach Overseerr, Radarr and Sonarr.

Examples:
  janitarr status
  janitarr status --json`,
	Args: cobra.NoArgs,
	RunE: runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL, apiKey)

	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	if jsonOutput {
		printJSON(status)
		return nil
	}

	fmt.Printf("janitarr | Server: %s\n\n", serverURL)
	fmt.Printf("  Overseerr: %s\n", connState(status.Overseerr))
	fmt.Printf("  Radarr:    %s\n", connState(status.Radarr))
	fmt.Printf("  Sonarr:    %s\n", connState(status.Sonarr))
	return nil
}

func connState(ok bool) string {
	if ok {
		return "connected"
	}
	return "disconnected"
}
