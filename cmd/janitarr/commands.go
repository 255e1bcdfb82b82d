package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(v)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Dry-run one retention scan",
	Long: `Scan all requests and report retention decisions without acting on them.

Examples:
  janitarr check          # Human-readable table of pending decisions
  janitarr check --json   # Full item snapshots as JSON`,
	Args: cobra.NoArgs,
	RunE: runCheckCmd,
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Run one full retention cycle",
	Long: `Scan all requests, send reminders and delete expired media.

The server refuses a second process run while one is in flight.`,
	Args: cobra.NoArgs,
	RunE: runProcessCmd,
}

var extendCmd = &cobra.Command{
	Use:   "extend <request-id>",
	Short: "Grant a one-time retention extension",
	Long: `Grant the one-time retention extension for a request.

Each request can be extended exactly once; a second extend reports
granted=false and changes nothing.

Examples:
  janitarr extend 42 --user 7`,
	Args: cobra.ExactArgs(1),
	RunE: runExtendCmd,
}

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Recent check and process runs",
	Args:  cobra.NoArgs,
	RunE:  runRunsCmd,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(extendCmd)
	rootCmd.AddCommand(runsCmd)

	extendCmd.Flags().Int64("user", 0, "ID of the user requesting the extension")
	runsCmd.Flags().Int("limit", 20, "Maximum number of runs to show")
}

func runCheckCmd(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL, apiKey)

	resp, err := client.Check()
	if err != nil {
		return fmt.Errorf("check failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	fmt.Printf("Checked %d available requests (run %s):\n\n", len(resp.Items), resp.RunID)
	for i := range resp.Items {
		item := &resp.Items[i]
		action := "keep"
		switch {
		case item.Decision.Delete:
			action = "DELETE"
		case item.Decision.Remind && !item.Reminded:
			action = "remind"
		case item.Decision.Remind:
			action = "remind (already sent)"
		}
		fmt.Printf("  #%-5d %-40s %s", item.Request.ID, item.Media.Title, action)
		if !item.Decision.Delete {
			fmt.Printf("  (%d days left)", item.Decision.DaysLeft)
		}
		if item.Extended {
			fmt.Printf("  [extended]")
		}
		fmt.Println()
	}
	return nil
}

func runProcessCmd(_ *cobra.Command, _ []string) error {
	client := NewClient(serverURL, apiKey)

	summary, err := client.Process()
	if err != nil {
		return fmt.Errorf("process failed: %w", err)
	}

	if jsonOutput {
		printJSON(summary)
		return nil
	}

	fmt.Printf("Processed %d available requests:\n\n", summary.Checked)
	for _, n := range summary.Reminders {
		fmt.Printf("  reminded #%-5d %-40s %s (%d days left)\n", n.RequestID, n.Title, n.Email, n.DaysLeft)
	}
	for _, n := range summary.Deletions {
		fmt.Printf("  deleted  #%-5d %s\n", n.RequestID, n.Title)
	}
	if summary.Failures > 0 {
		fmt.Printf("\n%d items failed; see server logs.\n", summary.Failures)
	}
	if len(summary.Reminders) == 0 && len(summary.Deletions) == 0 && summary.Failures == 0 {
		fmt.Println("  nothing to do")
	}
	return nil
}

func runExtendCmd(cmd *cobra.Command, args []string) error {
	requestID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid request ID: %s", args[0])
	}
	userID, _ := cmd.Flags().GetInt64("user")

	client := NewClient(serverURL, apiKey)
	resp, err := client.Extend(requestID, userID)
	if err != nil {
		return fmt.Errorf("extend failed: %w", err)
	}

	if jsonOutput {
		printJSON(resp)
		return nil
	}

	if resp.Granted {
		fmt.Printf("Extension granted for request #%d.\n", resp.RequestID)
	} else {
		fmt.Printf("Request #%d was already extended; nothing changed.\n", resp.RequestID)
	}
	return nil
}

func runRunsCmd(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	client := NewClient(serverURL, apiKey)
	runs, err := client.Runs(limit)
	if err != nil {
		return fmt.Errorf("listing runs failed: %w", err)
	}

	if jsonOutput {
		printJSON(runs)
		return nil
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	for _, run := range runs {
		state := "running"
		if run.Error != "" {
			state = "error"
		} else if run.FinishedAt != nil {
			state = "ok"
		}
		fmt.Printf("  %s  %-7s %-9s %-7s checked=%d reminders=%d deletions=%d failures=%d\n",
			run.StartedAt, run.Kind, run.Trigger, state,
			run.Checked, run.Reminders, run.Deletions, run.Failures)
		if run.Error != "" {
			fmt.Printf("      error: %s\n", run.Error)
		}
	}
	return nil
}
