package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"
)

var (
	month  string
	dryRun bool
)

func init() {
	statsCmd.Flags().StringVar(&month, "month", "", "Month to query (YYYY-MM), defaults to the current month")
	notifyCmd.Flags().StringVar(&month, "month", "", "Month to announce (YYYY-MM), defaults to the current month")
	notifyCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the leaderboard message instead of posting it")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(usageCmd)
	rootCmd.AddCommand(notifyCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List all recorded matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/matches")
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Get the monthly win/loss aggregates",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/stats" + monthQuery())
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var usageCmd = &cobra.Command{
	Use:   "command-usage",
	Short: "Get per-command usage counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/command-usage")
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify-leaderboard",
	Short: "Post the monthly leaderboard to the Slack channel",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/notify-leaderboard" + monthQuery()
		if dryRun {
			sep := "?"
			if month != "" {
				sep = "&"
			}
			endpoint += sep + "dry_run=true"
		}
		return performGetRequest(endpoint)
	},
}

func monthQuery() string {
	if month == "" {
		return ""
	}
	return "?month=" + url.QueryEscape(month)
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
