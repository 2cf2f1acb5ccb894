package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(optionsCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(transactionsCmd)
	rootCmd.AddCommand(refundsCmd)
	rootCmd.AddCommand(processRefundsCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", false)
	},
}

var optionsCmd = &cobra.Command{
	Use:   "options",
	Short: "List the registration modes and entry tiers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/registration/options", false)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the player snapshots in the read model",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/admin/players", true)
	},
}

var transactionsCmd = &cobra.Command{
	Use:   "transactions [player-id]",
	Short: "List a player's recent wallet transactions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/admin/transactions?player_id="+url.QueryEscape(args[0]), true)
	},
}

var refundsCmd = &cobra.Command{
	Use:   "refunds [status]",
	Short: "List refund requests, optionally filtered by status",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/admin/refunds"
		if len(args) == 1 {
			endpoint += "?status=" + url.QueryEscape(args[0])
		}
		return performGetRequest(endpoint, true)
	},
}

var processRefundsCmd = &cobra.Command{
	Use:   "process-refunds",
	Short: "Credit all approved refund requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/admin/refunds/process", true)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", false)
	},
}

func performGetRequest(endpoint string, withAdminAuth bool) error {
	return performRequest(http.MethodGet, endpoint, withAdminAuth)
}

func performPostRequest(endpoint string, withAdminAuth bool) error {
	return performRequest(http.MethodPost, endpoint, withAdminAuth)
}

func performRequest(method, endpoint string, withAdminAuth bool) error {
	target := host + endpoint
	fmt.Printf("Making request to %s\n", target)

	req, err := http.NewRequest(method, target, strings.NewReader(""))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if withAdminAuth {
		req.SetBasicAuth(adminUser, adminPassword)
	}

	resp, err := http.DefaultClient.Do(req)
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
