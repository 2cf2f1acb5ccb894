package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	host          string
	adminUser     string
	adminPassword string
)

var rootCmd = &cobra.Command{
	Use:   "arena-cli",
	Short: "A CLI to interact with the arena server",
	Long: `A command-line interface for making requests to the various endpoints
of the arena application.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&host, "host", "http://localhost:8080", "The host address of the server")
	rootCmd.PersistentFlags().StringVar(&adminUser, "admin-user", "", "Operator username for admin endpoints")
	rootCmd.PersistentFlags().StringVar(&adminPassword, "admin-password", "", "Operator password for admin endpoints")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your command '%s'", err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
