// Package main provides the entry point for the profile harvester CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "profile_harvester",
	Short: "Structured career-data extraction from public profile pages",
	Long:  "Profile Harvester drives an authenticated browser session across a list of profile URLs, extracts biographical and career sections with cascading page-layout strategies, and writes one well-formed CSV row per target even when extraction is partial.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
