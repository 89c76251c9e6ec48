// Package main provides the entry point for the codewars_scraper CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "codewars_scraper",
	Short: "Download your completed Codewars solutions",
	Long: "codewars_scraper signs in to Codewars with a real browser, loads your completed solutions listing, " +
		"and writes one directory per kata with one file per language.",
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
