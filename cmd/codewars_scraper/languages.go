package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/codewars-scraper/internal/observability"
	"github.com/jonathan/codewars-scraper/internal/output"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List the file extension used for each Codewars language",
	Long:  "Prints the language to file extension table. Languages not listed are written with the ." + output.DefaultExtension + " extension.",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		observability.NewPrinter(os.Stdout).PrintLanguages(output.Languages(), output.Extension)
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}
