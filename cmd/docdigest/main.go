package main

import (
	"fmt"
	"os"

	"github.com/dgallion1/docdigest/internal/version"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "docdigest",
	Short: "Persona-ranked digests of document collections",
	Long: `docdigest segments documents into titled sections, scores each section
against a persona's keyword and priority profile, ranks the results across
the whole collection, and writes a condensed digest of the top sections.`,
}

func init() {
	rootCmd.Version = version.Version
	rootCmd.SetVersionTemplate(fmt.Sprintf("docdigest %s\n", version.Version))
}

func main() {
	_ = godotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
