package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	server  string
	catalog string
	schema  string
	token   string
}

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Operate the news-classifier model registry",
	Long: "regctl drives the model registry over its HTTP API:\ninspect versions, review and approve promotions, run champion\nclassification, and clean up registered versions.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.server, "server", "http://localhost:8080", "Registry server base URL")
	pf.StringVar(&rootFlags.catalog, "catalog", "main", "Model catalog")
	pf.StringVar(&rootFlags.schema, "schema", "news_classifier", "Model schema")
	pf.StringVar(&rootFlags.token, "token", "", "Bearer token (when auth is enabled)")

	rootCmd.AddCommand(versionsCmd)
	rootCmd.AddCommand(promoteCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
