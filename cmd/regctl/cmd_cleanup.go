package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var cleanupFlags struct {
	model string
	yes   bool
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete every version and alias of a model",
	Long: "cleanup purges all versions of a model, including aliases. The\nregistered model itself stays. This is destructive and asks for\nconfirmation unless --yes is set.",
	RunE: runCleanup,
}

func init() {
	f := cleanupCmd.Flags()
	f.StringVar(&cleanupFlags.model, "model", "", "Registered model name (required)")
	f.BoolVar(&cleanupFlags.yes, "yes", false, "Skip the confirmation prompt")

	_ = cleanupCmd.MarkFlagRequired("model")
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client := newAPIClient()
	out := cmd.OutOrStdout()

	model, err := client.getModelByName(ctx, cleanupFlags.model)
	if err != nil {
		return err
	}

	if !cleanupFlags.yes {
		fmt.Fprintf(out, "Delete all %d versions of %s? [y/N]: ", model.VersionCount, model.FullName)
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(out, "Cleanup cancelled.")
			return nil
		}
	}

	deleted, err := client.purgeVersions(ctx, model.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted %d versions of %s\n", deleted, model.FullName)
	return nil
}
