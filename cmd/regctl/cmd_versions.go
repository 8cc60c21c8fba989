package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var versionsFlags struct {
	model string
}

var versionsCmd = &cobra.Command{
	Use:   "versions",
	Short: "List registered versions of a model",
	RunE:  runVersions,
}

func init() {
	f := versionsCmd.Flags()
	f.StringVar(&versionsFlags.model, "model", "", "Registered model name (required)")

	_ = versionsCmd.MarkFlagRequired("model")
}

func runVersions(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client := newAPIClient()

	model, err := client.getModelByName(ctx, versionsFlags.model)
	if err != nil {
		return err
	}

	list, err := client.listVersions(ctx, model.ID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Model:    %s\n", model.FullName)
	fmt.Fprintf(out, "Versions: %d\n", list.Total)
	for _, v := range list.Items {
		aliases := ""
		if len(v.Aliases) > 0 {
			aliases = " [" + strings.Join(v.Aliases, ", ") + "]"
		}
		acc := v.Metrics["category_accuracy"]
		fmt.Fprintf(out, "  v%-3d %s/%s accuracy=%.4f%s\n", v.Version, v.Provider, v.Model, acc, aliases)
		if v.Description != "" {
			fmt.Fprintf(out, "       %s\n", v.Description)
		}
	}
	return nil
}
