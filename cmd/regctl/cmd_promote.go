package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var promoteFlags struct {
	model       string
	autoApprove bool
}

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Review and execute a challenger-to-champion promotion",
	Long: "promote shows the pending challenger/champion comparison and asks\nfor approval before executing. Use --auto-approve to skip the prompt.",
	RunE: runPromote,
}

func init() {
	f := promoteCmd.Flags()
	f.StringVar(&promoteFlags.model, "model", "", "Registered model name (required)")
	f.BoolVar(&promoteFlags.autoApprove, "auto-approve", false, "Promote without the interactive prompt")

	_ = promoteCmd.MarkFlagRequired("model")
}

func runPromote(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client := newAPIClient()
	out := cmd.OutOrStdout()

	model, err := client.getModelByName(ctx, promoteFlags.model)
	if err != nil {
		return err
	}

	status, err := client.promotionStatus(ctx, model.ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Model:      %s\n", status.Model.FullName)
	fmt.Fprintf(out, "Challenger: v%d (%s/%s) accuracy=%.4f\n",
		status.Challenger.Version, status.Challenger.Provider, status.Challenger.Model,
		status.Challenger.Metrics["category_accuracy"])
	if status.Champion != nil {
		fmt.Fprintf(out, "Champion:   v%d (%s/%s) accuracy=%.4f\n",
			status.Champion.Version, status.Champion.Provider, status.Champion.Model,
			status.Champion.Metrics["category_accuracy"])
		fmt.Fprintf(out, "Improvement: %+.4f\n", status.AccuracyImprovement)
	} else {
		fmt.Fprintf(out, "Champion:   none (challenger becomes the first champion)\n")
	}

	if !promoteFlags.autoApprove {
		fmt.Fprint(out, "Promote challenger to champion? [y/N]: ")
		reader := bufio.NewReader(cmd.InOrStdin())
		answer, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Fprintln(out, "Promotion cancelled.")
			return nil
		}
	}

	result, err := client.promote(ctx, model.ID, true)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Promoted: v%d is now champion\n", result.Champion.Version)
	if result.Defeated != nil {
		fmt.Fprintf(out, "Defeated: v%d\n", result.Defeated.Version)
	}
	return nil
}
