package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"news-classifier-registry/internal/adapters/primary/http/dto"
)

var classifyFlags struct {
	model string
	alias string
	limit int
	file  string
}

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Run batch classification through an aliased version",
	Long: "classify sends articles through the version an alias points at\n(champion by default). Articles come from a JSON file or, when no\nfile is given, from the server's configured news feed.",
	RunE: runClassify,
}

func init() {
	f := classifyCmd.Flags()
	f.StringVar(&classifyFlags.model, "model", "", "Registered model name (required)")
	f.StringVar(&classifyFlags.alias, "alias", "", "Version alias (default champion)")
	f.IntVar(&classifyFlags.limit, "limit", 0, "Max articles to pull from the feed")
	f.StringVar(&classifyFlags.file, "file", "", "JSON file with articles to classify")

	_ = classifyCmd.MarkFlagRequired("model")
}

func runClassify(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client := newAPIClient()
	out := cmd.OutOrStdout()

	model, err := client.getModelByName(ctx, classifyFlags.model)
	if err != nil {
		return err
	}

	req := dto.ClassifyRequest{
		Alias: classifyFlags.alias,
		Limit: classifyFlags.limit,
	}
	if classifyFlags.file != "" {
		data, err := os.ReadFile(classifyFlags.file)
		if err != nil {
			return fmt.Errorf("read articles file: %w", err)
		}
		if err := json.Unmarshal(data, &req.Articles); err != nil {
			return fmt.Errorf("parse articles file: %w", err)
		}
	}

	report, err := client.classify(ctx, model.ID, req)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Model:   %s\n", report.Model.FullName)
	fmt.Fprintf(out, "Version: v%d (%s/%s)\n", report.Version.Version, report.Version.Provider, report.Version.Model)
	for _, p := range report.Predictions {
		fmt.Fprintf(out, "  %-50.50s -> %s / %s\n", p.Title, p.Category, p.Sentiment)
	}

	printMetrics(out, "Category metrics", report.CategoryMetrics)
	printMetrics(out, "Sentiment metrics", report.SentimentMetrics)
	return nil
}

func printMetrics(out io.Writer, title string, metrics map[string]float64) {
	if len(metrics) == 0 {
		return
	}
	fmt.Fprintf(out, "%s:\n", title)
	keys := make([]string, 0, len(metrics))
	for k := range metrics {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %-30s %.4f\n", k, metrics[k])
	}
}
