// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/topic-wizard/internal/cache"
	"github.com/pdiddy/topic-wizard/internal/content"
	"github.com/pdiddy/topic-wizard/internal/llm"
	"github.com/pdiddy/topic-wizard/internal/papers"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

var generateCmd = &cobra.Command{
	Use:   "generate <topic>",
	Short: "Generate paper-format material or a niche research plan",
	Long: `Generate drafts content for a topic. With --niche-topic it produces a
research plan for that niche; otherwise it picks a reference paper from
the internal database (--paper-title narrows the choice) and produces
paper-format material. Without provider credentials the output comes from
the built-in templates.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		topic := args[0]
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		generator := content.New(llm.Probe(loadedCreds, cfg.LLM), cache.New(cfg.Cache), cfg.LLM, log)

		if nicheTopic, _ := cmd.Flags().GetString("niche-topic"); nicheTopic != "" {
			return printJSON(generator.GenerateNicheContent(cmd.Context(), topic, nicheTopic))
		}

		store, err := papers.NewStore(cfg.Search)
		if err != nil {
			return fmt.Errorf("opening paper store: %w", err)
		}

		paper, err := pickPaper(store, topic, cmd)
		if err != nil {
			return err
		}
		return printJSON(generator.GeneratePaperContent(cmd.Context(), topic, paper))
	},
}

// pickPaper selects the reference paper for paper-format generation.
func pickPaper(store *papers.Store, topic string, cmd *cobra.Command) (types.PaperRecord, error) {
	title, _ := cmd.Flags().GetString("paper-title")

	candidates := store.Search(topic, nil)
	if len(candidates) == 0 {
		candidates = store.Records()
	}
	if len(candidates) == 0 {
		return types.PaperRecord{}, fmt.Errorf("internal paper database is empty")
	}
	if title == "" {
		return candidates[0], nil
	}

	titleLower := strings.ToLower(title)
	for _, p := range candidates {
		if strings.Contains(strings.ToLower(p.Title), titleLower) {
			return p, nil
		}
	}
	return types.PaperRecord{}, fmt.Errorf("no internal paper matches title %q", title)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	generateCmd.Flags().String("niche-topic", "", "generate a research plan for this niche topic")
	generateCmd.Flags().String("paper-title", "", "reference paper title substring for paper-format generation")

	rootCmd.AddCommand(generateCmd)
}
