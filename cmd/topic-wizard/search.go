// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/topic-wizard/internal/clean"
	"github.com/pdiddy/topic-wizard/internal/keywords"
	"github.com/pdiddy/topic-wizard/internal/papers"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search <topic>",
	Short: "Search internal and external sources for related papers",
	Long: `Search looks up papers related to a topic in the internal database and
the external academic APIs, merges the results with external sources
winning title collisions, and prints them.`,
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

		kws := splitFlagKeywords(cmd)
		if len(kws) == 0 {
			kws = keywords.Extract(topic, keywords.DefaultCount)
		}

		store, err := papers.NewStore(cfg.Search)
		if err != nil {
			return fmt.Errorf("opening paper store: %w", err)
		}

		internalOnly, _ := cmd.Flags().GetBool("internal-only")
		externalOnly, _ := cmd.Flags().GetBool("external-only")

		var internal, external []types.PaperRecord
		if !externalOnly {
			internal = store.Search(topic, kws)
		}
		if !internalOnly {
			external = papers.SearchExternal(cmd.Context(), searchBackends(cfg.Search), topic, kws, cfg.Search, log)
		}
		merged := clean.Merge(internal, external)

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(merged)
		}

		fmt.Printf("%d papers found for %q\n\n", len(merged), topic)
		for i, p := range merged {
			fmt.Printf("%d. [%s] %s\n   %s (%s), %s\n", i+1, p.Type, p.Title, p.Authors, p.Year, p.Source)
		}
		return nil
	},
}

func splitFlagKeywords(cmd *cobra.Command) []string {
	raw, _ := cmd.Flags().GetString("keywords")
	if raw == "" {
		return nil
	}
	var kws []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			kws = append(kws, k)
		}
	}
	return kws
}

func init() {
	searchCmd.Flags().String("keywords", "", "comma-separated keywords (extracted from the topic when omitted)")
	searchCmd.Flags().Bool("internal-only", false, "search only the internal database")
	searchCmd.Flags().Bool("external-only", false, "search only the external APIs")
	searchCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(searchCmd)
}
