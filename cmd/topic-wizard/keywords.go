// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/topic-wizard/internal/keywords"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords <text>",
	Short: "Extract representative keywords from text",
	Long: `Keywords runs the frequency-based extractor over the given text and
prints the top keywords, padded from the generic research pool when the
text yields too few candidates.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, _ := cmd.Flags().GetInt("count")
		asJSON, _ := cmd.Flags().GetBool("json")

		kws := keywords.Extract(strings.Join(args, " "), count)

		if asJSON {
			return json.NewEncoder(os.Stdout).Encode(kws)
		}
		for _, k := range kws {
			fmt.Println(k)
		}
		return nil
	},
}

func init() {
	keywordsCmd.Flags().Int("count", keywords.DefaultCount, "number of keywords to extract")
	keywordsCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(keywordsCmd)
}
