// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/cache"
	"github.com/pdiddy/topic-wizard/internal/content"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <topic>",
	Short: "Show the definition, issues, and cases for a topic",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		generator := content.New(nil, cache.New(cfg.Cache), cfg.LLM, zap.NewNop())
		analysis := generator.AnalyzeTopic(args[0])

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(analysis)
		}

		fmt.Println("## 정의")
		fmt.Println(analysis.Definition)
		fmt.Println()
		fmt.Println("## 주요 이슈")
		fmt.Println(analysis.Issues)
		fmt.Println()
		fmt.Println("## 연구 사례")
		fmt.Println(analysis.Cases)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Bool("json", false, "output as JSON")

	rootCmd.AddCommand(analyzeCmd)
}
