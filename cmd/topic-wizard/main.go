// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the topic-wizard CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/logging"
	"github.com/pdiddy/topic-wizard/internal/secrets"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedCreds holds API credentials probed at startup. Key values are
// never printed.
var loadedCreds secrets.Credentials

// rootCmd is the base command for the topic-wizard CLI.
var rootCmd = &cobra.Command{
	Use:   "topic-wizard",
	Short: "Research topic selection assistant for student science papers",
	Long: `topic-wizard helps students pick and develop a research topic for a
science paper. It analyzes a topic, searches internal and external paper
sources, suggests niche research directions, and drafts paper-format
material with template or LLM-backed generation.

Run "topic-wizard serve" for the HTTP API, or use the subcommands for
one-off keyword extraction, paper search, topic analysis, and content
generation.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		creds, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedCreds = creds
		if keys := creds.SetKeys(); len(keys) > 0 {
			fmt.Fprintf(os.Stderr, "Loaded credentials: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./topic-wizard.yaml or ~/.config/topic-wizard/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("topic-wizard")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "topic-wizard"))
		}
	}

	viper.SetEnvPrefix("TOPIC_WIZARD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig layers the config file over the defaults.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	})
	if err != nil {
		return types.Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	return cfg, nil
}

// newLogger builds the zap logger from the config.
func newLogger(cfg types.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
