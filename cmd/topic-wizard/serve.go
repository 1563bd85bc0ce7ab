// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/topic-wizard/internal/cache"
	"github.com/pdiddy/topic-wizard/internal/content"
	"github.com/pdiddy/topic-wizard/internal/llm"
	"github.com/pdiddy/topic-wizard/internal/nlp"
	"github.com/pdiddy/topic-wizard/internal/papers"
	"github.com/pdiddy/topic-wizard/internal/server"
	"github.com/pdiddy/topic-wizard/internal/webx"
	"github.com/pdiddy/topic-wizard/internal/wizard"
	"github.com/pdiddy/topic-wizard/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the topic wizard HTTP API",
	Long: `Serve starts the HTTP API used by the dashboard: topic analysis, paper
search, content generation, and wizard session endpoints. The server runs
until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if host, _ := cmd.Flags().GetString("host"); host != "" {
			cfg.Server.Host = host
		}
		if port, _ := cmd.Flags().GetInt("port"); port > 0 {
			cfg.Server.Port = port
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		store, err := papers.NewStore(cfg.Search)
		if err != nil {
			return fmt.Errorf("opening paper store: %w", err)
		}

		sessions, err := wizard.NewStore(cfg.Wizard)
		if err != nil {
			return fmt.Errorf("opening session store: %w", err)
		}
		defer sessions.Close()

		c := cache.New(cfg.Cache)
		backend := llm.Probe(loadedCreds, cfg.LLM)
		if backend != nil {
			log.Info("completion backend selected", zap.String("provider", backend.Name()))
		} else {
			log.Info("no completion backend configured, generation runs template-only")
		}

		srv := server.New(cfg.Server, server.Deps{
			Papers:    store,
			Backends:  searchBackends(cfg.Search),
			SearchCfg: cfg.Search,
			Generator: content.New(backend, c, cfg.LLM, log),
			Sessions:  sessions,
			Extractor: webx.New(cfg.Extractor, c, loadedCreds.ExtractURLKey, loadedCreds.WebSearchKey, log),
			NLP:       nlp.New(cfg.Extractor.HTTPConfig, loadedCreds.HuggingFaceKey, log),
			Log:       log,
		})

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return srv.Start(ctx)
	},
}

// searchBackends builds the external paper sources in probe order.
func searchBackends(cfg types.SearchConfig) []papers.Backend {
	client := &http.Client{Timeout: cfg.Timeout}
	return []papers.Backend{
		&papers.ArxivBackend{Client: client},
		&papers.CrossRefBackend{Client: client, Email: loadedCreds.CrossRefEmail},
		&papers.SemanticScholarBackend{Client: client, APIKey: loadedCreds.SemanticScholarKey},
	}
}

func init() {
	serveCmd.Flags().String("host", "", "listen host (overrides config)")
	serveCmd.Flags().Int("port", 0, "listen port (overrides config)")

	rootCmd.AddCommand(serveCmd)
}
