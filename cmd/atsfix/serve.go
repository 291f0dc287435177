package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-atsfix/internal/db"
	"github.com/jonathan/resume-atsfix/internal/llm"
	"github.com/jonathan/resume-atsfix/internal/pipeline"
	"github.com/jonathan/resume-atsfix/internal/rewriting"
	"github.com/jonathan/resume-atsfix/internal/server"
	"github.com/jonathan/resume-atsfix/internal/types"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes scoring and fixing as REST endpoints.

GEMINI_API_KEY enables LLM rewriting and DATABASE_URL enables run history;
both are optional and the server degrades gracefully without them. Set
ATSFIX_API_KEY to require an X-API-Key header on all endpoints but /health.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	caps := types.Capabilities{PDFParsing: true}
	var opts []pipeline.Option

	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		client, err := llm.NewClient(ctx, nil, apiKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()
		caps.LLM = true
		opts = append(opts, pipeline.WithRewriter(rewriting.New(client)))
	}

	var store *db.Store
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		var err error
		store, err = db.Connect(ctx, databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		caps.Database = true
		opts = append(opts, pipeline.WithStore(store))
	}

	pipe, err := pipeline.New(caps, opts...)
	if err != nil {
		return fmt.Errorf("failed to create pipeline: %w", err)
	}

	srv := server.New(server.Config{
		Port:   servePort,
		APIKey: os.Getenv("ATSFIX_API_KEY"),
	}, pipe, store)

	return srv.Start()
}
