package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-atsfix/internal/config"
	"github.com/jonathan/resume-atsfix/internal/db"
	"github.com/jonathan/resume-atsfix/internal/llm"
	"github.com/jonathan/resume-atsfix/internal/observability"
	"github.com/jonathan/resume-atsfix/internal/pipeline"
	"github.com/jonathan/resume-atsfix/internal/rewriting"
	"github.com/jonathan/resume-atsfix/internal/types"
)

var fixCmd = &cobra.Command{
	Use:   "fix",
	Short: "Fix a resume and write an ATS-friendly PDF",
	Long: `Scores the resume, optionally rewrites its text with an LLM, and generates a
clean PDF. High-scoring resumes are edited in place to keep their layout;
low-scoring ones are rebuilt from scratch.

Configuration can be loaded from a JSON file using --config. Command-line
arguments override config file values.`,
	RunE: runFixCmd,
}

var (
	fixConfigPath     string
	fixResume         string
	fixOutput         string
	fixSkipRewrite    bool
	fixAggressiveness float64
	fixAPIKey         string
	fixDatabaseURL    string
	fixVerbose        bool
)

func init() {
	// Config file flag (processed first)
	fixCmd.Flags().StringVar(&fixConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	fixCmd.Flags().StringVarP(&fixResume, "resume", "r", "", "Path to resume PDF or plain-text file")
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "Path for the fixed PDF")
	fixCmd.Flags().BoolVar(&fixSkipRewrite, "skip-rewrite", false, "Skip the LLM rewrite and keep the resume text as-is")
	fixCmd.Flags().Float64Var(&fixAggressiveness, "aggressiveness", 0, "Hybrid-tier restyling scale, 0.5 to 1.0")
	fixCmd.Flags().BoolVarP(&fixVerbose, "verbose", "v", false, "Print detailed debug information")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	fixCmd.Flags().StringVar(&fixAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Database URL for run persistence
	fixCmd.Flags().StringVar(&fixDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(fixCmd)
}

func runFixCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if fixConfigPath != "" {
		loadedCfg, err := config.LoadConfig(fixConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if fixVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", fixConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("resume") {
		cfg.Resume = fixResume
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = fixOutput
	}
	if cmd.Flags().Changed("skip-rewrite") {
		cfg.SkipRewrite = fixSkipRewrite
	}
	if cmd.Flags().Changed("aggressiveness") {
		cfg.Aggressiveness = fixAggressiveness
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = fixAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = fixDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = fixVerbose
	}

	// Step 3: Apply defaults for unset values
	cfg = cfg.MergeWithDefaults(config.Config{
		Output:         "resume_fixed.pdf",
		Aggressiveness: 0.9,
	})

	// Step 4: Validate required fields
	if cfg.Resume == "" {
		return fmt.Errorf("--resume is required (via flag or config)")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Step 5: API key handling. The rewrite is optional; without a key the
	// resume text goes through unchanged.
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	req, err := readResume(cfg.Resume)
	if err != nil {
		return err
	}

	caps := types.Capabilities{PDFParsing: true}
	var opts []pipeline.Option
	opts = append(opts, pipeline.WithAggressiveness(cfg.Aggressiveness))

	if cfg.Verbose {
		opts = append(opts, pipeline.WithPrinter(observability.NewPrinter(os.Stdout)))
	}

	if cfg.APIKey != "" && !cfg.SkipRewrite {
		client, err := llm.NewClient(ctx, nil, cfg.APIKey)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer client.Close()
		caps.LLM = true
		opts = append(opts, pipeline.WithRewriter(rewriting.New(client)))
	}

	if cfg.DatabaseURL != "" {
		store, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			// Persistence is best-effort; a down database never blocks a fix.
			fmt.Fprintf(os.Stderr, "Warning: database unavailable, runs will not be recorded: %v\n", err)
		} else {
			defer store.Close()
			caps.Database = true
			opts = append(opts, pipeline.WithStore(store))
		}
	}

	pipe, err := pipeline.New(caps, opts...)
	if err != nil {
		return err
	}

	result, err := pipe.Fix(ctx, req)
	if err != nil {
		return fmt.Errorf("fix failed: %w", err)
	}

	if err := os.WriteFile(cfg.Output, result.PDF, 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	fmt.Fprintf(os.Stdout, "Wrote %s (%s tier, %d page(s))\n", cfg.Output, result.Tier, result.PageCount)
	return nil
}

// readResume loads the input file and decides whether it is a PDF or plain
// text by its magic bytes, not its extension.
func readResume(path string) (types.FixRequest, error) {
	var req types.FixRequest

	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("failed to read resume: %w", err)
	}
	if len(data) == 0 {
		return req, fmt.Errorf("resume file is empty: %s", path)
	}

	if bytes.HasPrefix(data, []byte("%PDF-")) {
		req.OriginalPDF = data
	} else {
		req.OriginalText = string(data)
	}
	return req, nil
}
