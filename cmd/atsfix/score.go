package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-atsfix/internal/observability"
	"github.com/jonathan/resume-atsfix/internal/pipeline"
	"github.com/jonathan/resume-atsfix/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a resume's ATS compatibility without fixing it",
	Long: `Rates the resume on a 0-100 scale and prints every finding that cost
points. PDF inputs also get layout checks, such as embedded images that ATS
parsers cannot read.`,
	RunE: runScoreCmd,
}

var scoreResume string

func init() {
	scoreCmd.Flags().StringVarP(&scoreResume, "resume", "r", "", "Path to resume PDF or plain-text file")
	_ = scoreCmd.MarkFlagRequired("resume")
	rootCmd.AddCommand(scoreCmd)
}

func runScoreCmd(_ *cobra.Command, _ []string) error {
	data, err := os.ReadFile(scoreResume)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	pipe, err := pipeline.New(types.Capabilities{PDFParsing: true})
	if err != nil {
		return err
	}

	text := string(data)
	var doc *types.DocumentLayout
	if bytes.HasPrefix(data, []byte("%PDF-")) {
		doc, err = pipe.ParseLayout(data)
		if err != nil {
			return fmt.Errorf("failed to parse PDF: %w", err)
		}
		text = doc.FullText
	}

	report := pipe.Score(text, doc)
	observability.NewPrinter(os.Stdout).PrintScoreReport(&report)
	return nil
}
