package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"bid-leveler/internal/preprocess"
	"bid-leveler/internal/service"
	"bid-leveler/pkg/config"
	"bid-leveler/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	maxLength   int
	totalBudget int
	keepLegal   bool
	concurrency int
	logLevel    string
	pretty      bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "bidprep [files...]",
		Short: "Preprocess bid documents for a context-limited LLM",
		Long: `bidprep extracts text from bid files (pdf, docx, txt, md, csv), strips boilerplate,
keeps the cost figures and shortens each document to the character budget.
Results are printed as JSON, one entry per file in argument order.`,
		Example: `  bidprep --total-budget 12000 acme.pdf beta.docx gamma.txt
  bidprep --max-length 4000 --keep-legal bid.pdf`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(opts.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() { _ = log.Sync() }()

			return run(cmd.Context(), opts, args, cmd.OutOrStdout(), log)
		},
	}

	defaults := config.PreprocessConfig{MaxContentLength: preprocess.DefaultMaxContentLength, Concurrency: 4}
	if cfg, err := config.Load(); err == nil {
		defaults = cfg.Preprocess
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.maxLength, "max-length", defaults.MaxContentLength, "character budget per document")
	flags.IntVar(&opts.totalBudget, "total-budget", 0, "combined character budget split evenly across all files (overrides --max-length)")
	flags.BoolVar(&opts.keepLegal, "keep-legal", false, "keep legal boilerplate such as confidentiality notices")
	flags.IntVar(&opts.concurrency, "concurrency", defaults.Concurrency, "documents processed in parallel")
	flags.StringVar(&opts.logLevel, "log-level", "warn", "log level written to stderr")
	flags.BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")

	return cmd
}

func run(ctx context.Context, opts *options, files []string, out io.Writer, log *zap.Logger) error {
	extractor := service.NewExtractionService(log)

	docs := make([]preprocess.Document, len(files))
	extractErrs := make([]error, len(files))
	for i, path := range files {
		docs[i].Name = filepath.Base(path)
		text, err := extractor.ExtractText(ctx, path)
		if err != nil {
			extractErrs[i] = err
			continue
		}
		docs[i].Content = &text
	}

	budget := preprocess.DefaultBudget()
	budget.MaxContentLength = opts.maxLength
	if opts.totalBudget > 0 {
		budget.MaxContentLength = preprocess.SplitBudget(opts.totalBudget, len(docs))
	}
	budget.KeepLegal = opts.keepLegal

	p := preprocess.New(
		preprocess.WithLogger(log),
		preprocess.WithConcurrency(opts.concurrency),
		preprocess.WithRecorder(preprocess.UsageRecorderFunc(func(_ context.Context, e preprocess.UsageEvent) {
			log.Info("Batch preprocessed",
				zap.Int("documents", e.Documents),
				zap.Int("original_tokens", e.OriginalTokens),
				zap.Int("processed_tokens", e.ProcessedTokens),
			)
		})),
	)
	results := p.Preprocess(ctx, docs, budget)

	for i, err := range extractErrs {
		if err != nil {
			results[i].Error = err.Error()
		}
	}

	enc := json.NewEncoder(out)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(results); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	return nil
}
