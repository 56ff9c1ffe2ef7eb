// Package runcmd implements the `run` command: the full extract, tokenize,
// benchmark, check and export pipeline.
package runcmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wordbench/models"
	"github.com/dtnitsch/wordbench/pkg/check"
	"github.com/dtnitsch/wordbench/pkg/detect"
	"github.com/dtnitsch/wordbench/pkg/engine"
	"github.com/dtnitsch/wordbench/pkg/export"
	"github.com/dtnitsch/wordbench/pkg/extract"
	"github.com/dtnitsch/wordbench/pkg/session"
	"github.com/dtnitsch/wordbench/pkg/stats"
	"github.com/dtnitsch/wordbench/pkg/tokenizer"
)

// Command returns the `run` CLI command.
func Command() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "extract a document, benchmark both query paths and export CSV tables",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "input", Aliases: []string{"i"}, Usage: "source document (.docx, .html or .txt)"},
			&cli.StringFlag{Name: "output-dir", Aliases: []string{"o"}, Value: "results", Usage: "root directory for sessions and the index"},
			&cli.StringFlag{Name: "corpus", Usage: "override path for the intermediate plain-text corpus"},
			&cli.IntFlag{Name: "top", Value: 20, Usage: "rows kept in the frequency and pair tables"},
			&cli.BoolFlag{Name: "quiet", Usage: "log errors only"},
			&cli.StringFlag{Name: "config", Usage: "yaml config file; flags override its values"},
		},
		Action: Action,
	}
}

// Action resolves configuration and runs the pipeline.
func Action(c *cli.Context) error {
	cfg, err := configure(c)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Quiet)
	return run(c.Context, cfg, logger)
}

// configure merges the optional config file with CLI flags; flags win.
func configure(c *cli.Context) (*models.Config, error) {
	cfg := models.DefaultConfig()
	if path := c.String("config"); path != "" {
		loaded, err := models.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if c.IsSet("input") || cfg.Input == "" {
		cfg.Input = c.String("input")
	}
	if c.IsSet("output-dir") || cfg.OutputDir == "" {
		cfg.OutputDir = c.String("output-dir")
	}
	if c.IsSet("corpus") {
		cfg.CorpusPath = c.String("corpus")
	}
	if c.IsSet("top") || cfg.TopN == 0 {
		cfg.TopN = c.Int("top")
	}
	if c.IsSet("quiet") {
		cfg.Quiet = c.Bool("quiet")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// run executes the whole pipeline for one document. Fatal errors abort;
// equivalence mismatches are reported and the run continues to export.
func run(ctx context.Context, cfg *models.Config, logger *slog.Logger) error {
	sess, err := session.New(cfg.OutputDir, cfg.Input)
	if err != nil {
		return err
	}
	logger.Info("session started", "session_id", sess.ID, "input", cfg.Input)

	// Extract.
	fmt.Printf("--- Converting %s to plain text ---\n", cfg.Input)
	paragraphs, err := extract.Paragraphs(cfg.Input)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	corpusPath := cfg.CorpusPath
	if corpusPath == "" {
		corpusPath = filepath.Join(sess.Dir, "corpus.txt")
	}
	if err := extract.WriteCorpus(paragraphs, corpusPath); err != nil {
		return err
	}
	fmt.Printf("extracted %d paragraphs to %s\n", len(paragraphs), corpusPath)

	// Tokenize.
	corpus, err := tokenizer.LoadCorpus(corpusPath)
	if err != nil {
		return err
	}
	fmt.Printf("corpus loaded: %d lines, %d tokens\n", len(corpus.Lines), len(corpus.Flat))

	language, ok := detect.Language(strings.Join(paragraphs, "\n"))
	if ok {
		logger.Info("detected corpus language", "language", language)
	}

	// Engines: explicit lifecycle, created here, released at the end.
	api := engine.NewFluent(corpus)
	defer func() { _ = api.Close() }()
	sqlEng, err := engine.NewSQL(ctx, corpus)
	if err != nil {
		return err
	}
	defer func() { _ = sqlEng.Close() }()

	// Statistics, both paths, timed.
	fmt.Println("--- Computing statistics on both paths ---")
	runner := &stats.Runner{API: api, SQL: sqlEng, TopN: cfg.TopN, Logger: logger}
	out, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	// Equivalence.
	fmt.Println("--- Equivalence check ---")
	results := []check.Result{
		check.Counts(stats.TaskWordCount, out.APITotal, out.SQLTotal),
		check.Tables(stats.TaskWordFrequency, out.APIWords, out.SQLWords),
		check.Tables(stats.TaskWordPairs, out.APIPairs, out.SQLPairs),
	}
	allMatched := true
	for _, r := range results {
		fmt.Println(r.Diagnostic)
		if !r.Match {
			allMatched = false
			logger.Error("paths diverged", "stat", r.Stat)
		}
	}

	// Export.
	if err := exportAll(sess.Dir, out); err != nil {
		return err
	}

	// Summary and index.
	sum := &session.Summary{
		SessionID:  sess.ID,
		Created:    sess.Created,
		Input:      cfg.Input,
		CorpusPath: corpusPath,
		Paragraphs: len(paragraphs),
		Lines:      len(corpus.Lines),
		Tokens:     out.APITotal,
		Language:   language,
		Matches: session.MatchSummary{
			WordCount:     results[0].Match,
			WordFrequency: results[1].Match,
			WordPairs:     results[2].Match,
		},
		Timings: session.TimingsFromRecords(out.Timings),
	}
	if err := sess.WriteSummary(sum); err != nil {
		return err
	}
	if err := sess.UpdateIndex(session.IndexEntry{
		SessionID:  sess.ID,
		Created:    sess.Created,
		Input:      cfg.Input,
		AllMatched: allMatched,
	}); err != nil {
		return err
	}

	fmt.Printf("results exported to %s\n", sess.Dir)
	return nil
}

// exportAll writes the seven CSV tables into the session directory.
func exportAll(dir string, out *stats.Outcome) error {
	steps := []struct {
		name string
		fn   func() error
	}{
		{export.APIWordCountFile, func() error {
			return export.WriteCountTable(filepath.Join(dir, export.APIWordCountFile), engine.MethodAPI, out.APITotal)
		}},
		{export.SQLWordCountFile, func() error {
			return export.WriteCountTable(filepath.Join(dir, export.SQLWordCountFile), engine.MethodSQL, out.SQLTotal)
		}},
		{export.APIWordFrequencyFile, func() error {
			return export.WriteKeyCountTable(filepath.Join(dir, export.APIWordFrequencyFile), "token", "frequency", out.APIWords)
		}},
		{export.SQLWordFrequencyFile, func() error {
			return export.WriteKeyCountTable(filepath.Join(dir, export.SQLWordFrequencyFile), "token", "frequency", out.SQLWords)
		}},
		{export.APIWordPairsFile, func() error {
			return export.WriteKeyCountTable(filepath.Join(dir, export.APIWordPairsFile), "pair", "count", out.APIPairs)
		}},
		{export.SQLWordPairsFile, func() error {
			return export.WriteKeyCountTable(filepath.Join(dir, export.SQLWordPairsFile), "pair", "count", out.SQLPairs)
		}},
		{export.RuntimeFile, func() error {
			return export.WriteTimings(filepath.Join(dir, export.RuntimeFile), out.Timings)
		}},
	}

	for _, step := range steps {
		if err := step.fn(); err != nil {
			return fmt.Errorf("failed to export %s: %w", step.name, err)
		}
	}
	return nil
}
