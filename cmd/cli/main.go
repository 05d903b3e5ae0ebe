package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"porticus/internal/app"
	"porticus/internal/config"
	"porticus/internal/ioformats"
	"porticus/internal/langfamily"
	"porticus/internal/models"
	"porticus/internal/orchestrator"
	"porticus/pkg/logger"
)

func main() {
	in := flag.String("input", "", "input table (csv, tsv, or ndjson arrays)")
	out := flag.String("output", "", "output file (default stdout)")
	cfgPath := flag.String("config", "", "yaml config file")
	augmentFlag := flag.Bool("augment", false, "fetch each row's URL and add its text")
	concurrency := flag.Int("concurrency", 0, "max concurrent fetches per batch")
	header := flag.Bool("header", true, "first record is a header row")
	runID := flag.String("run-id", "", "checkpoint key (default derived from the input)")
	storePath := flag.String("store", "", "sqlite checkpoint file")
	partial := flag.String("partial", "", "rewrite this csv after every batch")
	match := flag.String("match", "", "keyword match mode: substring or token")
	format := flag.String("format", "csv", "output format: csv or ndjson")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "missing --input")
		os.Exit(2)
	}
	if *format != "csv" && *format != "ndjson" {
		fmt.Fprintln(os.Stderr, "--format must be csv or ndjson")
		os.Exit(2)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	set := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if set["augment"] {
		cfg.Classify.UseAugmentation = *augmentFlag
	}
	if *concurrency > 0 {
		cfg.Classify.Concurrency = *concurrency
	}
	if *storePath != "" {
		cfg.Store.Path = *storePath
	}
	if *match != "" {
		cfg.Classify.MatchMode = strings.ToLower(*match)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	l := app.Logger(cfg.Log)

	doc, err := ioformats.ReadTable(*in, *header)
	if err != nil {
		fmt.Fprintln(os.Stderr, "read input:", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, doc, *runID, *partial, *out, *format, l); err != nil {
		var ule *langfamily.UnsupportedLanguageError
		switch {
		case errors.As(err, &ule), errors.Is(err, orchestrator.ErrInvalidTable):
			l.Errorf("%v", err)
			os.Exit(3)
		case errors.Is(err, context.Canceled):
			l.Warnf("interrupted; completed batches are checkpointed")
			os.Exit(130)
		default:
			l.Errorf("classify: %v", err)
			os.Exit(1)
		}
	}
}

func run(ctx context.Context, cfg config.Config, doc *models.Document, runID, partial, out, format string, l *logger.Logger) error {
	a, err := app.New(cfg, nil, l)
	if err != nil {
		return err
	}
	defer a.Close()

	details := map[int]models.RowResult{}
	opts := a.Options()
	opts.RunID = runID
	opts.OnProgress = func(done, total int) {
		l.Infof("classified %d/%d rows", done, total)
	}
	if format == "ndjson" {
		opts.OnRow = func(r models.RowResult) { details[r.Index] = r }
	}
	if partial != "" {
		opts.OnBatch = func(results models.Results) {
			if err := ioformats.WritePartialCSV(partial, doc, results); err != nil {
				l.Warnf("write partial output: %v", err)
			}
		}
	}

	res, err := a.Orchestrator.Classify(ctx, doc, opts, nil)
	if err != nil {
		return err
	}
	l.Infof("language family %s", res.Family)

	write := func(w io.Writer) error {
		if format == "ndjson" {
			return ioformats.WriteRowResults(w, res, details, cfg.Classify.URLColumn)
		}
		return ioformats.WriteCSV(w, res)
	}
	if out == "" {
		return write(os.Stdout)
	}
	return ioformats.WriteFileAtomic(out, write)
}
