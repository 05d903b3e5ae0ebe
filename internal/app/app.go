// Package app wires configuration into a ready orchestrator for the binaries.
package app

import (
	"fmt"

	"porticus/internal/augment"
	"porticus/internal/checkpoint"
	"porticus/internal/classifier"
	"porticus/internal/config"
	"porticus/internal/crawler"
	"porticus/internal/langfamily"
	"porticus/internal/orchestrator"
	"porticus/internal/parser"
	"porticus/pkg/logger"
)

type App struct {
	Orchestrator *orchestrator.Orchestrator
	Augmenter    *augment.Augmenter
	Store        checkpoint.Store

	cfg   config.Config
	close func() error
}

// New builds every collaborator from cfg. A nil detector selects whatlanggo.
func New(cfg config.Config, d langfamily.Detector, l *logger.Logger) (*App, error) {
	if l == nil {
		l = logger.Nop()
	}
	a := &App{cfg: cfg, close: func() error { return nil }}

	if cfg.Store.Path != "" {
		s, err := checkpoint.OpenSQLite(cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.Store, a.close = s, s.Close
	} else {
		a.Store = checkpoint.NewMemoryStore()
	}

	a.Augmenter = NewAugmenter(cfg.Fetch, l)
	mode, _ := classifier.ParseMatchMode(cfg.Classify.MatchMode)
	a.Orchestrator = orchestrator.New(
		langfamily.New(d, l),
		classifier.NewWithMode(mode),
		a.Augmenter,
		a.Store,
		l,
	)
	return a, nil
}

// Options maps the classify section onto orchestrator options.
func (a *App) Options() orchestrator.Options {
	c := a.cfg.Classify
	return orchestrator.Options{
		TextColumns:     append([]int(nil), c.TextColumns...),
		URLColumn:       c.URLColumn,
		UseAugmentation: c.UseAugmentation,
		Concurrency:     c.Concurrency,
	}
}

func (a *App) Close() error { return a.close() }

func NewAugmenter(fc config.FetchConfig, l *logger.Logger) *augment.Augmenter {
	client := crawler.NewHTTPClient(fc.Timeout, fc.DialTimeout, fc.MaxBodyBytes)
	if fc.RatePerSecond > 0 {
		client = client.WithRateLimit(fc.RatePerSecond, 1)
	}
	policy, _ := augment.ParsePolicy(fc.URLPolicy)
	mode, _ := parser.ParseMode(fc.Extractor)
	return augment.New(client, parser.NewWithMode(mode), augment.Options{
		Policy:     policy,
		Timeout:    fc.Timeout,
		CacheTTL:   fc.CacheTTL,
		MaxEntries: fc.CacheEntries,
	}, l)
}

// Logger builds the process logger. The log section wins over LOG_LEVEL and
// LOG_FORMAT.
func Logger(lc config.LogConfig) *logger.Logger {
	if lc == (config.LogConfig{}) {
		return logger.New()
	}
	opt := logger.FromEnv()
	if lc.Level != "" {
		opt.Level = lc.Level
	}
	if lc.Format != "" {
		opt.Format = lc.Format
	}
	return logger.NewWith(opt)
}
