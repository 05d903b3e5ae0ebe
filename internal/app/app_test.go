package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"porticus/internal/checkpoint"
	"porticus/internal/config"
	"porticus/internal/models"
)

type english struct{}

func (english) Detect(string) (string, error) { return "en", nil }

func TestNewWiresSQLiteStore(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "runs.db")

	a, err := New(cfg, english{}, nil)
	require.NoError(t, err)
	defer a.Close()
	_, ok := a.Store.(*checkpoint.SQLiteStore)
	assert.True(t, ok)

	doc := &models.Document{Rows: []models.Row{{"hotel", "", "flight", "https://x.example"}}}
	out, err := a.Orchestrator.Classify(context.Background(), doc, a.Options(), nil)
	require.NoError(t, err)
	assert.Equal(t, []models.Sector{models.Travel}, out.Sectors)

	saved, err := a.Store.Load(context.Background(), a.Orchestrator.RunID(doc, a.Options()))
	require.NoError(t, err)
	assert.Equal(t, models.Results{0: models.Travel}, saved)
}

func TestNewDefaultsToMemoryStore(t *testing.T) {
	cfg := config.Default()
	cfg.Classify.MatchMode = "token"
	cfg.Classify.UseAugmentation = true

	a, err := New(cfg, english{}, nil)
	require.NoError(t, err)
	_, ok := a.Store.(*checkpoint.MemoryStore)
	assert.True(t, ok)
	assert.NotNil(t, a.Augmenter)
	assert.NoError(t, a.Close())

	opts := a.Options()
	assert.True(t, opts.UseAugmentation)
	assert.Equal(t, []int{0, 2}, opts.TextColumns)
	assert.Equal(t, 3, opts.URLColumn)
}

func TestNewFailsOnUnopenableStore(t *testing.T) {
	cfg := config.Default()
	cfg.Store.Path = filepath.Join(t.TempDir(), "missing", "dir", "runs.db")
	_, err := New(cfg, nil, nil)
	assert.Error(t, err)
}

func TestLoggerConfigOverridesEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	assert.Equal(t, zerolog.DebugLevel, Logger(config.LogConfig{}).Z().GetLevel())
	assert.Equal(t, zerolog.ErrorLevel, Logger(config.LogConfig{Level: "error"}).Z().GetLevel())
}
