package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)
	assert.Equal(t, "ndjson", cfg.Format)
	assert.False(t, cfg.Quiet)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, "https://datasets-server.huggingface.co", cfg.Endpoint)
	assert.Equal(t, "wikipedia", cfg.Defaults.Dataset)
	assert.Equal(t, "20220301.simple", cfg.Defaults.Config)
	assert.Equal(t, "train", cfg.Defaults.Split)
	assert.Equal(t, "text", cfg.Defaults.Field)
	assert.Equal(t, "wikipedia_simple.jsonl", cfg.Defaults.Output)
	assert.Equal(t, "jsonl", cfg.Defaults.CorpusFormat)
	assert.Equal(t, "5s", cfg.Defaults.Progress)
	assert.Equal(t, 100, cfg.Defaults.PageSize)
	assert.Zero(t, cfg.Defaults.Limit)
}

func TestLoad(t *testing.T) {
	t.Run("returns defaults when no config file exists", func(t *testing.T) {
		tmpDir := t.TempDir()
		origDir, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		t.Cleanup(func() {
			require.NoError(t, os.Chdir(origDir))
		})

		cfg, err := Load()
		require.NoError(t, err)
		require.NotNil(t, cfg)

		// Should have default values
		assert.Equal(t, "ndjson", cfg.Format)
	})

	t.Run("loads config from file", func(t *testing.T) {
		tmpDir := t.TempDir()

		configContent := `
format: text
quiet: true
endpoint: http://localhost:8080
defaults:
  dataset: "c4"
  page_size: 50
`
		configPath := filepath.Join(tmpDir, "hfx.yaml")
		err := os.WriteFile(configPath, []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, "text", cfg.Format)
		assert.True(t, cfg.Quiet)
		assert.Equal(t, "http://localhost:8080", cfg.Endpoint)
		assert.Equal(t, "c4", cfg.Defaults.Dataset)
		assert.Equal(t, 50, cfg.Defaults.PageSize)

		// Untouched fields keep defaults
		assert.Equal(t, "20220301.simple", cfg.Defaults.Config)
		assert.Equal(t, "text", cfg.Defaults.Field)
	})
}

func TestLoadFromFile(t *testing.T) {
	t.Run("returns error for non-existent file", func(t *testing.T) {
		cfg, err := LoadFromFile("/nonexistent/path/config.yaml")
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "bad.yaml")
		err := os.WriteFile(configPath, []byte("invalid: yaml: content: ["), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		assert.Error(t, err)
		assert.Nil(t, cfg)
	})

	t.Run("parses all config fields", func(t *testing.T) {
		tmpDir := t.TempDir()
		configContent := `
format: ndjson
quiet: false
verbose: true
endpoint: https://datasets-server.huggingface.co
defaults:
  dataset: wikipedia
  config: 20220301.en
  split: validation
  field: body
  output: corpus.jsonl
  corpus_format: nullsep
  progress: 10s
  page_size: 25
  limit: 1000
`
		configPath := filepath.Join(tmpDir, "hfx.yaml")
		err := os.WriteFile(configPath, []byte(configContent), 0644)
		require.NoError(t, err)

		cfg, err := LoadFromFile(configPath)
		require.NoError(t, err)

		assert.Equal(t, "ndjson", cfg.Format)
		assert.False(t, cfg.Quiet)
		assert.True(t, cfg.Verbose)
		assert.Equal(t, "wikipedia", cfg.Defaults.Dataset)
		assert.Equal(t, "20220301.en", cfg.Defaults.Config)
		assert.Equal(t, "validation", cfg.Defaults.Split)
		assert.Equal(t, "body", cfg.Defaults.Field)
		assert.Equal(t, "corpus.jsonl", cfg.Defaults.Output)
		assert.Equal(t, "nullsep", cfg.Defaults.CorpusFormat)
		assert.Equal(t, "10s", cfg.Defaults.Progress)
		assert.Equal(t, 25, cfg.Defaults.PageSize)
		assert.Equal(t, 1000, cfg.Defaults.Limit)
	})
}

func TestConfigEnvironmentVariables(t *testing.T) {
	t.Setenv("HFX_FORMAT", "text")
	t.Setenv("HFX_DATASET", "oscar")
	t.Setenv("HFX_ENDPOINT", "http://localhost:9999")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.Format)
	assert.Equal(t, "oscar", cfg.Defaults.Dataset)
	assert.Equal(t, "http://localhost:9999", cfg.Endpoint)
}

func TestEnvOverrides(t *testing.T) {
	t.Run("quiet overrides from env", func(t *testing.T) {
		t.Setenv("HFX_QUIET", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Quiet)
	})

	t.Run("verbose accepts 1", func(t *testing.T) {
		t.Setenv("HFX_VERBOSE", "1")
		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.Verbose)
	})

	t.Run("split and field override from env", func(t *testing.T) {
		t.Setenv("HFX_SPLIT", "test")
		t.Setenv("HFX_FIELD", "content")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "test", cfg.Defaults.Split)
		assert.Equal(t, "content", cfg.Defaults.Field)
	})

	t.Run("output override from env", func(t *testing.T) {
		t.Setenv("HFX_OUTPUT", "/tmp/corpus.jsonl")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/corpus.jsonl", cfg.Defaults.Output)
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Run("finds .hfx.yaml in current directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		origDir, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		t.Cleanup(func() {
			require.NoError(t, os.Chdir(origDir))
		})

		configPath := filepath.Join(tmpDir, ".hfx.yaml")
		err = os.WriteFile(configPath, []byte("format: text"), 0644)
		require.NoError(t, err)

		found := findConfigFile()
		// Resolve symlinks for comparison (macOS /var -> /private/var)
		expectedPath, err := filepath.EvalSymlinks(configPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})

	t.Run("prefers .hfx.yaml over .hfx.yml", func(t *testing.T) {
		tmpDir := t.TempDir()
		origDir, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(tmpDir))
		t.Cleanup(func() {
			require.NoError(t, os.Chdir(origDir))
		})

		yamlPath := filepath.Join(tmpDir, ".hfx.yaml")
		ymlPath := filepath.Join(tmpDir, ".hfx.yml")
		err = os.WriteFile(yamlPath, []byte("format: yaml"), 0644)
		require.NoError(t, err)
		err = os.WriteFile(ymlPath, []byte("format: yml"), 0644)
		require.NoError(t, err)

		found := findConfigFile()
		expectedPath, err := filepath.EvalSymlinks(yamlPath)
		require.NoError(t, err)
		foundPath, err := filepath.EvalSymlinks(found)
		require.NoError(t, err)
		assert.Equal(t, expectedPath, foundPath)
	})
}
