package pdfoutline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdfoutline "github.com/ivanvanderbyl/pdfoutline"
)

func TestDefaultConfig(t *testing.T) {
	config := pdfoutline.DefaultConfig()

	assert.Equal(t, 0.9, config.H1FontRatio)
	assert.Equal(t, 0.7, config.H2FontRatio)
	assert.Equal(t, 1.3, config.H3FontRatio)
	assert.Equal(t, 4.0, config.ScoreThreshold)
	assert.Equal(t, 200, config.MaxHeadingLength)
	assert.Equal(t, 50, config.MaxOutlineEntries)
	assert.Equal(t, 3, config.MinInferredHeadings)
	assert.Empty(t, config.Language)
	assert.False(t, config.EnableMetricsLogging)

	require.NoError(t, config.Validate())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*pdfoutline.Config)
	}{
		{"h1 ratio zero", func(c *pdfoutline.Config) { c.H1FontRatio = 0 }},
		{"h1 ratio above one", func(c *pdfoutline.Config) { c.H1FontRatio = 1.5 }},
		{"h2 above h1", func(c *pdfoutline.Config) { c.H2FontRatio = 0.95 }},
		{"h3 below one", func(c *pdfoutline.Config) { c.H3FontRatio = 0.5 }},
		{"negative threshold", func(c *pdfoutline.Config) { c.ScoreThreshold = -1 }},
		{"heading length too small", func(c *pdfoutline.Config) { c.MaxHeadingLength = 1 }},
		{"merge gap zero", func(c *pdfoutline.Config) { c.MergeGapRatio = 0 }},
		{"header footer ratio zero", func(c *pdfoutline.Config) { c.HeaderFooterPageRatio = 0 }},
		{"header footer pages zero", func(c *pdfoutline.Config) { c.HeaderFooterMinPages = 0 }},
		{"outline entries zero", func(c *pdfoutline.Config) { c.MaxOutlineEntries = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := pdfoutline.DefaultConfig()
			tt.mutate(&config)
			assert.Error(t, config.Validate())
		})
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "score_threshold: 6\nmax_outline_entries: 20\nlanguage: de\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	config, err := pdfoutline.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 6.0, config.ScoreThreshold)
	assert.Equal(t, 20, config.MaxOutlineEntries)
	assert.Equal(t, "de", config.Language)

	// Absent fields keep their defaults
	assert.Equal(t, 0.9, config.H1FontRatio)
	assert.Equal(t, 3, config.MinInferredHeadings)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := pdfoutline.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("h1_font_ratio: 2.5\n"), 0644))

	_, err := pdfoutline.LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "h1_font_ratio")
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("score_threshold: [oops\n"), 0644))

	_, err := pdfoutline.LoadConfig(path)
	require.Error(t, err)
}

func TestConfigApplyEnv(t *testing.T) {
	t.Setenv("PDFOUTLINE_SCORE_THRESHOLD", "7.5")
	t.Setenv("PDFOUTLINE_MAX_OUTLINE_ENTRIES", "25")
	t.Setenv("PDFOUTLINE_LANGUAGE", "zh")
	t.Setenv("PDFOUTLINE_METRICS", "true")

	config := pdfoutline.DefaultConfig()
	config.ApplyEnv()

	assert.Equal(t, 7.5, config.ScoreThreshold)
	assert.Equal(t, 25, config.MaxOutlineEntries)
	assert.Equal(t, "zh", config.Language)
	assert.True(t, config.EnableMetricsLogging)
}

func TestConfigApplyEnv_InvalidIgnored(t *testing.T) {
	t.Setenv("PDFOUTLINE_MAX_OUTLINE_ENTRIES", "not-a-number")
	t.Setenv("PDFOUTLINE_METRICS", "sometimes")

	config := pdfoutline.DefaultConfig()
	config.ApplyEnv()

	assert.Equal(t, 50, config.MaxOutlineEntries)
	assert.False(t, config.EnableMetricsLogging)
}
