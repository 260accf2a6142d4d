package pdfoutline

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config controls heading inference behavior. All thresholds are tunable
// heuristics, not hard invariants; the defaults follow the values that
// performed best empirically.
type Config struct {
	// H1FontRatio is the fraction of the document's maximum font size at or
	// above which a line classifies as H1 (default: 0.9)
	H1FontRatio float64 `yaml:"h1_font_ratio"`

	// H2FontRatio is the fraction of the maximum font size at or above which
	// a line classifies as H2 (default: 0.7)
	H2FontRatio float64 `yaml:"h2_font_ratio"`

	// H3FontRatio is the multiple of the average font size at or above which
	// a line classifies as H3 (default: 1.3)
	H3FontRatio float64 `yaml:"h3_font_ratio"`

	// ScoreThreshold is the minimum aggregate score a line needs to be
	// accepted as a heading candidate (default: 4). This is the primary
	// precision control.
	ScoreThreshold float64 `yaml:"score_threshold"`

	// MaxHeadingLength is the maximum character length of a heading; longer
	// lines are prose (default: 200)
	MaxHeadingLength int `yaml:"max_heading_length"`

	// MaxContentLength is the maximum character length for a keyword-based
	// match, separating a heading from a sentence that merely contains the
	// keyword (default: 60)
	MaxContentLength int `yaml:"max_content_length"`

	// MergeGapRatio is the maximum vertical gap between consecutive lines,
	// as a multiple of line height, for them to merge into one heading
	// (default: 0.6)
	MergeGapRatio float64 `yaml:"merge_gap_ratio"`

	// IsolationGapRatio is the multiple of the median line spacing a gap
	// must exceed above and below a line for the position scorer to flag it
	// (default: 2.0)
	IsolationGapRatio float64 `yaml:"isolation_gap_ratio"`

	// IsolationMaxWidthRatio is the maximum width of a position-flagged
	// line relative to the page's text extent (default: 0.6)
	IsolationMaxWidthRatio float64 `yaml:"isolation_max_width_ratio"`

	// HeaderFooterPageRatio is the fraction of total pages a repeated text
	// group must span to be dropped as a running header or footer
	// (default: 0.5)
	HeaderFooterPageRatio float64 `yaml:"header_footer_page_ratio"`

	// HeaderFooterMinPages is the minimum number of distinct pages a group
	// must appear on before the running header/footer rule applies
	// (default: 2)
	HeaderFooterMinPages int `yaml:"header_footer_min_pages"`

	// MaxOutlineEntries caps the final outline length (default: 50)
	MaxOutlineEntries int `yaml:"max_outline_entries"`

	// MinInferredHeadings is the minimum number of inferred headings below
	// which the document's embedded bookmarks, when present, are used
	// instead (default: 3)
	MinInferredHeadings int `yaml:"min_inferred_headings"`

	// Language forces the auxiliary pattern/keyword language; empty means
	// detect from the document text (default: "")
	Language string `yaml:"language"`

	// EnableMetricsLogging enables processing time and statistics logging
	// (default: false)
	EnableMetricsLogging bool `yaml:"enable_metrics_logging"`
}

// DefaultConfig returns the default inference configuration.
func DefaultConfig() Config {
	return Config{
		H1FontRatio:            0.9,
		H2FontRatio:            0.7,
		H3FontRatio:            1.3,
		ScoreThreshold:         4,
		MaxHeadingLength:       200,
		MaxContentLength:       60,
		MergeGapRatio:          0.6,
		IsolationGapRatio:      2.0,
		IsolationMaxWidthRatio: 0.6,
		HeaderFooterPageRatio:  0.5,
		HeaderFooterMinPages:   2,
		MaxOutlineEntries:      50,
		MinInferredHeadings:    3,
	}
}

// LoadConfig reads a YAML config file over the defaults. Absent fields keep
// their default values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, errors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if err := config.Validate(); err != nil {
		return config, errors.Wrapf(err, "invalid config file %s", path)
	}

	return config, nil
}

// ApplyEnv overrides config fields from PDFOUTLINE_* environment variables.
func (c *Config) ApplyEnv() {
	c.ScoreThreshold = getEnvAsFloatOrDefault("PDFOUTLINE_SCORE_THRESHOLD", c.ScoreThreshold)
	c.MaxOutlineEntries = getEnvAsIntOrDefault("PDFOUTLINE_MAX_OUTLINE_ENTRIES", c.MaxOutlineEntries)
	c.MinInferredHeadings = getEnvAsIntOrDefault("PDFOUTLINE_MIN_INFERRED_HEADINGS", c.MinInferredHeadings)
	c.MaxHeadingLength = getEnvAsIntOrDefault("PDFOUTLINE_MAX_HEADING_LENGTH", c.MaxHeadingLength)
	c.Language = getEnvOrDefault("PDFOUTLINE_LANGUAGE", c.Language)
	c.EnableMetricsLogging = getEnvAsBoolOrDefault("PDFOUTLINE_METRICS", c.EnableMetricsLogging)
}

// Validate checks that all thresholds are in usable ranges.
func (c Config) Validate() error {
	if c.H1FontRatio <= 0 || c.H1FontRatio > 1 {
		return errors.Errorf("h1_font_ratio must be in (0, 1], got %v", c.H1FontRatio)
	}
	if c.H2FontRatio <= 0 || c.H2FontRatio > c.H1FontRatio {
		return errors.Errorf("h2_font_ratio must be in (0, h1_font_ratio], got %v", c.H2FontRatio)
	}
	if c.H3FontRatio < 1 {
		return errors.Errorf("h3_font_ratio must be >= 1, got %v", c.H3FontRatio)
	}
	if c.ScoreThreshold < 0 {
		return errors.Errorf("score_threshold must be >= 0, got %v", c.ScoreThreshold)
	}
	if c.MaxHeadingLength < 2 {
		return errors.Errorf("max_heading_length must be >= 2, got %d", c.MaxHeadingLength)
	}
	if c.MergeGapRatio <= 0 {
		return errors.Errorf("merge_gap_ratio must be > 0, got %v", c.MergeGapRatio)
	}
	if c.HeaderFooterPageRatio <= 0 || c.HeaderFooterPageRatio > 1 {
		return errors.Errorf("header_footer_page_ratio must be in (0, 1], got %v", c.HeaderFooterPageRatio)
	}
	if c.HeaderFooterMinPages < 1 {
		return errors.Errorf("header_footer_min_pages must be >= 1, got %d", c.HeaderFooterMinPages)
	}
	if c.MaxOutlineEntries < 1 {
		return errors.Errorf("max_outline_entries must be >= 1, got %d", c.MaxOutlineEntries)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func getEnvAsBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
