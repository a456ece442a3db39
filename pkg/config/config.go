// Package config defines core configuration types for fmtwriter.
// These types are pure data structures with no dependency on the loader.
package config

// WidthMode selects how text runs are measured when advancing the column.
type WidthMode string

const (
	// WidthChars counts Unicode code points.
	WidthChars WidthMode = "chars"

	// WidthDisplay counts terminal columns, with East Asian wide characters as two.
	WidthDisplay WidthMode = "display"
)

// OutputFormat specifies the output format for render results.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatTable   OutputFormat = "table"
	FormatJSON    OutputFormat = "json"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// Default values.
const (
	DefaultIndentWidth uint8  = 2
	DefaultLineWidth   uint32 = 120
	DefaultNewLine            = "lf"
)

// Config is the root configuration structure for fmtwriter.
type Config struct {
	// IndentWidth is the number of columns per indentation level.
	IndentWidth uint8 `yaml:"indent_width"`

	// UseTabs renders indentation with tabs instead of spaces.
	UseTabs *bool `yaml:"use_tabs"`

	// NewLine is the line break kind: lf, crlf, system or auto.
	NewLine string `yaml:"newline"`

	// LineWidth is the column limit layout choices must respect (0 = unlimited).
	LineWidth uint32 `yaml:"line_width"`

	// WidthMode selects chars or display width measurement.
	WidthMode WidthMode `yaml:"width_mode"`

	// DetectLanguage derives indentation from the target's language.
	DetectLanguage *bool `yaml:"detect_language"`

	// Ignore contains glob patterns for scripts to skip.
	Ignore []string `yaml:"ignore"`

	// CLI-level options (not persisted to config files).

	// Format specifies the output format.
	Format OutputFormat `yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `yaml:"-"`

	// Write stores rendered output to each script's target.
	Write bool `yaml:"-"`

	// Check reports targets whose content differs from the rendered output.
	Check bool `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		IndentWidth:    DefaultIndentWidth,
		UseTabs:        Bool(false),
		NewLine:        DefaultNewLine,
		LineWidth:      DefaultLineWidth,
		WidthMode:      WidthChars,
		DetectLanguage: Bool(false),
		Format:         FormatText,
		Jobs:           0, // 0 means use GOMAXPROCS
	}
}

// Bool returns a pointer to b.
func Bool(b bool) *bool {
	return &b
}

// TabsEnabled reports whether indentation uses tabs.
func (c *Config) TabsEnabled() bool {
	return c != nil && c.UseTabs != nil && *c.UseTabs
}

// LanguageDetectionEnabled reports whether target languages drive indentation.
func (c *Config) LanguageDetectionEnabled() bool {
	return c != nil && c.DetectLanguage != nil && *c.DetectLanguage
}
