package configloader

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/yaklabco/fmtwriter/pkg/config"
)

// envVarPrefix is the prefix for all fmtwriter environment variables.
const envVarPrefix = "FMTWRITER_"

// envSetter parses a raw environment value and stores it on the config.
type envSetter func(cfg *config.Config, value string) error

// envVar describes one supported environment variable.
type envVar struct {
	field       string
	description string
	apply       envSetter
}

// envVars maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"INDENT_WIDTH": {
		field:       "indent_width",
		description: "Columns per indentation level (1-255)",
		apply: func(cfg *config.Config, value string) error {
			width, err := strconv.ParseUint(value, 10, 8)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			cfg.IndentWidth = uint8(width)
			return nil
		},
	},
	"USE_TABS": {
		field:       "use_tabs",
		description: "Indent with tabs: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := parseBool(value)
			if err != nil {
				return err
			}
			cfg.UseTabs = config.Bool(b)
			return nil
		},
	},
	"NEWLINE": {
		field:       "newline",
		description: "Line break kind: lf, crlf, system, or auto",
		apply: func(cfg *config.Config, value string) error {
			cfg.NewLine = value
			return nil
		},
	},
	"LINE_WIDTH": {
		field:       "line_width",
		description: "Column limit for layout choices (0 = unlimited)",
		apply: func(cfg *config.Config, value string) error {
			width, err := strconv.ParseUint(value, 10, 32)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			cfg.LineWidth = uint32(width)
			return nil
		},
	},
	"WIDTH_MODE": {
		field:       "width_mode",
		description: "Text width measurement: chars or display",
		apply: func(cfg *config.Config, value string) error {
			cfg.WidthMode = config.WidthMode(value)
			return nil
		},
	},
	"DETECT_LANGUAGE": {
		field:       "detect_language",
		description: "Derive indentation from the target language: true or false",
		apply: func(cfg *config.Config, value string) error {
			b, err := parseBool(value)
			if err != nil {
				return err
			}
			cfg.DetectLanguage = config.Bool(b)
			return nil
		},
	},
	"JOBS": {
		field:       "jobs",
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, value string) error {
			jobs, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid integer %q", value)
			}
			cfg.Jobs = jobs
			return nil
		},
	},
	"FORMAT": {
		field:       "format",
		description: "Output format: text, table, json, diff, or summary",
		apply: func(cfg *config.Config, value string) error {
			cfg.Format = config.OutputFormat(value)
			return nil
		},
	},
	"IGNORE": {
		field:       "ignore",
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, value string) error {
			cfg.Ignore = parseSliceValue(value)
			return nil
		},
	},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with FMTWRITER_ (e.g., FMTWRITER_LINE_WIDTH).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, suffix := range sortedEnvSuffixes() {
		name := envVarPrefix + suffix
		value := os.Getenv(name)
		if value == "" {
			continue
		}

		if err := envVars[suffix].apply(cfg, value); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}

	return nil
}

func parseBool(value string) (bool, error) {
	b, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
	}
	return b, nil
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func sortedEnvSuffixes() []string {
	suffixes := make([]string, 0, len(envVars))
	for suffix := range envVars {
		suffixes = append(suffixes, suffix)
	}
	sort.Strings(suffixes)
	return suffixes
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, v := range envVars {
		if v.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their descriptions.
func ListEnvVars() map[string]string {
	list := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		list[envVarPrefix+suffix] = v.description
	}
	return list
}
