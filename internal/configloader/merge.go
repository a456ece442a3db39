package configloader

import "github.com/yaklabco/fmtwriter/pkg/config"

// merge combines two configurations, with override taking precedence over base.
//   - Scalar values: override overwrites base if override is non-zero
//   - Pointer booleans: override overwrites base if set, so files can turn them off
//   - Slices: override replaces base entirely if override is non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := *base

	if override.IndentWidth != 0 {
		result.IndentWidth = override.IndentWidth
	}
	if override.NewLine != "" {
		result.NewLine = override.NewLine
	}
	if override.LineWidth != 0 {
		result.LineWidth = override.LineWidth
	}
	if override.WidthMode != "" {
		result.WidthMode = override.WidthMode
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}

	if override.UseTabs != nil {
		result.UseTabs = config.Bool(*override.UseTabs)
	}
	if override.DetectLanguage != nil {
		result.DetectLanguage = config.Bool(*override.DetectLanguage)
	}

	// Write and Check only ever come from CLI flags, which can only turn them on.
	if override.Write {
		result.Write = true
	}
	if override.Check {
		result.Check = true
	}

	if override.Ignore != nil {
		result.Ignore = append([]string(nil), override.Ignore...)
	}

	return &result
}

// MergeAll merges multiple configurations in order, with later configs taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for i := 1; i < len(configs); i++ {
		result = merge(result, configs[i])
	}
	return result
}
