// Package script reads layout instruction scripts and replays them against a
// writer. A script stands in for the layout-decision process: its choice
// instruction tries one layout and rewinds to try another when it overflows.
package script

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Script is a parsed instruction file.
type Script struct {
	// Target is the path the rendered output belongs to, relative to the script.
	Target string `yaml:"target"`

	// IndentWidth overrides the configured indentation width.
	IndentWidth *uint8 `yaml:"indent_width"`

	// UseTabs overrides the configured indentation style.
	UseTabs *bool `yaml:"use_tabs"`

	// LineWidth overrides the configured line width used by choice.
	LineWidth *uint32 `yaml:"line_width"`

	// NewLine overrides the configured newline kind.
	NewLine string `yaml:"newline"`

	// Ops are the instructions to replay.
	Ops []Op `yaml:"ops"`
}

// Parse decodes a script. Errors wrap ErrMalformed.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			return nil, parseErr
		}
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &s, nil
}

// ParseFile decodes a script and records path in any ParseError.
func ParseFile(path string, data []byte) (*Script, error) {
	s, err := Parse(data)
	if err != nil {
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
			return nil, parseErr
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
