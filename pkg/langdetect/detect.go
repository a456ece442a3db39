// Package langdetect picks indentation defaults for a formatting target.
// It uses go-enry to identify the target's language from its filename and
// content.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language names as reported by go-enry.
const (
	langGo     = "Go"
	langPython = "Python"
	langJSON   = "JSON"
	langYAML   = "YAML"
)

// Indentation describes a language's customary indentation.
type Indentation struct {
	UseTabs bool
	Width   uint8
}

// indentByLanguage maps go-enry language names to indentation conventions.
//
//nolint:gochecknoglobals // Read-only lookup table.
var indentByLanguage = map[string]Indentation{
	"Go":         {UseTabs: true, Width: 4},
	"Makefile":   {UseTabs: true, Width: 4},
	"YAML":       {Width: 2},
	"JSON":       {Width: 2},
	"Ruby":       {Width: 2},
	"JavaScript": {Width: 2},
	"TypeScript": {Width: 2},
	"TSX":        {Width: 2},
	"HTML":       {Width: 2},
	"CSS":        {Width: 2},
	"Markdown":   {Width: 2},
	"Shell":      {Width: 2},
	"Dart":       {Width: 2},
	"Python":     {Width: 4},
	"Rust":       {Width: 4},
	"Java":       {Width: 4},
	"C#":         {Width: 4},
	"Kotlin":     {Width: 4},
	"Swift":      {Width: 4},
	"C":          {Width: 4},
	"C++":        {Width: 4},
	"PHP":        {Width: 4},
}

// Detect returns the go-enry language name for a target, or "" if unknown.
func Detect(filename string, content []byte) string {
	// Strategy 1: shebang is the most reliable signal.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	// Strategy 2: unambiguous filenames and extensions.
	base := ""
	if filename != "" {
		base = filepath.Base(filename)
		if lang, safe := enry.GetLanguageByFilename(base); safe {
			return lang
		}
		if lang, safe := enry.GetLanguageByExtension(base); safe {
			return lang
		}
	}

	// Strategy 3: highly indicative content patterns.
	if lang := detectByPattern(content); lang != "" {
		return lang
	}

	// Strategy 4: full enry detection, which needs content to classify.
	if len(content) == 0 {
		return ""
	}
	return enry.GetLanguage(base, content)
}

// IndentationFor returns the customary indentation of a target's language.
func IndentationFor(filename string, content []byte) (Indentation, string, bool) {
	lang := Detect(filename, content)
	if lang == "" {
		return Indentation{}, "", false
	}
	indent, ok := indentByLanguage[lang]
	return indent, lang, ok
}

// detectByPattern checks for language-specific patterns that are highly indicative.
func detectByPattern(content []byte) string {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return ""
	}

	if bytes.HasPrefix(trimmed, []byte("package ")) {
		return langGo
	}
	if isPython(string(content)) {
		return langPython
	}
	if (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) {
		return langJSON
	}
	if isYAML(content) {
		return langYAML
	}

	return ""
}

func isPython(contentStr string) bool {
	if strings.Contains(contentStr, "def ") && strings.Contains(contentStr, "):") {
		return true
	}
	return strings.Contains(contentStr, "__name__") || strings.Contains(contentStr, "__main__")
}

// isYAML counts key: value pairs and list items.
func isYAML(content []byte) bool {
	yamlKeyCount := 0

	for _, line := range bytes.Split(content, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 || bytes.HasPrefix(line, []byte("#")) {
			continue
		}
		if bytes.Contains(line, []byte(": ")) &&
			!bytes.Contains(line, []byte("(")) &&
			!bytes.Contains(line, []byte("{")) &&
			!bytes.HasPrefix(line, []byte(`"`)) {
			yamlKeyCount++
		}
		if bytes.HasPrefix(line, []byte("- ")) {
			yamlKeyCount++
		}
	}

	return yamlKeyCount >= 2
}
