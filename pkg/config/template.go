package config

// Template is the commented starter configuration written by `fmtwriter init`.
const Template = `# fmtwriter configuration
# See: https://github.com/yaklabco/fmtwriter

# Columns per indentation level
indent_width: 2

# Indent with tabs instead of spaces
# use_tabs: false

# Line break: lf, crlf, system, or auto (match the existing target)
newline: lf

# Column limit for layout choices (0 = unlimited)
line_width: 120

# How text width is measured: chars or display
# width_mode: chars

# Derive indentation from the target file's language
# detect_language: false

# Script patterns to ignore (glob patterns)
# ignore:
#   - "testdata/**"
`

// GenerateTemplate returns the starter configuration.
func GenerateTemplate() []byte {
	return []byte(Template)
}
