// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldTarget     = "target"
	FieldOutput     = "output"
	FieldFormat     = "format"
	FieldWorkingDir = "working_dir"

	// Configuration fields.
	FieldIndentWidth = "indent_width"
	FieldUseTabs     = "use_tabs"
	FieldLineWidth   = "line_width"
	FieldNewLine     = "newline"
	FieldLanguage    = "language"
	FieldJobs        = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldOps             = "ops"
	FieldChoices         = "choices"
	FieldRestores        = "restores"
	FieldNodes           = "nodes"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
