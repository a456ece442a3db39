package render

import (
	"bytes"
	"fmt"
	"runtime"
)

// NewLineKind selects the line break sequence.
type NewLineKind string

const (
	NewLineLF     NewLineKind = "lf"
	NewLineCRLF   NewLineKind = "crlf"
	NewLineSystem NewLineKind = "system"

	// NewLineAuto reuses the first line break found in a reference input.
	NewLineAuto NewLineKind = "auto"
)

// ParseNewLineKind parses a newline kind, returning an error for unknown kinds.
func ParseNewLineKind(s string) (NewLineKind, error) {
	switch NewLineKind(s) {
	case NewLineLF, NewLineCRLF, NewLineSystem, NewLineAuto:
		return NewLineKind(s), nil
	case "":
		return NewLineLF, nil
	default:
		return "", fmt.Errorf("unknown newline kind %q; valid kinds: lf, crlf, system, auto", s)
	}
}

// Resolve returns the line break sequence for kind. The reference input is
// only consulted for NewLineAuto.
func (k NewLineKind) Resolve(reference []byte) string {
	switch k {
	case NewLineCRLF:
		return "\r\n"
	case NewLineSystem:
		if runtime.GOOS == "windows" {
			return "\r\n"
		}
		return "\n"
	case NewLineAuto:
		idx := bytes.IndexByte(reference, '\n')
		if idx > 0 && reference[idx-1] == '\r' {
			return "\r\n"
		}
		return "\n"
	default:
		return "\n"
	}
}
