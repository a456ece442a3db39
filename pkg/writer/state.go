package writer

// State is a copyable snapshot of the writer's cursor bookkeeping plus a
// handle to the newest output graph node. Taking and restoring a State is O(1).
//
// Two states with the same tail handle have written the same output; the other
// fields only describe where the cursor is.
type State struct {
	currentLineColumn       uint32
	currentLineNumber       uint32
	lastLineIndentLevel     uint8
	indentLevel             uint8
	expectNewLineNext       bool
	indentQueueCount        uint8
	lastWasNotTrailingSpace bool
	ignoreIndentCount       uint8
	items                   NodeID
}

// Tail returns the handle of the newest node, or the zero NodeID for empty output.
func (s State) Tail() NodeID {
	return s.items
}

// Info describes the cursor position for fit checks.
type Info struct {
	LineNumber           uint32
	ColumnNumber         uint32
	IndentLevel          uint8
	LineStartIndentLevel uint8
	IndentWidth          uint8
	ExpectNewLineNext    bool
}

// LineStartColumnNumber is the column content on the current line starts at.
func (i Info) LineStartColumnNumber() uint32 {
	return uint32(i.LineStartIndentLevel) * uint32(i.IndentWidth)
}

// IsStartOfLine reports whether nothing has been written on the current line.
func (i Info) IsStartOfLine() bool {
	return i.ExpectNewLineNext || i.ColumnNumber == i.LineStartColumnNumber()
}

func (s *State) info(indentWidth uint8) Info {
	return Info{
		LineNumber:           s.currentLineNumber,
		ColumnNumber:         s.columnNumber(indentWidth),
		IndentLevel:          s.indentLevel,
		LineStartIndentLevel: s.lastLineIndentLevel,
		IndentWidth:          indentWidth,
		ExpectNewLineNext:    s.expectNewLineNext,
	}
}

// columnNumber accounts for indentation that has not been materialized yet.
func (s *State) columnNumber(indentWidth uint8) uint32 {
	if s.currentLineColumn == 0 {
		return uint32(indentWidth) * uint32(s.indentLevel)
	}
	return s.currentLineColumn
}
