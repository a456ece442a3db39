// Package writer implements the output buffer of the formatter: cursor and
// indentation bookkeeping over a persistent, arena-allocated chain of render
// items that can be checkpointed and rewound in constant time.
package writer

import (
	"iter"
	"math"
	"slices"
)

// DefaultIndentWidth is used when Options.IndentWidth is zero.
const DefaultIndentWidth = 2

// Options configures a Writer.
type Options struct {
	// IndentWidth is the number of columns one indentation level occupies.
	IndentWidth uint8

	// Collector, when set, is told about every node the writer allocates.
	Collector Collector
}

// Writer turns editing operations into cursor bookkeeping plus an append-only
// record of rendered items. A Writer is bound to one Arena and one goroutine.
type Writer struct {
	arena       *Arena
	state       State
	indentWidth uint8
	collector   Collector
}

// New creates a Writer that allocates from arena.
func New(arena *Arena, opts Options) *Writer {
	width := opts.IndentWidth
	if width == 0 {
		width = DefaultIndentWidth
	}
	return &Writer{
		arena:       arena,
		indentWidth: width,
		collector:   opts.Collector,
	}
}

// Arena returns the arena the writer allocates from.
func (w *Writer) Arena() *Arena {
	return w.arena
}

// Info returns the current cursor position.
func (w *Writer) Info() Info {
	return w.state.info(w.indentWidth)
}

// State returns a checkpoint of the writer.
func (w *Writer) State() State {
	return w.state
}

// SetState rewinds the writer to a checkpoint taken from this writer.
// Everything written after the checkpoint is forgotten.
func (w *Writer) SetState(state State) {
	w.state = state
}

// StartIndent increases the indentation level.
func (w *Writer) StartIndent() {
	if w.state.indentLevel == math.MaxUint8 {
		violate("StartIndent", "indent level overflow")
	}
	w.setIndentLevel(w.state.indentLevel + 1)
}

// FinishIndent cancels one queued indent if any is pending, otherwise it
// decreases the indentation level.
func (w *Writer) FinishIndent() {
	if w.state.indentQueueCount > 0 {
		w.state.indentQueueCount--
		return
	}
	if w.state.indentLevel == 0 {
		violate("FinishIndent", "called without a corresponding StartIndent")
	}
	w.setIndentLevel(w.state.indentLevel - 1)
}

func (w *Writer) setIndentLevel(level uint8) {
	w.state.indentLevel = level

	// Nothing written yet, so the line starts at the new level.
	if w.state.currentLineColumn == 0 {
		w.state.lastLineIndentLevel = level
	}
}

// QueueIndent requests one more indentation level, taking effect after the
// next item is pushed.
func (w *Writer) QueueIndent() {
	if w.state.indentQueueCount == math.MaxUint8 {
		violate("QueueIndent", "indent queue overflow")
	}
	w.state.indentQueueCount++
}

// StartIgnoringIndent suppresses indentation until the matching FinishIgnoringIndent.
func (w *Writer) StartIgnoringIndent() {
	if w.state.ignoreIndentCount == math.MaxUint8 {
		violate("StartIgnoringIndent", "ignore indent overflow")
	}
	w.state.ignoreIndentCount++
}

// FinishIgnoringIndent ends one StartIgnoringIndent scope.
func (w *Writer) FinishIgnoringIndent() {
	if w.state.ignoreIndentCount == 0 {
		violate("FinishIgnoringIndent", "called without a corresponding StartIgnoringIndent")
	}
	w.state.ignoreIndentCount--
}

// MarkExpectNewLine defers a line break until the next content push.
func (w *Writer) MarkExpectNewLine() {
	w.state.expectNewLineNext = true
}

// SpaceIfNotTrailing writes a space unless a line break is pending. The space
// is retracted if a line break follows before any other content.
func (w *Writer) SpaceIfNotTrailing() {
	if w.state.expectNewLineNext {
		return
	}
	w.space()
	w.state.lastWasNotTrailingSpace = true
}

// NewLine ends the current line.
func (w *Writer) NewLine() {
	if w.state.lastWasNotTrailingSpace {
		w.popItem()
		w.state.lastWasNotTrailingSpace = false
	}

	w.state.currentLineColumn = 0
	w.state.currentLineNumber++
	w.state.lastLineIndentLevel = w.state.indentLevel
	w.state.expectNewLineNext = false
	w.pushItem(NewLineItem())
}

// SingleIndent writes one level of indentation at the cursor.
func (w *Writer) SingleIndent() {
	w.handleFirstColumn()
	w.state.currentLineColumn += uint32(w.indentWidth)
	w.pushItem(IndentItem(1))
}

// Tab writes a tab, counted as one indentation width.
func (w *Writer) Tab() {
	w.handleFirstColumn()
	w.state.currentLineColumn += uint32(w.indentWidth)
	w.pushItem(TabItem())
}

func (w *Writer) space() {
	w.handleFirstColumn()
	w.state.currentLineColumn++
	w.pushItem(SpaceItem())
}

// Write writes a text run. The text should not contain line breaks.
// A nil text is a contract violation.
func (w *Writer) Write(text *Text) {
	if text == nil {
		violate("Write", "nil text")
	}
	w.handleFirstColumn()
	w.state.currentLineColumn += text.CharCount
	w.pushItem(TextItem(text))
}

// WriteString interns s in the writer's arena and writes it.
func (w *Writer) WriteString(s string) {
	w.Write(w.arena.Text(s))
}

func (w *Writer) handleFirstColumn() {
	if w.state.expectNewLineNext {
		w.NewLine()
	}

	w.state.lastWasNotTrailingSpace = false

	if w.state.currentLineColumn != 0 || w.state.indentLevel == 0 || w.state.ignoreIndentCount != 0 {
		return
	}

	w.state.lastLineIndentLevel = w.state.indentLevel
	w.state.currentLineColumn = uint32(w.state.indentLevel) * uint32(w.indentWidth)

	// Pushing applies queued indents, so the level is read first.
	w.pushItem(IndentItem(w.state.indentLevel))
}

func (w *Writer) pushItem(item Item) {
	id := w.arena.Alloc(item, w.state.items)
	w.state.items = id

	if w.collector != nil {
		w.collector.NodeAllocated(id, item)
	}

	if w.state.indentQueueCount > 0 {
		level := int(w.state.indentLevel) + int(w.state.indentQueueCount)
		if level > math.MaxUint8 {
			violate("QueueIndent", "indent level overflow")
		}
		w.state.indentQueueCount = 0
		w.state.indentLevel = uint8(level)
	}
}

func (w *Writer) popItem() {
	if !w.state.items.Valid() {
		return
	}
	_, prev := w.arena.Node(w.state.items)
	w.state.items = prev
}

// ColumnNumber returns the effective column, including unmaterialized indentation.
func (w *Writer) ColumnNumber() uint32 {
	return w.state.columnNumber(w.indentWidth)
}

// LineNumber returns the zero-based line number.
func (w *Writer) LineNumber() uint32 {
	return w.state.currentLineNumber
}

// IndentLevel returns the active indentation level.
func (w *Writer) IndentLevel() uint8 {
	return w.state.indentLevel
}

// IndentWidth returns the configured indentation width.
func (w *Writer) IndentWidth() uint8 {
	return w.indentWidth
}

// LineStartIndentLevel returns the indentation level the current line started at.
func (w *Writer) LineStartIndentLevel() uint8 {
	return w.state.lastLineIndentLevel
}

// LineStartColumnNumber returns the column the current line's content starts at.
func (w *Writer) LineStartColumnNumber() uint32 {
	return uint32(w.state.lastLineIndentLevel) * uint32(w.indentWidth)
}

// IsStartOfLine reports whether nothing has been written on the current line.
func (w *Writer) IsStartOfLine() bool {
	return w.state.expectNewLineNext || w.ColumnNumber() == w.LineStartColumnNumber()
}

// CurrentNodeID returns the handle of the newest node.
func (w *Writer) CurrentNodeID() NodeID {
	return w.state.items
}

// Items returns the written items in order.
func (w *Writer) Items() iter.Seq[Item] {
	return Items(w.arena, w.state.items)
}

// Items walks the chain ending at tail back to its root and yields the items
// front to back. Each iteration re-walks the chain.
func Items(arena *Arena, tail NodeID) iter.Seq[Item] {
	return func(yield func(Item) bool) {
		var reversed []Item
		for id := tail; id.Valid(); {
			item, prev := arena.Node(id)
			reversed = append(reversed, item)
			id = prev
		}
		for _, item := range slices.Backward(reversed) {
			if !yield(item) {
				return
			}
		}
	}
}
