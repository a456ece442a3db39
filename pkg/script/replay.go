package script

import (
	"strings"

	"github.com/yaklabco/fmtwriter/pkg/writer"
)

// ReplayOptions controls Replay.
type ReplayOptions struct {
	// LineWidth is the column limit a choice's fits branch must respect.
	// Zero disables the limit, so fits is always kept.
	LineWidth uint32
}

// Stats summarizes a replay.
type Stats struct {
	// Ops is the number of instructions executed, including abandoned ones.
	Ops int

	// Choices is the number of choice instructions reached.
	Choices int

	// Restores is the number of choices whose fits branch was rolled back.
	Restores int

	// Overflowed is true if the committed output exceeds LineWidth.
	Overflowed bool
}

type replayer struct {
	w        *writer.Writer
	limit    uint32
	overflow bool
	stats    Stats
}

// Replay drives w with ops. Caller contract violations in ops, such as an
// unmatched finish_indent, panic with *writer.ContractViolation.
func Replay(w *writer.Writer, ops []Op, opts ReplayOptions) Stats {
	r := &replayer{w: w, limit: opts.LineWidth}
	r.run(ops)
	r.stats.Overflowed = r.overflow
	return r.stats
}

func (r *replayer) run(ops []Op) {
	for _, op := range ops {
		r.exec(op)
	}
}

//nolint:cyclop // One case per instruction.
func (r *replayer) exec(op Op) {
	r.stats.Ops++

	switch op.Kind {
	case OpNewLine:
		r.w.NewLine()
	case OpExpectNewLine:
		r.w.MarkExpectNewLine()
	case OpSpace:
		r.w.SpaceIfNotTrailing()
	case OpTab:
		r.w.Tab()
		r.checkWidth()
	case OpSingleIndent:
		r.w.SingleIndent()
		r.checkWidth()
	case OpStartIndent:
		r.w.StartIndent()
	case OpFinishIndent:
		r.w.FinishIndent()
	case OpQueueIndent:
		r.w.QueueIndent()
	case OpStartIgnoringIndent:
		r.w.StartIgnoringIndent()
	case OpFinishIgnoringIndent:
		r.w.FinishIgnoringIndent()
	case OpWrite:
		r.write(op.Text)
	case OpIndent:
		r.w.StartIndent()
		r.run(op.Body)
		r.w.FinishIndent()
	case OpIgnoreIndent:
		r.w.StartIgnoringIndent()
		r.run(op.Body)
		r.w.FinishIgnoringIndent()
	case OpChoice:
		r.choice(op)
	}
}

// write splits embedded line breaks into NewLine calls.
func (r *replayer) write(text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			r.w.NewLine()
		}
		if line != "" {
			r.w.WriteString(line)
			r.checkWidth()
		}
	}
}

func (r *replayer) choice(op Op) {
	r.stats.Choices++

	saved := r.w.State()
	outer := r.overflow
	r.overflow = false

	r.run(op.Fits)

	if r.overflow {
		r.w.SetState(saved)
		r.stats.Restores++
		r.overflow = false
		r.run(op.Otherwise)
	}

	r.overflow = outer || r.overflow
}

// checkWidth runs only after content is committed. A retractable space past
// the limit is not an overflow until later content on the same line keeps it.
func (r *replayer) checkWidth() {
	if r.limit > 0 && !r.w.IsStartOfLine() && r.w.ColumnNumber() > r.limit {
		r.overflow = true
	}
}
