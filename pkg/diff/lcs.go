package diff

import "strings"

// rawLine keeps the line terminator so "a" and "a\n" compare unequal.
type rawLine string

func (r rawLine) text() string {
	s := strings.TrimSuffix(string(r), "\n")
	return strings.TrimSuffix(s, "\r")
}

func (r rawLine) noEOL() bool {
	return !strings.HasSuffix(string(r), "\n")
}

func splitLines(content []byte) []rawLine {
	if len(content) == 0 {
		return nil
	}
	parts := strings.SplitAfter(string(content), "\n")
	if parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	lines := make([]rawLine, len(parts))
	for i, p := range parts {
		lines[i] = rawLine(p)
	}
	return lines
}

// op is one step of the edit script with 0-based positions on each side.
type op struct {
	line   Line
	oldPos int
	newPos int
}

// editScript walks a suffix LCS table. Deletions are emitted before
// insertions at each divergence.
func editScript(a, b []rawLine) []op {
	n, m := len(a), len(b)
	table := make([][]int32, n+1)
	for i := range table {
		table[i] = make([]int32, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	ops := make([]op, 0, n+m)
	i, j := 0, 0
	for i < n || j < m {
		switch {
		case i < n && j < m && a[i] == b[j]:
			ops = append(ops, op{Line{Context, a[i].text(), a[i].noEOL()}, i, j})
			i++
			j++
		case j == m || (i < n && table[i+1][j] >= table[i][j+1]):
			ops = append(ops, op{Line{Delete, a[i].text(), a[i].noEOL()}, i, j})
			i++
		default:
			ops = append(ops, op{Line{Insert, b[j].text(), b[j].noEOL()}, i, j})
			j++
		}
	}
	return ops
}

// group cuts the edit script into hunks, merging changes separated by at
// most 2*ContextLines unchanged lines.
func group(ops []op) []Hunk {
	var hunks []Hunk

	start := -1
	lastChange := -1
	flush := func() {
		if start < 0 {
			return
		}
		lo := max(start-ContextLines, 0)
		hi := min(lastChange+ContextLines+1, len(ops))
		hunks = append(hunks, makeHunk(ops[lo:hi]))
		start = -1
	}

	for idx, o := range ops {
		if o.line.Kind == Context {
			continue
		}
		if start >= 0 && idx-lastChange-1 > 2*ContextLines {
			flush()
		}
		if start < 0 {
			start = idx
		}
		lastChange = idx
	}
	flush()

	return hunks
}

func makeHunk(ops []op) Hunk {
	h := Hunk{
		OldStart: ops[0].oldPos + 1,
		NewStart: ops[0].newPos + 1,
		Lines:    make([]Line, 0, len(ops)),
	}
	for _, o := range ops {
		h.Lines = append(h.Lines, o.line)
		if o.line.Kind != Insert {
			h.OldCount++
		}
		if o.line.Kind != Delete {
			h.NewCount++
		}
	}
	// Unified diff reports an empty side as starting on the line before it.
	if h.OldCount == 0 {
		h.OldStart--
	}
	if h.NewCount == 0 {
		h.NewStart--
	}
	return h
}
