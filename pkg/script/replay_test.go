package script_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtwriter/pkg/render"
	"github.com/yaklabco/fmtwriter/pkg/script"
	"github.com/yaklabco/fmtwriter/pkg/writer"
)

func replay(t *testing.T, src string, width uint32) (string, script.Stats) {
	t.Helper()

	s, err := script.Parse([]byte(src))
	require.NoError(t, err)

	w := writer.New(writer.NewArena(nil), writer.Options{IndentWidth: 2})
	stats := script.Replay(w, s.Ops, script.ReplayOptions{LineWidth: width})

	return render.NewPrinter(render.Spaces(2), "\n").Print(w.Items()), stats
}

const callScript = `ops:
  - write: "call("
  - choice:
      fits:
        - write: "argument1, argument2"
      otherwise:
        - indent:
            - newline
            - write: "argument1,"
            - newline
            - write: "argument2"
        - newline
  - write: ")"
`

func TestReplayChoice(t *testing.T) {
	t.Parallel()

	t.Run("keeps fits when it fits", func(t *testing.T) {
		t.Parallel()

		out, stats := replay(t, callScript, 40)
		assert.Equal(t, "call(argument1, argument2)", out)
		assert.Equal(t, 1, stats.Choices)
		assert.Zero(t, stats.Restores)
		assert.False(t, stats.Overflowed)
	})

	t.Run("falls back when fits overflows", func(t *testing.T) {
		t.Parallel()

		out, stats := replay(t, callScript, 14)
		assert.Equal(t, "call(\n  argument1,\n  argument2\n)", out)
		assert.Equal(t, 1, stats.Restores)
		assert.False(t, stats.Overflowed)
	})

	t.Run("unlimited width never restores", func(t *testing.T) {
		t.Parallel()

		out, stats := replay(t, callScript, 0)
		assert.Equal(t, "call(argument1, argument2)", out)
		assert.Zero(t, stats.Restores)
	})
}

func TestReplayNestedChoice(t *testing.T) {
	t.Parallel()

	src := `ops:
  - choice:
      fits:
        - write: aaaa
        - choice:
            fits: [{write: bbbbbbbbbb}]
            otherwise: [newline, {write: bb}]
      otherwise:
        - write: x
`

	t.Run("inner fallback keeps outer", func(t *testing.T) {
		t.Parallel()

		out, stats := replay(t, src, 10)
		assert.Equal(t, "aaaa\nbb", out)
		assert.Equal(t, 2, stats.Choices)
		assert.Equal(t, 1, stats.Restores)
	})

	t.Run("outer overflow discards inner work", func(t *testing.T) {
		t.Parallel()

		out, stats := replay(t, src, 3)
		assert.Equal(t, "x", out)
		assert.Equal(t, 2, stats.Choices)
		assert.Equal(t, 2, stats.Restores)
	})
}

func TestReplayInstructions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "indent block",
			src:  "ops:\n  - write: a\n  - indent:\n      - newline\n      - write: b\n  - newline\n  - write: c\n",
			want: "a\n  b\nc",
		},
		{
			name: "embedded newlines",
			src:  "ops:\n  - write: \"a\\nb\"\n",
			want: "a\nb",
		},
		{
			name: "trailing space retracted",
			src:  "ops:\n  - write: a\n  - space\n  - newline\n  - write: b\n",
			want: "a\nb",
		},
		{
			name: "expect newline",
			src:  "ops:\n  - write: a\n  - expect_newline\n  - write: b\n",
			want: "a\nb",
		},
		{
			name: "tab and single indent",
			src:  "ops:\n  - single_indent\n  - write: a\n  - tab\n  - write: b\n",
			want: "  a\tb",
		},
		{
			name: "ignore indent block",
			src:  "ops:\n  - start_indent\n  - ignore_indent:\n      - write: raw\n  - newline\n  - write: x\n  - finish_indent\n",
			want: "raw\n  x",
		},
		{
			name: "queued indent cancelled",
			src:  "ops:\n  - write: a\n  - queue_indent\n  - finish_indent\n  - newline\n  - write: b\n",
			want: "a\nb",
		},
		{
			name: "explicit ignore pair",
			src:  "ops:\n  - start_indent\n  - start_ignoring_indent\n  - write: r\n  - finish_ignoring_indent\n  - finish_indent\n",
			want: "r",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out, _ := replay(t, testCase.src, 0)
			assert.Equal(t, testCase.want, out)
		})
	}
}

func TestReplayContractViolation(t *testing.T) {
	t.Parallel()

	s, err := script.Parse([]byte("ops:\n  - write: a\n  - finish_indent\n"))
	require.NoError(t, err)

	w := writer.New(writer.NewArena(nil), writer.Options{})
	err = writer.Guard(func() {
		script.Replay(w, s.Ops, script.ReplayOptions{})
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, writer.ErrContractViolation)
}

func TestReplayCountsOps(t *testing.T) {
	t.Parallel()

	_, stats := replay(t, "ops:\n  - write: a\n  - indent:\n      - newline\n", 0)
	assert.Equal(t, 3, stats.Ops)
}

func TestReplayRetractedSpaceIsNotOverflow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		src          string
		want         string
		wantRestores int
		wantOverflow bool
	}{
		{
			name: "fits branch kept when space is retracted",
			src: `ops:
  - choice:
      fits: [{write: abcde}, space, newline, {write: x}]
      otherwise: [{write: OTHER}]
`,
			want: "abcde\nx",
		},
		{
			name: "retracted space at top level",
			src:  "ops:\n  - write: abcde\n  - space\n  - newline\n",
			want: "abcde\n",
		},
		{
			name: "space kept by later content overflows",
			src: `ops:
  - choice:
      fits: [{write: abcde}, space, {write: x}]
      otherwise: [{write: OTHER}]
`,
			want:         "OTHER",
			wantRestores: 1,
		},
		{
			name:         "tab past limit overflows",
			src:          "ops:\n  - write: abcd\n  - tab\n",
			want:         "abcd\t",
			wantOverflow: true,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			out, stats := replay(t, testCase.src, 5)
			assert.Equal(t, testCase.want, out)
			assert.Equal(t, testCase.wantRestores, stats.Restores)
			assert.Equal(t, testCase.wantOverflow, stats.Overflowed)
		})
	}
}
