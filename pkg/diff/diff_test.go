package diff_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/fmtwriter/pkg/diff"
)

func TestGenerate_Identical(t *testing.T) {
	t.Parallel()

	assert.Nil(t, diff.Generate("a.go", []byte("x\n"), []byte("x\n")))
	assert.Nil(t, diff.Generate("a.go", nil, nil))

	var d *diff.Diff
	assert.False(t, d.HasChanges())
	assert.Empty(t, d.String())
}

func TestGenerate_SingleChange(t *testing.T) {
	t.Parallel()

	d := diff.Generate("x.go", []byte("a\nb\nc\n"), []byte("a\nB\nc\n"))
	require.NotNil(t, d)
	assert.True(t, d.HasChanges())
	assert.Equal(t, 1, d.Added)
	assert.Equal(t, 1, d.Removed)

	expected := `--- a/x.go
+++ b/x.go
@@ -1,3 +1,3 @@
 a
-b
+B
 c
`
	assert.Equal(t, expected, d.String())
	assert.Equal(t, "diff --git a/x.go b/x.go", d.GitHeader())
}

func TestGenerate_NewFile(t *testing.T) {
	t.Parallel()

	d := diff.Generate("/tmp/new.txt", nil, []byte("x\n"))
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, "@@ -0,0 +1,1 @@", d.Hunks[0].Header())
	assert.Contains(t, d.String(), "--- a/tmp/new.txt\n")
}

func TestGenerate_MissingTrailingNewline(t *testing.T) {
	t.Parallel()

	d := diff.Generate("f", []byte("a"), []byte("a\n"))
	require.NotNil(t, d)
	assert.Contains(t, d.String(), "-a\n\\ No newline at end of file\n+a\n")
}

func TestGenerate_LineEndingsOnly(t *testing.T) {
	t.Parallel()

	d := diff.Generate("f", []byte("a\r\nb\r\n"), []byte("a\nb\n"))
	require.NotNil(t, d)
	assert.Equal(t, 2, d.Added)
	assert.Equal(t, 2, d.Removed)
}

func TestGenerate_SeparateHunks(t *testing.T) {
	t.Parallel()

	var original, modified []string
	for i := 1; i <= 20; i++ {
		original = append(original, fmt.Sprintf("l%d", i))
	}
	modified = append(modified, original...)
	modified[0] = "X"
	modified[19] = "Y"

	d := diff.Generate("f",
		[]byte(strings.Join(original, "\n")+"\n"),
		[]byte(strings.Join(modified, "\n")+"\n"))
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 2)

	assert.Equal(t, "@@ -1,4 +1,4 @@", d.Hunks[0].Header())
	assert.Equal(t, "@@ -17,4 +17,4 @@", d.Hunks[1].Header())
}

func TestGenerate_NearbyChangesMerge(t *testing.T) {
	t.Parallel()

	original := "1\n2\n3\n4\n5\n6\n7\n8\n"
	modified := "one\n2\n3\n4\n5\n6\n7\neight\n"

	d := diff.Generate("f", []byte(original), []byte(modified))
	require.NotNil(t, d)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, "@@ -1,8 +1,8 @@", d.Hunks[0].Header())
}

func TestKindPrefix(t *testing.T) {
	t.Parallel()

	assert.Equal(t, " ", diff.Context.Prefix())
	assert.Equal(t, "+", diff.Insert.Prefix())
	assert.Equal(t, "-", diff.Delete.Prefix())
}
