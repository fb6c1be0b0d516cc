package check

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *Result {
	return &Result{
		FilesChecked: 3,
		LinksChecked: 12,
		Problems: []Problem{
			{SourceFile: "docs/a.md", SourceLine: 4, Link: "b.md#gone", Message: `Anchor "#gone" not found in docs/b.md`, Kind: KindMissingAnchor},
			{SourceFile: "docs/c.md", SourceLine: 9, Link: "zz.md", Message: "Target not found in tracked paths: zz.md", Kind: KindMissingTarget},
		},
	}
}

func TestTextFormatterWithProblems(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextFormatter().Format(&buf, sampleResult(), "/repo"))

	out := buf.String()
	assert.Contains(t, out, "Checking links in: /repo")
	assert.Contains(t, out, "✗ docs/a.md:4")
	assert.Contains(t, out, `Anchor "#gone" not found in docs/b.md`)
	assert.Contains(t, out, "Link: b.md#gone")
	assert.Contains(t, out, "3 files checked")
	assert.Contains(t, out, "12 links checked")
	assert.Contains(t, out, "2 problems found")
	assert.Contains(t, out, "❌ Found broken links.")

	// Problems must print in validation order.
	assert.Less(t, strings.Index(out, "docs/a.md:4"), strings.Index(out, "docs/c.md:9"))
}

func TestTextFormatterClean(t *testing.T) {
	var buf bytes.Buffer
	res := &Result{FilesChecked: 1, LinksChecked: 2}
	require.NoError(t, NewTextFormatter().Format(&buf, res, "."))

	out := buf.String()
	assert.Contains(t, out, "1 file checked")
	assert.Contains(t, out, "2 links checked")
	assert.NotContains(t, out, "problems found")
	assert.Contains(t, out, "✨ All links resolve!")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, sampleResult(), "/repo"))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "/repo", out.Root)
	assert.Equal(t, 3, out.FilesChecked)
	assert.Equal(t, 12, out.LinksChecked)
	assert.Equal(t, 2, out.ProblemCount)
	require.Len(t, out.Problems, 2)
	assert.Equal(t, "docs/a.md", out.Problems[0].SourceFile)
	assert.Equal(t, 4, out.Problems[0].SourceLine)
	assert.Equal(t, "missing-anchor", out.Problems[0].Kind)
}

func TestJSONFormatterEmptyProblemsIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&buf, &Result{FilesChecked: 1}, "."))
	assert.Contains(t, buf.String(), `"problems": []`)
}

func TestNewFormatter(t *testing.T) {
	assert.IsType(t, &JSONFormatter{}, NewFormatter("json"))
	assert.IsType(t, &TextFormatter{}, NewFormatter("text"))
	assert.IsType(t, &TextFormatter{}, NewFormatter(""))
}
