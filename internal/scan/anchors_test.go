package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnchorsATX(t *testing.T) {
	text := "# Title\n\n## Getting Started\n\n### Sub-Section!\n"

	anchors := Anchors(text)
	assert.True(t, anchors.Has("#title"))
	assert.True(t, anchors.Has("#getting-started"))
	assert.True(t, anchors.Has("#sub-section"))
	assert.Equal(t, 3, anchors.Len())
}

func TestAnchorsClosingHashes(t *testing.T) {
	anchors := Anchors("## Closed Heading ##\n")
	assert.True(t, anchors.Has("#closed-heading"))
}

func TestAnchorsNotHeadings(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no space after hashes", "#NoSpace\n"},
		{"seven hashes", "####### Deep\n"},
		{"hash mid line", "see # this\n"},
		{"hashes only", "##\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, 0, Anchors(tt.text).Len())
		})
	}
}

func TestAnchorsDuplicateHeadings(t *testing.T) {
	text := "## Results\n\n## Results\n\n## Results\n"

	anchors := Anchors(text)
	assert.True(t, anchors.Has("#results"))
	assert.True(t, anchors.Has("#results-1"))
	assert.True(t, anchors.Has("#results-2"))
	assert.Equal(t, 3, anchors.Len())
}

func TestAnchorsSetext(t *testing.T) {
	text := "Main Title\n==========\n\nSection Two\n-----------\n"

	anchors := Anchors(text)
	assert.True(t, anchors.Has("#main-title"))
	assert.True(t, anchors.Has("#section-two"))
	assert.Equal(t, 2, anchors.Len())
}

func TestAnchorsBlockquoted(t *testing.T) {
	text := "> ## Quoted Heading\n\n> > Nested\n> > ------\n"

	anchors := Anchors(text)
	assert.True(t, anchors.Has("#quoted-heading"))
	assert.True(t, anchors.Has("#nested"))
}

func TestAnchorsSkipFencedBlocks(t *testing.T) {
	text := "# Real\n\n```\n# not a heading\n```\n\n~~~\n## also not\n~~~\n"

	anchors := Anchors(text)
	assert.True(t, anchors.Has("#real"))
	assert.Equal(t, 1, anchors.Len())
}

func TestAnchorsFenceInsideBlockquoteDoesNotToggle(t *testing.T) {
	// A quoted fence marker is quoted text, not a fence: headings after it
	// still count.
	text := "> ```\n# Still A Heading\n"
	assert.True(t, Anchors(text).Has("#still-a-heading"))
}

func TestAnchorsNoHeadings(t *testing.T) {
	assert.Equal(t, 0, Anchors("Just prose.\n\nMore prose.\n").Len())
	assert.Equal(t, 0, Anchors("").Len())
}

func TestAnchorsListDashIsNotUnderline(t *testing.T) {
	// "- item" is a list, not a setext underline for "Prose".
	text := "Prose\n- item\n"
	assert.Equal(t, 0, Anchors(text).Len())
}

func TestAnchorsEntityHeading(t *testing.T) {
	anchors := Anchors("## Q&amp;A\n")
	assert.True(t, anchors.Has("#qa"))
}

func TestAnchorsHTMLSupplementOptIn(t *testing.T) {
	text := "<a name=\"legacy-name\"></a>\n\n<div id=\"custom-id\">x</div>\n\n# Real\n"

	plain := Anchors(text)
	assert.True(t, plain.Has("#real"))
	assert.False(t, plain.Has("#legacy-name"))
	assert.False(t, plain.Has("#custom-id"))

	withHTML := AnchorsWithOptions(text, Options{HTMLAnchors: true})
	assert.True(t, withHTML.Has("#real"))
	assert.True(t, withHTML.Has("#legacy-name"))
	assert.True(t, withHTML.Has("#custom-id"))
}

func TestAnchorsHTMLSupplementSkipsFences(t *testing.T) {
	text := "```html\n<div id=\"fenced\">x</div>\n```\n"
	anchors := AnchorsWithOptions(text, Options{HTMLAnchors: true})
	assert.False(t, anchors.Has("#fenced"))
}
