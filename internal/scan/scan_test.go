package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinksBasic(t *testing.T) {
	text := "Intro [guide](docs/guide.md) here.\n\nSee [api](api.md#usage) too.\n"

	links := Links(text)
	require.Len(t, links, 2)
	assert.Equal(t, Link{Destination: "docs/guide.md", Line: 1}, links[0])
	assert.Equal(t, Link{Destination: "api.md#usage", Line: 3}, links[1])
}

func TestLinksImagesIncluded(t *testing.T) {
	links := Links("![logo](assets/logo.png)\n")
	require.Len(t, links, 1)
	assert.Equal(t, "assets/logo.png", links[0].Destination)
}

func TestLinksMultiplePerLineInOrder(t *testing.T) {
	links := Links("[a](one.md) and [b](two.md) and [c](three.md)\n")
	require.Len(t, links, 3)
	assert.Equal(t, "one.md", links[0].Destination)
	assert.Equal(t, "two.md", links[1].Destination)
	assert.Equal(t, "three.md", links[2].Destination)
	assert.Equal(t, 1, links[2].Line)
}

func TestLinksSkipFencedBlocks(t *testing.T) {
	text := "[before](a.md)\n" +
		"```bash\n" +
		"echo [inside](b.md)\n" +
		"```\n" +
		"[after](c.md)\n"

	links := Links(text)
	require.Len(t, links, 2)
	assert.Equal(t, "a.md", links[0].Destination)
	assert.Equal(t, "c.md", links[1].Destination)
	assert.Equal(t, 5, links[1].Line)
}

func TestLinksFenceVariants(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "tilde fence",
			text: "~~~\n[x](a.md)\n~~~\n[y](b.md)\n",
			want: []string{"b.md"},
		},
		{
			name: "indented fence line",
			text: "   ```\n[x](a.md)\n   ```\n[y](b.md)\n",
			want: []string{"b.md"},
		},
		{
			name: "fence line itself yields nothing",
			text: "``` [x](a.md)\n",
			want: nil,
		},
		{
			name: "unclosed fence swallows rest",
			text: "```\n[x](a.md)\n",
			want: nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got []string
			for _, l := range Links(tt.text) {
				got = append(got, l.Destination)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLinksInlineCodeSpansIgnored(t *testing.T) {
	links := Links("Use `[not a link](skip.md)` but [real](keep.md).\n")
	require.Len(t, links, 1)
	assert.Equal(t, "keep.md", links[0].Destination)
}

func TestLinksDestinationNormalization(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"title stripped", `[a](guide.md "The Guide")`, "guide.md"},
		{"title with parens truncates at paren", `[a](guide.md "Guide (v2)")`, "guide.md"},
		{"angle brackets unwrap", `[a](<my file.md>)`, "my file.md"},
		{"angle brackets with title", `[a](<my file.md> "T")`, "my file.md"},
		{"surrounding space", "[a]( guide.md )", "guide.md"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			links := Links(tt.text + "\n")
			require.Len(t, links, 1)
			assert.Equal(t, tt.want, links[0].Destination)
		})
	}
}

func TestLinksMalformedNotMatched(t *testing.T) {
	for _, text := range []string{
		"[unterminated](guide.md\n",
		"[no destination]\n",
		"plain text\n",
		"[]()\n",
	} {
		assert.Empty(t, Links(text), "input: %q", text)
	}
}

func TestLinksCRLF(t *testing.T) {
	links := Links("[a](x.md)\r\n\r\n[b](y.md)\r\n")
	require.Len(t, links, 2)
	assert.Equal(t, 1, links[0].Line)
	assert.Equal(t, 3, links[1].Line)
}
