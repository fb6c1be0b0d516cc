package check

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		dest     string
		class    Class
		path     string
		fragment string
	}{
		{"relative file", "docs/guide.md", ClassFile, "docs/guide.md", ""},
		{"relative file with anchor", "docs/guide.md#setup", ClassFileAnchor, "docs/guide.md", "setup"},
		{"same doc anchor", "#intro", ClassSameDoc, "", "intro"},
		{"root absolute", "/docs/guide.md", ClassFile, "/docs/guide.md", ""},
		{"parent traversal still a file", "../other.md", ClassFile, "../other.md", ""},
		{"percent decoded path", "my%20file.md", ClassFile, "my file.md", ""},
		{"percent decoded fragment", "guide.md#section%20one", ClassFileAnchor, "guide.md", "section one"},
		{"https external", "https://forge.example.org/repo", ClassExternal, "", ""},
		{"protocol relative external", "//cdn.invalid/app.js", ClassExternal, "", ""},
		{"drive letter parses as scheme", "C:/temp/file.md", ClassExternal, "", ""},
		{"bare hash", "#", ClassIgnored, "", ""},
		{"empty", "", ClassIgnored, "", ""},
		{"whitespace only", "   ", ClassIgnored, "", ""},
		{"query only", "?tab=readme", ClassIgnored, "", ""},
		{"mailto", "mailto:team@corp.invalid", ClassIgnored, "", ""},
		{"mailto case insensitive", "MAILTO:team@corp.invalid", ClassIgnored, "", ""},
		{"tel", "tel:+15551234567", ClassIgnored, "", ""},
		{"javascript", "javascript:void(0)", ClassIgnored, "", ""},
		{"template open", "{{site.baseurl}}/page", ClassIgnored, "", ""},
		{"template close", "docs/}}oops", ClassIgnored, "", ""},
		{"stray angle bracket", "docs/<branch>/guide.md", ClassIgnored, "", ""},
		{"example domain", "http://example.com/anything", ClassIgnored, "", ""},
		{"placeholder path", "path/to/file.md", ClassIgnored, "", ""},
		{"nested placeholder path", "docs/path/to/file.md", ClassIgnored, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Classify(tt.dest)
			assert.Equal(t, tt.class, d.Class, "class for %q", tt.dest)
			assert.Equal(t, tt.path, d.Path, "path for %q", tt.dest)
			assert.Equal(t, tt.fragment, d.Fragment, "fragment for %q", tt.dest)
		})
	}
}

func TestClassifyAngleWrappedDestination(t *testing.T) {
	d := Classify("<docs/my file.md>")
	assert.Equal(t, ClassFile, d.Class)
	assert.Equal(t, "docs/my file.md", d.Path)
	assert.Equal(t, "docs/my file.md", d.Raw)
}

func TestClassifyInvalidEscapeStillChecked(t *testing.T) {
	// A stray percent must not hide the link from validation.
	d := Classify("docs/100%zz.md#frag")
	assert.Equal(t, ClassFileAnchor, d.Class)
	assert.Equal(t, "docs/100%zz.md", d.Path)
	assert.Equal(t, "frag", d.Fragment)
}

func TestClassifyFragmentWhitespaceTrimmed(t *testing.T) {
	d := Classify("guide.md#intro%20")
	assert.Equal(t, "intro", d.Fragment)
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "ignored", ClassIgnored.String())
	assert.Equal(t, "external", ClassExternal.String())
	assert.Equal(t, "same-doc", ClassSameDoc.String())
	assert.Equal(t, "file", ClassFile.String())
	assert.Equal(t, "file-anchor", ClassFileAnchor.String())
}
