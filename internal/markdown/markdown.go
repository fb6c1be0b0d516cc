// Package markdown provides a CommonMark-backed link inventory for
// informational reporting. The validator does not use it: validation scans
// raw text with internal/scan so its results stay byte-for-byte predictable.
package markdown

import (
	"sort"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/doclink/internal/scan"
	"git.home.luguber.info/inful/doclink/internal/util/sets"
)

// LinkKind labels how a link was written in the source document.
type LinkKind string

const (
	LinkKindInline              LinkKind = "inline"
	LinkKindImage               LinkKind = "image"
	LinkKindAuto                LinkKind = "auto"
	LinkKindReferenceDefinition LinkKind = "reference_definition"

	// LinkKindScanned marks destinations only the line scanner found, such
	// as unbracketed destinations containing spaces, which CommonMark
	// refuses to parse as links.
	LinkKindScanned LinkKind = "scanned"
)

// Link is one link-like construct found in a document body.
type Link struct {
	Kind        LinkKind
	Destination string
}

// ExtractLinks collects inline links, images, autolinks, and reference
// definitions from a Markdown body.
//
// Goldmark resolves reference-style usages to Link nodes, so both the usage
// and its definition appear in the result. Destinations the CommonMark
// parser cannot represent are supplemented from the same line scanner the
// checker uses, so the inventory covers every destination validation will
// consider.
func ExtractLinks(body []byte) []Link {
	md := goldmark.New()
	ctx := parser.NewContext()
	root := md.Parser().Parse(text.NewReader(body), parser.WithContext(ctx))

	links := make([]Link, 0)
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(body))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination)})
		}
		return gmast.WalkContinue, nil
	})

	// Reference definitions live in the parse context, not the AST.
	refs := ctx.References()
	sort.Slice(refs, func(i, j int) bool {
		return string(refs[i].Label()) < string(refs[j].Label())
	})
	for _, ref := range refs {
		links = append(links, Link{Kind: LinkKindReferenceDefinition, Destination: string(ref.Destination())})
	}

	seen := sets.New[string]()
	for _, l := range links {
		seen.Add(l.Destination)
	}
	for _, sl := range scan.Links(string(body)) {
		if seen.Has(sl.Destination) {
			continue
		}
		seen.Add(sl.Destination)
		links = append(links, Link{Kind: LinkKindScanned, Destination: sl.Destination})
	}

	return links
}
