package check

import (
	"net/url"
	"strings"
)

// Class is the category a link destination falls into after normalization.
// Every destination lands in exactly one class; there is no fallthrough
// behavior to guess about.
type Class int

const (
	// ClassIgnored covers placeholders and schemes outside this tool's
	// remit: "#", mailto/tel/javascript, templating residue, documentation
	// placeholders like path/to/ and example.com.
	ClassIgnored Class = iota
	// ClassExternal is any destination with a URL scheme or host.
	ClassExternal
	// ClassSameDoc is a bare fragment pointing into the source document.
	ClassSameDoc
	// ClassFile is a relative or root-absolute path without a fragment.
	ClassFile
	// ClassFileAnchor is a path plus a fragment into the target document.
	ClassFileAnchor
)

// String returns a short identifier for logs and the links inventory.
func (c Class) String() string {
	switch c {
	case ClassIgnored:
		return "ignored"
	case ClassExternal:
		return "external"
	case ClassSameDoc:
		return "same-doc"
	case ClassFile:
		return "file"
	case ClassFileAnchor:
		return "file-anchor"
	default:
		return "unknown"
	}
}

// Destination is a link destination after normalization and classification.
type Destination struct {
	Class    Class
	Raw      string // normalized destination text as written
	Path     string // percent-decoded, trimmed path component
	Fragment string // percent-decoded, trimmed fragment without the "#"
}

// Classify normalizes a raw destination and sorts it into its class.
// Path and Fragment are populated for the same-doc and file classes only.
func Classify(raw string) Destination {
	norm := normalizeDestination(raw)
	d := Destination{Raw: norm}

	if norm == "" || ignoredDestination(norm) {
		d.Class = ClassIgnored
		return d
	}

	pathPart, fragment, external := splitDestination(norm)
	if external {
		d.Class = ClassExternal
		return d
	}
	d.Path, d.Fragment = pathPart, fragment

	switch {
	case pathPart == "" && fragment == "":
		d.Class = ClassIgnored
	case pathPart == "":
		d.Class = ClassSameDoc
	case fragment == "":
		d.Class = ClassFile
	default:
		d.Class = ClassFileAnchor
	}
	return d
}

// normalizeDestination trims whitespace and unwraps a fully angle-bracketed
// destination.
func normalizeDestination(dest string) string {
	dest = strings.TrimSpace(dest)
	if strings.HasPrefix(dest, "<") && strings.HasSuffix(dest, ">") && len(dest) >= 2 {
		dest = strings.TrimSpace(dest[1 : len(dest)-1])
	}
	return dest
}

// splitDestination separates path and fragment, percent-decoded and
// trimmed. external is true when a scheme or host is present.
func splitDestination(dest string) (path, fragment string, external bool) {
	u, err := url.Parse(dest)
	if err != nil {
		// Stray percent signs and similar noise: keep the literal text and
		// split the fragment by hand so the link still gets checked.
		p, f, _ := strings.Cut(dest, "#")
		return strings.TrimSpace(p), strings.TrimSpace(f), false
	}
	if u.Scheme != "" || u.Host != "" {
		return "", "", true
	}
	return strings.TrimSpace(u.Path), strings.TrimSpace(u.Fragment), false
}

// ignoredDestination applies the built-in skip list: anchors-only
// placeholders, non-navigational schemes, templating syntax, leftover
// angle brackets and documentation placeholders.
func ignoredDestination(dest string) bool {
	if dest == "#" {
		return true
	}
	lowered := strings.ToLower(dest)
	for _, scheme := range []string{"mailto:", "tel:", "javascript:"} {
		if strings.HasPrefix(lowered, scheme) {
			return true
		}
	}
	if strings.Contains(dest, "{{") || strings.Contains(dest, "}}") {
		return true
	}
	if strings.Contains(dest, "<") || strings.Contains(dest, ">") {
		return true
	}
	if strings.Contains(lowered, "example.com") {
		return true
	}
	if strings.Contains(lowered, "/path/to/") || strings.HasPrefix(lowered, "path/to/") {
		return true
	}
	return false
}
