// Package content loads document text for scanning and validation. Reading
// goes through a small interface so the engine can run against a checkout on
// disk, an in-memory corpus in tests, or editor buffers that are not saved
// yet.
package content

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader resolves a root-relative forward-slash path to document text.
type Reader interface {
	ReadDocument(rel string) (string, error)
}

// FSReader reads documents from a root directory. Input bytes are decoded
// as UTF-8, with UTF-16 (either endianness) accepted when a BOM announces
// it; the BOM itself never reaches the scanner. Invalid byte sequences are
// replaced rather than rejected, so one bad byte cannot mask every other
// problem in a file.
type FSReader struct {
	root string
}

// NewFSReader returns a reader rooted at the given directory.
func NewFSReader(root string) *FSReader { return &FSReader{root: root} }

// Root returns the directory documents are read from.
func (r *FSReader) Root() string { return r.root }

// ReadDocument implements Reader.
func (r *FSReader) ReadDocument(rel string) (string, error) {
	f, err := os.Open(filepath.Join(r.root, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	defer f.Close() //nolint:errcheck // read-only handle

	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	b, err := io.ReadAll(transform.NewReader(f, dec))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", rel, err)
	}
	return string(b), nil
}

// MapReader serves documents from memory, keyed by root-relative path.
type MapReader map[string]string

// ReadDocument implements Reader.
func (m MapReader) ReadDocument(rel string) (string, error) {
	text, ok := m[rel]
	if !ok {
		return "", fmt.Errorf("%s: %w", rel, fs.ErrNotExist)
	}
	return text, nil
}
