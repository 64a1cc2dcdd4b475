// Package source fetches raw transcript documents.
//
// The student information service is reached through a Source. Only the
// file-backed Source ships here; network transports live outside this module.
package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ginjaninja78/transcript-converter/internal/document"
)

// ErrNoDocument is returned when a source holds no transcript data.
var ErrNoDocument = errors.New("source: no document")

// Source yields one raw transcript document.
type Source interface {
	Fetch(ctx context.Context) (*document.Document, error)
}

// File reads a JSON transcript document from disk.
type File struct {
	Path string
}

// Fetch reads and decodes the file. It checks ctx before opening the file.
func (f File) Fetch(ctx context.Context) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Path, err)
	}
	defer fh.Close()

	doc, err := document.Decode(fh)
	if errors.Is(err, document.ErrEmptyDocument) {
		return nil, fmt.Errorf("%s: %w", f.Path, ErrNoDocument)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f.Path, err)
	}
	return doc, nil
}

// Static is a Source that returns a document already in memory.
type Static struct {
	Document *document.Document
}

// Fetch returns the held document.
func (s Static) Fetch(ctx context.Context) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Document == nil {
		return nil, ErrNoDocument
	}
	return s.Document, nil
}
