package parser

import (
	"bytes"
	"io"

	"github.com/dgallion1/docqa/internal/document"
)

// Extractor converts raw document bytes into a single flat string.
type Extractor interface {
	Extract(r io.Reader) (string, error)
}

// Options tunes extractor behavior.
type Options struct {
	FallbackPdftotext bool
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
}

// ForKind returns the extractor for a document kind.
func ForKind(kind document.Kind, opts Options) (Extractor, error) {
	switch kind {
	case document.KindPDF:
		return &PDFExtractor{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case document.KindDOCX:
		return &DOCXExtractor{}, nil
	default:
		return nil, &document.UnsupportedFormatError{Ext: "." + string(kind)}
	}
}

// Extract pulls the plain text out of a document.
func Extract(doc document.Document, opts Options) (string, error) {
	ex, err := ForKind(doc.Kind, opts)
	if err != nil {
		return "", err
	}
	return ex.Extract(bytes.NewReader(doc.Data))
}
