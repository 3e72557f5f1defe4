package document

import (
	"crypto/sha256"
	"fmt"
	"path/filepath"
	"strings"
)

// Kind is a supported document container format.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindDOCX Kind = "docx"
)

// Document is an uploaded file held for one upload-and-answer cycle.
type Document struct {
	Filename string
	Kind     Kind
	Data     []byte
}

// Chunk is a word-bounded slice of a document's extracted text.
type Chunk struct {
	Index int    // 0-based position within the document
	Text  string // Words joined by single spaces
	Words int
}

// KindForFile maps a filename extension to a Kind.
func KindForFile(filename string) (Kind, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return KindPDF, nil
	case ".docx":
		return KindDOCX, nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// New builds a Document, detecting its kind from the filename.
func New(filename string, data []byte) (Document, error) {
	kind, err := KindForFile(filename)
	if err != nil {
		return Document{}, err
	}
	return Document{Filename: filename, Kind: kind, Data: data}, nil
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
