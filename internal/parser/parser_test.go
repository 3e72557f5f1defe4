package parser

import (
	"errors"
	"testing"

	"github.com/dgallion1/docqa/internal/document"
)

func TestForKind(t *testing.T) {
	ex, err := ForKind(document.KindPDF, Options{FallbackPdftotext: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	pdf, ok := ex.(*PDFExtractor)
	if !ok || !pdf.FallbackPdftotext {
		t.Errorf("expected PDFExtractor with fallback, got %#v", ex)
	}

	ex, err = ForKind(document.KindDOCX, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := ex.(*DOCXExtractor); !ok {
		t.Errorf("expected DOCXExtractor, got %#v", ex)
	}
}

func TestForKind_Unknown(t *testing.T) {
	_, err := ForKind(document.Kind("odt"), Options{})
	var ufe *document.UnsupportedFormatError
	if !errors.As(err, &ufe) {
		t.Fatalf("expected UnsupportedFormatError, got %v", err)
	}
}

func TestExtract_Document(t *testing.T) {
	doc := document.Document{Filename: "x.docx", Kind: document.KindDOCX, Data: buildDOCX(t, "one", "two")}
	text, err := Extract(doc, Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if text != "one\ntwo" {
		t.Errorf("expected %q, got %q", "one\ntwo", text)
	}
}
