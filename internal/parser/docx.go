package parser

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/dgallion1/docqa/internal/document"
	"github.com/fumiama/go-docx"
)

// DOCXExtractor handles .docx files. Body paragraphs are joined with
// newlines; empty paragraphs are kept.
type DOCXExtractor struct{}

func (p *DOCXExtractor) Extract(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read docx: %w", err)
	}

	doc, err := parseDOCX(data)
	if err != nil {
		return "", &document.ParseError{Kind: document.KindDOCX, Err: err}
	}

	var paragraphs []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		paragraphs = append(paragraphs, docxParagraphText(para))
	}
	return strings.Join(paragraphs, "\n"), nil
}

func parseDOCX(data []byte) (doc *docx.Docx, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			doc, err = nil, fmt.Errorf("parse docx: %v", rec)
		}
	}()
	return docx.Parse(bytes.NewReader(data), int64(len(data)))
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		switch c := child.(type) {
		case *docx.Run:
			writeRunText(&buf, c)
		case *docx.Hyperlink:
			writeRunText(&buf, &c.Run)
		}
	}
	return buf.String()
}

func writeRunText(buf *strings.Builder, run *docx.Run) {
	for _, rc := range run.Children {
		switch t := rc.(type) {
		case *docx.Text:
			buf.WriteString(t.Text)
		case *docx.Tab:
			buf.WriteByte('\t')
		case *docx.BarterRabbet:
			buf.WriteByte('\n')
		}
	}
}
