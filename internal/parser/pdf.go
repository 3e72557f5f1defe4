package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/dgallion1/docqa/internal/document"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFExtractor handles PDF files. Page texts are concatenated in order
// with no separator; pages that fail to extract contribute nothing.
type PDFExtractor struct {
	FallbackPdftotext bool
}

func (p *PDFExtractor) Extract(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	reader, err := openPDF(data)
	if err == nil {
		return joinPages(pdfPages{r: reader}), nil
	}
	if p.FallbackPdftotext {
		text, ferr := extractPdftotext(data)
		if ferr == nil {
			return text, nil
		}
		err = fmt.Errorf("%w; fallback: %v", err, ferr)
	}
	return "", &document.ParseError{Kind: document.KindPDF, Err: err}
}

// pageSource abstracts page-by-page text access.
type pageSource interface {
	NumPage() int
	PageText(i int) (string, error) // 1-indexed
}

func joinPages(src pageSource) string {
	var buf strings.Builder
	for i := 1; i <= src.NumPage(); i++ {
		text, err := src.PageText(i)
		if err != nil {
			continue
		}
		buf.WriteString(text)
	}
	return buf.String()
}

type pdfPages struct {
	r *pdflib.Reader
}

func (p pdfPages) NumPage() int {
	return p.r.NumPage()
}

func (p pdfPages) PageText(i int) (text string, err error) {
	// ledongthuc/pdf panics on some malformed content streams.
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("page %d: %v", i, rec)
		}
	}()
	page := p.r.Page(i)
	if page.V.IsNull() {
		return "", nil
	}
	text, err = page.GetPlainText(nil)
	if err != nil {
		return "", err
	}
	return trimLeadingBreak(text), nil
}

// trimLeadingBreak drops the line break ledongthuc/pdf emits for the first
// text positioning operator on a page, so pages join with no separator.
func trimLeadingBreak(text string) string {
	if rest, ok := strings.CutPrefix(text, "\r\n"); ok {
		return rest
	}
	return strings.TrimPrefix(text, "\n")
}

func openPDF(data []byte) (r *pdflib.Reader, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r, err = nil, fmt.Errorf("open pdf: %v", rec)
		}
	}()
	return pdflib.NewReader(bytes.NewReader(data), int64(len(data)))
}

func extractPdftotext(data []byte) (string, error) {
	tmp, err := os.CreateTemp("", "docqa-pdf-*.pdf")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	cmd := exec.Command("pdftotext", tmpPath, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	// pdftotext separates pages with form feeds.
	return strings.Join(strings.Split(string(out), "\f"), ""), nil
}
