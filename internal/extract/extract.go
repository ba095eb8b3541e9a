// Package extract pulls plain text out of uploaded documents. Format-specific
// extraction is routed by file extension; the pipeline only sees the
// Extractor interface.
package extract

import (
	"context"
	"path/filepath"
	"strings"
)

// Extractor extracts text content from a document on local disk.
type Extractor interface {
	ExtractText(ctx context.Context, path string) (string, error)
}

// maxDocumentBytes caps how much of a document is kept. Anything past this
// would not fit a prompt anyway.
const maxDocumentBytes = 1 << 20

// Router dispatches to a format-specific extractor by file extension.
type Router struct {
	pdf   Extractor
	plain Extractor
	xlsx  Extractor
}

// NewRouter creates the default extractor set. pdfToTextPath overrides the
// pdftotext binary location; empty uses PATH lookup.
func NewRouter(pdfToTextPath string) *Router {
	return &Router{
		pdf:   NewPdfToText(pdfToTextPath),
		plain: &PlainText{},
		xlsx:  &Spreadsheet{},
	}
}

// ExtractText extracts text from the file, choosing the extractor by
// extension. Unknown extensions are treated as plain text.
func (r *Router) ExtractText(ctx context.Context, path string) (string, error) {
	var text string
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		text, err = r.pdf.ExtractText(ctx, path)
	case ".xlsx":
		text, err = r.xlsx.ExtractText(ctx, path)
	default:
		text, err = r.plain.ExtractText(ctx, path)
	}
	if err != nil {
		return "", err
	}
	if len(text) > maxDocumentBytes {
		text = text[:maxDocumentBytes]
	}
	return text, nil
}
