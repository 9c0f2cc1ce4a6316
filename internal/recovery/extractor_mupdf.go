package recovery

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gen2brain/go-fitz"
)

var _ TextExtractor = (*MuPDFExtractor)(nil)

// MuPDFExtractor decodes the embedded text layer through MuPDF, which sorts
// spans into reading order and copes well with layout-heavy documents.
type MuPDFExtractor struct{}

func (e *MuPDFExtractor) Method() SourceMethod { return MethodMuPDF }

func (e *MuPDFExtractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("mupdf open: %w", err)
	}
	defer doc.Close()

	var b strings.Builder
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		pageText, err := doc.Text(i)
		if err != nil {
			// A single malformed page must not sink the whole extraction.
			log.Printf("mupdf: page %d failed: %v", i+1, err)
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}
