package recovery

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/ledongthuc/pdf"
)

var _ TextExtractor = (*TextLayerExtractor)(nil)

// TextLayerExtractor is the pure-Go alternate strategy. It walks the page
// tree directly and concatenates each page's plain text. It is weaker on
// reading order than MuPDF but survives files MuPDF rejects.
type TextLayerExtractor struct{}

func (e *TextLayerExtractor) Method() SourceMethod { return MethodTextLayer }

func (e *TextLayerExtractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// The reader panics on some malformed cross-reference tables; contain
	// that to this extractor.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("pdf reader panic: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf open: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("textlayer: page %d failed: %v", i, err)
			continue
		}
		b.WriteString(pageText)
		b.WriteString("\n")
	}
	return b.String(), nil
}
