package recovery

import "context"

// SourceMethod identifies which extraction strategy produced a candidate text.
type SourceMethod string

const (
	MethodMuPDF     SourceMethod = "mupdf"
	MethodTextLayer SourceMethod = "textlayer"
)

// ExtractionResult is one extractor's candidate output plus its quality score.
type ExtractionResult struct {
	Text   string
	Method SourceMethod
	Score  float64
}

// TextExtractor is one strategy for pulling the text layer out of a PDF.
//
// Extractors are independent: they never share mutable state, and a failing
// extractor returns an error (or empty text) without affecting the others.
// The processor runs every configured extractor and keeps the best-scoring
// result, breaking ties by list order.
type TextExtractor interface {
	Method() SourceMethod
	Extract(ctx context.Context, data []byte) (string, error)
}

// DefaultExtractors returns the standard extractor chain in priority order.
// MuPDF goes first: its layout-sorted output wins ties.
func DefaultExtractors() []TextExtractor {
	return []TextExtractor{
		&MuPDFExtractor{},
		&TextLayerExtractor{},
	}
}
