package recovery

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrNoUsableExtraction reports that every extractor failed or scored zero.
// It is a document-level failure: no output artifact is written.
var ErrNoUsableExtraction = errors.New("no extractor produced usable text")

const defaultFormatTimeout = 60 * time.Second

// Processor runs the text-recovery pipeline for one document at a time:
//
//	Extracting -> Analyzing -> Correcting -> Structuring -> Formatting -> Done
//
// with a single conditional back-edge through the sanitization fallback,
// taken at most once per document. All per-document state is reset at the
// start of every run, so a Processor may be reused sequentially; it must not
// be shared across goroutines. Batch callers create one Processor per file.
type Processor struct {
	extractors    []TextExtractor
	formatter     Formatter
	formatTimeout time.Duration

	// Per-document state, rebuilt fresh by reset.
	errorPatterns         map[string]int
	correctionMap         map[string]string
	detectedEncoding      string
	encodingConfidence    float64
	language              string
	sanitizationAttempted bool
}

// Report describes one completed run.
type Report struct {
	Text       string
	Digest     string
	Method     SourceMethod
	Score      float64
	Language   string
	Encoding   string
	Confidence float64
	OutputPath string
}

type Option func(*Processor)

// WithFormatTimeout bounds each formatter call. On timeout the sanitized but
// unformatted text becomes the final output.
func WithFormatTimeout(d time.Duration) Option {
	return func(p *Processor) { p.formatTimeout = d }
}

func NewProcessor(extractors []TextExtractor, formatter Formatter, opts ...Option) *Processor {
	p := &Processor{
		extractors:    extractors,
		formatter:     formatter,
		formatTimeout: defaultFormatTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.reset()
	return p
}

func (p *Processor) reset() {
	p.errorPatterns = make(map[string]int)
	p.correctionMap = make(map[string]string)
	p.detectedEncoding = ""
	p.encodingConfidence = 0
	p.language = LangUnknown
	p.sanitizationAttempted = false
}

// Process runs the full pipeline over raw PDF bytes and returns the final
// text with its content digest. It never writes files; see ProcessFile.
func (p *Processor) Process(ctx context.Context, data []byte) (*Report, error) {
	p.reset()

	best, err := p.extract(ctx, data)
	if err != nil {
		return nil, err
	}
	log.Printf("canonical extraction: method=%s score=%.3f chars=%d", best.Method, best.Score, len(best.Text))

	p.language = DetectLanguage(best.Text)
	log.Printf("detected language: %s", p.language)

	p.analyzeErrors(best.Text)
	if top := p.topPatterns(5); len(top) > 0 {
		log.Printf("top error patterns: %q", top)
	}

	corrected := p.autoCorrect(best.Text)
	structured := enhanceStructure(corrected)
	final := p.format(ctx, structured, best.Text)

	sum := md5.Sum([]byte(final))
	digest := hex.EncodeToString(sum[:])
	log.Printf("content digest (md5): %s", digest)

	return &Report{
		Text:       final,
		Digest:     digest,
		Method:     best.Method,
		Score:      best.Score,
		Language:   p.language,
		Encoding:   p.detectedEncoding,
		Confidence: p.encodingConfidence,
	}, nil
}

// ProcessFile reads a PDF from inputPath, runs the pipeline and persists the
// final text to <outputDir>/<basename>.md.
func (p *Processor) ProcessFile(ctx context.Context, inputPath, outputDir string) (*Report, error) {
	log.Printf("processing %s", filepath.Base(inputPath))

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	report, err := p.Process(ctx, data)
	if err != nil {
		return nil, err
	}

	outputPath := filepath.Join(outputDir, filepath.Base(inputPath)+".md")
	if err := os.WriteFile(outputPath, []byte(report.Text), 0o644); err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}
	report.OutputPath = outputPath
	log.Printf("artifact written: %s", outputPath)
	return report, nil
}

// extract runs every extractor concurrently (they are read-only and
// independent) and selects the strictly highest-scoring candidate. Ties keep
// the earlier extractor in the configured list. Individual extractor failures
// are logged and scored zero, never fatal.
func (p *Processor) extract(ctx context.Context, data []byte) (ExtractionResult, error) {
	results := make([]ExtractionResult, len(p.extractors))

	g, gctx := errgroup.WithContext(ctx)
	for i, ex := range p.extractors {
		g.Go(func() error {
			text, err := ex.Extract(gctx, data)
			if err != nil {
				log.Printf("extractor %s failed: %v", ex.Method(), err)
				return nil
			}
			results[i] = ExtractionResult{Text: text, Method: ex.Method(), Score: ScoreQuality(text)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return ExtractionResult{}, err
	}

	var best ExtractionResult
	for _, r := range results {
		if r.Score > best.Score {
			best = r
		}
	}
	if best.Text == "" || best.Score == 0 {
		return ExtractionResult{}, ErrNoUsableExtraction
	}
	return best, nil
}

// format hands the structured text to the external formatter, with the
// bounded one-shot fallback: if the formatted result still carries
// replacement-character markers and no fallback has run yet, the ORIGINAL
// canonical extraction is re-sanitized through the fallback path and
// formatted once more. Whatever comes out of that second pass is accepted,
// even if imperfect.
func (p *Processor) format(ctx context.Context, structured, rawExtraction string) string {
	final := p.runFormatter(ctx, structured)
	if strings.Contains(final, "�") && !p.sanitizationAttempted {
		log.Println("formatted text still carries invalid markers, taking sanitization fallback")
		p.sanitizationAttempted = true
		final = p.runFormatter(ctx, fallbackSanitization(rawExtraction))
	}
	return final
}

// runFormatter sanitizes and formats one candidate. A formatter failure of
// any kind degrades to the fallback-sanitized input rather than an error:
// best-effort output beats a hard failure.
func (p *Processor) runFormatter(ctx context.Context, text string) string {
	sanitized := sanitizeText(text)

	fctx, cancel := context.WithTimeout(ctx, p.formatTimeout)
	defer cancel()

	formatted, err := p.formatter.Format(fctx, sanitized)
	if err != nil {
		log.Printf("formatter failed: %v", err)
		return fallbackSanitization(text)
	}
	return formatted
}
