package recovery

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	method SourceMethod
	text   string
	err    error
}

func (s *stubExtractor) Method() SourceMethod { return s.method }

func (s *stubExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	return s.text, s.err
}

type stubFormatter struct {
	out   string
	err   error
	echo  bool
	calls int
}

func (f *stubFormatter) Format(_ context.Context, text string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if f.echo {
		return text, nil
	}
	return f.out, nil
}

// Long enough to clear the scoring floor, with a healthy space ratio.
var goodText = strings.Repeat("Regulations require that all students attend the weekly seminar on time. ", 3)

func TestProcessDeterministic(t *testing.T) {
	run := func() *Report {
		p := NewProcessor(
			[]TextExtractor{&stubExtractor{method: MethodMuPDF, text: goodText}},
			&stubFormatter{echo: true},
		)
		report, err := p.Process(context.Background(), []byte("pdf"))
		require.NoError(t, err)
		return report
	}

	first := run()
	second := run()

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, first.Digest, second.Digest)
	assert.Len(t, first.Digest, 32)
	assert.Equal(t, LangEnglish, first.Language)
}

func TestProcessPrefersHigherScoringExtractor(t *testing.T) {
	corrupted := goodText + strings.Repeat("�", 50)
	p := NewProcessor(
		[]TextExtractor{
			&stubExtractor{method: MethodMuPDF, text: corrupted},
			&stubExtractor{method: MethodTextLayer, text: goodText},
		},
		&stubFormatter{echo: true},
	)

	report, err := p.Process(context.Background(), []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, MethodTextLayer, report.Method)
}

func TestProcessTieKeepsEarlierExtractor(t *testing.T) {
	p := NewProcessor(
		[]TextExtractor{
			&stubExtractor{method: MethodMuPDF, text: goodText},
			&stubExtractor{method: MethodTextLayer, text: goodText},
		},
		&stubFormatter{echo: true},
	)

	report, err := p.Process(context.Background(), []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, MethodMuPDF, report.Method)
}

func TestProcessNoUsableExtraction(t *testing.T) {
	p := NewProcessor(
		[]TextExtractor{
			&stubExtractor{method: MethodMuPDF, err: errors.New("encrypted")},
			&stubExtractor{method: MethodTextLayer, text: "too short"},
		},
		&stubFormatter{echo: true},
	)

	outputDir := t.TempDir()
	inputPath := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(inputPath, []byte("pdf"), 0o644))

	_, err := p.ProcessFile(context.Background(), inputPath, outputDir)
	assert.ErrorIs(t, err, ErrNoUsableExtraction)

	// A document-level failure must not leave a partial artifact behind.
	entries, readErr := os.ReadDir(outputDir)
	require.NoError(t, readErr)
	assert.Empty(t, entries)
}

func TestProcessSanitizationFallbackRunsOnce(t *testing.T) {
	// The formatter keeps emitting replacement characters; the fallback may
	// run once, after which the imperfect output is accepted as-is.
	formatter := &stubFormatter{out: "still � broken"}
	p := NewProcessor(
		[]TextExtractor{&stubExtractor{method: MethodMuPDF, text: goodText}},
		formatter,
	)

	report, err := p.Process(context.Background(), []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, 2, formatter.calls)
	assert.Equal(t, "still � broken", report.Text)
}

func TestProcessFormatterFailureDegrades(t *testing.T) {
	// A failing formatter degrades to sanitized text instead of erroring, and
	// the clean result does not trigger a second formatting attempt.
	formatter := &stubFormatter{err: errors.New("converter unavailable")}
	p := NewProcessor(
		[]TextExtractor{&stubExtractor{method: MethodMuPDF, text: goodText}},
		formatter,
	)

	report, err := p.Process(context.Background(), []byte("pdf"))
	require.NoError(t, err)
	assert.Equal(t, 1, formatter.calls)
	assert.Contains(t, report.Text, "Regulations require")
	assert.NotContains(t, report.Text, "�")
}

func TestProcessFileWritesArtifact(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	inputPath := filepath.Join(inputDir, "doc.pdf")
	require.NoError(t, os.WriteFile(inputPath, []byte("pdf"), 0o644))

	p := NewProcessor(
		[]TextExtractor{&stubExtractor{method: MethodMuPDF, text: goodText}},
		&stubFormatter{echo: true},
	)

	report, err := p.ProcessFile(context.Background(), inputPath, outputDir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputDir, "doc.pdf.md"), report.OutputPath)

	written, err := os.ReadFile(report.OutputPath)
	require.NoError(t, err)
	assert.Equal(t, report.Text, string(written))
}

func TestProcessorReusableAcrossDocuments(t *testing.T) {
	formatter := &stubFormatter{out: "still � broken"}
	p := NewProcessor(
		[]TextExtractor{&stubExtractor{method: MethodMuPDF, text: goodText}},
		formatter,
	)

	_, err := p.Process(context.Background(), []byte("first"))
	require.NoError(t, err)
	_, err = p.Process(context.Background(), []byte("second"))
	require.NoError(t, err)

	// The one-shot fallback flag resets between documents: two per run.
	assert.Equal(t, 4, formatter.calls)
}
