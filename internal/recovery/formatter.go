package recovery

import (
	"context"
	"fmt"
	"os"
	"strings"

	"code.sajari.com/docconv"
)

// Formatter is the external collaborator that turns sanitized text into the
// final formatted markdown. Implementations may fail with encoding or generic
// errors; the processor routes both to the sanitization fallback instead of
// aborting the run.
type Formatter interface {
	Format(ctx context.Context, text string) (string, error)
}

var _ Formatter = (*DocconvFormatter)(nil)

// DocconvFormatter stages the text as a temporary markdown-suffixed file and
// runs it through the docconv converter, the same hand-off contract the
// upstream document toolchain expects.
type DocconvFormatter struct{}

func NewDocconvFormatter() *DocconvFormatter { return &DocconvFormatter{} }

func (f *DocconvFormatter) Format(ctx context.Context, text string) (string, error) {
	tmp, err := os.CreateTemp("", "restauro-*.md")
	if err != nil {
		return "", fmt.Errorf("stage temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	// The conversion has no context hooks, so run it on the side and bail
	// out if the caller's deadline expires first.
	type result struct {
		body string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		res, err := docconv.ConvertPath(tmpPath)
		if err != nil {
			done <- result{err: fmt.Errorf("docconv: %w", err)}
			return
		}
		done <- result{body: strings.TrimSpace(res.Body)}
	}()

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("formatter: %w", ctx.Err())
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		if r.body == "" {
			return "", fmt.Errorf("docconv: empty conversion result")
		}
		return r.body, nil
	}
}
