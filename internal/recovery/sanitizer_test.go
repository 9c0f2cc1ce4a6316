package recovery

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "control characters stripped",
			in:   "abc\x01\x02def",
			want: "abcdef",
		},
		{
			name: "invisible artifacts removed",
			in:   "a�b­c​d",
			want: "abcd",
		},
		{
			name: "whitespace collapsed",
			in:   "spaced   out     text",
			want: "spaced out text",
		},
		{
			name: "invalid utf8 dropped",
			in:   "caf\xc3",
			want: "caf",
		},
		{
			name: "combined",
			in:   "foo\x07bar �  baz",
			want: "foobar baz",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeText(tt.in))
		})
	}
}

func TestFallbackSanitizationPlainASCII(t *testing.T) {
	// ASCII survives every branch of the fallback unchanged, including the
	// degraded strip path when the charset guess is unusable.
	in := "a perfectly plain run of ascii text"
	assert.Equal(t, in, fallbackSanitization(in))
}

func TestFallbackSanitizationAlwaysValid(t *testing.T) {
	inputs := []string{
		"dedicaÃ§Ã£o dos alunos",
		"acentuação regular em português",
		"already clean text",
	}
	for _, in := range inputs {
		out := fallbackSanitization(in)
		assert.True(t, utf8.ValidString(out), "input %q", in)
		assert.NotContains(t, out, "�")
	}
}

func TestASCIIStrip(t *testing.T) {
	assert.Equal(t, "ox", asciiStrip("çãox§"))
	assert.Equal(t, "plain", asciiStrip("plain"))
}
