package recovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAutoCorrectDehyphenation(t *testing.T) {
	p := NewProcessor(nil, nil)
	p.language = LangEnglish

	got := p.autoCorrect("informa-\ntion")
	assert.Equal(t, "information", got)

	// Portuguese equivalent with accented characters.
	got = p.autoCorrect("disserta-\n  ção")
	assert.Equal(t, "dissertação", got)
}

func TestAutoCorrectEncodingRoundTrip(t *testing.T) {
	p := NewProcessor(nil, nil)
	p.language = LangPortuguese

	raw := "A Gradua,ÌO em Ciências exige dedicaÃ§Ã£o dos alunos"
	p.analyzeErrors(raw)
	corrected := p.autoCorrect(raw)

	assert.Contains(t, corrected, "Graduação")
	assert.Contains(t, corrected, "dedicação")
	assert.NotContains(t, corrected, "Ã§")
	assert.NotContains(t, corrected, "Ã£")

	// Re-running correction must not alter the repaired text further.
	assert.Equal(t, corrected, p.autoCorrect(corrected))
}

func TestAutoCorrectIdempotent(t *testing.T) {
	p := NewProcessor(nil, nil)
	p.language = LangPortuguese

	raw := "O curso termina em junho. Depois disso o aluno defende a tese informa-\nda no edital, conforme o Art. 12º do regulamento"
	p.analyzeErrors(raw)

	once := p.autoCorrect(raw)
	twice := p.autoCorrect(once)
	assert.Equal(t, once, twice)
}

func TestAutoCorrectWhitespaceAndHyphens(t *testing.T) {
	p := NewProcessor(nil, nil)
	p.language = LangEnglish

	got := p.autoCorrect("spaced   out\t\ttext with pos - doc layout")
	assert.Equal(t, "spaced out text with pos-doc layout", got)
}

func TestAutoCorrectPortugueseStructure(t *testing.T) {
	p := NewProcessor(nil, nil)
	p.language = LangPortuguese

	got := p.autoCorrect("conforme o Art. 5º deste regulamento")
	assert.Contains(t, got, "**Art. 5**")

	// Paragraph break between a sentence end and the next capitalized word.
	got = p.autoCorrect("o prazo termina. A defesa ocorre depois")
	assert.True(t, strings.Contains(got, "termina. \n\nA defesa"), "got %q", got)
}
