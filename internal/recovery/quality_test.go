package recovery

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreQualityShortTextScoresZero(t *testing.T) {
	assert.Equal(t, 0.0, ScoreQuality(""))
	assert.Equal(t, 0.0, ScoreQuality("too little signal"))
	assert.Equal(t, 0.0, ScoreQuality(strings.Repeat("x", minScorableLen-1)))
}

func TestScoreQualityCleanText(t *testing.T) {
	clean := strings.Repeat("the quick brown fox jumps over the lazy dog ", 5)

	score := ScoreQuality(clean)
	// All characters valid, space ratio inside (0.1, 0.3), no problem chars.
	assert.InDelta(t, 0.82, score, 0.001)
}

func TestScoreQualityOrdering(t *testing.T) {
	clean := strings.Repeat("the quick brown fox jumps over the lazy dog ", 5)
	corrupted := clean + strings.Repeat("�", 40)
	bomRidden := clean + strings.Repeat("\ufeff", 40)
	noSpaces := strings.Repeat("thequickbrownfox", 10)

	tests := []struct {
		name   string
		better string
		worse  string
	}{
		{"corruption markers lower the score", clean, corrupted},
		{"byte-order-mark leftovers lower the score", clean, bomRidden},
		{"missing word boundaries lower the score", clean, noSpaces},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Greater(t, ScoreQuality(tt.better), ScoreQuality(tt.worse))
		})
	}
}

func TestScoreQualityBounded(t *testing.T) {
	inputs := []string{
		strings.Repeat("normal text with spaces in it ", 10),
		strings.Repeat("�", 200),
		strings.Repeat("\x00", 150),
		strings.Repeat("ção é à ú ", 30),
	}
	for _, in := range inputs {
		score := ScoreQuality(in)
		assert.GreaterOrEqual(t, score, 0.0)
		assert.LessOrEqual(t, score, 1.0)
	}
}
