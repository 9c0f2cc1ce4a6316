package recovery

import (
	"strings"
	"unicode"
)

// minScorableLen is the character floor below which a candidate carries too
// little signal to judge and scores zero.
const minScorableLen = 100

// validPunct is the punctuation allowlist counted as "valid" characters.
const validPunct = ",.;:!?()[]{}@#$%&*_+-=/"

// ScoreQuality rates an extraction candidate in [0,1].
//
// The score rewards a high share of alphanumeric/whitespace/allowlisted
// characters, a space ratio consistent with intact word boundaries, and the
// absence of corruption markers (replacement character, NUL, BOM leftovers).
func ScoreQuality(text string) float64 {
	runes := []rune(text)
	total := len(runes)
	if total < minScorableLen {
		return 0
	}

	var valid, spaces, problems int
	for _, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r):
			valid++
		case strings.ContainsRune(validPunct, r):
			valid++
		}
		if r == ' ' {
			spaces++
		}
		if r == '�' || r == 0 || r == '\ufeff' {
			problems++
		}
	}

	validRatio := float64(valid) / float64(total)
	spaceRatio := float64(spaces) / float64(total)
	problemRatio := float64(problems) / float64(total)

	spaceBonus := 0.0
	if spaceRatio > 0.1 && spaceRatio < 0.3 {
		spaceBonus = 0.1
	}

	penalty := problemRatio * 10
	if penalty > 1 {
		penalty = 1
	}

	return validRatio*0.6 + spaceBonus*0.2 + (1-penalty)*0.2
}
