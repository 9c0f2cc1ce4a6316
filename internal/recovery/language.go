package recovery

import "strings"

// Detected language labels. The detector is a coarse function-word vote,
// not a statistical model.
const (
	LangPortuguese = "portuguese"
	LangEnglish    = "english"
	LangUnknown    = "unknown"
)

var (
	ptIndicators = []string{"o", "a", "de", "que", "e"}
	enIndicators = []string{"the", "and", "of", "to", "in"}
)

// DetectLanguage votes on the dominant language by counting occurrences of a
// small fixed set of high-frequency function words. The higher count wins;
// equal counts (including zero-zero) yield LangUnknown.
func DetectLanguage(text string) string {
	counts := map[string]int{}
	for _, w := range strings.Fields(strings.ToLower(text)) {
		w = strings.Trim(w, ",.;:!?()[]{}\"'")
		counts[w]++
	}

	var pt, en int
	for _, w := range ptIndicators {
		pt += counts[w]
	}
	for _, w := range enIndicators {
		en += counts[w]
	}

	switch {
	case pt > en:
		return LangPortuguese
	case en > pt:
		return LangEnglish
	default:
		return LangUnknown
	}
}
