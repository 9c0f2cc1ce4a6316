package recovery

import (
	"regexp"
	"sort"
	"strings"
)

var (
	// De-hyphenation: rejoin a word split across a line break. \p{L}
	// instead of \w so accented words rejoin too.
	reDehyphen = regexp.MustCompile(`([\p{L}\d_]+)-\s*\n\s*([\p{L}\d_]+)`)

	// Any run of whitespace collapses to a single space. Must run after
	// de-hyphenation (the join pattern needs the literal newline) and
	// before paragraph-break insertion (which emits newlines to keep).
	reWhitespaceRun = regexp.MustCompile(`\s+`)

	// A legitimate hyphen spread out by broken layout: "word - word".
	reLooseHyphen = regexp.MustCompile(`([\p{L}\d])\s*-\s*([\p{L}\d])`)

	// Portuguese-only: paragraph break after a sentence terminator
	// followed by a capitalized word, and bold article headers. The
	// leading [^*] guard keeps already-bolded headers from rematching.
	rePtSentenceEnd = regexp.MustCompile(`([a-zà-ÿ])\.\s([A-ZÀ-Ÿ])`)
	rePtArticle     = regexp.MustCompile(`(^|[^*])Art\.\s*(\d+)[º°]?`)
)

// autoCorrect applies the per-document correction map plus the structural
// repair rules, in a fixed order. Applying it to its own output is a no-op:
// corrected substrings no longer match any anomaly pattern.
func (p *Processor) autoCorrect(text string) string {
	text = strings.ToValidUTF8(text, "")

	// Replacements run longest-key-first so that a short artifact never
	// clobbers the prefix of a longer one, and in a deterministic order
	// so that reprocessing yields byte-identical output.
	keys := make([]string, 0, len(p.correctionMap))
	for k := range p.correctionMap {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for _, k := range keys {
		text = strings.ReplaceAll(text, k, p.correctionMap[k])
	}

	text = reDehyphen.ReplaceAllString(text, "$1$2")
	text = reWhitespaceRun.ReplaceAllString(text, " ")
	text = reLooseHyphen.ReplaceAllString(text, "$1-$2")

	if p.language == LangPortuguese {
		text = rePtSentenceEnd.ReplaceAllString(text, "$1. \n\n$2")
		text = rePtArticle.ReplaceAllString(text, "$1**Art. $2**")
	}
	return text
}
