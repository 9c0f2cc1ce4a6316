package recovery

import (
	"log"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/saintfish/chardet"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// hyphenSentinel keys all hyphenated line-break matches in the frequency map.
// Their fix is structural (de-hyphenation), not a literal replacement, so the
// matched substrings themselves are not useful keys.
const hyphenSentinel = "hyphenated_word"

var (
	// Characters outside the expected repertoire of a Latin-script document.
	reInvalidChar = regexp.MustCompile(`[^\w\s.,;:?!@#$%&*()_+=\-\[\]{}\\|"'<>/À-ÿ]`)

	// Mojibake signatures per language. Portuguese covers the classic
	// UTF-8-as-Latin-1 two-byte artifacts (Ã followed by the garbled
	// second byte: Ã§ for ç, Ã£ for ã, and so on) plus garbled words
	// seen in academic regulation PDFs; English covers curly-quote and
	// dash artifacts. The class lists the artifact bytes, never the
	// repaired letters, so it stays aligned with the fix table. Longer
	// alternatives come first so they win the match.
	rePtMojibake = regexp.MustCompile(`Ã[§£¡©³µª¢ º\x{a0}\x{ad}]|PîS|Gradua,ÌO|CAPêTULO`)
	reEnMojibake = regexp.MustCompile(`â€œ|â€\x{9d}|â€™|â€“|â€`)

	// A word split across a line break by a trailing hyphen. \p{L}
	// instead of \w so accented words are caught too.
	reHyphenBreak = regexp.MustCompile(`[\p{L}\d_]+-\s*\n\s*[\p{L}\d_]+`)
)

// commonFixes maps known garbled sequences to their correct characters. It is
// read-only configuration, shared by every processor.
var commonFixes = map[string]string{
	"Ã§": "ç", "Ã£": "ã", "Ã¡": "á", "Ã©": "é", "Ã³": "ó",
	"Ãµ": "õ", "Ãª": "ê", "Ã¢": "â", "Ã ": "à", "Ãº": "ú",
	"Ã­": "í", "Ã ": "à", "PîS": "Pós", "Gradua,ÌO": "Graduação",
	"CAPêTULO": "CAPÍTULO",
	"â€œ": `"`, "â€": `"`, "â€™": "'", "â€“": "-",
}

// analyzeErrors populates the per-document error frequency map and correction
// map from the canonical extraction. The encoding guess is advisory metadata
// only; it never gates behavior.
func (p *Processor) analyzeErrors(text string) {
	p.detectedEncoding, p.encodingConfidence = detectEncoding([]byte(text))
	log.Printf("detected encoding: %s (confidence: %.2f)", p.detectedEncoding, p.encodingConfidence)

	for _, m := range reInvalidChar.FindAllString(text, -1) {
		p.errorPatterns[m]++
	}
	switch p.language {
	case LangPortuguese:
		for _, m := range rePtMojibake.FindAllString(text, -1) {
			p.errorPatterns[m]++
		}
	case LangEnglish:
		for _, m := range reEnMojibake.FindAllString(text, -1) {
			p.errorPatterns[m]++
		}
	}
	p.errorPatterns[hyphenSentinel] += len(reHyphenBreak.FindAllString(text, -1))
	if p.errorPatterns[hyphenSentinel] == 0 {
		delete(p.errorPatterns, hyphenSentinel)
	}

	for pattern := range p.errorPatterns {
		if pattern == hyphenSentinel {
			continue
		}
		if fix, ok := commonFixes[pattern]; ok {
			p.correctionMap[pattern] = fix
			continue
		}
		// No known fix: fall back to transliteration, accepted only when
		// it actually rewrites the substring into something non-empty.
		if t := transliterate(pattern); t != pattern && t != "" {
			p.correctionMap[pattern] = t
		} else {
			log.Printf("no usable correction for pattern %q (seen %dx)", pattern, p.errorPatterns[pattern])
		}
	}
}

// detectEncoding guesses the most likely source byte encoding via statistical
// byte-pattern analysis. Confidence is normalized to [0,1].
func detectEncoding(data []byte) (string, float64) {
	res, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || res == nil || res.Charset == "" {
		return "utf-8", 0
	}
	return res.Charset, float64(res.Confidence) / 100
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// transliterate decomposes accented characters, drops the combining marks and
// then discards anything still outside ASCII.
func transliterate(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return strings.Map(func(r rune) rune {
		if r > unicode.MaxASCII {
			return -1
		}
		return r
	}, out)
}

// topPatterns returns the n most frequent error patterns for diagnostics.
func (p *Processor) topPatterns(n int) []string {
	type freq struct {
		pattern string
		count   int
	}
	all := make([]freq, 0, len(p.errorPatterns))
	for pat, c := range p.errorPatterns {
		all = append(all, freq{pat, c})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].pattern < all[j].pattern
	})
	if n > len(all) {
		n = len(all)
	}
	out := make([]string, 0, n)
	for _, f := range all[:n] {
		out = append(out, f.pattern)
	}
	return out
}
