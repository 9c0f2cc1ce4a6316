package recovery

import (
	"log"
	"regexp"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

var (
	// C0 and C1 control ranges.
	reControlChars = regexp.MustCompile(`[\x00-\x1F\x7F-\x9F]`)
	reBlankLines   = regexp.MustCompile(`\n{3,}`)

	// Invisible artifacts: replacement char, soft hyphen, zero-width space.
	invisibleReplacer = strings.NewReplacer("\ufffd", "", "\u00ad", "", "\u200b", "")
)

// sanitizeText strips control characters and invisible markers, drops invalid
// byte sequences, and collapses whitespace and excessive blank lines. It runs
// immediately before the formatter hand-off and inside the fallback path.
func sanitizeText(text string) string {
	text = reControlChars.ReplaceAllString(text, "")
	text = strings.ToValidUTF8(text, "")
	text = invisibleReplacer.Replace(text)
	text = reWhitespaceRun.ReplaceAllString(text, " ")
	text = reBlankLines.ReplaceAllString(text, "\n\n")
	return text
}

// fallbackSanitization is the one-shot recovery path: re-guess the encoding
// from a Latin-1 byte interpretation of the text, recode through that guess
// dropping whatever does not survive as UTF-8, then sanitize. If any step
// fails it degrades to a plain ASCII strip.
func fallbackSanitization(text string) string {
	latin1, err := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return asciiStrip(text)
	}

	name, _ := detectEncoding(latin1)
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		log.Printf("fallback: no encoder for %q, stripping to ASCII", name)
		return asciiStrip(text)
	}

	recoded, err := encoding.ReplaceUnsupported(enc.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return asciiStrip(text)
	}
	return sanitizeText(strings.ToValidUTF8(string(recoded), ""))
}

func asciiStrip(text string) string {
	return strings.Map(func(r rune) rune {
		if r > 127 {
			return -1
		}
		return r
	}, text)
}
