package recovery

import "regexp"

var (
	reChapterLine = regexp.MustCompile(`\n(\s*)(CAP[ÍI]TULO|CHAPTER)\s+([IVXLCDM]+)(\s*)`)
	reSectionLine = regexp.MustCompile(`\n(\d+\.\d+\.?\s+)([^\n]+)`)
	reBulletLine  = regexp.MustCompile(`\n(\s*[-*•])\s+`)
)

// enhanceStructure inserts heading and list markers via shallow pattern
// rules. The rules target disjoint line shapes, so their order does not
// matter. This is not layout reconstruction: chapter/section headings and
// bullets are the only structures inferred.
func enhanceStructure(text string) string {
	text = reChapterLine.ReplaceAllString(text, "\n## $2 $3\n")
	text = reSectionLine.ReplaceAllString(text, "\n### $1$2\n")
	text = reBulletLine.ReplaceAllString(text, "\n- ")
	return text
}
