package markdown

import (
	"regexp"
	"strings"
)

var (
	codeFence     = regexp.MustCompile("(?s)```.*?```")
	inlineCode    = regexp.MustCompile("`([^`]*)`")
	imageLink     = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	mdLink        = regexp.MustCompile(`\[([^\]]+)\]\([^)]*\)`)
	emphasis      = regexp.MustCompile(`(\*\*|__|\*|_)([^*_]+)(\*\*|__|\*|_)`)
	headingPrefix = regexp.MustCompile(`(?m)^#{1,6}[ \t]*`)
	listBullet    = regexp.MustCompile(`(?m)^[ \t]*[-*+][ \t]+`)
	blockquote    = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	multiBlank    = regexp.MustCompile(`\n{3,}`)
)

// Strip removes markdown syntax to produce plain text suitable for a
// voice response. It is lossy on purpose: links keep their text, images
// keep their alt text, code fences are dropped entirely.
func Strip(doc string) string {
	s := codeFence.ReplaceAllString(doc, "")
	s = imageLink.ReplaceAllString(s, "$1")
	s = mdLink.ReplaceAllString(s, "$1")
	s = inlineCode.ReplaceAllString(s, "$1")
	s = emphasis.ReplaceAllString(s, "$2")
	s = headingPrefix.ReplaceAllString(s, "")
	s = listBullet.ReplaceAllString(s, "")
	s = blockquote.ReplaceAllString(s, "")
	s = multiBlank.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
