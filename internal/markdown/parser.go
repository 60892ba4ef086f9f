// Package markdown extracts discrete study resources from the loosely
// structured markdown documents the translation-helps API returns.
//
// The upstream dialect is externally controlled and drifts; this package
// is a best-effort scraper, not a grammar. It splits documents on
// numbered section headings ("## 1. <title>") and scrapes field markers
// ("**Reference**:", "**Quote**:", ...) inside each section. When no
// section structure is recognizable the whole document becomes a single
// resource: content is never silently dropped.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/klappy/unfoldingtheword/internal/domain"
)

var md = goldmark.New()

// sectionHeading matches "N. <title>" heading text at any heading level.
var sectionHeading = regexp.MustCompile(`^(\d+)[.)]\s*(.*)$`)

// fieldMarker matches "**Field**: value" lines inside a section body.
var fieldMarker = regexp.MustCompile(`(?m)^\*\*(Reference|Quote|ID|Question|Answer|Title)\*\*:[ \t]*(.*)$`)

// ParseNotes splits a translation-notes markdown document into one
// resource per numbered section. fallbackRef is used when a section
// carries no **Reference** field.
func ParseNotes(doc, fallbackRef string) []domain.Resource {
	return parse(doc, fallbackRef, domain.KindTranslationNote, "note")
}

// ParseQuestions splits a translation-questions markdown document into
// one resource per numbered section. A **Question** field becomes the
// title and an **Answer** field the content when present.
func ParseQuestions(doc, fallbackRef string) []domain.Resource {
	return parse(doc, fallbackRef, domain.KindTranslationQuestion, "question")
}

// ParseWordLinks splits a translation-word-links markdown document into
// one resource per numbered section.
func ParseWordLinks(doc, fallbackRef string) []domain.Resource {
	return parse(doc, fallbackRef, domain.KindTranslationWord, "word")
}

// ParseAcademy splits a translation-academy markdown article into one
// resource per numbered section; most articles have none and come back
// as a single resource.
func ParseAcademy(doc, fallbackRef string) []domain.Resource {
	return parse(doc, fallbackRef, domain.KindAcademyArticle, "academy")
}

func parse(doc, fallbackRef string, kind domain.ResourceKind, idPrefix string) []domain.Resource {
	trimmed := strings.TrimSpace(doc)
	if trimmed == "" {
		return []domain.Resource{}
	}

	secs := splitSections([]byte(doc))
	if len(secs) == 0 {
		// No recognizable structure: the whole document is one resource.
		return []domain.Resource{{
			ID:        idPrefix + "-1",
			Kind:      kind,
			Title:     deriveTitle(trimmed, fallbackRef),
			Content:   trimmed,
			Reference: fallbackRef,
		}}
	}

	resources := make([]domain.Resource, 0, len(secs))
	for i, sec := range secs {
		fields := extractFields(sec.body)

		res := domain.Resource{
			ID:        fields["ID"],
			Kind:      kind,
			Title:     sec.title,
			Content:   contentWithoutFields(sec.body),
			Reference: fields["Reference"],
		}
		if res.ID == "" {
			res.ID = fmt.Sprintf("%s-%d", idPrefix, i+1)
		}
		if res.Reference == "" {
			res.Reference = fallbackRef
		}
		if t := fields["Title"]; t != "" {
			res.Title = t
		}
		if q := fields["Question"]; q != "" && kind == domain.KindTranslationQuestion {
			res.Title = q
			if a := fields["Answer"]; a != "" {
				res.Content = a
			}
		}
		if res.Title == "" {
			res.Title = res.Reference
		}
		if res.Content == "" {
			// Heading-only section; quote or title is all we have.
			if q := fields["Quote"]; q != "" {
				res.Content = q
			} else {
				res.Content = res.Title
			}
		}
		resources = append(resources, res)
	}
	return resources
}

type section struct {
	number int
	title  string
	body   string
}

// splitSections walks the CommonMark AST for numbered headings and
// slices the raw source between consecutive heading lines. Slicing the
// source (rather than re-rendering the AST) keeps each section's body
// byte-for-byte faithful to the upstream document.
func splitSections(src []byte) []section {
	doc := md.Parser().Parse(text.NewReader(src))

	type mark struct {
		lineStart int // offset of the heading line
		bodyStart int // offset just past the heading line
		number    int
		title     string
	}
	var marks []mark

	for c := doc.FirstChild(); c != nil; c = c.NextSibling() {
		h, ok := c.(*ast.Heading)
		if !ok || h.Lines().Len() == 0 {
			continue
		}
		seg := h.Lines().At(0)
		m := sectionHeading.FindStringSubmatch(strings.TrimSpace(string(seg.Value(src))))
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		lineStart := bytes.LastIndexByte(src[:seg.Start], '\n') + 1
		bodyStart := seg.Stop
		if bodyStart < len(src) && src[bodyStart] == '\n' {
			bodyStart++
		}
		marks = append(marks, mark{lineStart: lineStart, bodyStart: bodyStart, number: num, title: strings.TrimSpace(m[2])})
	}

	secs := make([]section, 0, len(marks))
	for i, mk := range marks {
		end := len(src)
		if i+1 < len(marks) {
			end = marks[i+1].lineStart
		}
		secs = append(secs, section{
			number: mk.number,
			title:  mk.title,
			body:   strings.TrimSpace(string(src[mk.bodyStart:end])),
		})
	}
	return secs
}

// extractFields scrapes "**Field**: value" markers from a section body.
func extractFields(body string) map[string]string {
	fields := make(map[string]string)
	for _, m := range fieldMarker.FindAllStringSubmatch(body, -1) {
		if _, seen := fields[m[1]]; !seen {
			fields[m[1]] = strings.TrimSpace(m[2])
		}
	}
	return fields
}

// contentWithoutFields returns the section body with field marker lines
// removed, so content reads as prose.
func contentWithoutFields(body string) string {
	cleaned := fieldMarker.ReplaceAllString(body, "")
	var lines []string
	for _, line := range strings.Split(cleaned, "\n") {
		if strings.TrimSpace(line) == "" && len(lines) > 0 && lines[len(lines)-1] == "" {
			continue
		}
		lines = append(lines, strings.TrimRight(line, " \t"))
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// deriveTitle picks a title for an unstructured document: the first
// heading line if one exists, otherwise the fallback reference, then a
// truncated first line.
func deriveTitle(doc, fallbackRef string) string {
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "# "))
		}
		break
	}
	if fallbackRef != "" {
		return fallbackRef
	}
	first := strings.TrimSpace(strings.SplitN(doc, "\n", 2)[0])
	if len(first) > 80 {
		first = first[:80]
	}
	return first
}
