package parser

import (
	"html"
	"regexp"
	"strings"

	"github.com/sells-group/admissions-geo/internal/model"
)

// FallbackParser strips tags with regular expressions. It cannot see
// document structure, so heading and bullet lists stay empty and the
// table/list flags come from tag substrings.
type FallbackParser struct {
	limits Limits
}

// NewFallback creates the tag-stripping parser.
func NewFallback(limits Limits) *FallbackParser {
	return &FallbackParser{limits: limits.withDefaults()}
}

func (p *FallbackParser) Tier() string { return "fallback" }

var (
	titleRe    = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	metaDescRe = regexp.MustCompile(`(?is)<meta[^>]+name\s*=\s*["']description["'][^>]*content\s*=\s*["']([^"']*)["']`)
	blockRe    = regexp.MustCompile(`(?is)<(script|style|noscript)[^>]*>.*?</(script|style|noscript)>`)
	commentRe  = regexp.MustCompile(`(?s)<!--.*?-->`)
	tagRe      = regexp.MustCompile(`<[^>]+>`)
)

func (p *FallbackParser) Parse(raw string) model.PageContent {
	var pc model.PageContent

	if m := titleRe.FindStringSubmatch(raw); len(m) > 1 {
		pc.Title = collapse(html.UnescapeString(tagRe.ReplaceAllString(m[1], " ")))
	}
	if m := metaDescRe.FindStringSubmatch(raw); len(m) > 1 {
		pc.Description = collapse(html.UnescapeString(m[1]))
	}

	lower := strings.ToLower(raw)
	pc.HasTable = strings.Contains(lower, "<table")
	pc.HasList = strings.Contains(lower, "<ul") || strings.Contains(lower, "<ol")

	pc.Text = StripHTML(raw)
	pc.HasFAQ = hasFAQHint(pc.Text, true)
	return pc
}

// StripHTML removes scripts and styles, then every remaining tag, decodes
// entities and collapses whitespace.
func StripHTML(raw string) string {
	s := blockRe.ReplaceAllString(raw, " ")
	s = commentRe.ReplaceAllString(s, " ")
	if m := titleRe.FindStringIndex(s); m != nil {
		s = s[:m[0]] + " " + s[m[1]:]
	}
	s = tagRe.ReplaceAllString(s, " ")
	return collapse(html.UnescapeString(s))
}
