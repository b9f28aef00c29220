package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/net/html"

	"github.com/sells-group/admissions-geo/internal/model"
)

// FullParser parses markup with goquery and extracts headings, tables and
// lists by tag.
type FullParser struct {
	limits Limits
}

// NewFull creates the structured-markup parser.
func NewFull(limits Limits) *FullParser {
	return &FullParser{limits: limits.withDefaults()}
}

func (p *FullParser) Tier() string { return "full" }

func (p *FullParser) Parse(raw string) model.PageContent {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		zap.L().Debug("parser: goquery failed, using fallback", zap.Error(err))
		return NewFallback(p.limits).Parse(raw)
	}

	doc.Find("script,style,noscript,template").Remove()

	var pc model.PageContent
	pc.Title = collapse(doc.Find("title").First().Text())
	pc.Description = collapse(doc.Find(`meta[name="description"]`).AttrOr("content", ""))
	if pc.Description == "" {
		pc.Description = collapse(doc.Find(`meta[property="og:description"]`).AttrOr("content", ""))
	}
	pc.H1 = collapse(doc.Find("h1").First().Text())
	pc.H2 = p.headings(doc, "h2")
	pc.H3 = p.headings(doc, "h3")

	pc.HasTable = doc.Find("table").Length() > 0
	pc.HasList = doc.Find("ul,ol").Length() > 0

	seen := make(map[string]bool)
	doc.Find("li").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		t := collapse(s.Text())
		if len([]rune(t)) <= 120 {
			pc.Bullets = appendUnique(pc.Bullets, seen, t, p.limits.MaxBullets)
		}
		return len(pc.Bullets) < p.limits.MaxBullets
	})

	root := doc.Find("body")
	if root.Length() == 0 {
		root = doc.Selection
	}
	var parts []string
	for _, n := range root.Nodes {
		parts = collectText(n, parts)
	}
	pc.Text = collapse(strings.Join(parts, " "))
	pc.HasFAQ = hasFAQHint(pc.Text, false)

	return pc
}

func (p *FullParser) headings(doc *goquery.Document, tag string) []string {
	var out []string
	seen := make(map[string]bool)
	doc.Find(tag).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		out = appendUnique(out, seen, collapse(s.Text()), p.limits.MaxHeadings)
		return len(out) < p.limits.MaxHeadings
	})
	return out
}

// collectText appends every non-blank text node under n, so adjacent block
// elements stay separated in the visible text.
func collectText(n *html.Node, parts []string) []string {
	if n.Type == html.TextNode {
		if t := strings.TrimSpace(n.Data); t != "" {
			parts = append(parts, t)
		}
		return parts
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		parts = collectText(c, parts)
	}
	return parts
}
