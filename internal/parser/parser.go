// Package parser extracts the structural features of an HTML page.
package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rotisserie/eris"

	"github.com/sells-group/admissions-geo/internal/model"
)

// Parser turns raw HTML into a PageContent. Implementations never fail: a
// page they cannot make sense of yields a sparser record.
type Parser interface {
	Parse(html string) model.PageContent
	Tier() string
}

// Limits bounds the list fields of a parsed page.
type Limits struct {
	MaxHeadings int
	MaxBullets  int
}

// DefaultLimits matches the configured defaults.
var DefaultLimits = Limits{MaxHeadings: 25, MaxBullets: 30}

func (l Limits) withDefaults() Limits {
	if l.MaxHeadings <= 0 {
		l.MaxHeadings = DefaultLimits.MaxHeadings
	}
	if l.MaxBullets <= 0 {
		l.MaxBullets = DefaultLimits.MaxBullets
	}
	return l
}

// New returns the parser for a configured tier: "full" or "fallback".
func New(tier string, limits Limits) (Parser, error) {
	switch tier {
	case "", "full":
		return NewFull(limits), nil
	case "fallback":
		return NewFallback(limits), nil
	default:
		return nil, eris.Errorf("parser: unknown tier %q", tier)
	}
}

// faqHints are the phrases that mark a page as carrying an FAQ section.
var faqHints = []string{"常見問題", "Q&A", "FAQ", "問與答", "問答集"}

// qaWord matches QA only as a standalone word, never inside names like Qatar.
var (
	qaWord     = regexp.MustCompile(`\bQA\b`)
	qaWordFold = regexp.MustCompile(`(?i)\bqa\b`)
)

// hasFAQHint reports whether text contains any FAQ hint.
func hasFAQHint(text string, caseInsensitive bool) bool {
	if caseInsensitive && qaWordFold.MatchString(text) || !caseInsensitive && qaWord.MatchString(text) {
		return true
	}
	if caseInsensitive {
		text = strings.ToLower(text)
	}
	for _, h := range faqHints {
		if caseInsensitive {
			h = strings.ToLower(h)
		}
		if strings.Contains(text, h) {
			return true
		}
	}
	return false
}

var spaceRe = regexp.MustCompile(`[\s\x{00a0}\x{3000}]+`)

// collapse trims and collapses runs of whitespace, including no-break and
// ideographic spaces, to one space.
func collapse(s string) string {
	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

// appendUnique appends s when it is non-empty, unseen and the list is under max.
func appendUnique(list []string, seen map[string]bool, s string, max int) []string {
	if s == "" || seen[s] || len(list) >= max {
		return list
	}
	seen[s] = true
	return append(list, s)
}

// Preview returns at most n runes of text.
func Preview(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return string(runes[:n])
}
