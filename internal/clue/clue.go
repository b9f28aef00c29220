// Package clue classifies numeric substrings of page text into semantic
// buckets by the keywords around them.
package clue

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"

	"github.com/sells-group/admissions-geo/internal/model"
)

// Options bounds the context windows and bucket sizes.
type Options struct {
	// WindowRadius is the number of runes kept on each side of a token.
	WindowRadius int
	// MaxWindow caps a window's length in runes; longer windows are cut and
	// end with Ellipsis.
	MaxWindow int
	// BucketCap caps the windows kept per bucket.
	BucketCap int
}

// DefaultOptions matches the configured defaults.
var DefaultOptions = Options{WindowRadius: 26, MaxWindow: 80, BucketCap: 12}

// Ellipsis marks a truncated window.
const Ellipsis = "…"

// Bucket keyword vocabularies. Matching is on the lower-cased window.
var (
	PassrateKeywords = []string{"通過率", "及格率", "合格率", "考取率", "考照率", "通過", "考取", "證照", "國考", "執照", "pass"}
	CreditKeywords   = []string{"學分", "credit"}
	SalaryKeywords   = []string{"薪", "待遇", "月入", "年收", "收入", "salary", "wage"}
	ScoreKeywords    = []string{"級分", "分數", "門檻", "最低錄取", "錄取分", "錄取標準", "學測", "統測", "分科", "總分", "篩選", "倍率", "score"}
)

// A percent sign may follow the digits after spaces, as in "85 %".
var tokenRe = regexp.MustCompile(`\d+(?:[.,]\d+)*(?:[ \t\x{3000}]*%)?`)

// Classifier scans text for numeric tokens and buckets their windows.
type Classifier struct {
	opts Options
}

// New creates a Classifier; zero options take their defaults.
func New(opts Options) *Classifier {
	if opts.WindowRadius <= 0 {
		opts.WindowRadius = DefaultOptions.WindowRadius
	}
	if opts.MaxWindow <= 0 {
		opts.MaxWindow = DefaultOptions.MaxWindow
	}
	if opts.BucketCap <= 0 {
		opts.BucketCap = DefaultOptions.BucketCap
	}
	return &Classifier{opts: opts}
}

// Classify returns the deduplicated, capped windows per bucket in
// first-seen order. Windows matching no bucket are dropped.
func (c *Classifier) Classify(text string) model.NumberClueSet {
	text = Fold(text)
	runes := []rune(text)

	collected := make(map[model.Bucket][]string)
	runeAt, byteAt := 0, 0
	for _, m := range tokenRe.FindAllStringIndex(text, -1) {
		runeAt += utf8.RuneCountInString(text[byteAt:m[0]])
		byteAt = m[0]
		start := runeAt
		end := start + utf8.RuneCountInString(text[m[0]:m[1]])

		token := text[m[0]:m[1]]
		window := c.window(runes, start, end)
		if b, ok := Bucketize(window, token); ok {
			collected[b] = append(collected[b], window)
		}
	}

	var set model.NumberClueSet
	for _, b := range model.AllBuckets() {
		set.Set(b, Dedup(collected[b], c.opts.BucketCap))
	}
	return set
}

// window returns the runes around [start, end), shrinking the context
// evenly when the result would exceed MaxWindow.
func (c *Classifier) window(runes []rune, start, end int) string {
	radius := c.opts.WindowRadius
	tokenLen := end - start
	truncated := false
	if tokenLen+2*radius > c.opts.MaxWindow {
		truncated = true
		radius = (c.opts.MaxWindow - tokenLen) / 2
		if radius < 0 {
			radius = 0
		}
	}

	lo := max(0, start-radius)
	hi := min(len(runes), end+radius)
	w := runes[lo:hi]
	if len(w) > c.opts.MaxWindow {
		w = w[:c.opts.MaxWindow]
	}
	s := strings.TrimSpace(string(w))
	if truncated && (lo > 0 || hi < len(runes) || tokenLen > c.opts.MaxWindow) {
		s += Ellipsis
	}
	return s
}

// Bucketize assigns a window to exactly one bucket, in precedence order:
// passrate (percent token plus a pass keyword), credits, salary, score.
func Bucketize(window, token string) (model.Bucket, bool) {
	lower := strings.ToLower(window)
	switch {
	case strings.Contains(token, "%") && containsAny(lower, PassrateKeywords):
		return model.BucketPassrate, true
	case containsAny(lower, CreditKeywords):
		return model.BucketCredits, true
	case containsAny(lower, SalaryKeywords):
		return model.BucketSalary, true
	case containsAny(lower, ScoreKeywords):
		return model.BucketScore, true
	}
	return "", false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}

// Fold rewrites full-width digits, percent, tilde and full stop, and the
// wave dash, to their ASCII forms. Other full-width punctuation is kept.
func Fold(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '〜':
			return '~'
		case r == '％', r == '～', r == '．', r >= '０' && r <= '９':
			if n := width.LookupRune(r).Narrow(); n != 0 {
				return n
			}
		}
		return r
	}, s)
}

// Dedup trims each window, drops blanks and exact repeats, and keeps at most
// limit entries in first-seen order. It returns nil for an empty result.
func Dedup(windows []string, limit int) []string {
	var out []string
	seen := make(map[string]bool, len(windows))
	for _, w := range windows {
		w = strings.TrimSpace(w)
		if w == "" || seen[w] {
			continue
		}
		if limit > 0 && len(out) >= limit {
			break
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// Merge concatenates the buckets of several sets in order and re-applies
// Dedup with limit.
func Merge(sets []model.NumberClueSet, limit int) model.NumberClueSet {
	var merged model.NumberClueSet
	for _, b := range model.AllBuckets() {
		var all []string
		for _, s := range sets {
			all = append(all, s.Get(b)...)
		}
		merged.Set(b, Dedup(all, limit))
	}
	return merged
}
