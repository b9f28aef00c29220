package model

import "time"

// Bucket names a semantic category for numeric text windows.
type Bucket string

const (
	BucketSalary   Bucket = "salary"
	BucketScore    Bucket = "score"
	BucketCredits  Bucket = "credits"
	BucketPassrate Bucket = "passrate"
)

// AllBuckets returns the buckets in classification precedence order.
func AllBuckets() []Bucket {
	return []Bucket{
		BucketPassrate,
		BucketCredits,
		BucketSalary,
		BucketScore,
	}
}

// NumberClueSet holds the deduplicated context windows collected per bucket.
type NumberClueSet struct {
	Salary   []string `json:"salary,omitempty" yaml:"salary,omitempty"`
	Score    []string `json:"score,omitempty" yaml:"score,omitempty"`
	Credits  []string `json:"credits,omitempty" yaml:"credits,omitempty"`
	Passrate []string `json:"passrate,omitempty" yaml:"passrate,omitempty"`
}

// Get returns the windows of one bucket.
func (n NumberClueSet) Get(b Bucket) []string {
	switch b {
	case BucketSalary:
		return n.Salary
	case BucketScore:
		return n.Score
	case BucketCredits:
		return n.Credits
	case BucketPassrate:
		return n.Passrate
	}
	return nil
}

// Set replaces the windows of one bucket.
func (n *NumberClueSet) Set(b Bucket, windows []string) {
	switch b {
	case BucketSalary:
		n.Salary = windows
	case BucketScore:
		n.Score = windows
	case BucketCredits:
		n.Credits = windows
	case BucketPassrate:
		n.Passrate = windows
	}
}

// Empty reports whether no bucket holds a window.
func (n NumberClueSet) Empty() bool {
	return len(n.Salary) == 0 && len(n.Score) == 0 && len(n.Credits) == 0 && len(n.Passrate) == 0
}

// PageContent is the structural snapshot of a parsed HTML page. Both parser
// tiers produce this shape; the fallback tier leaves heading lists empty.
type PageContent struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	H1          string   `json:"h1" yaml:"h1"`
	H2          []string `json:"h2,omitempty" yaml:"h2,omitempty"`
	H3          []string `json:"h3,omitempty" yaml:"h3,omitempty"`
	HasTable    bool     `json:"has_table" yaml:"has_table"`
	HasList     bool     `json:"has_list" yaml:"has_list"`
	HasFAQ      bool     `json:"has_faq" yaml:"has_faq"`
	Bullets     []string `json:"bullets,omitempty" yaml:"bullets,omitempty"`
	Text        string   `json:"-" yaml:"-"`
}

// CachedPageRecord is the immutable parsed-page snapshot stored in the page
// cache under the hash of its URL.
type CachedPageRecord struct {
	URL         string        `json:"url" yaml:"url"`
	OK          bool          `json:"ok" yaml:"ok"`
	FailReason  string        `json:"fail_reason,omitempty" yaml:"fail_reason,omitempty"`
	FetchedAt   time.Time     `json:"fetched_at" yaml:"fetched_at"`
	PageContent `yaml:",inline"`
	Clues       NumberClueSet `json:"clues" yaml:"clues"`
	Preview     string        `json:"preview,omitempty" yaml:"preview,omitempty"`
}
