package model

import "strings"

// Sentinels substituted for missing dataset values.
const (
	NoneText        = "無"
	PlaceholderLink = "#"
)

// MaxResultRank is the number of ranked search results kept per keyword.
const MaxResultRank = 3

// SearchResult is one ranked search-engine result for a keyword.
type SearchResult struct {
	Rank    int    `json:"rank" yaml:"rank"`
	Title   string `json:"title" yaml:"title"`
	Link    string `json:"link" yaml:"link"`
	Snippet string `json:"snippet" yaml:"snippet"`
}

// HasLink reports whether the result carries a fetchable link.
func (r SearchResult) HasLink() bool {
	l := strings.TrimSpace(r.Link)
	return l != "" && l != PlaceholderLink && l != NoneText
}

// Signals holds the numeric SEO/GEO scores precomputed for a keyword.
type Signals struct {
	SearchVolume    float64 `json:"search_volume"`
	Opportunity     float64 `json:"opportunity"`
	AIPotential     float64 `json:"ai_potential"`
	AuthorityCount  float64 `json:"authority_count"`
	ForumMentions   float64 `json:"forum_mentions"`
	CitabilityScore float64 `json:"citability_score"`
	HasTable        bool    `json:"has_table"`
	HasList         bool    `json:"has_list"`
	HasFAQ          bool    `json:"has_faq"`
}

// KeywordRecord is one fully-defaulted row of the keyword dataset.
type KeywordRecord struct {
	College    string         `json:"college"`
	Department string         `json:"department"`
	Keyword    string         `json:"keyword"`
	Source     string         `json:"source"`
	Seed       string         `json:"seed"`
	Evidence   string         `json:"evidence"`
	Intent     string         `json:"intent"`
	Strategy   string         `json:"strategy"`
	Signals    Signals        `json:"signals"`
	Results    []SearchResult `json:"results"`
}

// TopResult returns the rank-1 result, or a placeholder when the row has none.
func (k KeywordRecord) TopResult() SearchResult {
	for _, r := range k.Results {
		if r.Rank == 1 {
			return r
		}
	}
	return SearchResult{Rank: 1, Title: NoneText, Link: PlaceholderLink, Snippet: NoneText}
}

// Label is the selector label shown for a keyword: "keyword (intent)".
func (k KeywordRecord) Label() string {
	return k.Keyword + " (" + k.Intent + ")"
}

// RankedLink is a link to analyze together with its search rank.
type RankedLink struct {
	Rank  int    `json:"rank"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Links returns the fetchable result links of the record in rank order.
func (k KeywordRecord) Links() []RankedLink {
	var out []RankedLink
	for _, r := range k.Results {
		if !r.HasLink() {
			continue
		}
		out = append(out, RankedLink{Rank: r.Rank, URL: strings.TrimSpace(r.Link), Title: r.Title})
	}
	return out
}
