// Package gap finds headings that lower-ranked competitor pages share but
// the top-ranked page lacks.
package gap

import (
	"sort"
	"unicode/utf8"

	"github.com/sells-group/admissions-geo/internal/model"
)

const (
	perPage    = 15
	minRunes   = 4
	maxRunes   = 24
	poolSize   = 12
	maxResults = 8
)

// Extract takes the H2 lists of result pages in rank order, rank 1 first.
// Headings of rank 1 form the baseline; the rest are pooled and counted.
func Extract(ranked [][]string) []model.GapSuggestion {
	if len(ranked) < 2 {
		return nil
	}

	baseline := make(map[string]bool, len(ranked[0]))
	for _, h := range ranked[0] {
		baseline[h] = true
	}

	counts := make(map[string]int)
	var order []string
	for _, headings := range ranked[1:] {
		if len(headings) > perPage {
			headings = headings[:perPage]
		}
		for _, h := range headings {
			n := utf8.RuneCountInString(h)
			if n < minRunes || n > maxRunes {
				continue
			}
			if counts[h] == 0 {
				order = append(order, h)
			}
			counts[h]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > poolSize {
		order = order[:poolSize]
	}

	var out []model.GapSuggestion
	for _, h := range order {
		if baseline[h] {
			continue
		}
		out = append(out, model.GapSuggestion{Heading: h, Count: counts[h]})
		if len(out) == maxResults {
			break
		}
	}
	return out
}

// FromPages places the H2 list of each analyzed page at its rank position.
// Failed and missing ranks contribute an empty list.
func FromPages(pages []model.PageResult) [][]string {
	maxRank := 0
	for _, p := range pages {
		maxRank = max(maxRank, p.Rank)
	}
	out := make([][]string, maxRank)
	for _, p := range pages {
		if p.Rank < 1 || !p.Record.OK {
			continue
		}
		out[p.Rank-1] = p.Record.H2
	}
	return out
}
