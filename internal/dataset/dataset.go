// Package dataset loads the keyword dataset and slices it by college,
// department and keyword.
package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/admissions-geo/internal/model"
)

// Column names of the keyword dataset.
const (
	ColCollege     = "College"
	ColDepartment  = "Department"
	ColKeyword     = "Keyword"
	ColSource      = "Keyword_Source"
	ColSeed        = "Seed_Term"
	ColEvidence    = "Evidence"
	ColIntent      = "Keyword_Type"
	ColStrategy    = "Strategy_Tag"
	ColVolume      = "Search_Volume"
	ColOpportunity = "Opportunity_Score"
	ColAIPotential = "AI_Potential"
	ColAuthority   = "Authority_Count"
	ColForum       = "Forum_Count"
	ColCitability  = "Citability_Score"
	ColHasTable    = "Has_Table"
	ColHasList     = "Has_List"
	ColHasFAQ      = "Has_FAQ"
)

// Load reads a .csv or .xlsx dataset into fully-defaulted records. sheet
// selects the xlsx sheet; empty means the first.
func Load(ctx context.Context, path, sheet string) ([]model.KeywordRecord, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = ReadXLSX(path, sheet)
	case ".csv", "":
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "dataset: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		rows, err = ReadCSV(ctx, f)
	default:
		return nil, eris.Errorf("dataset: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, eris.Wrapf(err, "dataset: read %s", path)
	}
	if len(rows) == 0 {
		return nil, eris.Errorf("dataset: %s is empty", path)
	}

	records := FromRows(rows[0], rows[1:])
	zap.L().Info("dataset: loaded",
		zap.String("path", path),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// FromRows maps data rows onto records by header name. Missing columns and
// blank cells take the sentinel defaults; fully blank rows are skipped.
func FromRows(header []string, rows [][]string) []model.KeywordRecord {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}

	records := make([]model.KeywordRecord, 0, len(rows))
	for _, row := range rows {
		if blank(row) {
			continue
		}
		r := rowReader{idx: idx, row: row}
		rec := model.KeywordRecord{
			College:    r.text(ColCollege),
			Department: r.text(ColDepartment),
			Keyword:    r.text(ColKeyword),
			Source:     r.text(ColSource),
			Seed:       r.text(ColSeed),
			Evidence:   r.text(ColEvidence),
			Intent:     r.text(ColIntent),
			Strategy:   r.text(ColStrategy),
			Signals: model.Signals{
				SearchVolume:    r.number(ColVolume),
				Opportunity:     r.number(ColOpportunity),
				AIPotential:     r.number(ColAIPotential),
				AuthorityCount:  r.number(ColAuthority),
				ForumMentions:   r.number(ColForum),
				CitabilityScore: r.number(ColCitability),
				HasTable:        r.flag(ColHasTable),
				HasList:         r.flag(ColHasList),
				HasFAQ:          r.flag(ColHasFAQ),
			},
		}
		for rank := 1; rank <= model.MaxResultRank; rank++ {
			rec.Results = append(rec.Results, r.result(rank))
		}
		records = append(records, rec)
	}
	return records
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

type rowReader struct {
	idx map[string]int
	row []string
}

// raw returns the trimmed cell of the first present column among names.
func (r rowReader) raw(names ...string) string {
	for _, n := range names {
		i, ok := r.idx[n]
		if !ok || i >= len(r.row) {
			continue
		}
		if v := strings.TrimSpace(r.row[i]); v != "" {
			return v
		}
	}
	return ""
}

func (r rowReader) text(names ...string) string {
	v := r.raw(names...)
	if v == "" || strings.EqualFold(v, "nan") {
		return model.NoneText
	}
	return v
}

func (r rowReader) number(name string) float64 {
	v := strings.ReplaceAll(r.raw(name), ",", "")
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

func (r rowReader) flag(name string) bool {
	switch strings.ToLower(r.raw(name)) {
	case "1", "true", "yes", "y", "是", "有":
		return true
	}
	if f := r.number(name); f > 0 {
		return true
	}
	return false
}

// result reads the rank-th result triple. Rank 1 falls back to the legacy
// Top_* columns.
func (r rowReader) result(rank int) model.SearchResult {
	col := func(field string) []string {
		names := []string{fmt.Sprintf("Rank%d_%s", rank, field)}
		if rank == 1 {
			names = append(names, "Top_"+field)
		}
		return names
	}

	link := r.raw(col("Link")...)
	if link == "" || link == model.NoneText {
		link = model.PlaceholderLink
	}
	return model.SearchResult{
		Rank:    rank,
		Title:   r.text(col("Title")...),
		Link:    link,
		Snippet: r.text(col("Snippet")...),
	}
}
