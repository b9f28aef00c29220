package dataset

import (
	"math"
	"sort"

	"github.com/sells-group/admissions-geo/internal/model"
)

// Scope narrows the dataset. Empty fields match everything.
type Scope struct {
	College    string
	Department string
	Keyword    string
}

func (s Scope) matches(r model.KeywordRecord) bool {
	return (s.College == "" || r.College == s.College) &&
		(s.Department == "" || r.Department == s.Department) &&
		(s.Keyword == "" || r.Keyword == s.Keyword)
}

// Filter returns the records inside scope, in dataset order.
func Filter(records []model.KeywordRecord, scope Scope) []model.KeywordRecord {
	var out []model.KeywordRecord
	for _, r := range records {
		if scope.matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// ByAIPotential returns a copy of records ordered by AI potential, highest
// first. Equal scores keep dataset order.
func ByAIPotential(records []model.KeywordRecord) []model.KeywordRecord {
	out := append([]model.KeywordRecord(nil), records...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Signals.AIPotential > out[j].Signals.AIPotential
	})
	return out
}

// Colleges lists the distinct colleges in first-seen order.
func Colleges(records []model.KeywordRecord) []string {
	return distinct(records, func(r model.KeywordRecord) string { return r.College })
}

// Departments lists the distinct departments of a college in first-seen
// order; an empty college lists all.
func Departments(records []model.KeywordRecord, college string) []string {
	return distinct(Filter(records, Scope{College: college}), func(r model.KeywordRecord) string { return r.Department })
}

func distinct(records []model.KeywordRecord, key func(model.KeywordRecord) string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, r := range records {
		k := key(r)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}

// DepartmentVolume is a department's total monthly search volume.
type DepartmentVolume struct {
	College    string
	Department string
	Volume     float64
	Keywords   int
}

// IntentShare is one search intent's share of the keywords.
type IntentShare struct {
	Intent  string
	Count   int
	Percent float64
}

// Summary is the overview of a scope.
type Summary struct {
	Keywords    int
	Volume      float64
	Departments []DepartmentVolume
	Intents     []IntentShare
}

// Overview ranks departments by search volume and tallies intents.
func Overview(records []model.KeywordRecord) Summary {
	s := Summary{Keywords: len(records)}

	deps := make(map[string]*DepartmentVolume)
	var depOrder []*DepartmentVolume
	intents := make(map[string]*IntentShare)
	var intentOrder []*IntentShare

	for _, r := range records {
		s.Volume += r.Signals.SearchVolume

		key := r.College + "\x00" + r.Department
		d, ok := deps[key]
		if !ok {
			d = &DepartmentVolume{College: r.College, Department: r.Department}
			deps[key] = d
			depOrder = append(depOrder, d)
		}
		d.Volume += r.Signals.SearchVolume
		d.Keywords++

		in, ok := intents[r.Intent]
		if !ok {
			in = &IntentShare{Intent: r.Intent}
			intents[r.Intent] = in
			intentOrder = append(intentOrder, in)
		}
		in.Count++
	}

	sort.SliceStable(depOrder, func(i, j int) bool { return depOrder[i].Volume > depOrder[j].Volume })
	for _, d := range depOrder {
		s.Departments = append(s.Departments, *d)
	}

	sort.SliceStable(intentOrder, func(i, j int) bool { return intentOrder[i].Count > intentOrder[j].Count })
	for _, in := range intentOrder {
		in.Percent = math.Round(float64(in.Count)/float64(len(records))*1000) / 10
		s.Intents = append(s.Intents, *in)
	}
	return s
}
