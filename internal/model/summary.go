package model

// SalaryRange is a sanitized salary range in base currency units.
type SalaryRange struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// SalarySummary is the advisory digest of the salary bucket.
type SalarySummary struct {
	Found  bool         `json:"found"`
	Basis  string       `json:"basis"`
	Range  *SalaryRange `json:"range,omitempty"`
	Points []string     `json:"points,omitempty"`
	Note   string       `json:"note"`
}

// ScoreSummary is the advisory digest of the admission-score bucket.
type ScoreSummary struct {
	Found  bool     `json:"found"`
	Points []string `json:"points,omitempty"`
	Note   string   `json:"note"`
}

// CreditsSummary is the advisory digest of the credit-hours bucket. Each
// count is nil when the pages did not state it.
type CreditsSummary struct {
	Found    bool     `json:"found"`
	Total    *int     `json:"total,omitempty"`
	Required *int     `json:"required,omitempty"`
	Elective *int     `json:"elective,omitempty"`
	Points   []string `json:"points,omitempty"`
	Note     string   `json:"note"`
}

// PassrateSummary is the advisory digest of the pass-rate bucket.
type PassrateSummary struct {
	Found  bool     `json:"found"`
	Rates  []string `json:"rates,omitempty"`
	Points []string `json:"points,omitempty"`
	Note   string   `json:"note"`
}

// Summaries groups the four bucket digests.
type Summaries struct {
	Salary   SalarySummary   `json:"salary"`
	Score    ScoreSummary    `json:"score"`
	Credits  CreditsSummary  `json:"credits"`
	Passrate PassrateSummary `json:"passrate"`
}

// AnyFound reports whether at least one bucket produced a finding.
func (s Summaries) AnyFound() bool {
	return s.Salary.Found || s.Score.Found || s.Credits.Found || s.Passrate.Found
}
