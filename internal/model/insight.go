package model

// GapSuggestion is a heading used by lower-ranked competitors but missing
// from the top-ranked page.
type GapSuggestion struct {
	Heading string `json:"heading"`
	Count   int    `json:"count"`
}

// CompetitorMention is a ranked competitor name or domain.
type CompetitorMention struct {
	Name    string `json:"name"`
	Weight  int    `json:"weight"`
	Example string `json:"example"`
}

// ThreatLevel grades who holds the first search result.
type ThreatLevel string

const (
	ThreatDanger    ThreatLevel = "danger"
	ThreatWarning   ThreatLevel = "warning"
	ThreatExcellent ThreatLevel = "excellent"
)

// Threat is the verdict on a keyword's first search result.
type Threat struct {
	Level  ThreatLevel `json:"level"`
	Label  string      `json:"label"`
	Advice string      `json:"advice"`
}

// QuestionCategory is a fixed life-decision category.
type QuestionCategory string

const (
	CategorySalary     QuestionCategory = "薪資"
	CategoryScore      QuestionCategory = "分數門檻"
	CategoryCredits    QuestionCategory = "學分"
	CategoryPassrate   QuestionCategory = "考照通過率"
	CategoryInternship QuestionCategory = "實習"
	CategoryCareer     QuestionCategory = "職涯出路"
	CategoryDailyLife  QuestionCategory = "校園生活"
	CategorySocial     QuestionCategory = "社會觀感"
	CategoryOther      QuestionCategory = "其他"
)

// QuestionCount is one ranked decision question.
type QuestionCount struct {
	Text     string           `json:"text"`
	Category QuestionCategory `json:"category"`
	Count    int              `json:"count"`
}

// CategoryShare is a category's share of all flagged questions.
type CategoryShare struct {
	Category QuestionCategory `json:"category"`
	Count    int              `json:"count"`
	Percent  float64          `json:"percent"`
	Example  string           `json:"example"`
}

// QuestionReport is the decision-question ranking for a scope.
type QuestionReport struct {
	Total  int             `json:"total"`
	Top    []QuestionCount `json:"top"`
	Shares []CategoryShare `json:"shares"`
}

// PageResult pairs an analyzed page with its search rank.
type PageResult struct {
	Rank   int              `json:"rank"`
	Record CachedPageRecord `json:"record"`
}

// Insight is the aggregated outcome of analyzing a keyword's result pages.
type Insight struct {
	RunID      string          `json:"run_id"`
	Pages      []PageResult    `json:"pages"`
	Clues      NumberClueSet   `json:"clues"`
	Summaries  Summaries       `json:"summaries"`
	Sources    []string        `json:"sources,omitempty"`
	Paragraphs string          `json:"paragraphs"`
	Gaps       []GapSuggestion `json:"gaps,omitempty"`
}
