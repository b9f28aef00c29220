// Package summary condenses bucketed numeric windows into advisory digests
// and renders them as citable paragraphs.
package summary

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sells-group/admissions-geo/internal/clue"
	"github.com/sells-group/admissions-geo/internal/model"
)

const (
	maxPoints        = 6
	maxCreditWindows = 10
	maxRates         = 6
	defaultBasis     = "薪資"
)

// Advisory notes attached to every summary of a bucket.
const (
	SalaryNote   = "建議以區間描述薪資（例如 3.2~3.8 萬），並註明調查年度與來源，避免引用單一數值。"
	ScoreNote    = "分數門檻每年浮動，建議引用近三年區間並註明入學管道（如繁星推薦、個人申請、統測分發）。"
	CreditsNote  = "學分數以入學年度課程規劃為準，建議附上系所課程地圖或修業規定連結。"
	PassrateNote = "通過率需標示年度、屆別與分母（應考人數），避免只寫百分比。"
)

// Options holds the salary plausibility bounds in base currency units.
type Options struct {
	SalaryMin int
	SalaryMax int
}

// DefaultOptions matches the configured defaults.
var DefaultOptions = Options{SalaryMin: 15000, SalaryMax: 200000}

// Summarizer turns a NumberClueSet into Summaries. It holds no state beyond
// its options; each bucket is summarized independently.
type Summarizer struct {
	opts Options
}

// New creates a Summarizer; zero bounds take their defaults.
func New(opts Options) *Summarizer {
	if opts.SalaryMin <= 0 {
		opts.SalaryMin = DefaultOptions.SalaryMin
	}
	if opts.SalaryMax <= 0 {
		opts.SalaryMax = DefaultOptions.SalaryMax
	}
	return &Summarizer{opts: opts}
}

// Summarize digests all four buckets.
func (s *Summarizer) Summarize(set model.NumberClueSet) model.Summaries {
	return model.Summaries{
		Salary:   s.Salary(set.Salary),
		Score:    Score(set.Score),
		Credits:  Credits(set.Credits),
		Passrate: Passrate(set.Passrate),
	}
}

var basisLabels = []string{"月薪", "年薪", "起薪"}

var (
	salaryNum   = `(\d+(?:,\d{3})*(?:\.\d+)?)`
	salaryUnit  = `\s*(萬|千|[kK]|元)?`
	salaryRange = regexp.MustCompile(`(NT\$|\$)?\s*` + salaryNum + salaryUnit + `\s*(?:~|–|—|-|至|到)\s*(?:NT\$|\$)?\s*` + salaryNum + salaryUnit)
)

// Salary reports the dominant pay basis and the first plausible range.
func (s *Summarizer) Salary(windows []string) model.SalarySummary {
	sum := model.SalarySummary{
		Found:  len(windows) > 0,
		Basis:  defaultBasis,
		Points: head(windows, maxPoints),
		Note:   SalaryNote,
	}

	best := 0
	for _, label := range basisLabels {
		n := 0
		for _, w := range windows {
			n += strings.Count(w, label)
		}
		if n > best {
			best, sum.Basis = n, label
		}
	}

	for _, w := range windows {
		if r, ok := s.parseRange(clue.Fold(w)); ok {
			sum.Range = r
			break
		}
	}
	return sum
}

// parseRange finds the first range in w carrying a unit or currency cue
// whose endpoints both fall within the plausibility bounds.
func (s *Summarizer) parseRange(w string) (*model.SalaryRange, bool) {
	for _, m := range salaryRange.FindAllStringSubmatch(w, -1) {
		currency, a, unitA, b, unitB := m[1], m[2], m[3], m[4], m[5]
		if unitA == "" {
			unitA = unitB
		}
		if unitB == "" {
			unitB = unitA
		}
		if unitA == "" && currency == "" {
			continue
		}

		low, okA := toBase(a, unitA)
		high, okB := toBase(b, unitB)
		if !okA || !okB {
			continue
		}
		if low > high {
			low, high = high, low
		}
		if low < s.opts.SalaryMin || high > s.opts.SalaryMax {
			continue
		}
		return &model.SalaryRange{Low: low, High: high}, true
	}
	return nil, false
}

func toBase(num, unit string) (int, bool) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	mult := 1.0
	switch unit {
	case "萬":
		mult = 10000
	case "千", "k", "K":
		mult = 1000
	}
	return int(math.Round(v * mult)), true
}

// Score passes through the score windows with a fixed note.
func Score(windows []string) model.ScoreSummary {
	return model.ScoreSummary{
		Found:  len(windows) > 0,
		Points: head(windows, maxPoints),
		Note:   ScoreNote,
	}
}

var (
	totalCreditsRe    = regexp.MustCompile(`(?:最低畢業學分|畢業學分|總學分|應修學分)[^\d]{0,6}(\d{2,3})(?:\D|$)`)
	requiredCreditsRe = regexp.MustCompile(`必修[^\d]{0,6}(\d{2,3})(?:\D|$)`)
	electiveCreditsRe = regexp.MustCompile(`選修[^\d]{0,6}(\d{2,3})(?:\D|$)`)
)

// Credits extracts the total, required and elective credit counts. Each is
// searched for independently and left nil when absent.
func Credits(windows []string) model.CreditsSummary {
	blob := strings.Join(head(windows, maxCreditWindows), " ")
	return model.CreditsSummary{
		Found:    len(windows) > 0,
		Total:    firstInt(totalCreditsRe, blob),
		Required: firstInt(requiredCreditsRe, blob),
		Elective: firstInt(electiveCreditsRe, blob),
		Points:   head(windows, maxPoints),
		Note:     CreditsNote,
	}
}

func firstInt(re *regexp.Regexp, s string) *int {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

var percentRe = regexp.MustCompile(`(\d+(?:\.\d+)?)[ \t\x{3000}]*%`)

// Passrate passes through the pass-rate windows and lists every distinct
// percent literal they contain.
func Passrate(windows []string) model.PassrateSummary {
	points := head(windows, maxPoints)
	var rates []string
	for _, w := range points {
		for _, m := range percentRe.FindAllStringSubmatch(clue.Fold(w), -1) {
			rates = append(rates, m[1]+"%")
		}
	}
	return model.PassrateSummary{
		Found:  len(windows) > 0,
		Rates:  clue.Dedup(rates, maxRates),
		Points: points,
		Note:   PassrateNote,
	}
}

// head returns at most n leading elements, nil when empty.
func head(list []string, n int) []string {
	if len(list) == 0 {
		return nil
	}
	if len(list) > n {
		list = list[:n]
	}
	return append([]string(nil), list...)
}
