// Package question ranks the life-decision questions hidden in a scope's
// keywords.
package question

import (
	"math"
	"sort"
	"strings"

	"github.com/sells-group/admissions-geo/internal/model"
)

const maxTop = 10

var interrogatives = []string{"嗎", "什麼", "如何", "怎麼", "哪", "為什麼", "多少", "好不好", "是否", "?", "？", "推薦", "值得"}

var decisionTopics = []string{"分數", "門檻", "級分", "薪", "通過率", "學分", "實習"}

// categories are matched in order; the first hit wins.
var categories = []struct {
	category model.QuestionCategory
	keywords []string
}{
	{model.CategorySalary, []string{"薪", "待遇", "收入", "月入", "賺"}},
	{model.CategoryScore, []string{"分數", "級分", "門檻", "錄取", "學測", "統測", "落點", "備取"}},
	{model.CategoryCredits, []string{"學分", "必修", "選修", "修課", "課程"}},
	{model.CategoryPassrate, []string{"通過率", "考照", "國考", "證照", "執照", "及格"}},
	{model.CategoryInternship, []string{"實習", "見習"}},
	{model.CategoryCareer, []string{"出路", "就業", "工作", "職缺", "前景", "轉職", "未來"}},
	{model.CategoryDailyLife, []string{"宿舍", "住宿", "生活", "社團", "交通", "學費", "打工"}},
	{model.CategorySocial, []string{"評價", "風評", "名聲", "排名", "觀感", "後悔", "丟臉"}},
}

// IsQuestion reports whether a keyword reads as a decision question.
func IsQuestion(s string) bool {
	return containsAny(s, interrogatives) || containsAny(s, decisionTopics)
}

// Categorize returns the first category whose keywords appear in s.
func Categorize(s string) model.QuestionCategory {
	for _, c := range categories {
		if containsAny(s, c.keywords) {
			return c.category
		}
	}
	return model.CategoryOther
}

// IsAutocomplete reports whether a keyword source names search autocomplete.
func IsAutocomplete(source string) bool {
	s := strings.ToLower(source)
	return strings.Contains(s, "autocomplete") || strings.Contains(s, "suggest") || strings.Contains(source, "自動完成")
}

// Classify flags, categorizes and ranks the keywords of records.
// Autocomplete-sourced keywords are visited first so they win count ties.
func Classify(records []model.KeywordRecord) model.QuestionReport {
	var ordered []string
	var rest []string
	for _, r := range records {
		k := strings.TrimSpace(r.Keyword)
		if k == "" || k == model.NoneText {
			continue
		}
		if IsAutocomplete(r.Source) {
			ordered = append(ordered, k)
		} else {
			rest = append(rest, k)
		}
	}
	ordered = append(ordered, rest...)

	counts := make(map[string]int)
	var texts []string
	total := 0
	for _, k := range ordered {
		if !IsQuestion(k) {
			continue
		}
		if counts[k] == 0 {
			texts = append(texts, k)
		}
		counts[k]++
		total++
	}

	report := model.QuestionReport{Total: total}
	if total == 0 {
		return report
	}

	byCat := make(map[model.QuestionCategory]*model.CategoryShare)
	var shares []*model.CategoryShare
	for _, k := range texts {
		c := Categorize(k)
		s, ok := byCat[c]
		if !ok {
			s = &model.CategoryShare{Category: c, Example: k}
			byCat[c] = s
			shares = append(shares, s)
		}
		s.Count += counts[k]
	}

	sort.SliceStable(texts, func(i, j int) bool {
		return counts[texts[i]] > counts[texts[j]]
	})
	for i, k := range texts {
		if i == maxTop {
			break
		}
		report.Top = append(report.Top, model.QuestionCount{Text: k, Category: Categorize(k), Count: counts[k]})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Count > shares[j].Count
	})
	for _, s := range shares {
		s.Percent = math.Round(float64(s.Count)/float64(total)*1000) / 10
		report.Shares = append(report.Shares, *s)
	}
	return report
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
