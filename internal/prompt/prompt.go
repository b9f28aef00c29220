// Package prompt renders the article-writing directive for one keyword.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sells-group/admissions-geo/internal/model"
)

// System is the fixed instruction block sent ahead of every directive.
const System = "你是大學招生行銷的內容編輯，熟悉生成式搜尋引擎最佳化（GEO）。" +
	"撰寫時只使用提供的數據，數字一律以區間或附年度的方式表述，不得捏造來源。" +
	"文章需包含可被 AI 摘要直接引用的短段落、至少一個比較表格與常見問題（FAQ）區塊。"

// Input is everything the directive is assembled from. Zero-valued parts
// are omitted from the output.
type Input struct {
	Keyword     string
	College     string
	Department  string
	Intent      string
	Strategy    string
	Signals     model.Signals
	TopResult   model.SearchResult
	Threat      model.Threat
	Paragraphs  string
	Gaps        []model.GapSuggestion
	Competitors []model.CompetitorMention
	Questions   model.QuestionReport
}

const maxPromptQuestions = 5

// Assemble renders the directive as plain text sections.
func Assemble(in Input) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "請為「%s」撰寫一篇關於「%s」的招生文章。\n", in.Department, in.Keyword)
	if in.College != "" && in.College != model.NoneText {
		fmt.Fprintf(&sb, "所屬學院：%s\n", in.College)
	}
	fmt.Fprintf(&sb, "搜尋意圖：%s\n", in.Intent)
	fmt.Fprintf(&sb, "GEO 策略：%s\n", in.Strategy)

	sb.WriteString("\n--- 現況 ---\n")
	if in.Threat.Label != "" {
		fmt.Fprintf(&sb, "首位威脅度：%s\n", in.Threat.Label)
		fmt.Fprintf(&sb, "建議：%s\n", in.Threat.Advice)
	}
	if in.TopResult.Title != "" && in.TopResult.Title != model.NoneText {
		fmt.Fprintf(&sb, "目前第一名：%s（%s）\n", in.TopResult.Title, in.TopResult.Link)
	}
	missing := missingStructures(in.Signals)
	if len(missing) > 0 {
		fmt.Fprintf(&sb, "現有頁面缺少：%s\n", strings.Join(missing, "、"))
	}

	if strings.TrimSpace(in.Paragraphs) != "" {
		sb.WriteString("\n--- 可引用數據段落 ---\n")
		sb.WriteString(strings.TrimSpace(in.Paragraphs))
		sb.WriteString("\n")
	}

	if len(in.Gaps) > 0 {
		sb.WriteString("\n--- 競品有、首位缺少的段落 ---\n")
		for _, g := range in.Gaps {
			fmt.Fprintf(&sb, "- %s（%d 個競品頁面）\n", g.Heading, g.Count)
		}
	}

	if len(in.Competitors) > 0 {
		sb.WriteString("\n--- 主要競爭者 ---\n")
		for _, c := range in.Competitors {
			fmt.Fprintf(&sb, "- %s（權重 %d）例：%s\n", c.Name, c.Weight, c.Example)
		}
	}

	if len(in.Questions.Top) > 0 {
		sb.WriteString("\n--- 考生最常問的決策問題 ---\n")
		for i, q := range in.Questions.Top {
			if i == maxPromptQuestions {
				break
			}
			fmt.Fprintf(&sb, "- %s［%s］\n", q.Text, q.Category)
		}
	}

	sb.WriteString("\n--- 輸出要求 ---\n")
	sb.WriteString("1. 開頭 80 字內直接回答搜尋問題。\n")
	sb.WriteString("2. 以 H2 分段，涵蓋上方缺少的段落。\n")
	sb.WriteString("3. 數據段落需保留來源與年度。\n")
	sb.WriteString("4. 結尾加入 3 題以上 FAQ，回答上方的決策問題。\n")
	return sb.String()
}

func missingStructures(s model.Signals) []string {
	var out []string
	if !s.HasTable {
		out = append(out, "表格")
	}
	if !s.HasList {
		out = append(out, "條列清單")
	}
	if !s.HasFAQ {
		out = append(out, "FAQ")
	}
	return out
}

// FromRecord fills the keyword fields of an Input from a dataset record.
func FromRecord(rec model.KeywordRecord) Input {
	return Input{
		Keyword:    rec.Keyword,
		College:    rec.College,
		Department: rec.Department,
		Intent:     rec.Intent,
		Strategy:   rec.Strategy,
		Signals:    rec.Signals,
		TopResult:  rec.TopResult(),
	}
}
