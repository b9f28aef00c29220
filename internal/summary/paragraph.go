package summary

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sells-group/admissions-geo/internal/model"
)

// Citation source types suggested per bucket.
const (
	salaryCitation   = "大專校院畢業生流向調查、勞動部薪資統計、系所官方就業統計"
	scoreCitation    = "大學或技專校院招生委員會聯合會公告、本校招生簡章"
	creditsCitation  = "系所課程地圖、學則與修業規定"
	passrateCitation = "考選部國家考試及格統計、系所官方公告"
)

// FallbackBlock is emitted when no bucket produced a finding.
const FallbackBlock = "### 補強建議\n" +
	"目前競品頁面缺少可引用的數據。建議補充官方來源（招生簡章、系所官網）的具體數字，" +
	"以表格呈現關鍵資訊，並加入常見問題（FAQ）區塊，提高被 AI 摘要引用的機會。"

// BuildParagraphs renders one block per found bucket, separated by blank
// lines. sources are the labels of the pages the findings came from.
func BuildParagraphs(s model.Summaries, sources []string) string {
	var blocks []string
	if s.Salary.Found {
		blocks = append(blocks, salaryBlock(s.Salary, sources))
	}
	if s.Score.Found {
		blocks = append(blocks, scoreBlock(s.Score, sources))
	}
	if s.Credits.Found {
		blocks = append(blocks, creditsBlock(s.Credits, sources))
	}
	if s.Passrate.Found {
		blocks = append(blocks, passrateBlock(s.Passrate, sources))
	}
	if len(blocks) == 0 {
		return FallbackBlock
	}
	return strings.Join(blocks, "\n\n")
}

func salaryBlock(s model.SalarySummary, sources []string) string {
	var body string
	if s.Range != nil {
		body = fmt.Sprintf("依公開資料，畢業生%s約落在 %s~%s 萬元之間。以區間描述比單一數值更能反映個別差異。",
			s.Basis, tenThousands(s.Range.Low), tenThousands(s.Range.High))
	} else {
		body = fmt.Sprintf("多個來源提及%s，但未出現可驗證的區間數字。%s", s.Basis, s.Note)
	}
	return block("薪資（"+s.Basis+"）", body, salaryCitation, sources)
}

func scoreBlock(s model.ScoreSummary, sources []string) string {
	body := fmt.Sprintf("競品頁面提及的門檻資訊如「%s」。%s", s.Points[0], s.Note)
	return block("分數門檻", body, scoreCitation, sources)
}

func creditsBlock(s model.CreditsSummary, sources []string) string {
	var parts []string
	if s.Total != nil {
		parts = append(parts, fmt.Sprintf("畢業總學分 %d 學分", *s.Total))
	}
	if s.Required != nil {
		parts = append(parts, fmt.Sprintf("必修 %d 學分", *s.Required))
	}
	if s.Elective != nil {
		parts = append(parts, fmt.Sprintf("選修 %d 學分", *s.Elective))
	}

	var body string
	if len(parts) > 0 {
		body = strings.Join(parts, "，") + "。" + s.Note
	} else {
		body = "頁面提及學分規定，但未列出完整結構。建議以課程地圖列出總學分與必選修比例。"
	}
	return block("學分結構", body, creditsCitation, sources)
}

func passrateBlock(s model.PassrateSummary, sources []string) string {
	var body string
	if len(s.Rates) > 0 {
		body = fmt.Sprintf("公開資料提及的考照通過率包括 %s。%s", strings.Join(s.Rates, "、"), s.Note)
	} else {
		body = "頁面提及證照考試，但未揭露通過率。" + s.Note
	}
	return block("考照通過率", body, passrateCitation, sources)
}

func block(heading, body, citation string, sources []string) string {
	var b strings.Builder
	b.WriteString("### ")
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(body)
	b.WriteString("\n- 建議引用來源類型：")
	b.WriteString(citation)
	if len(sources) > 0 {
		b.WriteString("\n- 參考頁面：")
		b.WriteString(strings.Join(sources, "、"))
	}
	return b.String()
}

// tenThousands renders a base-unit amount as a fraction of 10,000.
func tenThousands(v int) string {
	return strconv.FormatFloat(float64(v)/10000, 'f', -1, 64)
}
