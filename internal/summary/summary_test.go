package summary

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/admissions-geo/internal/clue"
	"github.com/sells-group/admissions-geo/internal/model"
)

func TestSalary_Range(t *testing.T) {
	s := New(DefaultOptions)

	sum := s.Salary([]string{"起薪 3.2~3.8萬"})
	require.True(t, sum.Found)
	require.NotNil(t, sum.Range)
	assert.Equal(t, model.SalaryRange{Low: 32000, High: 38000}, *sum.Range)
	assert.Equal(t, "起薪", sum.Basis)
	assert.Equal(t, SalaryNote, sum.Note)
}

func TestSalary_NoUnitCue(t *testing.T) {
	sum := New(DefaultOptions).Salary([]string{"電話 0912~3456"})
	assert.True(t, sum.Found)
	assert.Nil(t, sum.Range)
	assert.Equal(t, "薪資", sum.Basis)
}

func TestSalary_Units(t *testing.T) {
	tests := []struct {
		window string
		low    int
		high   int
	}{
		{"月薪 32,000~38,000 元", 32000, 38000},
		{"月薪 NT$30000-36000", 30000, 36000},
		{"月薪 30k–40k", 30000, 40000},
		{"年薪 50至80萬", 500000, 800000},
		{"月薪３萬～４萬", 30000, 40000},
	}
	s := New(Options{SalaryMin: 15000, SalaryMax: 1000000})
	for _, tt := range tests {
		t.Run(tt.window, func(t *testing.T) {
			sum := s.Salary([]string{tt.window})
			require.NotNil(t, sum.Range)
			assert.Equal(t, tt.low, sum.Range.Low)
			assert.Equal(t, tt.high, sum.Range.High)
		})
	}
}

func TestSalary_BoundsRejectAndFirstAcceptedWins(t *testing.T) {
	s := New(DefaultOptions)
	sum := s.Salary([]string{
		"年薪 50~80萬",
		"月薪 1~2千",
		"起薪約 2.8~3.2萬",
		"起薪約 3.5~4萬",
	})
	require.NotNil(t, sum.Range)
	assert.Equal(t, model.SalaryRange{Low: 28000, High: 32000}, *sum.Range)
}

func TestSalary_BasisTally(t *testing.T) {
	s := New(DefaultOptions)
	sum := s.Salary([]string{"月薪 3萬", "月薪 3.5萬 年薪 50萬", "起薪 3萬"})
	assert.Equal(t, "月薪", sum.Basis)

	sum = s.Salary([]string{"年薪 50萬", "起薪 3萬"})
	assert.Equal(t, "年薪", sum.Basis, "ties keep the fixed label order")
}

func TestSalary_Empty(t *testing.T) {
	sum := New(DefaultOptions).Salary(nil)
	assert.False(t, sum.Found)
	assert.Nil(t, sum.Range)
	assert.Nil(t, sum.Points)
}

func TestSalary_PointsCapped(t *testing.T) {
	var windows []string
	for i := 0; i < 10; i++ {
		windows = append(windows, fmt.Sprintf("起薪 %d", i))
	}
	sum := New(DefaultOptions).Salary(windows)
	assert.Len(t, sum.Points, 6)
}

func TestScore(t *testing.T) {
	sum := Score([]string{"學測 60 級分"})
	assert.True(t, sum.Found)
	assert.Equal(t, []string{"學測 60 級分"}, sum.Points)
	assert.Equal(t, ScoreNote, sum.Note)

	assert.False(t, Score(nil).Found)
}

func TestCredits(t *testing.T) {
	sum := Credits([]string{"最低畢業學分 128 學分，必修 96 學分", "選修：32 學分"})
	require.True(t, sum.Found)
	require.NotNil(t, sum.Total)
	require.NotNil(t, sum.Required)
	require.NotNil(t, sum.Elective)
	assert.Equal(t, 128, *sum.Total)
	assert.Equal(t, 96, *sum.Required)
	assert.Equal(t, 32, *sum.Elective)
}

func TestCredits_FieldsIndependent(t *testing.T) {
	sum := Credits([]string{"必修 60 學分"})
	assert.Nil(t, sum.Total)
	assert.Nil(t, sum.Elective)
	require.NotNil(t, sum.Required)
	assert.Equal(t, 60, *sum.Required)
}

func TestCredits_IgnoresLongNumbers(t *testing.T) {
	sum := Credits([]string{"畢業學分 2024 年修訂"})
	assert.Nil(t, sum.Total)
}

func TestPassrate(t *testing.T) {
	sum := Passrate([]string{"護理師通過率 85%", "近三年通過率 85%、92.5%", "證照考取率９０％"})
	assert.True(t, sum.Found)
	assert.Equal(t, []string{"85%", "92.5%", "90%"}, sum.Rates)
	assert.Equal(t, PassrateNote, sum.Note)
}

func TestPassrate_SpacedPercent(t *testing.T) {
	sum := Passrate([]string{"國考通過率 85 %", "考取率 ９２．５ ％", "通過率 85%"})
	assert.Equal(t, []string{"85%", "92.5%"}, sum.Rates)
}

func TestSummarize_EndToEnd(t *testing.T) {
	set := clue.New(clue.DefaultOptions).Classify("本系畢業生起薪約 3.0~3.5萬，考取證照通過率達 85%")
	sums := New(DefaultOptions).Summarize(set)

	require.True(t, sums.Salary.Found)
	assert.Equal(t, "起薪", sums.Salary.Basis)
	require.NotNil(t, sums.Salary.Range)
	assert.Equal(t, model.SalaryRange{Low: 30000, High: 35000}, *sums.Salary.Range)

	require.True(t, sums.Passrate.Found)
	assert.Equal(t, []string{"85%"}, sums.Passrate.Rates)
	assert.False(t, sums.Score.Found)
	assert.False(t, sums.Credits.Found)

	text := BuildParagraphs(sums, nil)
	assert.Equal(t, 2, strings.Count(text, "### "))
	assert.Contains(t, text, "### 薪資（起薪）")
	assert.Contains(t, text, "3~3.5 萬元")
	assert.Contains(t, text, "### 考照通過率")
	assert.NotContains(t, text, "補強建議")
}

func TestBuildParagraphs_Fallback(t *testing.T) {
	text := BuildParagraphs(model.Summaries{}, []string{"#1 example.edu.tw"})
	assert.Equal(t, FallbackBlock, text)
	assert.Equal(t, 1, strings.Count(text, "### "))
}

func TestBuildParagraphs_AllBuckets(t *testing.T) {
	total, req := 128, 96
	sums := model.Summaries{
		Salary:   model.SalarySummary{Found: true, Basis: "月薪", Note: SalaryNote},
		Score:    model.ScoreSummary{Found: true, Points: []string{"統測 500 分"}, Note: ScoreNote},
		Credits:  model.CreditsSummary{Found: true, Total: &total, Required: &req, Note: CreditsNote},
		Passrate: model.PassrateSummary{Found: true, Note: PassrateNote},
	}
	text := BuildParagraphs(sums, []string{"#1 a.edu.tw", "#2 b.com"})

	blocks := strings.Split(text, "\n\n")
	require.Len(t, blocks, 4)
	assert.Contains(t, blocks[0], "未出現可驗證的區間")
	assert.Contains(t, blocks[1], "統測 500 分")
	assert.Contains(t, blocks[2], "畢業總學分 128 學分，必修 96 學分")
	assert.NotContains(t, blocks[2], "選修")
	assert.Contains(t, blocks[3], "未揭露通過率")
	for _, b := range blocks {
		assert.Contains(t, b, "- 建議引用來源類型：")
		assert.Contains(t, b, "- 參考頁面：#1 a.edu.tw、#2 b.com")
	}
}
