package question

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/admissions-geo/internal/model"
)

func kw(keyword, source string) model.KeywordRecord {
	return model.KeywordRecord{Keyword: keyword, Source: source}
}

func TestIsQuestion(t *testing.T) {
	assert.True(t, IsQuestion("護理系好考嗎"))
	assert.True(t, IsQuestion("護理系 推薦"))
	assert.True(t, IsQuestion("護理系學測門檻"), "decision topic without a particle")
	assert.True(t, IsQuestion("what is nursing?"))
	assert.False(t, IsQuestion("中華醫事科技大學"))
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		text string
		want model.QuestionCategory
	}{
		{"護理系起薪多少", model.CategorySalary},
		{"護理系學測幾級分", model.CategoryScore},
		{"護理系要修多少學分", model.CategoryCredits},
		{"護理師國考通過率", model.CategoryPassrate},
		{"護理系實習很累嗎", model.CategoryInternship},
		{"護理系畢業出路", model.CategoryCareer},
		{"護理系宿舍好住嗎", model.CategoryDailyLife},
		{"讀護理系會後悔嗎", model.CategorySocial},
		{"護理系是什麼", model.CategoryOther},
		{"護理師薪水與國考通過率", model.CategorySalary},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.text))
		})
	}
}

func TestClassify_RanksAndShares(t *testing.T) {
	records := []model.KeywordRecord{
		kw("護理系畢業出路如何", "Seed"),
		kw("護理系起薪多少", "Google Autocomplete"),
		kw("護理系起薪多少", "Seed"),
		kw("護理系實習很累嗎", "PAA"),
		kw("中華醫事科技大學", "Seed"),
		kw(model.NoneText, "Seed"),
		kw("護理系畢業出路如何", "PAA"),
		kw("護理師起薪", "Seed"),
	}

	report := Classify(records)
	assert.Equal(t, 6, report.Total)

	require.Len(t, report.Top, 4)
	assert.Equal(t, model.QuestionCount{Text: "護理系起薪多少", Category: model.CategorySalary, Count: 2}, report.Top[0])
	assert.Equal(t, "護理系畢業出路如何", report.Top[1].Text)
	assert.Equal(t, 2, report.Top[1].Count)

	require.Len(t, report.Shares, 3)
	assert.Equal(t, model.CategorySalary, report.Shares[0].Category)
	assert.Equal(t, 3, report.Shares[0].Count)
	assert.InDelta(t, 50.0, report.Shares[0].Percent, 0.001)
	assert.Equal(t, "護理系起薪多少", report.Shares[0].Example)
	assert.Equal(t, model.CategoryCareer, report.Shares[1].Category)
	assert.InDelta(t, 33.3, report.Shares[1].Percent, 0.001)
	assert.Equal(t, model.CategoryInternship, report.Shares[2].Category)
	assert.InDelta(t, 16.7, report.Shares[2].Percent, 0.001)
}

func TestClassify_TopCapped(t *testing.T) {
	var records []model.KeywordRecord
	for i := 0; i < 15; i++ {
		records = append(records, kw(fmt.Sprintf("第%d個問題嗎", i), "Seed"))
	}
	report := Classify(records)
	assert.Equal(t, 15, report.Total)
	assert.Len(t, report.Top, 10)
	assert.Equal(t, "第0個問題嗎", report.Top[0].Text)
}

func TestClassify_Empty(t *testing.T) {
	report := Classify([]model.KeywordRecord{kw("中華醫事科技大學", "Seed")})
	assert.Zero(t, report.Total)
	assert.Nil(t, report.Top)
	assert.Nil(t, report.Shares)
}

func TestIsAutocomplete(t *testing.T) {
	assert.True(t, IsAutocomplete("Google Autocomplete"))
	assert.True(t, IsAutocomplete("google_suggest"))
	assert.False(t, IsAutocomplete("PAA"))
}
