package dataset

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/admissions-geo/internal/model"
)

const sampleCSV = "\ufeffCollege,Department,Keyword,Keyword_Source,Keyword_Type,Strategy_Tag,Search_Volume,AI_Potential,Has_FAQ,Rank1_Title,Rank1_Link,Rank1_Snippet,Rank2_Title,Rank2_Link\n" +
	"護理健康學院,護理系,護理系出路,Google Autocomplete,資訊型,FAQ 佈局,\"1,200\",85,True,長庚科技大學護理系,https://www.cgust.edu.tw/n,護理系介紹,護理系好嗎 - Dcard,https://www.dcard.tw/f/1\n" +
	"護理健康學院,護理系,護理系薪水,Seed,商業型,數據表格,300,90,,,,,,\n" +
	",,,,,,,,,,,,,\n" +
	"民生學院,餐旅系,餐旅系評價,PAA,資訊型,口碑,abc,10,0,,,,,\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func createTestXLSX(t *testing.T, sheets map[string][][]string) string {
	t.Helper()
	f := xlsx.NewFile()
	for name, rows := range sheets {
		sheet, err := f.AddSheet(name)
		require.NoError(t, err)
		for _, rowData := range rows {
			row := sheet.AddRow()
			for _, cellData := range rowData {
				cell := row.AddCell()
				cell.SetString(cellData)
			}
		}
	}
	path := filepath.Join(t.TempDir(), "school_data.xlsx")
	require.NoError(t, f.Save(path))
	return path
}

func TestLoad_CSV(t *testing.T) {
	path := writeFile(t, "school_data.csv", sampleCSV)
	records, err := Load(context.Background(), path, "")
	require.NoError(t, err)
	require.Len(t, records, 3, "blank rows are skipped")

	first := records[0]
	assert.Equal(t, "護理健康學院", first.College, "BOM stripped from the first header")
	assert.Equal(t, "護理系出路", first.Keyword)
	assert.Equal(t, "Google Autocomplete", first.Source)
	assert.Equal(t, model.NoneText, first.Seed, "missing column defaults")
	assert.Equal(t, model.NoneText, first.Evidence)
	assert.InDelta(t, 1200.0, first.Signals.SearchVolume, 0.001)
	assert.InDelta(t, 85.0, first.Signals.AIPotential, 0.001)
	assert.Zero(t, first.Signals.Opportunity)
	assert.True(t, first.Signals.HasFAQ)
	assert.False(t, first.Signals.HasTable)

	require.Len(t, first.Results, 3)
	assert.Equal(t, "長庚科技大學護理系", first.TopResult().Title)
	assert.Equal(t, "https://www.dcard.tw/f/1", first.Results[1].Link)
	assert.Equal(t, model.NoneText, first.Results[1].Snippet)
	assert.Equal(t, model.PlaceholderLink, first.Results[2].Link)
	assert.Len(t, first.Links(), 2)

	second := records[1]
	assert.Equal(t, model.NoneText, second.TopResult().Title)
	assert.Equal(t, model.PlaceholderLink, second.TopResult().Link)
	assert.Empty(t, second.Links())

	assert.Zero(t, records[2].Signals.SearchVolume, "unparseable numbers default to zero")
}

func TestLoad_LegacyTopColumns(t *testing.T) {
	csv := "College,Department,Keyword,Top_Title,Top_Link,Top_Snippet\n" +
		"護理健康學院,護理系,護理系,輔英科技大學,https://www.fy.edu.tw,簡介\n"
	records, err := Load(context.Background(), writeFile(t, "legacy.csv", csv), "")
	require.NoError(t, err)
	require.Len(t, records, 1)

	top := records[0].TopResult()
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, "輔英科技大學", top.Title)
	assert.Equal(t, "https://www.fy.edu.tw", top.Link)
	assert.Equal(t, "簡介", top.Snippet)
}

func TestLoad_XLSX(t *testing.T) {
	path := createTestXLSX(t, map[string][][]string{
		"data": {
			{"College", "Department", "Keyword", "Search_Volume", "Rank1_Link"},
			{"護理健康學院", "護理系", "護理系出路", "500", "https://a.edu.tw"},
		},
	})

	records, err := Load(context.Background(), path, "data")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "護理系出路", records[0].Keyword)
	assert.InDelta(t, 500.0, records[0].Signals.SearchVolume, 0.001)
	assert.Equal(t, "https://a.edu.tw", records[0].TopResult().Link)

	records, err = Load(context.Background(), path, "")
	require.NoError(t, err)
	assert.Len(t, records, 1, "first sheet by default")

	_, err = Load(context.Background(), path, "missing")
	assert.Error(t, err)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.csv"), "")
	assert.Error(t, err)

	_, err = Load(context.Background(), writeFile(t, "data.json", "{}"), "")
	assert.Error(t, err)

	_, err = Load(context.Background(), writeFile(t, "empty.csv", ""), "")
	assert.Error(t, err)
}

func TestReadCSV_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ReadCSV(ctx, strings.NewReader("a,b\n1,2\n"))
	assert.Error(t, err)
}

func loadSample(t *testing.T) []model.KeywordRecord {
	t.Helper()
	records, err := Load(context.Background(), writeFile(t, "school_data.csv", sampleCSV), "")
	require.NoError(t, err)
	return records
}

func TestFilter(t *testing.T) {
	records := loadSample(t)

	assert.Len(t, Filter(records, Scope{}), 3)
	assert.Len(t, Filter(records, Scope{College: "護理健康學院"}), 2)
	got := Filter(records, Scope{Department: "護理系", Keyword: "護理系薪水"})
	require.Len(t, got, 1)
	assert.Equal(t, "護理系薪水", got[0].Keyword)
	assert.Empty(t, Filter(records, Scope{College: "不存在"}))
}

func TestByAIPotential(t *testing.T) {
	records := loadSample(t)
	sorted := ByAIPotential(records)
	assert.Equal(t, "護理系薪水", sorted[0].Keyword)
	assert.Equal(t, "護理系出路", sorted[1].Keyword)
	assert.Equal(t, "護理系出路", records[0].Keyword, "input is not reordered")
}

func TestCollegesAndDepartments(t *testing.T) {
	records := loadSample(t)
	assert.Equal(t, []string{"護理健康學院", "民生學院"}, Colleges(records))
	assert.Equal(t, []string{"護理系"}, Departments(records, "護理健康學院"))
	assert.Equal(t, []string{"護理系", "餐旅系"}, Departments(records, ""))
}

func TestOverview(t *testing.T) {
	s := Overview(loadSample(t))
	assert.Equal(t, 3, s.Keywords)
	assert.InDelta(t, 1500.0, s.Volume, 0.001)

	require.Len(t, s.Departments, 2)
	assert.Equal(t, "護理系", s.Departments[0].Department)
	assert.Equal(t, 2, s.Departments[0].Keywords)
	assert.InDelta(t, 1500.0, s.Departments[0].Volume, 0.001)

	require.Len(t, s.Intents, 2)
	assert.Equal(t, "資訊型", s.Intents[0].Intent)
	assert.Equal(t, 2, s.Intents[0].Count)
	assert.InDelta(t, 66.7, s.Intents[0].Percent, 0.001)
}
