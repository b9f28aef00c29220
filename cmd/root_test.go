package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/admissions-geo/internal/config"
	"github.com/sells-group/admissions-geo/internal/dataset"
	"github.com/sells-group/admissions-geo/internal/model"
)

const testCSV = "College,Department,Keyword,Keyword_Source,Keyword_Type,Strategy_Tag,Search_Volume,AI_Potential,Has_Table,Rank1_Title,Rank1_Link,Rank2_Title,Rank2_Link\n" +
	"護理健康學院,護理系,護理系出路如何,Google Autocomplete,資訊型,FAQ 佈局,1200,85,1,長庚科技大學護理系,https://www.cgust.edu.tw/n,護理系好嗎 - Dcard,https://www.dcard.tw/f/1\n" +
	"護理健康學院,護理系,護理系起薪多少,Seed,商業型,數據表格,300,90,0,中華醫事科技大學護理系,https://www.hwu.edu.tw/n,輔英科大護理系,https://www.fy.edu.tw/n\n" +
	"民生學院,餐旅系,餐旅系評價,PAA,資訊型,口碑,500,10,0,餐旅系心得 - PTT,https://www.ptt.cc/x,,\n"

func testCfg(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "school_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(testCSV), 0o644))

	return &config.Config{
		Dataset: config.DatasetConfig{Path: path},
		Fetch:   config.FetchConfig{TimeoutSecs: 5},
		Cache:   config.CacheConfig{Driver: "file", Dir: filepath.Join(dir, "cache")},
		Parser: config.ParserConfig{
			Tier:         "full",
			MaxHeadings:  25,
			MaxBullets:   30,
			PreviewChars: 200,
		},
		Classify: config.ClassifyConfig{WindowRadius: 26, MaxWindow: 80, BucketCap: 12},
		Salary:   config.SalaryConfig{Min: 15000, Max: 200000},
		Brand: config.BrandConfig{
			SelfNames:    []string{"中華醫事"},
			SelfDomains:  []string{"hwu.edu.tw"},
			NoiseDomains: []string{"dcard", "ptt.cc"},
		},
	}
}

// execute runs cmd's RunE with flags applied and returns what it printed.
// Flags are restored to their defaults afterwards since commands are global.
func execute(t *testing.T, cmd *cobra.Command, flags map[string]string, args ...string) (string, error) {
	t.Helper()
	cfg = testCfg(t)

	for name, value := range flags {
		require.NoError(t, cmd.Flags().Set(name, value))
	}
	t.Cleanup(func() {
		for name := range flags {
			f := cmd.Flags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetContext(context.Background())
	err := cmd.RunE(cmd, args)
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	expected := []string{"overview", "keywords", "page", "analyze", "competitors", "questions", "draft"}
	for _, name := range expected {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "admissions-geo", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestCommand_Flags(t *testing.T) {
	tests := []struct {
		cmd  *cobra.Command
		flag string
		def  string
	}{
		{overviewCmd, "college", ""},
		{keywordsCmd, "department", ""},
		{keywordsCmd, "limit", "20"},
		{analyzeCmd, "keyword", ""},
		{analyzeCmd, "deep", "false"},
		{draftCmd, "deep", "false"},
		{competitorsCmd, "department", ""},
		{questionsCmd, "college", ""},
	}
	for _, tt := range tests {
		f := tt.cmd.Flags().Lookup(tt.flag)
		require.NotNil(t, f, "%s should have --%s", tt.cmd.Name(), tt.flag)
		assert.Equal(t, tt.def, f.DefValue)
	}
}

func TestOverviewCmd(t *testing.T) {
	out, err := execute(t, overviewCmd, nil)
	require.NoError(t, err)
	assert.Contains(t, out, "Keywords: 3  Monthly volume: 2000")
	assert.Contains(t, out, "護理系")
	assert.Contains(t, out, "資訊型")
	assert.Contains(t, out, "66.7%")
}

func TestOverviewCmd_UnknownCollege(t *testing.T) {
	out, err := execute(t, overviewCmd, map[string]string{"college": "不存在學院"})
	require.NoError(t, err)
	assert.Contains(t, out, "No keywords found.")
}

func TestKeywordsCmd(t *testing.T) {
	out, err := execute(t, keywordsCmd, map[string]string{"department": "護理系"})
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "護理系起薪多少"), strings.Index(out, "護理系出路如何"),
		"higher AI potential is listed first")
	assert.Contains(t, out, string(model.ThreatExcellent))
	assert.Contains(t, out, string(model.ThreatWarning))
}

func TestKeywordsCmd_RequiresDepartment(t *testing.T) {
	_, err := execute(t, keywordsCmd, nil)
	assert.Error(t, err)
}

func TestCompetitorsCmd(t *testing.T) {
	out, err := execute(t, competitorsCmd, map[string]string{"department": "護理系"})
	require.NoError(t, err)
	assert.Contains(t, out, "長庚科技大學")
	assert.Contains(t, out, "輔英科技大學")
	assert.NotContains(t, out, "hwu.edu.tw")
}

func TestQuestionsCmd(t *testing.T) {
	out, err := execute(t, questionsCmd, map[string]string{"college": "護理健康學院"})
	require.NoError(t, err)
	assert.Contains(t, out, "Decision questions: 2")
	assert.Contains(t, out, "護理系出路如何")
	assert.Contains(t, out, string(model.CategorySalary))
}

func TestAnalyzeCmd(t *testing.T) {
	out, err := execute(t, analyzeCmd, map[string]string{"department": "護理系", "keyword": "護理系出路如何"})
	require.NoError(t, err)
	assert.Contains(t, out, "Keyword:  護理系出路如何 (資訊型)")
	assert.Contains(t, out, "請為「護理系」撰寫一篇關於「護理系出路如何」的招生文章。")
	assert.Contains(t, out, "目前第一名：長庚科技大學護理系")
	assert.NotContains(t, out, "Run:", "no page insight without --deep")
}

func TestAnalyzeCmd_UnknownKeyword(t *testing.T) {
	_, err := execute(t, analyzeCmd, map[string]string{"department": "護理系", "keyword": "不存在"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestAnalyzeCmd_MissingFlags(t *testing.T) {
	_, err := execute(t, analyzeCmd, map[string]string{"department": "護理系"})
	assert.Error(t, err)
}

func TestDraftCmd_RequiresKey(t *testing.T) {
	_, err := execute(t, draftCmd, map[string]string{"department": "護理系", "keyword": "護理系出路如何"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic key")
}

func TestPageCmd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><head><title>護理系</title></head><body>
<h1>護理系介紹</h1><h2>就業出路</h2><p>畢業生起薪約 3.2~3.8萬，國考通過率 92%。</p></body></html>`))
	}))
	defer srv.Close()

	out, err := execute(t, pageCmd, nil, srv.URL+"/dept")
	require.NoError(t, err)
	assert.Contains(t, out, "ok: true")
	assert.Contains(t, out, "title: 護理系")
	assert.Contains(t, out, "passrate:")
	assert.Contains(t, out, "salary:")
}

func TestLoadScope(t *testing.T) {
	cfg = testCfg(t)
	records, err := loadScope(context.Background(), dataset.Scope{College: "民生學院"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "餐旅系評價", records[0].Keyword)
}
