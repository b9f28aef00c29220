package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/admissions-geo/internal/competitor"
	"github.com/sells-group/admissions-geo/internal/dataset"
	"github.com/sells-group/admissions-geo/internal/model"
	"github.com/sells-group/admissions-geo/internal/prompt"
	"github.com/sells-group/admissions-geo/internal/question"
)

// briefing is everything known about one keyword before drafting.
type briefing struct {
	Record  model.KeywordRecord
	Insight *model.Insight
	Input   prompt.Input
}

// buildBriefing gathers the threat, competitors, questions, and (when deep)
// page insight for keyword in department.
func buildBriefing(ctx context.Context, department, keyword string, deep bool) (*briefing, error) {
	if department == "" || keyword == "" {
		return nil, eris.New("--department and --keyword are required")
	}

	scoped, err := loadScope(ctx, dataset.Scope{Department: department})
	if err != nil {
		return nil, err
	}
	rec, err := findKeyword(scoped, department, keyword)
	if err != nil {
		return nil, err
	}

	b := brand()
	in := prompt.FromRecord(rec)
	in.Threat = competitor.AssessThreat(rec.TopResult().Title, b)
	in.Competitors = competitor.Extract(scoped, b)
	in.Questions = question.Classify(scoped)

	out := &briefing{Record: rec}
	if deep {
		a, closeStore, err := initAnalyzer(ctx)
		if err != nil {
			return nil, err
		}
		defer closeStore()

		insight := a.AnalyzeLinks(ctx, rec.Links())
		in.Paragraphs = insight.Paragraphs
		in.Gaps = insight.Gaps
		out.Insight = &insight
	}
	out.Input = in

	zap.L().Debug("briefing built",
		zap.String("keyword", keyword),
		zap.String("threat", string(in.Threat.Level)),
		zap.Int("competitors", len(in.Competitors)),
		zap.Bool("deep", deep),
	)
	return out, nil
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Build the writing directive for one keyword",
	RunE: func(cmd *cobra.Command, args []string) error {
		department, _ := cmd.Flags().GetString("department")
		keyword, _ := cmd.Flags().GetString("keyword")
		deep, _ := cmd.Flags().GetBool("deep")

		br, err := buildBriefing(cmd.Context(), department, keyword, deep)
		if err != nil {
			return err
		}

		formatBriefing(cmd.OutOrStdout(), br)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().String("department", "", "department of the keyword")
	analyzeCmd.Flags().String("keyword", "", "keyword to analyze")
	analyzeCmd.Flags().Bool("deep", false, "fetch and analyze the ranked result pages")
	rootCmd.AddCommand(analyzeCmd)
}

func formatBriefing(out io.Writer, br *briefing) {
	_, _ = fmt.Fprintf(out, "Keyword:  %s\n", br.Record.Label())
	_, _ = fmt.Fprintf(out, "Threat:   %s\n", br.Input.Threat.Label)
	if br.Insight != nil {
		_, _ = fmt.Fprintf(out, "Run:      %s\n", br.Insight.RunID)
		ok := 0
		for _, p := range br.Insight.Pages {
			if p.Record.OK {
				ok++
			}
		}
		_, _ = fmt.Fprintf(out, "Pages:    %d/%d analyzed\n", ok, len(br.Insight.Pages))
		for _, p := range br.Insight.Pages {
			if !p.Record.OK {
				_, _ = fmt.Fprintf(out, "  #%d %s: %s\n", p.Rank, p.Record.URL, p.Record.FailReason)
			}
		}
	}
	_, _ = fmt.Fprintln(out)
	_, _ = fmt.Fprintln(out, prompt.Assemble(br.Input))
}
