package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/admissions-geo/internal/competitor"
	"github.com/sells-group/admissions-geo/internal/dataset"
	"github.com/sells-group/admissions-geo/internal/model"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List a department's keywords by AI potential",
	RunE: func(cmd *cobra.Command, args []string) error {
		department, _ := cmd.Flags().GetString("department")
		limit, _ := cmd.Flags().GetInt("limit")
		if department == "" {
			return eris.New("--department is required")
		}

		records, err := loadScope(cmd.Context(), dataset.Scope{Department: department})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No keywords found.")
			return nil
		}

		records = dataset.ByAIPotential(records)
		if limit > 0 && len(records) > limit {
			records = records[:limit]
		}
		formatKeywords(cmd.OutOrStdout(), records, brand())
		return nil
	},
}

func init() {
	keywordsCmd.Flags().String("department", "", "department to list")
	keywordsCmd.Flags().Int("limit", 20, "max number of keywords to display")
	rootCmd.AddCommand(keywordsCmd)
}

func formatKeywords(out io.Writer, records []model.KeywordRecord, b competitor.Brand) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "KEYWORD\tINTENT\tAI\tVOLUME\tTHREAT\tTOP RESULT")
	_, _ = fmt.Fprintln(w, "-------\t------\t--\t------\t------\t----------")
	for _, r := range records {
		top := r.TopResult()
		threat := competitor.AssessThreat(top.Title, b)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%s\t%s\n",
			r.Keyword,
			r.Intent,
			r.Signals.AIPotential,
			r.Signals.SearchVolume,
			threat.Level,
			truncateRunes(top.Title, 30),
		)
	}
	_ = w.Flush()
}

// truncateRunes clips s to n runes with a trailing ellipsis.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
