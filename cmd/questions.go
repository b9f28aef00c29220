package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/admissions-geo/internal/dataset"
	"github.com/sells-group/admissions-geo/internal/model"
	"github.com/sells-group/admissions-geo/internal/question"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "Rank the decision questions applicants search for",
	RunE: func(cmd *cobra.Command, args []string) error {
		college, _ := cmd.Flags().GetString("college")
		department, _ := cmd.Flags().GetString("department")

		records, err := loadScope(cmd.Context(), dataset.Scope{College: college, Department: department})
		if err != nil {
			return err
		}

		report := question.Classify(records)
		if report.Total == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No decision questions found.")
			return nil
		}
		formatQuestions(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	questionsCmd.Flags().String("college", "", "limit to one college")
	questionsCmd.Flags().String("department", "", "limit to one department")
	rootCmd.AddCommand(questionsCmd)
}

func formatQuestions(out io.Writer, r model.QuestionReport) {
	_, _ = fmt.Fprintf(out, "Decision questions: %d\n\n", r.Total)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tQUESTION\tCATEGORY\tCOUNT")
	_, _ = fmt.Fprintln(w, "-\t--------\t--------\t-----")
	for i, q := range r.Top {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, q.Text, q.Category, q.Count)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CATEGORY\tCOUNT\tSHARE\tEXAMPLE")
	_, _ = fmt.Fprintln(w, "--------\t-----\t-----\t-------")
	for _, s := range r.Shares {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%s\n", s.Category, s.Count, s.Percent, s.Example)
	}
	_ = w.Flush()
}
