package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/admissions-geo/internal/competitor"
	"github.com/sells-group/admissions-geo/internal/dataset"
	"github.com/sells-group/admissions-geo/internal/model"
)

var competitorsCmd = &cobra.Command{
	Use:   "competitors",
	Short: "Rank competitor schools and domains in the search results",
	RunE: func(cmd *cobra.Command, args []string) error {
		college, _ := cmd.Flags().GetString("college")
		department, _ := cmd.Flags().GetString("department")

		records, err := loadScope(cmd.Context(), dataset.Scope{College: college, Department: department})
		if err != nil {
			return err
		}

		mentions := competitor.Extract(records, brand())
		if len(mentions) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No competitors found.")
			return nil
		}
		formatCompetitors(cmd.OutOrStdout(), mentions)
		return nil
	},
}

func init() {
	competitorsCmd.Flags().String("college", "", "limit to one college")
	competitorsCmd.Flags().String("department", "", "limit to one department")
	rootCmd.AddCommand(competitorsCmd)
}

func formatCompetitors(out io.Writer, mentions []model.CompetitorMention) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "#\tCOMPETITOR\tWEIGHT\tEXAMPLE")
	_, _ = fmt.Fprintln(w, "-\t----------\t------\t-------")
	for i, m := range mentions {
		_, _ = fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i+1, m.Name, m.Weight, m.Example)
	}
	_ = w.Flush()
}
