package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/admissions-geo/internal/dataset"
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Rank departments by search volume",
	RunE: func(cmd *cobra.Command, args []string) error {
		college, _ := cmd.Flags().GetString("college")

		records, err := loadScope(cmd.Context(), dataset.Scope{College: college})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "No keywords found.")
			return nil
		}

		formatOverview(cmd.OutOrStdout(), dataset.Overview(records))
		return nil
	},
}

func init() {
	overviewCmd.Flags().String("college", "", "limit to one college")
	rootCmd.AddCommand(overviewCmd)
}

func formatOverview(out io.Writer, s dataset.Summary) {
	_, _ = fmt.Fprintf(out, "Keywords: %d  Monthly volume: %.0f\n\n", s.Keywords, s.Volume)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COLLEGE\tDEPARTMENT\tKEYWORDS\tVOLUME")
	_, _ = fmt.Fprintln(w, "-------\t----------\t--------\t------")
	for _, d := range s.Departments {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%.0f\n", d.College, d.Department, d.Keywords, d.Volume)
	}
	_ = w.Flush()

	_, _ = fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "INTENT\tCOUNT\tSHARE")
	_, _ = fmt.Fprintln(w, "------\t-----\t-----")
	for _, in := range s.Intents {
		_, _ = fmt.Fprintf(w, "%s\t%d\t%.1f%%\n", in.Intent, in.Count, in.Percent)
	}
	_ = w.Flush()
}
