package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/admissions-geo/internal/prompt"
	"github.com/sells-group/admissions-geo/internal/writer"
	"github.com/sells-group/admissions-geo/pkg/anthropic"
)

var draftCmd = &cobra.Command{
	Use:   "draft",
	Short: "Draft a GEO article for one keyword",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		department, _ := cmd.Flags().GetString("department")
		keyword, _ := cmd.Flags().GetString("keyword")
		deep, _ := cmd.Flags().GetBool("deep")

		if cfg.Anthropic.Key == "" {
			return eris.New("anthropic key is not configured (set ADMISSIONS_ANTHROPIC_KEY)")
		}

		br, err := buildBriefing(ctx, department, keyword, deep)
		if err != nil {
			return err
		}

		w := writer.New(anthropic.NewClient(cfg.Anthropic.Key), cfg.Anthropic)
		d, err := w.Write(ctx, keyword, prompt.Assemble(br.Input))
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintln(cmd.OutOrStdout(), d.Text)
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "\nmodel=%s input=%d output=%d cost=$%.4f\n",
			d.Model, d.Usage.InputTokens, d.Usage.OutputTokens, d.CostUSD)
		return nil
	},
}

func init() {
	draftCmd.Flags().String("department", "", "department of the keyword")
	draftCmd.Flags().String("keyword", "", "keyword to draft")
	draftCmd.Flags().Bool("deep", false, "include page insight from the ranked results")
	rootCmd.AddCommand(draftCmd)
}
