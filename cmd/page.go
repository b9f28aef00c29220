package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var pageCmd = &cobra.Command{
	Use:   "page <url>",
	Short: "Fetch, parse, and classify one page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, closeStore, err := initAnalyzer(ctx)
		if err != nil {
			return err
		}
		defer closeStore()

		rec := a.AnalyzePage(ctx, args[0])

		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(rec); err != nil {
			return eris.Wrap(err, "encode page record")
		}
		return enc.Close()
	},
}

func init() {
	rootCmd.AddCommand(pageCmd)
}
