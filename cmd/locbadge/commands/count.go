package commands

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/locbadge/locbadge/internal/counter"
	"github.com/locbadge/locbadge/internal/stats"
)

// NewCountCommand creates the local line-count command.
func NewCountCommand() *cobra.Command {
	var (
		engine  string
		noColor bool
	)

	cmd := &cobra.Command{
		Use:           "count [path]",
		Short:         "Count lines in a local directory",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			if noColor {
				color.NoColor = true
			}

			entry, err := counter.NewTokei(engine).Count(cobraCmd.Context(), path)
			if err != nil {
				return err
			}

			renderCountReport(cobraCmd.OutOrStdout(), path, entry)

			return nil
		},
	}

	cmd.Flags().StringVar(&engine, "engine", counter.DefaultBinary, "counting engine binary")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}

// renderCountReport prints an aggregate headline and a per-language table.
func renderCountReport(w io.Writer, path string, entry *stats.CacheEntry) {
	agg := entry.Aggregate

	headline := color.New(color.FgCyan, color.Bold).Sprintf("%s lines of code", humanize.Comma(agg.Code))
	fmt.Fprintf(w, "%s in %s (%s files, %s total lines)\n\n",
		headline, path, humanize.Comma(agg.Files), humanize.Comma(agg.Lines))

	if len(entry.Languages) == 0 {
		return
	}

	languages := stats.RankLanguages(entry.Languages, stats.CategoryCode)

	tbl := table.NewWriter()
	tbl.SetOutputMirror(w)
	tbl.SetStyle(table.StyleLight)

	tbl.AppendHeader(table.Row{"Language", "Lines", "Code", "Comments", "Blanks"})

	for _, l := range languages {
		tbl.AppendRow(table.Row{
			l.Name,
			humanize.Comma(l.Lines),
			humanize.Comma(l.Code),
			humanize.Comma(l.Comments),
			humanize.Comma(l.Blanks),
		})
	}

	tbl.AppendFooter(table.Row{
		"Total",
		humanize.Comma(agg.Lines),
		humanize.Comma(agg.Code),
		humanize.Comma(agg.Comments),
		humanize.Comma(agg.Blanks),
	})

	tbl.Render()
}
