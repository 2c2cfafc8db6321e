package commands

import (
	"fmt"
	"os"
	"slices"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/TemporalInept/lituus/pkg/persist"
)

// NewReportCommand creates the report subcommand: render a grammar coverage
// chart from a graph run's stats file.
func NewReportCommand() *cobra.Command {
	var (
		dir    string
		output string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a grammar coverage chart from a graph run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			statsPersister := persist.NewPersister[RunStats](dir, persist.NewJSONCodec())

			stats, err := statsPersister.Load(statsBasename)
			if err != nil {
				return fmt.Errorf("load run stats (did graph run first?): %w", err)
			}

			err = renderReport(*stats, output)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "report written to %s\n", output)

			return nil
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", "trees", "graph output directory")
	cmd.Flags().StringVarP(&output, "output", "o", "coverage.html", "report HTML file")

	return cmd
}

// renderReport writes a bar chart of clause counts per kind, with the
// unparsed bucket shown against the parsed kinds.
func renderReport(stats RunStats, path string) error {
	kinds := make([]string, 0, len(stats.ByKind))
	for kind := range stats.ByKind {
		kinds = append(kinds, kind)
	}

	slices.Sort(kinds)

	values := make([]opts.BarData, 0, len(kinds))
	for _, kind := range kinds {
		values = append(values, opts.BarData{Value: stats.ByKind[kind]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Grammar coverage by clause kind",
			Subtitle: fmt.Sprintf("catalog %s, rules %s, %d cards",
				stats.CatalogVersion, stats.RulesVersion, stats.Cards),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	bar.SetXAxis(kinds)
	bar.AddSeries("clauses", values)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	err = bar.Render(file)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	return nil
}
