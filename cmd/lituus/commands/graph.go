package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/TemporalInept/lituus/pkg/card"
	"github.com/TemporalInept/lituus/pkg/config"
	"github.com/TemporalInept/lituus/pkg/mtgl/grapher"
	"github.com/TemporalInept/lituus/pkg/mtgl/parser"
	"github.com/TemporalInept/lituus/pkg/mtgl/symbol"
	"github.com/TemporalInept/lituus/pkg/mtgt"
	"github.com/TemporalInept/lituus/pkg/observability"
	"github.com/TemporalInept/lituus/pkg/persist"
	"github.com/TemporalInept/lituus/pkg/pipeline"
	"github.com/TemporalInept/lituus/pkg/version"
)

// statsBasename is the name of the per-run stats artifact consumed by the
// report command.
const statsBasename = "stats"

// RunStats is the persisted summary of one graph run.
type RunStats struct {
	CatalogVersion string         `json:"catalog_version"`
	RulesVersion   string         `json:"rules_version"`
	Cards          int            `json:"cards"`
	Failed         int            `json:"failed"`
	Lines          int            `json:"lines"`
	Clauses        int            `json:"clauses"`
	Unparsed       int            `json:"unparsed"`
	Structural     int            `json:"structural"`
	ByKind         map[string]int `json:"by_kind"`
}

// NewGraphCommand creates the graph subcommand: parse a card corpus into
// trees on disk.
func NewGraphCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "graph <cards.json>",
		Short: "Build parse trees for a card corpus",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			return runGraph(cmd, cfg, args[0])
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file path")

	return cmd
}

func runGraph(cmd *cobra.Command, cfg *config.Config, corpusPath string) error {
	providers, err := observability.Init(observability.Config{
		ServiceName:        "lituus",
		ServiceVersion:     version.Version,
		OTLPEndpoint:       cfg.Otel.Endpoint,
		OTLPInsecure:       cfg.Otel.Insecure,
		PrometheusAddr:     cfg.Otel.PrometheusAddr,
		LogLevel:           parseLogLevel(cfg.Logging.Level),
		LogJSON:            cfg.Logging.JSON,
		ShutdownTimeoutSec: 5,
	})
	if err != nil {
		return fmt.Errorf("init observability: %w", err)
	}

	ctx := cmd.Context()

	defer func() {
		if shutdownErr := providers.Shutdown(context.WithoutCancel(ctx)); shutdownErr != nil {
			providers.Logger.Warn("telemetry shutdown", slog.Any("error", shutdownErr))
		}
	}()

	metrics, err := observability.NewPipelineMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("create metrics: %w", err)
	}

	cards, rejects, err := card.LoadFile(corpusPath)
	if err != nil {
		return err
	}

	catalog, err := buildCatalog(cfg.Catalog.Overlay)
	if err != nil {
		return err
	}

	p := pipeline.New(catalog, parser.DefaultRules(),
		pipeline.WithWorkers(cfg.Pipeline.Workers),
		pipeline.WithBufferSize(cfg.Pipeline.BufferSize),
		pipeline.WithObservability(providers, metrics),
	)

	persister, statsPersister := buildPersisters(cfg.Output)

	stats := RunStats{
		CatalogVersion: catalog.Version(),
		RulesVersion:   parser.DefaultRulesVersion,
		ByKind:         make(map[string]int),
	}

	var failures, structural []string

	in := make(chan card.Card, cfg.Pipeline.Workers)

	go func() {
		defer close(in)

		for _, c := range cards {
			select {
			case in <- c:
			case <-ctx.Done():
				return
			}
		}
	}()

	var batch pipeline.BatchStats

	for result := range p.ProcessBatch(ctx, in) {
		batch.Add(result)

		if result.Err != nil {
			msg := fmt.Sprintf("%s: %v", result.Card.Name, result.Err)
			if grapher.IsStructural(result.Err) {
				structural = append(structural, msg)
			} else {
				failures = append(failures, msg)
			}

			continue
		}

		countKinds(result.Tree, stats.ByKind)

		err = persister.Save(result.Card.Name, result.Tree)
		if err != nil {
			return fmt.Errorf("save tree for %q: %w", result.Card.Name, err)
		}
	}

	stats.Cards = batch.Cards
	stats.Failed = batch.Failed
	stats.Lines = batch.Lines
	stats.Clauses = batch.Clauses
	stats.Unparsed = batch.Unparsed
	stats.Structural = batch.Structural

	err = statsPersister.Save(statsBasename, &stats)
	if err != nil {
		return fmt.Errorf("save run stats: %w", err)
	}

	printSummary(cmd, cfg.Output.Directory, stats, batch)
	printProblems(cmd, rejects, failures, structural)

	return nil
}

// buildCatalog returns the default vocabulary, merged with an overlay when
// one is configured.
func buildCatalog(overlayPath string) (*symbol.Catalog, error) {
	catalog := symbol.Default()

	if overlayPath == "" {
		return catalog, nil
	}

	overlay, err := symbol.LoadOverlay(overlayPath)
	if err != nil {
		return nil, fmt.Errorf("load overlay: %w", err)
	}

	return symbol.Merge(catalog, overlay), nil
}

// buildPersisters constructs the tree and stats persisters per the output
// configuration. Stats are always plain JSON so the report command can read
// them regardless of tree format.
func buildPersisters(out config.OutputConfig) (*persist.Persister[mtgt.Tree], *persist.Persister[RunStats]) {
	var codec persist.Codec
	if out.Format == "gob" {
		codec = persist.NewGobCodec()
	} else {
		codec = persist.NewJSONCodec()
	}

	if out.Compress {
		codec = persist.NewLZ4Codec(codec)
	}

	return persist.NewPersister[mtgt.Tree](out.Directory, codec),
		persist.NewPersister[RunStats](out.Directory, persist.NewJSONCodec())
}

func countKinds(tree *mtgt.Tree, byKind map[string]int) {
	for node := range tree.Walk() {
		switch node.Label() {
		case grapher.LabelCard, grapher.LabelLine, grapher.LabelKeywords:
		default:
			byKind[node.Label()]++
		}
	}
}

func printSummary(cmd *cobra.Command, dir string, stats RunStats, batch pipeline.BatchStats) {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(cmd.OutOrStdout())
	tbl.SetStyle(table.StyleLight)
	tbl.AppendHeader(table.Row{"Metric", "Value"})
	tbl.AppendRows([]table.Row{
		{"Cards", humanize.Comma(int64(stats.Cards))},
		{"Lines", humanize.Comma(int64(stats.Lines))},
		{"Clauses", humanize.Comma(int64(stats.Clauses))},
		{"Unparsed", humanize.Comma(int64(stats.Unparsed))},
		{"Coverage", fmt.Sprintf("%.1f%%", batch.Coverage()*100)},
		{"Catalog", stats.CatalogVersion},
		{"Rules", stats.RulesVersion},
		{"Output", dir},
	})
	tbl.Render()
}

func printProblems(cmd *cobra.Command, rejects []*card.ValidationError, failures, structural []string) {
	out := cmd.OutOrStdout()
	warn := color.New(color.FgYellow)
	fail := color.New(color.FgRed)

	for _, reject := range rejects {
		warn.Fprintf(out, "skipped: %v\n", reject)
	}

	for _, failure := range failures {
		fail.Fprintf(out, "failed: %s\n", failure)
	}

	// Structural errors are grammar defects, not input problems; they get
	// their own section so they are not lost among bad cards.
	for _, failure := range structural {
		fail.Fprintf(out, "structural: %s\n", failure)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
