// Package pipeline runs cards through the tag, tokenize, parse and graph
// stages, serially for one card or concurrently for a batch with output
// order preserved.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/TemporalInept/lituus/pkg/card"
	"github.com/TemporalInept/lituus/pkg/mtgl/grapher"
	"github.com/TemporalInept/lituus/pkg/mtgl/lexer"
	"github.com/TemporalInept/lituus/pkg/mtgl/parser"
	"github.com/TemporalInept/lituus/pkg/mtgl/symbol"
	"github.com/TemporalInept/lituus/pkg/mtgl/tagger"
	"github.com/TemporalInept/lituus/pkg/mtgt"
	"github.com/TemporalInept/lituus/pkg/observability"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// Pipeline wires the four stages over one catalog and rule set. Safe for
// concurrent use once constructed.
type Pipeline struct {
	Workers    int
	BufferSize int

	catalog *symbol.Catalog
	tagger  *tagger.Tagger
	parser  *parser.Parser
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics *observability.PipelineMetrics
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithWorkers sets the batch worker count.
func WithWorkers(n int) Option {
	return func(p *Pipeline) { p.Workers = n }
}

// WithBufferSize sets the batch channel capacity.
func WithBufferSize(n int) Option {
	return func(p *Pipeline) { p.BufferSize = n }
}

// WithObservability attaches a tracer, logger and metrics from initialized
// providers.
func WithObservability(providers observability.Providers, metrics *observability.PipelineMetrics) Option {
	return func(p *Pipeline) {
		p.tracer = providers.Tracer
		p.logger = providers.Logger
		p.metrics = metrics
	}
}

// New creates a Pipeline over the given catalog and rule set.
func New(catalog *symbol.Catalog, rules *parser.RuleSet, opts ...Option) *Pipeline {
	p := &Pipeline{
		Workers:    1,
		BufferSize: 1,
		catalog:    catalog,
		tagger:     tagger.New(catalog),
		parser:     parser.New(rules),
		tracer:     nooptrace.NewTracerProvider().Tracer("lituus"),
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.Workers <= 0 {
		p.Workers = 1
	}

	if p.BufferSize <= 0 {
		p.BufferSize = 1
	}

	return p
}

// Stats summarizes one card's parse quality.
type Stats struct {
	Lines    int
	Tokens   int
	Clauses  int
	Unparsed int
}

// Coverage returns the fraction of clauses that parsed, in [0, 1].
// A card with no clauses counts as fully covered.
func (s Stats) Coverage() float64 {
	if s.Clauses == 0 {
		return 1
	}

	return float64(s.Clauses-s.Unparsed) / float64(s.Clauses)
}

// Result is one card's pipeline output. Err is set on validation or
// structural failure; Tree is nil in that case.
type Result struct {
	Card  card.Card
	Tree  *mtgt.Tree
	Err   error
	Stats Stats
}

// Process runs one card through all four stages.
func (p *Pipeline) Process(ctx context.Context, c card.Card) Result {
	start := time.Now()

	ctx, span := p.tracer.Start(ctx, "pipeline.process",
		trace.WithAttributes(attribute.String("card.name", c.Name)))
	defer span.End()

	result := p.process(ctx, c)

	if p.metrics != nil {
		p.metrics.RecordCard(ctx, time.Since(start),
			result.Stats.Lines, result.Stats.Clauses, result.Stats.Unparsed, result.Err != nil)

		if result.Err != nil && grapher.IsStructural(result.Err) {
			p.metrics.RecordStructuralError(ctx)
		}
	}

	if result.Err != nil {
		p.logger.WarnContext(ctx, "card failed",
			slog.String("card", c.Name), slog.Any("error", result.Err))
	} else if result.Stats.Unparsed > 0 {
		p.logger.DebugContext(ctx, "card parsed with unparsed clauses",
			slog.String("card", c.Name), slog.Int("unparsed", result.Stats.Unparsed))
	}

	return result
}

func (p *Pipeline) process(ctx context.Context, c card.Card) Result {
	result := Result{Card: c}

	err := c.Validate()
	if err != nil {
		result.Err = fmt.Errorf("validate card %q: %w", c.Name, err)

		return result
	}

	lines := make([][]*parser.Clause, 0, len(c.Lines))

	for i, line := range c.Lines {
		if ctx.Err() != nil {
			result.Err = fmt.Errorf("card %q: %w", c.Name, ctx.Err())

			return result
		}

		tokens := lexer.Tokenize(p.tagger.TagCard(c.Name, line))

		clauses, err := p.parser.Parse(tokens)
		if err != nil {
			result.Err = fmt.Errorf("parse card %q line %d: %w", c.Name, i, err)

			return result
		}

		result.Stats.Lines++
		result.Stats.Tokens += len(tokens)
		countClauses(clauses, &result.Stats)

		lines = append(lines, clauses)
	}

	meta := grapher.Meta{
		CatalogVersion: p.catalog.Version(),
		RulesVersion:   p.parser.RuleSetVersion(),
	}

	tree, err := grapher.Graph(c, lines, meta)
	if err != nil {
		result.Err = fmt.Errorf("graph card %q: %w", c.Name, err)

		return result
	}

	result.Tree = tree

	return result
}

func countClauses(clauses []*parser.Clause, stats *Stats) {
	for _, c := range clauses {
		stats.Clauses++

		if c.Kind == parser.KindUnparsed {
			stats.Unparsed++
		}

		countClauses(c.Children, stats)
	}
}
