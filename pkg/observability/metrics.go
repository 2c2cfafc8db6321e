package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricCardsTotal      = "lituus.cards.total"
	metricCardDuration    = "lituus.card.duration.seconds"
	metricLinesTotal      = "lituus.lines.total"
	metricClausesTotal    = "lituus.clauses.total"
	metricUnparsedTotal   = "lituus.clauses.unparsed.total"
	metricStructuralTotal = "lituus.errors.structural.total"

	attrStatus = "status"

	statusOK    = "ok"
	statusError = "error"
)

// cardDurationBoundaries covers sub-millisecond single-card parses up to
// multi-second pathological lines.
var cardDurationBoundaries = []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5}

// PipelineMetrics holds the OTel instruments recorded per processed card.
type PipelineMetrics struct {
	cardsTotal      metric.Int64Counter
	cardDuration    metric.Float64Histogram
	linesTotal      metric.Int64Counter
	clausesTotal    metric.Int64Counter
	unparsedTotal   metric.Int64Counter
	structuralTotal metric.Int64Counter
}

// NewPipelineMetrics creates pipeline metric instruments from the given meter.
func NewPipelineMetrics(mt metric.Meter) (*PipelineMetrics, error) {
	b := newMetricBuilder(mt)

	pm := &PipelineMetrics{
		cardsTotal:      b.counter(metricCardsTotal, "Total number of cards processed", "{card}"),
		cardDuration:    b.histogram(metricCardDuration, "Per-card processing duration in seconds", "s", cardDurationBoundaries...),
		linesTotal:      b.counter(metricLinesTotal, "Total number of oracle text lines parsed", "{line}"),
		clausesTotal:    b.counter(metricClausesTotal, "Total number of clauses recognized", "{clause}"),
		unparsedTotal:   b.counter(metricUnparsedTotal, "Total number of unparsed clauses emitted", "{clause}"),
		structuralTotal: b.counter(metricStructuralTotal, "Total number of structural graph errors", "{error}"),
	}

	if b.err != nil {
		return nil, b.err
	}

	return pm, nil
}

// RecordCard records one completed card with its line/clause counts.
func (pm *PipelineMetrics) RecordCard(ctx context.Context, duration time.Duration, lines, clauses, unparsed int, failed bool) {
	status := statusOK
	if failed {
		status = statusError
	}

	attrs := metric.WithAttributes(attribute.String(attrStatus, status))

	pm.cardsTotal.Add(ctx, 1, attrs)
	pm.cardDuration.Record(ctx, duration.Seconds(), attrs)
	pm.linesTotal.Add(ctx, int64(lines))
	pm.clausesTotal.Add(ctx, int64(clauses))
	pm.unparsedTotal.Add(ctx, int64(unparsed))
}

// RecordStructuralError counts a clause graph that violated the tree invariant.
func (pm *PipelineMetrics) RecordStructuralError(ctx context.Context) {
	pm.structuralTotal.Add(ctx, 1)
}
