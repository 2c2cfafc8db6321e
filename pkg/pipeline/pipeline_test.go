package pipeline_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TemporalInept/lituus/pkg/card"
	"github.com/TemporalInept/lituus/pkg/mtgl/grapher"
	"github.com/TemporalInept/lituus/pkg/mtgl/parser"
	"github.com/TemporalInept/lituus/pkg/mtgl/symbol"
	"github.com/TemporalInept/lituus/pkg/pipeline"
)

func newPipeline(opts ...pipeline.Option) *pipeline.Pipeline {
	return pipeline.New(symbol.Default(), parser.DefaultRules(), opts...)
}

func TestProcess(t *testing.T) {
	t.Parallel()

	p := newPipeline()

	result := p.Process(context.Background(), card.Card{
		Name:  "Dark Ritual",
		Lines: []string{"Add {B}{B}{B}."},
	})

	require.NoError(t, result.Err)
	require.NotNil(t, result.Tree)

	assert.Equal(t, 1, result.Stats.Lines)
	assert.Positive(t, result.Stats.Tokens)
	assert.Positive(t, result.Stats.Clauses)
	assert.Zero(t, result.Stats.Unparsed)
	assert.InDelta(t, 1.0, result.Stats.Coverage(), 0.001)

	// Versions from the catalog and rule set land on the root.
	catVer, ok := result.Tree.Root().Attr(grapher.AttrCatalogVersion)
	require.True(t, ok)
	assert.Equal(t, symbol.DefaultVersion, catVer)
}

func TestProcess_InvalidCard(t *testing.T) {
	t.Parallel()

	p := newPipeline()

	result := p.Process(context.Background(), card.Card{Name: "No Text"})

	require.ErrorIs(t, result.Err, card.ErrNoLines)
	assert.Nil(t, result.Tree)
}

func TestProcess_UnparsedCounted(t *testing.T) {
	t.Parallel()

	p := newPipeline()

	result := p.Process(context.Background(), card.Card{
		Name:  "Gibberish",
		Lines: []string{"Cascade gibberish frobnicates wildly then draw a card"},
	})

	require.NoError(t, result.Err)
	assert.Positive(t, result.Stats.Unparsed)
	assert.Less(t, result.Stats.Coverage(), 1.0)
}

func TestProcess_Cancelled(t *testing.T) {
	t.Parallel()

	p := newPipeline()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := p.Process(ctx, card.Card{Name: "X", Lines: []string{"Flying"}})

	require.ErrorIs(t, result.Err, context.Canceled)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	p := newPipeline(pipeline.WithWorkers(8), pipeline.WithBufferSize(16))
	assert.Equal(t, 8, p.Workers)
	assert.Equal(t, 16, p.BufferSize)

	// Non-positive values fall back to the serial defaults.
	p = newPipeline(pipeline.WithWorkers(0), pipeline.WithBufferSize(-1))
	assert.Equal(t, 1, p.Workers)
	assert.Equal(t, 1, p.BufferSize)
}

func TestProcessBatch_OrderPreserved(t *testing.T) {
	t.Parallel()

	const n = 100

	p := newPipeline(pipeline.WithWorkers(8), pipeline.WithBufferSize(4))

	cards := make(chan card.Card, n)
	for i := range n {
		cards <- card.Card{
			Name:  fmt.Sprintf("Card %03d", i),
			Lines: []string{"Draw a card."},
		}
	}

	close(cards)

	var got []string
	for result := range p.ProcessBatch(context.Background(), cards) {
		require.NoError(t, result.Err)

		got = append(got, result.Card.Name)
	}

	require.Len(t, got, n)

	for i, name := range got {
		assert.Equal(t, fmt.Sprintf("Card %03d", i), name)
	}
}

func TestProcessBatch_BadCardDoesNotStopBatch(t *testing.T) {
	t.Parallel()

	p := newPipeline(pipeline.WithWorkers(2))

	cards := make(chan card.Card, 3)
	cards <- card.Card{Name: "Good One", Lines: []string{"Flying"}}
	cards <- card.Card{Name: "Bad"}
	cards <- card.Card{Name: "Good Two", Lines: []string{"Draw a card."}}
	close(cards)

	var stats pipeline.BatchStats
	for result := range p.ProcessBatch(context.Background(), cards) {
		stats.Add(result)
	}

	assert.Equal(t, 3, stats.Cards)
	assert.Equal(t, 1, stats.Failed)
	assert.Zero(t, stats.Structural)
}

func TestProcessBatch_Cancellation(t *testing.T) {
	t.Parallel()

	p := newPipeline(pipeline.WithWorkers(2))

	ctx, cancel := context.WithCancel(context.Background())

	cards := make(chan card.Card)
	out := p.ProcessBatch(ctx, cards)

	cards <- card.Card{Name: "First", Lines: []string{"Flying"}}
	<-out

	cancel()
	close(cards)

	// The output channel must drain after cancellation.
	for range out { //nolint:revive // drain
	}
}

func TestBatchStats_Coverage(t *testing.T) {
	t.Parallel()

	stats := pipeline.BatchStats{Clauses: 10, Unparsed: 2}
	assert.InDelta(t, 0.8, stats.Coverage(), 0.001)

	assert.InDelta(t, 1.0, pipeline.BatchStats{}.Coverage(), 0.001)
}
