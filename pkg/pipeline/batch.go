package pipeline

import (
	"context"
	"sync"

	"github.com/TemporalInept/lituus/pkg/card"
	"github.com/TemporalInept/lituus/pkg/mtgl/grapher"
)

// batchSlot holds a card being processed. The done channel is closed when
// processing is complete, allowing the emitter to wait without spinning.
type batchSlot struct {
	result Result
	done   chan struct{}
}

// ProcessBatch runs cards through the pipeline concurrently. Output order
// matches input order via a slot-based approach: slots enter an ordered
// queue at dispatch time and the emitter drains them in that order,
// waiting on each slot's completion.
func (p *Pipeline) ProcessBatch(ctx context.Context, cards <-chan card.Card) <-chan Result {
	out := make(chan Result, p.BufferSize)
	slots := make(chan *batchSlot, p.BufferSize)
	jobs := make(chan *batchSlot, p.BufferSize)

	go p.dispatch(ctx, cards, slots, jobs)

	wg := p.startWorkers(ctx, jobs)

	go p.emit(ctx, slots, out, wg)

	return out
}

// dispatch reads cards, creates slots, and sends them to the ordered queue
// and the worker pool.
func (p *Pipeline) dispatch(ctx context.Context, cards <-chan card.Card, slots, jobs chan<- *batchSlot) {
	defer close(slots)
	defer close(jobs)

	for c := range cards {
		select {
		case <-ctx.Done():
			return
		default:
		}

		slot := &batchSlot{result: Result{Card: c}, done: make(chan struct{})}

		select {
		case slots <- slot:
		case <-ctx.Done():
			return
		}

		select {
		case jobs <- slot:
		case <-ctx.Done():
			return
		}
	}
}

// startWorkers launches worker goroutines that process one card per job.
func (p *Pipeline) startWorkers(ctx context.Context, jobs <-chan *batchSlot) *sync.WaitGroup {
	var wg sync.WaitGroup

	wg.Add(p.Workers)

	for range p.Workers {
		go func() {
			defer wg.Done()

			for slot := range jobs {
				slot.result = p.Process(ctx, slot.result.Card)

				close(slot.done)
			}
		}()
	}

	return &wg
}

// emit sends results in order by waiting on each slot's done channel.
func (p *Pipeline) emit(ctx context.Context, slots <-chan *batchSlot, out chan<- Result, wg *sync.WaitGroup) {
	defer close(out)

	for slot := range slots {
		select {
		case <-slot.done:
		case <-ctx.Done():
			return
		}

		select {
		case out <- slot.result:
		case <-ctx.Done():
			return
		}
	}

	wg.Wait()
}

// BatchStats aggregates per-card stats across a run.
type BatchStats struct {
	Cards      int
	Failed     int
	Lines      int
	Clauses    int
	Unparsed   int
	Structural int
}

// Add folds one result into the aggregate.
func (bs *BatchStats) Add(r Result) {
	bs.Cards++

	if r.Err != nil {
		bs.Failed++
	}

	if grapher.IsStructural(r.Err) {
		bs.Structural++
	}

	bs.Lines += r.Stats.Lines
	bs.Clauses += r.Stats.Clauses
	bs.Unparsed += r.Stats.Unparsed
}

// Coverage returns the fraction of all clauses that parsed, in [0, 1].
func (bs BatchStats) Coverage() float64 {
	if bs.Clauses == 0 {
		return 1
	}

	return float64(bs.Clauses-bs.Unparsed) / float64(bs.Clauses)
}
