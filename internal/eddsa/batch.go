package eddsa

import (
	"context"
	"runtime"
	"sync"

	"github.com/ziesha-network/zwallet/internal/math"
	"github.com/ziesha-network/zwallet/internal/metrics"
	"github.com/ziesha-network/zwallet/internal/sponge"
)

// BatchItem is one independent verification task.
type BatchItem struct {
	PublicKey PublicKey
	Message   math.FieldElement
	Signature Signature
}

// BatchVerifier verifies many independent signatures in parallel. Items share no state, so no coordination beyond
// work distribution is needed.
type BatchVerifier struct {
	hasher  sponge.Hasher
	workers int
	metrics *metrics.Metrics
}

// NewBatchVerifier returns a verifier using the given number of workers; workers <= 0 selects runtime.NumCPU().
// m may be nil.
func NewBatchVerifier(h sponge.Hasher, workers int, m *metrics.Metrics) *BatchVerifier {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &BatchVerifier{h, workers, m}
}

// Verify returns, for each item, whether its signature is valid. If ctx is cancelled before all items were processed,
// the context's error is returned together with the partial results; unprocessed items are reported as invalid.
func (v *BatchVerifier) Verify(ctx context.Context, items []BatchItem) ([]bool, error) {
	results := make([]bool, len(items))
	work := make(chan int)

	var wg sync.WaitGroup
	for range min(v.workers, len(items)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range work {
				item := items[i]
				results[i] = Verify(v.hasher, item.PublicKey, item.Message, item.Signature)
				v.metrics.Verified(results[i])
			}
		}()
	}

	var err error
dispatch:
	for i := range items {
		if err = ctx.Err(); err != nil {
			break
		}
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break dispatch
		case work <- i:
		}
	}
	close(work)
	wg.Wait()

	return results, err
}
