package cpuminer

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/SummerOfBitcoin/code-challenge-2024-DreadPirate07/model"
	"github.com/libsv/go-p2p/chaincfg/chainhash"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
)

// ErrNonceExhausted is returned when the whole nonce range has been searched
// without meeting the target. The caller can adjust the timestamp or
// extranonce and retry; the search never wraps the nonce silently.
var ErrNonceExhausted = errors.New("nonce space exhausted without meeting target")

type Options struct {
	// Workers is the number of goroutines sharing the nonce range. Defaults
	// to the number of CPUs.
	Workers int

	// StartNonce is the first nonce tried.
	StartNonce uint32

	// MaxNonce is the last nonce tried, inclusive. Zero means the full
	// 32-bit domain.
	MaxNonce uint32
}

// Search shards the nonce range across workers, each trying candidate nonces
// against its own immutable copy of the header. The first success cancels
// the remaining workers and the numerically smallest successful nonce wins.
// On success the winning nonce is written back into header.
func Search(ctx context.Context, header *model.BlockHeader, target []byte, opts Options) (uint32, *chainhash.Hash, error) {
	initPrometheusMetrics()

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	maxNonce := opts.MaxNonce
	if maxNonce == 0 {
		maxNonce = math.MaxUint32
	}

	if opts.StartNonce > maxNonce {
		return 0, nil, fmt.Errorf("start nonce %d beyond max nonce %d", opts.StartNonce, maxNonce)
	}

	span := (uint64(maxNonce)-uint64(opts.StartNonce))/uint64(workers) + 1

	searchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(searchCtx)
	results := make(chan uint32, workers)
	attempts := atomic.NewUint64(0)

	for w := 0; w < workers; w++ {
		lo := uint64(opts.StartNonce) + uint64(w)*span
		if lo > uint64(maxNonce) {
			break
		}

		hi := lo + span - 1
		if hi > uint64(maxNonce) {
			hi = uint64(maxNonce)
		}

		loNonce, hiNonce := uint32(lo), uint32(hi)

		g.Go(func() error {
			h := *header // worker-local snapshot, only the nonce differs

			for nonce := loNonce; ; nonce++ {
				if gCtx.Err() != nil {
					return nil
				}

				h.Nonce = nonce
				attempts.Inc()

				if ok, _ := h.HasMetTarget(target); ok {
					results <- nonce
					cancel()

					return nil
				}

				if nonce == hiNonce {
					return nil
				}
			}
		})
	}

	_ = g.Wait()
	close(results)

	prometheusHashAttempts.Add(float64(attempts.Load()))

	found := false
	best := uint32(0)

	for nonce := range results {
		if !found || nonce < best {
			found = true
			best = nonce
		}
	}

	if !found {
		if err := ctx.Err(); err != nil {
			return 0, nil, err
		}

		return 0, nil, ErrNonceExhausted
	}

	header.Nonce = best
	_, blockHash := header.HasMetTarget(target)

	return best, blockHash, nil
}
