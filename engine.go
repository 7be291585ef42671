// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package xs128

import (
	"context"
	"fmt"
	"iter"
	"math"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/coldbrewsec/xs128recover/gf2"
	"github.com/coldbrewsec/xs128recover/internal/xlog"
	"github.com/coldbrewsec/xs128recover/xorshift"
)

var log = xlog.Get()

// Candidate is one verified state-recovery result: a PRNG instance
// positioned exactly after the supplied observations, ready to predict
// subsequent Math.random() outputs.
type Candidate struct {
	Engine Engine
	PRNG   xorshift.PRNG
	State0 uint64
	State1 uint64
	// Offset is the V8 within-batch alignment offset found during
	// verification (0 for SpiderMonkey, always 0<=Offset<=64 for V8).
	Offset int
}

// Recover reconstructs Xorshift128+ states consistent with observations and
// returns a lazy sequence of verified candidates. The sequence is empty,
// but not an error, if no state reproduces the observations exactly.
//
// Recover requires at least 4 observations for V8 or 128 for SpiderMonkey;
// fewer return ErrInsufficientObservations.
func Recover(engine Engine, observations []float64, opts ...Option) (iter.Seq[Candidate], error) {
	if !engine.valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidEngine, int(engine))
	}

	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	need := minDraws(engine)
	if len(observations) < need {
		return nil, fmt.Errorf("%w: %s needs at least %d observations, got %d",
			ErrInsufficientObservations, engine, need, len(observations))
	}

	if cfg.strict {
		if err := validateObservations(observations); err != nil {
			return nil, err
		}
	}

	mats, err := matricesFor(engine)
	if err != nil {
		return nil, err
	}

	observed := observedBits(engine, mats.draws, mats.width, observations)
	principal := observed.MulMatrix(mats.inverse)
	rank := mats.nullbasis.NumRows()
	cosetSize := uint64(1) << uint(rank)

	log.Debugf("recovering %s state from %d observations (left-nullspace rank %d, coset size %d)",
		engine, len(observations), rank, cosetSize)

	search := searchPlan{
		engine:    engine,
		mats:      mats,
		principal: principal,
		observed:  observed,
		obs:       observations,
		cosetSize: cosetSize,
	}

	if cfg.workers <= 1 {
		return search.sequential, nil
	}
	return search.parallel(cfg.workers), nil
}

func validateObservations(observations []float64) error {
	for i, d := range observations {
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 || d >= 1 {
			return fmt.Errorf("%w: observation %d = %v", ErrMalformedDouble, i, d)
		}
	}
	return nil
}

// searchPlan bundles the immutable inputs to a single Recover call's
// nullspace search so the sequential and parallel walkers share one
// candidate-testing path.
type searchPlan struct {
	engine    Engine
	mats      matrixSet
	principal gf2.Vector
	observed  gf2.Vector
	obs       []float64
	cosetSize uint64
}

// sequential walks the coset in key order, the default and the only mode
// that guarantees emission order.
func (p searchPlan) sequential(yield func(Candidate) bool) {
	for key := uint64(0); key < p.cosetSize; key++ {
		if cand, ok := p.tryKey(key); ok {
			if !yield(cand) {
				return
			}
		}
	}
}

// parallel walks the coset with a semaphore-bounded worker pool. Candidate
// emission order is unspecified: results are delivered in completion
// order, not key order.
func (p searchPlan) parallel(workers int) iter.Seq[Candidate] {
	return func(yield func(Candidate) bool) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		sem := semaphore.NewWeighted(int64(workers))
		results := make(chan Candidate)
		var wg sync.WaitGroup

		for key := uint64(0); key < p.cosetSize; key++ {
			if sem.Acquire(ctx, 1) != nil {
				break // context cancelled by an early-stopping consumer
			}
			wg.Add(1)
			go func(key uint64) {
				defer wg.Done()
				defer sem.Release(1)
				if cand, ok := p.tryKey(key); ok {
					select {
					case results <- cand:
					case <-ctx.Done():
					}
				}
			}(key)
		}
		go func() {
			wg.Wait()
			close(results)
		}()

		for cand := range results {
			if !yield(cand) {
				cancel()
				return
			}
		}
	}
}

// tryKey applies nullspace key to the principal solution, rejects it early
// if it does not reproduce the observed bits, and otherwise hands the
// decoded state to the engine-specific verifier.
func (p searchPlan) tryKey(key uint64) (Candidate, bool) {
	solution := gf2.ApplyNullspace(p.mats.nullbasis, p.principal, key)
	if !solution.MulMatrix(p.mats.observation).Equal(p.observed) {
		return Candidate{}, false
	}
	s0, s1 := solution.AsState()

	var cand Candidate
	var ok bool
	if p.engine == V8 {
		cand, ok = verifyV8(s0, s1, p.obs)
	} else {
		cand, ok = verifySpiderMonkey(s0, s1, p.obs)
	}
	log.Debugf("key=%d state=(%#x,%#x) verified=%v", key, s0, s1, ok)
	return cand, ok
}

// verifySpiderMonkey replays every observation against a freshly seeded
// SpiderMonkey generator and requires exact equality throughout.
func verifySpiderMonkey(s0, s1 uint64, observations []float64) (Candidate, bool) {
	rng := xorshift.NewSpiderMonkey(s0, s1)
	for _, want := range observations {
		if rng.MathRandom() != want {
			return Candidate{}, false
		}
	}
	return Candidate{Engine: SpiderMonkey, PRNG: rng, State0: s0, State1: s1}, true
}

// verifyV8 locates the within-batch offset at which the observations begin,
// rewinds and re-fills the cache to that alignment, then replays every
// observation and requires exact equality throughout.
//
// The offset search only looks at the first min(64, len(observations))
// calls: no disagreement found in that window means the observations began
// exactly at a batch boundary, so offset is 64.
func verifyV8(s0, s1 uint64, observations []float64) (Candidate, bool) {
	rng := xorshift.NewV8(s0, s1)

	probe := len(observations)
	if probe > 64 {
		probe = 64
	}
	offset := 64
	for i := 0; i < probe; i++ {
		if rng.MathRandom() != observations[i] {
			offset = i
			break
		}
	}

	for i := 0; i < offset; i++ {
		rng.PrevState()
	}
	rng.ClearCache()
	for i := 0; i < 64-offset; i++ {
		rng.MathRandom()
	}

	for _, want := range observations {
		if rng.MathRandom() != want {
			return Candidate{}, false
		}
	}
	return Candidate{Engine: V8, PRNG: rng, State0: s0, State1: s1, Offset: offset}, true
}
