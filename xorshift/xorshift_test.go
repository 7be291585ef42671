// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package xorshift

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStateReversibility(t *testing.T) {
	seeds := []State{
		{S0: 1, S1: 0},
		{S0: 0, S1: 1},
		{S0: 0x0123456789ABCDEF, S1: 0xFEDCBA9876543210},
		{S0: ^uint64(0), S1: ^uint64(0) >> 1},
	}
	for _, seed := range seeds {
		s := seed
		s.Next()
		s.Prev()
		require.Equal(t, seed, s, "prev(next(s)) must equal s for seed %+v", seed)

		s = seed
		s.Prev()
		s.Next()
		require.Equal(t, seed, s, "next(prev(s)) must equal s for seed %+v", seed)
	}
}

func TestZeroStateIsFixed(t *testing.T) {
	s := State{}
	s.Next()
	require.Equal(t, State{}, s, "all-zero state must be a fixed point of Next")
}

func TestV8CacheOrderIsLIFO(t *testing.T) {
	g := NewV8(0x0123456789ABCDEF, 0xFEDCBA9876543210)

	// Recompute the same 64 outputs independently by stepping the state
	// forward and deriving each double the way MathRandom does internally,
	// then assert they come back out of the cache in reverse.
	state := State{S0: 0x0123456789ABCDEF, S1: 0xFEDCBA9876543210}
	var forward [64]float64
	for i := 0; i < 64; i++ {
		bits := (state.S0 >> 12) | float64ExponentBits
		forward[i] = math.Float64frombits(bits) - 1.0
		state.Next()
	}

	for i := 63; i >= 0; i-- {
		require.Equal(t, forward[i], g.MathRandom(), "output %d out of LIFO order", i)
	}
}

func TestV8RefillsOnCacheExhaustion(t *testing.T) {
	g := NewV8(1, 2)
	for i := 0; i < 64; i++ {
		g.MathRandom()
	}
	require.Equal(t, 0, g.CacheLen())
	// Should not panic; triggers a fresh 64-entry refill.
	_ = g.MathRandom()
	require.Equal(t, 63, g.CacheLen())
}

func TestSpiderMonkeyRangeIsUnitInterval(t *testing.T) {
	g := NewSpiderMonkey(1, 0)
	for i := 0; i < 1000; i++ {
		v := g.MathRandom()
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
}

func TestPRNGInterfaceSatisfied(t *testing.T) {
	var _ PRNG = NewV8(1, 2)
	var _ PRNG = NewSpiderMonkey(1, 2)
}
