// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package xorshift

import "math"

const float64ExponentBits = 0x3FF0000000000000

// V8 is the Xorshift128+ variant used by Chromium/Node's V8 engine. It
// refills a 64-entry LIFO cache whenever empty, so outputs are observed in
// the reverse of the order their underlying states were advanced.
type V8 struct {
	state State
	cache []float64
}

// NewV8 constructs a V8 generator with the given seed and an empty cache.
func NewV8(s0, s1 uint64) *V8 {
	return &V8{state: State{S0: s0, S1: s1}}
}

// MathRandom returns the next Math.random() output, refilling the cache
// from the current state when it is empty.
func (g *V8) MathRandom() float64 {
	if len(g.cache) == 0 {
		g.cache = make([]float64, 0, 64)
		for i := 0; i < 64; i++ {
			bits := (g.state.S0 >> 12) | float64ExponentBits
			g.cache = append(g.cache, math.Float64frombits(bits)-1.0)
			g.state.Next()
		}
	}
	last := len(g.cache) - 1
	v := g.cache[last]
	g.cache = g.cache[:last]
	return v
}

// PrevState steps the underlying state backward by one. It does not touch
// the output cache.
func (g *V8) PrevState() { g.state.Prev() }

// State returns the raw (s0, s1) state words.
func (g *V8) State() (s0, s1 uint64) { return g.state.S0, g.state.S1 }

// ClearCache empties the output cache, forcing the next MathRandom call to
// refill it from the current state. Used by the recovery engine to
// re-align a candidate to an observed batch offset.
func (g *V8) ClearCache() { g.cache = g.cache[:0] }

// CacheLen reports how many buffered outputs remain.
func (g *V8) CacheLen() int { return len(g.cache) }
