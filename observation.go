// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package xs128

import (
	"math"

	"github.com/coldbrewsec/xs128recover/gf2"
)

const mantissaMask = (1 << 52) - 1

// extractV8 returns the low 52 bits of the IEEE-754 pattern of (d + 1.0),
// the V8 mantissa bits that are a direct linear function of the state bits
// that produced d.
func extractV8(d float64) uint64 {
	return math.Float64bits(d+1.0) & mantissaMask
}

// extractSpiderMonkey returns the single observable bit of a SpiderMonkey
// output: the bit of the mantissa that was originally (s0+s1)&1, recovered
// from the double's exponent field.
func extractSpiderMonkey(d float64) uint64 {
	bits := math.Float64bits(d)
	exponent := bits >> 52
	return (bits >> (1022 - exponent)) & 1
}

func extractObservation(engine Engine, d float64) uint64 {
	if engine == V8 {
		return extractV8(d)
	}
	return extractSpiderMonkey(d)
}

// observedBits extracts and concatenates the observable bits of the first
// `draws` elements of observations into a single vector of length
// draws*width, matching the row layout of the engine's observation matrix.
func observedBits(engine Engine, draws, width int, observations []float64) gf2.Vector {
	v := gf2.NewVector(draws * width)
	for i := 0; i < draws; i++ {
		v.SetBits(i*width, width, extractObservation(engine, observations[i]))
	}
	return v
}
