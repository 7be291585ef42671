// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package main

import "github.com/coldbrewsec/xs128recover/xorshift"

// flip is one predicted coin-flip outcome.
type flip string

const (
	heads flip = "Heads"
	tails flip = "Tails"
)

func flipFromDraw(d float64) flip {
	if d < 0.5 {
		return heads
	}
	return tails
}

// predictProbableCoin predicts the next amount outcomes of
// edjefferson.com/probable's coinflip, which consumes exactly one
// Math.random() draw per flip.
func predictProbableCoin(rng xorshift.PRNG, amount int) []flip {
	out := make([]flip, amount)
	for i := range out {
		out[i] = flipFromDraw(rng.MathRandom())
	}
	return out
}

// predictGoogleCoin predicts the next amount outcomes of Google's "coin
// flip" search feature, which consumes one draw for the flip itself and
// discards four more before the next flip.
func predictGoogleCoin(rng xorshift.PRNG, amount int) []flip {
	out := make([]flip, amount)
	for i := range out {
		out[i] = flipFromDraw(rng.MathRandom())
		for j := 0; j < 4; j++ {
			rng.MathRandom()
		}
	}
	return out
}
