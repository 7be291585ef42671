// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package xs128

import (
	"sync"

	"github.com/coldbrewsec/xs128recover/gf2"
	"github.com/coldbrewsec/xs128recover/xorshift"
)

// matrixSet bundles the precomputed, immutable linear-algebra constants for
// one engine: the 128xM observation matrix A, its generalized inverse
// A+ (Mx128), and the left-nullbasis of A. Built once and read from any
// number of goroutines thereafter.
type matrixSet struct {
	observation *gf2.Matrix // A: 128 x (draws*width)
	inverse     *gf2.Matrix // A+: (draws*width) x 128
	nullbasis   *gf2.Matrix // N: rank x 128
	draws       int         // m
	width       int         // w
}

var (
	v8Once     sync.Once
	v8Matrices matrixSet

	spiderMonkeyOnce     sync.Once
	spiderMonkeyMatrices matrixSet
)

// matricesFor returns the immutable matrix set for engine, computing it on
// first use.
func matricesFor(engine Engine) (matrixSet, error) {
	switch engine {
	case V8:
		v8Once.Do(func() { v8Matrices = buildMatrixSet(V8) })
		return v8Matrices, nil
	case SpiderMonkey:
		spiderMonkeyOnce.Do(func() { spiderMonkeyMatrices = buildMatrixSet(SpiderMonkey) })
		return spiderMonkeyMatrices, nil
	default:
		return matrixSet{}, ErrInvalidEngine
	}
}

// buildMatrixSet constructs the observation matrix for engine by seeding a
// fresh PRNG with a single bit set at each of the 128 state positions and
// recording the observable bits of its first `draws` outputs. Because
// Math.random() is GF(2)-linear in the state bits for both engines,
// superposition lets row i represent the observable-bit contribution of
// state bit i alone.
func buildMatrixSet(engine Engine) matrixSet {
	draws := minDraws(engine)
	width := observationWidth(engine)
	cols := draws * width

	a := gf2.NewMatrix(128, cols)
	for bit := 0; bit < 128; bit++ {
		prng := seedWithBit(engine, bit)
		for i := 0; i < draws; i++ {
			value := extractObservation(engine, prng.MathRandom())
			a.Row(bit).SetBits(i*width, width, value)
		}
	}

	return matrixSet{
		observation: a,
		inverse:     gf2.GeneralizedInverse(a),
		nullbasis:   gf2.LeftNullbasis(a),
		draws:       draws,
		width:       width,
	}
}

// seedWithBit constructs an engine PRNG whose 128-bit state has exactly one
// bit set, bit i of s0 for i<64 and bit (i-64) of s1 otherwise.
func seedWithBit(engine Engine, bit int) xorshift.PRNG {
	var s0, s1 uint64
	if bit < 64 {
		s0 = uint64(1) << uint(bit)
	} else {
		s1 = uint64(1) << uint(bit-64)
	}
	if engine == V8 {
		return xorshift.NewV8(s0, s1)
	}
	return xorshift.NewSpiderMonkey(s0, s1)
}
