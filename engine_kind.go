// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

// Package xs128 reconstructs the internal Xorshift128+ state behind a
// sequence of observed Math.random() outputs from V8 or SpiderMonkey, and
// hands back PRNG instances that reproduce subsequent outputs exactly.
package xs128

// Engine identifies which JavaScript engine's Math.random() produced a set
// of observations. The recovery engine dispatches on this tag to select
// the right observation-matrix set and PRNG constructor rather than relying
// on an interface vtable for that choice.
type Engine int

const (
	// V8 is Chromium/Node's engine: 64-output LIFO batches.
	V8 Engine = iota
	// SpiderMonkey is Firefox's engine: one direct output per draw.
	SpiderMonkey
)

func (e Engine) String() string {
	switch e {
	case V8:
		return "v8"
	case SpiderMonkey:
		return "spidermonkey"
	default:
		return "unknown"
	}
}

// minDraws returns the minimum number of observations (m) needed to recover
// a full 128-bit state: 4 for V8 (52 observable bits each), 128 for
// SpiderMonkey (1 observable bit each).
func minDraws(e Engine) int {
	if e == V8 {
		return 4
	}
	return 128
}

// observationWidth returns the number of observable bits per draw (w).
func observationWidth(e Engine) int {
	if e == V8 {
		return 52
	}
	return 1
}

func (e Engine) valid() bool {
	return e == V8 || e == SpiderMonkey
}
