// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package xs128

import "errors"

// Sentinel errors returned by Recover. Use errors.Is to test for a
// specific kind; the wrapping fmt.Errorf calls that produce these add
// human-readable detail.
var (
	// ErrInsufficientObservations is returned when fewer than the engine's
	// minimum draw count were supplied.
	ErrInsufficientObservations = errors.New("xs128: insufficient observations")

	// ErrInvalidEngine is returned for an Engine value outside {V8,
	// SpiderMonkey}.
	ErrInvalidEngine = errors.New("xs128: invalid engine")

	// ErrMalformedDouble is returned by WithStrictValidation when an
	// observation is NaN, infinite, or outside [0, 1).
	ErrMalformedDouble = errors.New("xs128: malformed double")
)
