// Copyright (c) 2025, Lux Industries Inc
// SPDX-License-Identifier: BSD-3-Clause

package gf2

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// dumpRows renders a matrix as a slice of uint64 rows for go-cmp diffing;
// raw Vector structs don't compare usefully since Equal ignores tail bits
// that cmp.Diff would otherwise flag as different.
func dumpRows(m *Matrix) []uint64 {
	out := make([]uint64, m.NumRows())
	for i := range out {
		if m.NumCols() <= 64 {
			out[i] = m.Row(i).ToUint64()
		}
	}
	return out
}

func TestIntBitsRoundTrip(t *testing.T) {
	for _, n := range []uint64{0, 1, 2, 3, 255, 1 << 20, ^uint64(0)} {
		k := 64
		got := IntToBits(n, k).ToUint64()
		require.Equal(t, n, got, "round trip of %d", n)
	}
}

func TestVectorSetBits(t *testing.T) {
	v := NewVector(16)
	v.SetBits(4, 8, 0xFF)
	require.Equal(t, uint64(0x0FF0), v.ToUint64())
}

func TestStateVectorRoundTrip(t *testing.T) {
	s0, s1 := uint64(0x0123456789ABCDEF), uint64(0xFEDCBA9876543210)
	v := StateVector(s0, s1)
	gotS0, gotS1 := v.AsState()
	require.Equal(t, s0, gotS0)
	require.Equal(t, s1, gotS1)
}

func TestEchelonIdentity(t *testing.T) {
	id := Identity(4)
	echelon, transform, rank, pivots := Echelon(id)
	require.Equal(t, 4, rank)
	require.Equal(t, []int{0, 1, 2, 3}, pivots)
	require.True(t, echelon.Equal(id))
	require.True(t, transform.Equal(Identity(4)))
}

func TestGeneralizedInverseFullRank(t *testing.T) {
	// A permutation matrix is its own inverse's transpose; for GF(2) a
	// permutation matrix P satisfies P * P^T * P = P trivially since P is
	// already invertible, and our generalized inverse must reduce to it.
	m := NewMatrix(3, 3)
	m.Row(0).Set(1, true)
	m.Row(1).Set(2, true)
	m.Row(2).Set(0, true)

	inv := GeneralizedInverse(m)
	product := m.MulMatrix(inv).MulMatrix(m)
	require.True(t, product.Equal(m), "m*inv*m must equal m; diff(rows)=%s",
		cmp.Diff(dumpRows(m), dumpRows(product)))
}

func TestLeftNullbasisFullRowRankIsEmpty(t *testing.T) {
	// 2x4 full row-rank matrix: rows are independent, so the left
	// nullspace is trivial.
	m := NewMatrix(2, 4)
	m.Row(0).Set(0, true)
	m.Row(1).Set(1, true)

	basis := LeftNullbasis(m)
	require.Equal(t, 0, basis.NumRows())
}

func TestLeftNullbasisRankDeficient(t *testing.T) {
	// Row 2 is a duplicate of row 0, so rank is 2 and the left nullspace
	// is spanned by (1,0,1).
	m := NewMatrix(3, 3)
	m.Row(0).Set(0, true)
	m.Row(1).Set(1, true)
	m.Row(2).Set(0, true)

	basis := LeftNullbasis(m)
	require.Equal(t, 1, basis.NumRows())

	row := basis.Row(0)
	product := row.MulMatrix(m)
	require.True(t, product.IsZero(), "nullbasis row must satisfy row*m = 0")
}

func TestApplyNullspaceCoset(t *testing.T) {
	nullbasis := NewMatrix(2, 3)
	nullbasis.Row(0).Set(0, true)
	nullbasis.Row(1).Set(1, true)

	principal := NewVector(3)
	principal.Set(2, true)

	key0 := ApplyNullspace(nullbasis, principal, 0)
	require.True(t, key0.Equal(principal))

	key1 := ApplyNullspace(nullbasis, principal, 1)
	require.True(t, key1.Get(0))
	require.False(t, key1.Get(1))
	require.True(t, key1.Get(2))

	key3 := ApplyNullspace(nullbasis, principal, 3)
	require.True(t, key3.Get(0))
	require.True(t, key3.Get(1))
	require.True(t, key3.Get(2))
}

func TestResizeGrowAndShrink(t *testing.T) {
	m := NewMatrix(2, 2)
	m.Row(0).Set(0, true)
	m.Row(1).Set(1, true)

	grown := Resize(m, 4, 4)
	require.Equal(t, 4, grown.NumRows())
	require.True(t, grown.Row(0).Get(0))
	require.False(t, grown.Row(3).Get(0))

	shrunk := Resize(m, 1, 1)
	require.Equal(t, 1, shrunk.NumRows())
	require.True(t, shrunk.Row(0).Get(0))
}

func TestVectorMulMatrix(t *testing.T) {
	m := NewMatrix(3, 2)
	m.Row(0).SetBits(0, 2, 0b11)
	m.Row(1).SetBits(0, 2, 0b01)
	m.Row(2).SetBits(0, 2, 0b10)

	v := NewVector(3)
	v.Set(0, true)
	v.Set(2, true)

	got := v.MulMatrix(m)
	// row0 xor row2 = 0b11 xor 0b10 = 0b01
	require.Equal(t, uint64(0b01), got.ToUint64())
}
