// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivisions(t *testing.T) {
	assert.Equal(t, 2, DivideRoundUp(8, 4))
	assert.Equal(t, 2, DivideRoundUp(6, 4))
	assert.Equal(t, 1, DivideRoundUp(1, 4))
	assert.Equal(t, 8, AlignByN(6, 4))
	assert.Equal(t, 12, AlignByN(9, 3))
	assert.Equal(t, 3, Slices(9))
	assert.Equal(t, Int3{2, 1, 3}, DivideRoundUp3(Int3{3, 1, 9}, Int3{2, 4, 3}))
}

func TestOHWDI(t *testing.T) {
	s := MakeOHWDI(8, 3, 3, 3, 4)
	assert.Equal(t, 8*27*4, s.Size())
	assert.Equal(t, 0, s.LinearIndex(0, 0, 0, 0, 0))
	assert.Equal(t, 1, s.LinearIndex(0, 0, 0, 0, 1))
	assert.Equal(t, 4, s.LinearIndex(0, 0, 0, 1, 0))
	assert.Equal(t, 3*4*3*3, s.LinearIndex(1, 0, 0, 0, 0))
	assert.True(t, s.Contains(7, 2, 2, 2, 3))
	assert.False(t, s.Contains(8, 0, 0, 0, 0))
	assert.False(t, s.Contains(0, 0, 0, 0, 4))
	assert.Panics(t, func() { _ = MakeOHWDI(0, 1, 1, 1, 1) })
}

func TestOHWDI_Iter(t *testing.T) {
	s := MakeOHWDI(2, 1, 3, 2, 5)
	count := 0
	for flatIdx, idx := range s.Iter() {
		require.Equal(t, count, flatIdx)
		require.Equal(t, flatIdx, s.LinearIndex(idx.O, idx.H, idx.W, idx.D, idx.I))
		count++
	}
	assert.Equal(t, s.Size(), count)

	// Early break.
	count = 0
	for range s.Iter() {
		count++
		if count == 7 {
			break
		}
	}
	assert.Equal(t, 7, count)
}

func TestInt3Permutations(t *testing.T) {
	v := Int3{10, 20, 30}
	for _, order := range []Int3{{0, 1, 2}, {2, 0, 1}, {1, 2, 0}, {0, 2, 1}, {2, 1, 0}, {1, 0, 2}} {
		require.True(t, order.IsPermutation())
		permuted := v.Permute(order)
		for i := range 3 {
			assert.Equal(t, v.At(order.At(i)), permuted.At(i))
		}
		assert.Equal(t, v, permuted.InversePermute(order), "order=%s", order)
	}
	assert.Equal(t, Int3{30, 10, 20}, v.Permute(Int3{2, 0, 1}))
	assert.False(t, Int3{0, 0, 1}.IsPermutation())
	assert.Panics(t, func() { _ = v.Permute(Int3{0, 1, 3}) })
	assert.Equal(t, 6000, v.Volume())
	assert.Equal(t, "(10, 20, 30)", v.String())
}

func TestHWD(t *testing.T) {
	s := HWD{H: 1, W: 2, D: 3}
	assert.Equal(t, Int3{X: 2, Y: 1, Z: 3}, s.XYZ())
	assert.Equal(t, "[H=1 W=2 D=3]", s.String())
}
