// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// Int3 is a small 3-axis integer vector, used for kernel sizes, strides, grid and work-group sizes.
//
// The axes are named after the GPU dispatch axes (X, Y, Z), which for convolutions map to
// width, height and depth respectively.
type Int3 struct {
	X, Y, Z int
}

// Int4 is a small 4-axis integer vector. Block sizes use W for the output-channels tile.
type Int4 struct {
	X, Y, Z, W int
}

// At returns the value of the given axis (0, 1 or 2). It panics for other axes.
func (v Int3) At(axis int) int {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	case 2:
		return v.Z
	}
	exceptions.Panicf("Int3.At(%d): axis out-of-bounds", axis)
	return 0
}

// Array returns the values as a Go array.
func (v Int3) Array() [3]int { return [3]int{v.X, v.Y, v.Z} }

// Volume returns X*Y*Z.
func (v Int3) Volume() int { return v.X * v.Y * v.Z }

// String implements fmt.Stringer.
func (v Int3) String() string { return fmt.Sprintf("(%d, %d, %d)", v.X, v.Y, v.Z) }

// String implements fmt.Stringer.
func (v Int4) String() string { return fmt.Sprintf("(%d, %d, %d, %d)", v.X, v.Y, v.Z, v.W) }

// IsPermutation returns whether v holds each of the axes 0, 1 and 2 exactly once.
func (v Int3) IsPermutation() bool {
	var seen [3]bool
	for _, axis := range v.Array() {
		if axis < 0 || axis > 2 || seen[axis] {
			return false
		}
		seen[axis] = true
	}
	return true
}

// Permute returns the vector whose i-th axis is v.At(order.At(i)).
//
// It panics if order is not a permutation of {0, 1, 2}.
func (v Int3) Permute(order Int3) Int3 {
	if !order.IsPermutation() {
		exceptions.Panicf("Int3.Permute(%s): order is not a permutation of the axes", order)
	}
	return Int3{v.At(order.X), v.At(order.Y), v.At(order.Z)}
}

// InversePermute undoes Permute: v.Permute(order).InversePermute(order) == v.
func (v Int3) InversePermute(order Int3) Int3 {
	if !order.IsPermutation() {
		exceptions.Panicf("Int3.InversePermute(%s): order is not a permutation of the axes", order)
	}
	var out [3]int
	for i, axis := range order.Array() {
		out[axis] = v.At(i)
	}
	return Int3{out[0], out[1], out[2]}
}

// DivideRoundUp returns ceil(n / divisor) for positive values.
func DivideRoundUp(n, divisor int) int {
	return (n + divisor - 1) / divisor
}

// AlignByN rounds n up to the nearest multiple of alignment.
func AlignByN(n, alignment int) int {
	return DivideRoundUp(n, alignment) * alignment
}

// DivideRoundUp3 divides each axis of n by the corresponding axis of divisor, rounding up.
func DivideRoundUp3(n, divisor Int3) Int3 {
	return Int3{DivideRoundUp(n.X, divisor.X), DivideRoundUp(n.Y, divisor.Y), DivideRoundUp(n.Z, divisor.Z)}
}
