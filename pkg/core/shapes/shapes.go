// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package shapes defines the fixed-layout shapes used by the GPU convolution planner and
// the small integer vectors used for sizes and grids.
//
// Unlike a generic N-dimensional shape, each layout here has named axes:
//
//   - OHWDI: 3D convolution weights -- output channels, height, width, depth, input channels.
//   - BHWDC: 5D activations -- batch, height, width, depth, channels.
//   - Linear: a 1D vector, e.g. biases.
//
// All layouts are "row-major": the last axis changes fastest in memory.
//
// ## Glossary
//
//   - Slice: a group of 4 consecutive channels, the vectorization width of the GPU kernels.
//     So a tensor with C channels has DivideRoundUp(C, 4) slices.
package shapes

import (
	"fmt"

	"github.com/gomlx/exceptions"
)

// ChannelsPerSlice is the number of channels packed together in one vector element.
const ChannelsPerSlice = 4

// Slices returns the number of 4-channel slices needed to hold the given number of channels.
func Slices(channels int) int {
	return DivideRoundUp(channels, ChannelsPerSlice)
}

// HWD holds one value per spatial axis, in the order height, width, depth.
type HWD struct {
	H, W, D int
}

// String implements fmt.Stringer.
func (s HWD) String() string { return fmt.Sprintf("[H=%d W=%d D=%d]", s.H, s.W, s.D) }

// XYZ returns the values as an Int3 in dispatch order: X=width, Y=height, Z=depth.
func (s HWD) XYZ() Int3 { return Int3{X: s.W, Y: s.H, Z: s.D} }

// OHWDI is the shape of a 3D convolution weights tensor.
type OHWDI struct {
	O, H, W, D, I int
}

// MakeOHWDI creates an OHWDI shape. It panics if any dimension is <= 0.
func MakeOHWDI(o, h, w, d, i int) OHWDI {
	s := OHWDI{O: o, H: h, W: w, D: d, I: i}
	if o <= 0 || h <= 0 || w <= 0 || d <= 0 || i <= 0 {
		exceptions.Panicf("shapes.MakeOHWDI(%s): cannot create a shape with an axis with dimension <= 0", s)
	}
	return s
}

// Size returns the number of elements of the shape.
func (s OHWDI) Size() int { return s.O * s.H * s.W * s.D * s.I }

// LinearIndex returns the flat (row-major) index of the element at the given coordinates.
//
// Coordinates are not checked, see Contains.
func (s OHWDI) LinearIndex(o, h, w, d, i int) int {
	return (((o*s.H+h)*s.W+w)*s.D+d)*s.I + i
}

// Contains returns whether the coordinates are within the shape.
func (s OHWDI) Contains(o, h, w, d, i int) bool {
	return o >= 0 && o < s.O && h >= 0 && h < s.H && w >= 0 && w < s.W &&
		d >= 0 && d < s.D && i >= 0 && i < s.I
}

// String implements fmt.Stringer.
func (s OHWDI) String() string {
	return fmt.Sprintf("OHWDI[%d %d %d %d %d]", s.O, s.H, s.W, s.D, s.I)
}

// BHWDC is the shape of a 5D activations tensor.
type BHWDC struct {
	B, H, W, D, C int
}

// Slices returns the number of 4-channel slices of the channels axis.
func (s BHWDC) Slices() int { return Slices(s.C) }

// Size returns the number of elements of the shape.
func (s BHWDC) Size() int { return s.B * s.H * s.W * s.D * s.C }

// String implements fmt.Stringer.
func (s BHWDC) String() string {
	return fmt.Sprintf("BHWDC[%d %d %d %d %d]", s.B, s.H, s.W, s.D, s.C)
}

// Linear is the shape of a 1D vector.
type Linear struct {
	V int
}

// Size returns the number of elements of the shape.
func (s Linear) Size() int { return s.V }

// String implements fmt.Stringer.
func (s Linear) String() string { return fmt.Sprintf("Linear[%d]", s.V) }
