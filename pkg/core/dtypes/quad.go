// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dtypes

import "unsafe"

// QuadLanes is the number of lanes of a Quad: the vectorization width of the GPU kernels.
const QuadLanes = 4

// Quad is a 4-lane vector of elements, the unit of vectorized GPU memory access (float4/half4).
type Quad[T Element] [QuadLanes]T

// QuadsAsBytes returns the raw (host byte order) memory of the quads, without copying.
//
// The returned slice aliases quads and must not outlive it.
func QuadsAsBytes[T Element](quads []Quad[T]) []byte {
	if len(quads) == 0 {
		return nil
	}
	var dummy Quad[T]
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(quads))), uintptr(len(quads))*unsafe.Sizeof(dummy))
}

// QuadSize returns the size in bytes of one Quad of the given dtype.
func QuadSize(dtype DType) int {
	return QuadLanes * dtype.Size()
}

// PackQuads converts values to quads of T, zero-padding the last quad.
func PackQuads[T Element](values []float32) []Quad[T] {
	quads := make([]Quad[T], (len(values)+QuadLanes-1)/QuadLanes)
	for ii, v := range values {
		quads[ii/QuadLanes][ii%QuadLanes] = FromFloat32[T](v)
	}
	return quads
}

// QuadsFromBytes copies raw (host byte order) memory, as returned by QuadsAsBytes, back to quads.
//
// Trailing bytes not filling a whole Quad are ignored.
func QuadsFromBytes[T Element](data []byte) []Quad[T] {
	var dummy Quad[T]
	quads := make([]Quad[T], uintptr(len(data))/unsafe.Sizeof(dummy))
	copy(QuadsAsBytes(quads), data)
	return quads
}
