// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"iter"

	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/gomlx/conv3d/pkg/core/tensors"
	"github.com/gomlx/exceptions"
)

// TextureSize returns the dimensions of each of the four weight texture planes: one column per
// (padded) output slice, and one row per source slice and kernel position.
func TextureSize(shape shapes.OHWDI, s Strategy) (width, height int) {
	width = s.PaddedDstSlices(shapes.Slices(shape.O))
	height = shapes.Slices(shape.I) * shape.W * shape.H * shape.D
	return
}

// PackedWeightsLen returns the number of Quads of the packed weights, for both buffer and texture layouts.
func PackedWeightsLen(shape shapes.OHWDI, s Strategy) int {
	width, height := TextureSize(shape, s)
	return width * height * dtypes.QuadLanes
}

// packedQuad is the location of one group of 4 Quads of the packed weights.
type packedQuad struct {
	// dstSlice, srcSlice and the kernel position (x, y, z) of the weights in the group.
	dstSlice, srcSlice int
	x, y, z            int

	// positions of each of the 4 Quads (one per source lane) in the packed data.
	positions [dtypes.QuadLanes]int
}

// packedQuads yields the groups of 4 Quads in the order they are packed.
//
// Each group holds a 4x4 block of weights: 4 source channels (one per Quad) for 4 output channels
// (one per lane).
func packedQuads(shape shapes.OHWDI, s Strategy) iter.Seq[packedQuad] {
	return func(yield func(packedQuad) bool) {
		block := s.BlockSize.W
		srcSlices := shapes.Slices(shape.I)
		texWidth, texHeight := TextureSize(shape, s)
		planeSize := texWidth * texHeight
		isBuffer := s.AreWeightsBuffer()
		counter := 0
		var pq packedQuad
		for d := range texWidth / block {
			for pq.z = 0; pq.z < shape.D; pq.z++ {
				for pq.y = 0; pq.y < shape.H; pq.y++ {
					for pq.x = 0; pq.x < shape.W; pq.x++ {
						for pq.srcSlice = 0; pq.srcSlice < srcSlices; pq.srcSlice++ {
							for subD := range block {
								pq.dstSlice = d*block + subD
								if isBuffer {
									for lane := range pq.positions {
										pq.positions[lane] = counter
										counter++
									}
								} else {
									row := ((pq.z*shape.H+pq.y)*shape.W+pq.x)*srcSlices + pq.srcSlice
									offset := row*texWidth + pq.dstSlice
									for lane := range pq.positions {
										pq.positions[lane] = offset + lane*planeSize
									}
								}
								if !yield(pq) {
									return
								}
							}
						}
					}
				}
			}
		}
	}
}

// RearrangeWeights packs the OHWDI weights into dst, in the layout the kernel of Strategy s reads.
//
// For buffer strategies the groups of 4 Quads are stored consecutively. For texture strategies
// dst holds the four texture planes (see TextureSize) one after the other, and Quad j of each group
// goes to plane j.
//
// Quad j of a group holds source channel srcSlice*4+j, and its lane i holds output channel
// dstSlice*4+i. Channels beyond the weights shape (padding) are set to 0.
//
// It panics if len(dst) != PackedWeightsLen(weights.Shape, s).
func RearrangeWeights[T dtypes.Element](weights *tensors.Weights, s Strategy, dst []dtypes.Quad[T]) {
	shape := weights.Shape
	if want := PackedWeightsLen(shape, s); len(dst) != want {
		exceptions.Panicf("conv3d.RearrangeWeights(%s): dst has %d quads, wanted %d", shape, len(dst), want)
	}
	for pq := range packedQuads(shape, s) {
		var filters [dtypes.QuadLanes]dtypes.Quad[T]
		for i := range dtypes.QuadLanes {
			dstCh := pq.dstSlice*dtypes.QuadLanes + i
			for j := range dtypes.QuadLanes {
				srcCh := pq.srcSlice*dtypes.QuadLanes + j
				if srcCh < shape.I && dstCh < shape.O {
					filters[j][i] = dtypes.FromFloat32[T](weights.Data[shape.LinearIndex(dstCh, pq.y, pq.x, pq.z, srcCh)])
				}
			}
		}
		for lane, pos := range pq.positions {
			dst[pos] = filters[lane]
		}
	}
}

// UnpackWeights reverses RearrangeWeights, returning weights of the given shape.
//
// Padding values are dropped.
func UnpackWeights[T dtypes.Element](packed []dtypes.Quad[T], shape shapes.OHWDI, s Strategy) *tensors.Weights {
	if want := PackedWeightsLen(shape, s); len(packed) != want {
		exceptions.Panicf("conv3d.UnpackWeights(%s): packed has %d quads, wanted %d", shape, len(packed), want)
	}
	weights := tensors.FromShape(shape)
	for pq := range packedQuads(shape, s) {
		for i := range dtypes.QuadLanes {
			dstCh := pq.dstSlice*dtypes.QuadLanes + i
			for j, pos := range pq.positions {
				srcCh := pq.srcSlice*dtypes.QuadLanes + j
				if srcCh < shape.I && dstCh < shape.O {
					weights.Set(dstCh, pq.y, pq.x, pq.z, srcCh, dtypes.ToFloat32(packed[pos][i]))
				}
			}
		}
	}
	return weights
}
