// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"iter"

	"github.com/gomlx/conv3d/backends/gpu/device"
	"github.com/gomlx/conv3d/backends/gpu/workgroups"
	"github.com/gomlx/conv3d/pkg/core/shapes"
)

// TileGrid returns the number of threads needed on each tile axis to compute the output dst:
// X covers width (times batch), Y covers height and Z covers output slices times depth.
func TileGrid(dst shapes.BHWDC, s Strategy) shapes.Int3 {
	b := s.BlockSize
	return shapes.Int3{
		X: shapes.DivideRoundUp(dst.W*dst.B, b.X),
		Y: shapes.DivideRoundUp(dst.H, b.Y),
		Z: shapes.DivideRoundUp(dst.Slices(), b.W) * shapes.DivideRoundUp(dst.D, b.Z),
	}
}

// GridSize returns the dispatch grid of the convolution to compute dst.
//
// The number of work-groups on each tile axis is reordered by s.LaunchOrder: dispatch axis i
// gets the work-groups of tile axis s.LaunchOrder.At(i). The grid is always a multiple of
// s.WorkGroupSize.
func GridSize(dst shapes.BHWDC, s Strategy) shapes.Int3 {
	numGroups := shapes.DivideRoundUp3(TileGrid(dst, s), s.WorkGroupSize).Permute(s.LaunchOrder)
	wg := s.WorkGroupSize
	return shapes.Int3{X: numGroups.X * wg.X, Y: numGroups.Y * wg.Y, Z: numGroups.Z * wg.Z}
}

// PossibleWorkGroups yields the work-group candidates for dispatching Strategy s over grid,
// most promising first.
//
// Strategies staging the weights in local memory only work with their own s.WorkGroupSize.
func PossibleWorkGroups(tuning workgroups.TuningType, info *device.Info, kernelInfo workgroups.KernelInfo,
	grid shapes.Int3, s Strategy) iter.Seq[shapes.Int3] {
	if s.UsesLocalMemory() {
		return func(yield func(shapes.Int3) bool) {
			yield(s.WorkGroupSize)
		}
	}
	return workgroups.Conv(tuning, info, kernelInfo, grid)
}
