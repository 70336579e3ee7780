// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"fmt"
	"slices"
	"testing"

	"github.com/gomlx/conv3d/backends/gpu/device"
	"github.com/gomlx/conv3d/backends/gpu/workgroups"
	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTileGrid(t *testing.T) {
	dst := shapes.BHWDC{B: 2, H: 7, W: 9, D: 5, C: 20}
	s := bufferStrategy(2)
	s.BlockSize = shapes.Int4{X: 2, Y: 2, Z: 3, W: 2}
	// X: ceil(9*2/2)=9, Y: ceil(7/2)=4, Z: ceil(5 slices/2)=3 * ceil(5/3)=2.
	assert.Equal(t, shapes.Int3{X: 9, Y: 4, Z: 6}, TileGrid(dst, s))

	// Block of 1 on every axis: the grid is the output itself.
	s.BlockSize = shapes.Int4{X: 1, Y: 1, Z: 1, W: 1}
	assert.Equal(t, shapes.Int3{X: 18, Y: 7, Z: 25}, TileGrid(dst, s))
}

func TestGridSize(t *testing.T) {
	dst := shapes.BHWDC{B: 1, H: 10, W: 20, D: 3, C: 32}
	s := bufferStrategy(4)
	// Tiles: (20, 10, 2*3=6); work-groups of (8,4,1): (3, 3, 6).
	assert.Equal(t, shapes.Int3{X: 24, Y: 12, Z: 6}, GridSize(dst, s))

	s.LaunchOrder = shapes.Int3{X: 2, Y: 0, Z: 1}
	assert.Equal(t, shapes.Int3{X: 6 * 8, Y: 3 * 4, Z: 3 * 1}, GridSize(dst, s))
}

// TestGridSize_LaunchOrder checks that the launch order only permutes the work-groups counts,
// and that the inverse permutation recovers the tile axes order.
func TestGridSize_LaunchOrder(t *testing.T) {
	dst := shapes.BHWDC{B: 3, H: 17, W: 11, D: 4, C: 23}
	for _, order := range []shapes.Int3{
		{X: 0, Y: 1, Z: 2}, {X: 0, Y: 2, Z: 1}, {X: 1, Y: 0, Z: 2},
		{X: 1, Y: 2, Z: 0}, {X: 2, Y: 0, Z: 1}, {X: 2, Y: 1, Z: 0},
	} {
		s := bufferStrategy(2)
		s.LaunchOrder = order
		wg := s.WorkGroupSize
		grid := GridSize(dst, s)
		assert.Zero(t, grid.X%wg.X)
		assert.Zero(t, grid.Y%wg.Y)
		assert.Zero(t, grid.Z%wg.Z)
		numGroups := shapes.DivideRoundUp3(grid, wg)
		want := shapes.DivideRoundUp3(TileGrid(dst, s), wg)
		assert.Equal(t, want, numGroups.InversePermute(order), "order %s", order)
		assert.Equal(t, want.Volume(), numGroups.Volume())
	}
}

// TestTileGrid_KernelIs1 checks that on axes with a trivial kernel the tile grid is the output extent
// divided by the block, and that a trivial height axis is never widened.
func TestTileGrid_KernelIs1(t *testing.T) {
	dst := shapes.BHWDC{B: 2, H: 13, W: 10, D: 6, C: 24}
	for _, profileName := range device.ProfileNames() {
		info := profile(t, profileName)
		for _, precision := range []dtypes.Precision{dtypes.PrecisionF32, dtypes.PrecisionF16} {
			def := OperationDef{Precision: precision}
			trivial := GuessBestParams(info, def, newTestAttributes(shapes.MakeOHWDI(dst.C, 1, 1, 1, 8)))
			full := GuessBestParams(info, def, newTestAttributes(shapes.MakeOHWDI(dst.C, 3, 3, 3, 8)))
			name := fmt.Sprintf("%s/%s", profileName, precision)
			require.True(t, trivial.XKernelIs1 && trivial.YKernelIs1 && trivial.ZKernelIs1, name)
			require.False(t, full.XKernelIs1 || full.YKernelIs1 || full.ZKernelIs1, name)

			grid := TileGrid(dst, trivial)
			b := trivial.BlockSize
			assert.Equal(t, shapes.DivideRoundUp(dst.W*dst.B, b.X), grid.X, name)
			assert.Equal(t, shapes.DivideRoundUp(dst.H, b.Y), grid.Y, name)
			assert.Equal(t, shapes.DivideRoundUp(dst.Slices(), b.W)*shapes.DivideRoundUp(dst.D, b.Z), grid.Z, name)
			assert.LessOrEqual(t, b.Y, full.BlockSize.Y, name)
			if trivial.AreWeightsBuffer() {
				assert.Equal(t, 1, b.Y, name)
				assert.Equal(t, dst.H, grid.Y, name)
			}
			assert.GreaterOrEqual(t, grid.Y, TileGrid(dst, full).Y, name)
		}
	}
}

func TestPossibleWorkGroups(t *testing.T) {
	grid := shapes.Int3{X: 64, Y: 16, Z: 4}

	// Local memory strategies need their work-group.
	s := bufferStrategy(4)
	s.Upload = UploadSubgroupAsync
	s.WorkGroupSize = shapes.Int3{X: 4, Y: 8, Z: 1}
	got := slices.Collect(PossibleWorkGroups(workgroups.TuningExhaustive, profile(t, "powervr"), workgroups.KernelInfo{}, grid, s))
	assert.Equal(t, []shapes.Int3{{X: 4, Y: 8, Z: 1}}, got)

	s = bufferStrategy(4)
	info := profile(t, "mali")
	got = slices.Collect(PossibleWorkGroups(workgroups.TuningFast, info, workgroups.KernelInfo{}, grid, s))
	assert.Equal(t, slices.Collect(workgroups.Conv(workgroups.TuningFast, info, workgroups.KernelInfo{}, grid)), got)
	assert.Len(t, got, 1)
	got = slices.Collect(PossibleWorkGroups(workgroups.TuningNone, info, workgroups.KernelInfo{}, grid, s))
	assert.Equal(t, []shapes.Int3{workgroups.DefaultWorkGroup}, got)
}
