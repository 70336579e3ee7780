// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package workgroups enumerates candidate work-group sizes for a dispatch grid.
//
// Candidates are yielded lazily: a tuner timing each of them can stop early, and the
// exhaustive enumeration is never materialized.
package workgroups

import (
	"iter"

	"github.com/gomlx/conv3d/backends/gpu/device"
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/gomlx/conv3d/pkg/support/sets"
)

// DefaultWorkGroup is proposed when no tuning is requested.
var DefaultWorkGroup = shapes.Int3{X: 8, Y: 4, Z: 1}

// KernelInfo holds the limits of a compiled kernel.
type KernelInfo struct {
	// MaxWorkGroupSize is the maximum number of invocations the compiled kernel supports in one work-group.
	// It can be lower than the device limit, depending on register usage.
	MaxWorkGroupSize int
}

// Bounds of the total size of work-groups generated by the exhaustive enumeration.
const (
	minExhaustiveInvocations = 32
	maxHeuristicInvocations  = 256
)

// MaxZ returns the maximum work-group size on the z axis the heuristic uses for convolutions.
func MaxZ(info *device.Info) int {
	maxZ := 16
	if info.IsAdreno() && !info.IsAdreno3xx() {
		maxZ = 64
	}
	return min(maxZ, info.MaxWorkGroupSize.Z)
}

// BiggestDivider returns the largest divisor of n that is <= limit, or 1.
func BiggestDivider(n, limit int) int {
	for d := min(n, limit); d > 1; d-- {
		if n%d == 0 {
			return d
		}
	}
	return 1
}

// Dividers returns all divisors of n, in increasing order.
func Dividers(n int) []int {
	var low, high []int
	for d := 1; d*d <= n; d++ {
		if n%d != 0 {
			continue
		}
		low = append(low, d)
		if d*d != n {
			high = append(high, n/d)
		}
	}
	for ii := len(high) - 1; ii >= 0; ii-- {
		low = append(low, high[ii])
	}
	return low
}

// ConvHeuristic returns the work-group the heuristic picks for a convolution grid.
//
// The z axis takes the biggest divider of grid.Z up to maxZ; x and y share the remaining
// invocations (up to 256), with x taking at most half the grid width.
// Each axis is also limited by maxSize.
func ConvHeuristic(grid, maxSize shapes.Int3, maxInvocations, maxZ int) shapes.Int3 {
	wgZ := BiggestDivider(grid.Z, max(min(maxZ, maxSize.Z, maxInvocations), 1))
	xy := max(min(maxHeuristicInvocations, maxInvocations)/wgZ, 1)
	wgX := max(min(shapes.DivideRoundUp(grid.X, 2), xy, maxSize.X), 1)
	wgY := max(min(xy/wgX, grid.Y, maxSize.Y), 1)
	if wgY == grid.Y && grid.Y%2 == 0 {
		wgY = grid.Y / 2
	}
	return shapes.Int3{X: wgX, Y: wgY, Z: wgZ}
}

// AlignedToGrid yields every work-group whose axes divide the grid precisely, with a total number
// of invocations in [minInvocations, maxInvocations] and within the per-axis limits.
//
// The order is increasing in z, then y, then x.
func AlignedToGrid(grid, maxSize shapes.Int3, minInvocations, maxInvocations int) iter.Seq[shapes.Int3] {
	return func(yield func(shapes.Int3) bool) {
		xs, ys, zs := Dividers(grid.X), Dividers(grid.Y), Dividers(grid.Z)
		for _, z := range zs {
			if z > maxSize.Z {
				break
			}
			for _, y := range ys {
				if y > maxSize.Y || y*z > maxInvocations {
					break
				}
				for _, x := range xs {
					total := x * y * z
					if x > maxSize.X || total > maxInvocations {
						break
					}
					if total < minInvocations {
						continue
					}
					if !yield(shapes.Int3{X: x, Y: y, Z: z}) {
						return
					}
				}
			}
		}
	}
}

// CornerCases yields small work-groups for grids where no precise divisor fits the invocation bounds:
// first enough work-groups in one axis to cover the grid in 1 to 4 steps, then all small sizes
// (1 to 4 per axis) that divide the grid.
func CornerCases(grid, maxSize shapes.Int3, maxInvocations int) iter.Seq[shapes.Int3] {
	fits := func(wg shapes.Int3) bool {
		return wg.X <= maxSize.X && wg.Y <= maxSize.Y && wg.Z <= maxSize.Z && wg.Volume() <= maxInvocations
	}
	return func(yield func(shapes.Int3) bool) {
		for steps := 1; steps <= 4; steps++ {
			for _, wg := range []shapes.Int3{
				{X: shapes.DivideRoundUp(grid.X, steps), Y: 1, Z: 1},
				{X: 1, Y: shapes.DivideRoundUp(grid.Y, steps), Z: 1},
				{X: 1, Y: 1, Z: shapes.DivideRoundUp(grid.Z, steps)},
			} {
				if fits(wg) && !yield(wg) {
					return
				}
			}
		}
		for x := 1; x <= 4; x++ {
			for y := 1; y <= 4; y++ {
				for z := 1; z <= 4; z++ {
					wg := shapes.Int3{X: x, Y: y, Z: z}
					if grid.X%x != 0 || grid.Y%y != 0 || grid.Z%z != 0 || !fits(wg) {
						continue
					}
					if !yield(wg) {
						return
					}
				}
			}
		}
	}
}

// fitToLimits shrinks wg to the per-axis limits, then halves y and x (in this order) until it
// fits the number of invocations.
func fitToLimits(wg, maxSize shapes.Int3, maxInvocations int) shapes.Int3 {
	wg = shapes.Int3{X: min(wg.X, maxSize.X), Y: min(wg.Y, maxSize.Y), Z: min(wg.Z, maxSize.Z)}
	for wg.Volume() > maxInvocations && wg.Y > 1 {
		wg.Y = shapes.DivideRoundUp(wg.Y, 2)
	}
	for wg.Volume() > maxInvocations && wg.X > 1 {
		wg.X = shapes.DivideRoundUp(wg.X, 2)
	}
	return wg
}

// Conv yields the work-group candidates for a convolution kernel dispatched over grid.
//
// Candidates are unique and fit the per-axis and total invocations limits of the device and
// kernel. With TuningExhaustive the heuristic candidate comes first.
func Conv(tuning TuningType, info *device.Info, kernelInfo KernelInfo, grid shapes.Int3) iter.Seq[shapes.Int3] {
	maxInvocations := info.MaxWorkGroupInvocations
	if kernelInfo.MaxWorkGroupSize > 0 {
		maxInvocations = min(maxInvocations, kernelInfo.MaxWorkGroupSize)
	}
	heuristic := func() shapes.Int3 {
		return ConvHeuristic(grid, info.MaxWorkGroupSize, maxInvocations, MaxZ(info))
	}
	return func(yield func(shapes.Int3) bool) {
		switch tuning {
		case TuningFast:
			yield(heuristic())
		case TuningExhaustive:
			seen := sets.Make[shapes.Int3]()
			emit := func(wg shapes.Int3) bool {
				if !seen.InsertNew(wg) {
					return true
				}
				return yield(wg)
			}
			if !emit(heuristic()) {
				return
			}
			numAligned := 0
			for wg := range AlignedToGrid(grid, info.MaxWorkGroupSize, minExhaustiveInvocations, maxInvocations) {
				numAligned++
				if !emit(wg) {
					return
				}
			}
			if numAligned > 0 {
				return
			}
			for wg := range CornerCases(grid, info.MaxWorkGroupSize, maxInvocations) {
				if !emit(wg) {
					return
				}
			}
		default:
			yield(fitToLimits(DefaultWorkGroup, info.MaxWorkGroupSize, maxInvocations))
		}
	}
}
