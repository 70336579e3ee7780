// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"fmt"
	"strings"

	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/pkg/errors"
)

// UploadScheme defines where the weights live on the device, and how the kernel reads them.
//
//go:generate go tool enumer -type=UploadScheme -trimprefix=Upload -transform=snake -text -output=gen_uploadscheme_enumer.go strategy.go
type UploadScheme int

const (
	// UploadSubgroupAsync keeps the weights in a linear buffer, copied to local memory with
	// asynchronous sub-group copies. Requires a work-group of the sub-group width.
	UploadSubgroupAsync UploadScheme = iota

	// UploadThreadedLocal keeps the weights in a linear buffer, cooperatively copied to local
	// memory by the threads of the work-group.
	UploadThreadedLocal

	// UploadGlobalMemory keeps the weights in a linear buffer, read directly.
	UploadGlobalMemory

	// UploadTexturePlanes keeps the weights in four 2D textures, one per source lane of the Quads.
	UploadTexturePlanes
)

// ParseUploadScheme converts a name like "texture_planes" (case-insensitive, '-' accepted for '_') to an UploadScheme.
func ParseUploadScheme(name string) (UploadScheme, error) {
	u, err := UploadSchemeString(strings.ReplaceAll(name, "-", "_"))
	if err != nil {
		return 0, errors.Errorf("unknown upload scheme %q, valid values are %q", name, UploadSchemeStrings())
	}
	return u, nil
}

// IsBuffer returns whether the weights live in a linear buffer: true for all schemes but UploadTexturePlanes.
func (u UploadScheme) IsBuffer() bool { return u != UploadTexturePlanes }

// UsesLocalMemory returns whether the kernel stages the weights in work-group local memory.
func (u UploadScheme) UsesLocalMemory() bool {
	return u == UploadSubgroupAsync || u == UploadThreadedLocal
}

// Strategy is the execution plan of a 3D convolution on a device. It's a value type: once
// selected it's not changed.
type Strategy struct {
	// BlockSize is the number of outputs computed by each thread: X for width, Y for height,
	// Z for depth and W for the output slices.
	BlockSize shapes.Int4

	// WorkGroupSize is the default work-group of the kernel. Schemes using local memory require it.
	WorkGroupSize shapes.Int3

	// LaunchOrder maps the tile axes to the dispatch axes, see GridSize.
	LaunchOrder shapes.Int3

	// SrcDepthLoopSize is the number of source slices processed per iteration of the unrolled inner loop.
	SrcDepthLoopSize int

	Upload UploadScheme

	// XKernelIs1, YKernelIs1 and ZKernelIs1 flag trivial axes, whose loops the kernel can drop.
	XKernelIs1, YKernelIs1, ZKernelIs1 bool
}

// AreWeightsBuffer returns whether the weights are uploaded to one linear buffer, as opposed to four texture planes.
func (s Strategy) AreWeightsBuffer() bool { return s.Upload.IsBuffer() }

// UsesLocalMemory returns whether the kernel stages weights in local memory.
func (s Strategy) UsesLocalMemory() bool { return s.Upload.UsesLocalMemory() }

// PaddedDstSlices rounds dstSlices up to a multiple of the output slices block.
func (s Strategy) PaddedDstSlices(dstSlices int) int {
	return shapes.AlignByN(dstSlices, s.BlockSize.W)
}

// Validate checks that the strategy is internally consistent.
func (s Strategy) Validate() error {
	b := s.BlockSize
	if b.X < 1 || b.Y < 1 || b.Z < 1 || b.W < 1 {
		return errors.Errorf("invalid block size %s", b)
	}
	wg := s.WorkGroupSize
	if wg.X < 1 || wg.Y < 1 || wg.Z < 1 {
		return errors.Errorf("invalid work-group size %s", wg)
	}
	if !s.LaunchOrder.IsPermutation() {
		return errors.Errorf("launch order %s is not a permutation of the axes", s.LaunchOrder)
	}
	if s.SrcDepthLoopSize < 1 {
		return errors.Errorf("invalid source depth loop size %d", s.SrcDepthLoopSize)
	}
	if !s.Upload.IsAUploadScheme() {
		return errors.Errorf("invalid upload scheme %s", s.Upload)
	}
	return nil
}

// String implements fmt.Stringer.
func (s Strategy) String() string {
	return fmt.Sprintf("Strategy{block=%s, work_group=%s, launch_order=%s, src_loop=%d, upload=%s, kernel_is_1=[%t %t %t]}",
		s.BlockSize, s.WorkGroupSize, s.LaunchOrder, s.SrcDepthLoopSize, s.Upload, s.XKernelIs1, s.YKernelIs1, s.ZKernelIs1)
}
