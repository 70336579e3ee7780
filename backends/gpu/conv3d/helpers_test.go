// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"testing"

	"github.com/gomlx/conv3d/backends/gpu/device"
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/gomlx/conv3d/pkg/core/tensors"
	"github.com/janpfeifer/must"
)

// iotaWeights returns weights whose values are 1 + the flat index, so every true weight is non-zero.
// Values stay small integers, exactly representable in Float16 for shapes up to 2048 elements.
func iotaWeights(shape shapes.OHWDI) *tensors.Weights {
	return tensors.FromFunc(shape, func(idx shapes.OHWDIIndex) float32 {
		return float32(shape.LinearIndex(idx.O, idx.H, idx.W, idx.D, idx.I) + 1)
	})
}

// newTestAttributes returns Attributes with unit strides and dilations and no padding.
func newTestAttributes(shape shapes.OHWDI) *Attributes {
	return &Attributes{
		Weights:   iotaWeights(shape),
		Bias:      tensors.LinearZeros(shape.O),
		Strides:   shapes.HWD{H: 1, W: 1, D: 1},
		Dilations: shapes.HWD{H: 1, W: 1, D: 1},
	}
}

func profile(t *testing.T, name string) *device.Info {
	t.Helper()
	return must.M1(device.FromProfile(name))
}

// bufferStrategy and textureStrategy return minimal strategies with the given output slices block.
func bufferStrategy(blockW int) Strategy {
	return Strategy{
		BlockSize:        shapes.Int4{X: 1, Y: 1, Z: 1, W: blockW},
		WorkGroupSize:    shapes.Int3{X: 8, Y: 4, Z: 1},
		LaunchOrder:      shapes.Int3{X: 0, Y: 1, Z: 2},
		SrcDepthLoopSize: 1,
		Upload:           UploadGlobalMemory,
	}
}

func textureStrategy(blockW int) Strategy {
	s := bufferStrategy(blockW)
	s.Upload = UploadTexturePlanes
	return s
}
