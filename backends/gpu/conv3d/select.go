// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"github.com/gomlx/conv3d/backends/gpu/device"
	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"k8s.io/klog/v2"
)

// OperationDef holds the definition of the operation shared with the rest of the execution plan.
type OperationDef struct {
	Precision dtypes.Precision

	// BatchSupported indicates the input and output tensors have a batch axis folded into the width.
	BatchSupported bool
}

// DataType of the tensors and constants of the operation.
func (def OperationDef) DataType() dtypes.DType { return def.Precision.DataType() }

// GuessBestParams selects the Strategy of a convolution with the given attributes on the device.
//
// It is equivalent to calling GuessBestParamsForSlices with the slices, the kernel volume and the
// trivial axes of attr.
func GuessBestParams(info *device.Info, def OperationDef, attr *Attributes) Strategy {
	xIs1, yIs1, zIs1 := attr.KernelIs1()
	return GuessBestParamsForSlices(info, def, attr.SrcSlices(), attr.DstSlices(), attr.KernelSize().Volume(),
		xIs1, yIs1, zIs1)
}

// GuessBestParamsForSlices selects the Strategy of a convolution with srcSlices input slices,
// dstSlices output slices, kernelVolume kernel positions (width*height*depth) and the given trivial
// axes, on the device.
//
// It's pure: the same inputs always return the same Strategy, and it always returns a valid one.
// Texture planes are only selected if they fit the device 2D image limits.
func GuessBestParamsForSlices(info *device.Info, def OperationDef, srcSlices, dstSlices, kernelVolume int,
	xKernelIs1, yKernelIs1, zKernelIs1 bool) Strategy {
	kernelVolume = max(kernelVolume, 1)
	var s Strategy
	switch {
	case info.IsNvidia():
		s = nvidiaParams(info, srcSlices, dstSlices)
	case info.IsPowerVR():
		s = powerVRParams(info, def, srcSlices, dstSlices)
	case info.IsMali():
		s = maliParams(srcSlices, dstSlices)
	case info.IsAdreno():
		// Adreno uses texture planes whenever they fit, regardless of PrefersTextures.
		if texturesFit(info, srcSlices, dstSlices, kernelVolume) {
			s = texturePlanesParams()
		} else {
			s = maliParams(srcSlices, dstSlices)
		}
	default:
		if info.PrefersTextures && texturesFit(info, srcSlices, dstSlices, kernelVolume) {
			s = texturePlanesParams()
		} else {
			s = maliParams(srcSlices, dstSlices)
		}
	}
	if info.WideRegisterFile && s.AreWeightsBuffer() && !yKernelIs1 {
		s.BlockSize.Y *= 2
	}
	s.XKernelIs1, s.YKernelIs1, s.ZKernelIs1 = xKernelIs1, yKernelIs1, zKernelIs1
	klog.V(1).Infof("conv3d on %q (%s), src/dst slices %d/%d, precision %s: %s",
		info.Name, info.Vendor, srcSlices, dstSlices, def.Precision, s)
	return s
}

// dstBlock4 picks the output slices block, up to 4.
func dstBlock4(dstSlices int) int {
	switch {
	case dstSlices%4 == 0 || dstSlices >= 8:
		return 4
	case dstSlices%2 == 0 || dstSlices >= 4:
		return 2
	default:
		return dstSlices
	}
}

// dstBlock8 picks the output slices block, up to 8.
func dstBlock8(dstSlices int) int {
	if dstSlices%8 == 0 || dstSlices >= 32 {
		return 8
	}
	return dstBlock4(dstSlices)
}

// srcLoopSize picks the unrolling of the source slices loop for the given output slices block.
func srcLoopSize(srcSlices, dstBlock int) int {
	loop := 1
	if srcSlices%2 == 0 {
		loop = 2
	}
	if srcSlices%4 == 0 && dstBlock <= 2 {
		loop = 4
	}
	return loop
}

// texturesFit checks the size of the texture planes of texturePlanesParams (see TextureSize) against
// the device 2D image limits.
func texturesFit(info *device.Info, srcSlices, dstSlices, kernelVolume int) bool {
	width := shapes.AlignByN(dstSlices, texturePlanesParams().BlockSize.W)
	height := srcSlices * kernelVolume
	return info.SupportsImage2D && width <= info.MaxImage2DWidth && height <= info.MaxImage2DHeight
}

func bufferScheme(info *device.Info) UploadScheme {
	if info.SupportsLocalMemory {
		return UploadThreadedLocal
	}
	return UploadGlobalMemory
}

func nvidiaParams(info *device.Info, srcSlices, dstSlices int) Strategy {
	s := Strategy{
		BlockSize:     shapes.Int4{X: 1, Y: 1, Z: 1, W: dstBlock4(dstSlices)},
		WorkGroupSize: shapes.Int3{X: 8, Y: 4, Z: 1},
		LaunchOrder:   shapes.Int3{X: 2, Y: 0, Z: 1},
		Upload:        bufferScheme(info),
	}
	s.SrcDepthLoopSize = srcLoopSize(srcSlices, s.BlockSize.W)
	return s
}

func powerVRParams(info *device.Info, def OperationDef, srcSlices, dstSlices int) Strategy {
	s := Strategy{
		BlockSize:        shapes.Int4{X: 1, Y: 1, Z: 1, W: dstBlock8(dstSlices)},
		WorkGroupSize:    shapes.Int3{X: 8, Y: 4, Z: 1},
		LaunchOrder:      shapes.Int3{X: 2, Y: 0, Z: 1},
		SrcDepthLoopSize: 1,
		Upload:           bufferScheme(info),
	}
	if def.Precision == dtypes.PrecisionF16 {
		s.BlockSize.W = min(4, s.BlockSize.W)
		s.SrcDepthLoopSize = srcLoopSize(srcSlices, s.BlockSize.W)
		if s.BlockSize.W == 1 {
			if srcSlices%2 == 0 {
				s.SrcDepthLoopSize = 2
			}
			if srcSlices%4 == 0 {
				s.SrcDepthLoopSize = 4
			}
			if srcSlices <= 8 {
				s.SrcDepthLoopSize = srcSlices
			}
		}
		s.BlockSize.X = 2
		s.WorkGroupSize = shapes.Int3{X: 4, Y: 8, Z: 1}
	}
	if info.SupportsSubgroupBroadcast(s.WorkGroupSize.Volume()) {
		s.Upload = UploadSubgroupAsync
	}
	return s
}

func maliParams(srcSlices, dstSlices int) Strategy {
	s := Strategy{
		BlockSize:     shapes.Int4{X: 1, Y: 1, Z: 1, W: dstBlock4(dstSlices)},
		WorkGroupSize: shapes.Int3{X: 8, Y: 4, Z: 1},
		LaunchOrder:   shapes.Int3{X: 0, Y: 1, Z: 2},
		Upload:        UploadGlobalMemory,
	}
	s.SrcDepthLoopSize = srcLoopSize(srcSlices, s.BlockSize.W)
	return s
}

func texturePlanesParams() Strategy {
	return Strategy{
		BlockSize:        shapes.Int4{X: 2, Y: 2, Z: 1, W: 2},
		WorkGroupSize:    shapes.Int3{X: 8, Y: 4, Z: 1},
		LaunchOrder:      shapes.Int3{X: 0, Y: 1, Z: 2},
		SrcDepthLoopSize: 1,
		Upload:           UploadTexturePlanes,
	}
}
