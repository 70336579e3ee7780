// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/gomlx/conv3d/pkg/core/tensors"
	"github.com/pkg/errors"
)

// Padding of the spatial axes, before (Prepended) and after (Appended) the input.
type Padding struct {
	Prepended, Appended shapes.HWD
}

// Attributes of a 3D convolution.
//
// The tensors are owned by the caller, and only read while the operation is built.
type Attributes struct {
	// Weights shaped OHWDI.
	Weights *tensors.Weights

	// Bias has one value per output channel (Weights.Shape.O).
	Bias *tensors.Linear

	Strides   shapes.HWD
	Dilations shapes.HWD
	Padding   Padding
}

// KernelSize returns the spatial extents of the kernel, in dispatch order (X=width, Y=height, Z=depth).
func (attr *Attributes) KernelSize() shapes.Int3 {
	s := attr.Weights.Shape
	return shapes.Int3{X: s.W, Y: s.H, Z: s.D}
}

// SrcSlices returns the number of 4-channel slices of the input.
func (attr *Attributes) SrcSlices() int { return shapes.Slices(attr.Weights.Shape.I) }

// DstSlices returns the number of 4-channel slices of the output.
func (attr *Attributes) DstSlices() int { return shapes.Slices(attr.Weights.Shape.O) }

// KernelIs1 returns, for each of the x (width), y (height) and z (depth) axes, whether the
// convolution is trivial on the axis: kernel extent 1, stride 1, dilation 1 and no padding.
func (attr *Attributes) KernelIs1() (x, y, z bool) {
	kernel := attr.KernelSize()
	strides, dilations := attr.Strides.XYZ(), attr.Dilations.XYZ()
	pre, post := attr.Padding.Prepended.XYZ(), attr.Padding.Appended.XYZ()
	var is1 [3]bool
	for axis := range is1 {
		is1[axis] = kernel.At(axis) == 1 && strides.At(axis) == 1 && dilations.At(axis) == 1 &&
			pre.At(axis) == 0 && post.At(axis) == 0
	}
	return is1[0], is1[1], is1[2]
}

// Validate checks that the attributes are consistent.
func (attr *Attributes) Validate() error {
	if attr == nil {
		return errors.New("nil conv3d.Attributes")
	}
	if err := attr.Weights.CheckValid(); err != nil {
		return errors.WithMessage(err, "conv3d weights")
	}
	if attr.Bias == nil || len(attr.Bias.Data) != attr.Weights.Shape.O {
		numBias := 0
		if attr.Bias != nil {
			numBias = len(attr.Bias.Data)
		}
		return errors.Errorf("conv3d: got %d biases for %d output channels", numBias, attr.Weights.Shape.O)
	}
	for _, axes := range []struct {
		name  string
		value shapes.HWD
		min   int
	}{
		{"strides", attr.Strides, 1},
		{"dilations", attr.Dilations, 1},
		{"prepended padding", attr.Padding.Prepended, 0},
		{"appended padding", attr.Padding.Appended, 0},
	} {
		if axes.value.H < axes.min || axes.value.W < axes.min || axes.value.D < axes.min {
			return errors.Errorf("conv3d: invalid %s %s, values must be >= %d", axes.name, axes.value, axes.min)
		}
	}
	return nil
}
