// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"iter"

	"github.com/gomlx/conv3d/backends/gpu/arguments"
	"github.com/gomlx/conv3d/backends/gpu/device"
	"github.com/gomlx/conv3d/backends/gpu/storage"
	"github.com/gomlx/conv3d/backends/gpu/workgroups"
	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// KernelGenerator generates the kernel source for a convolution Strategy.
//
// The generator can declare further arguments in args (e.g. the source and destination tensors);
// the ones the Conv3D operation binds are already declared when Generate is called.
type KernelGenerator interface {
	Generate(def OperationDef, strideCorrection bool, s Strategy, args *arguments.Arguments) (code string, err error)
}

// CompilerOption passed to the kernel compiler.
type CompilerOption int

const (
	// CompilerOptionPowerVRFP16 enables the half-precision arithmetic of PowerVR compilers.
	CompilerOptionPowerVRFP16 CompilerOption = iota
)

// String implements fmt.Stringer.
func (o CompilerOption) String() string {
	switch o {
	case CompilerOptionPowerVRFP16:
		return "powervr_fp16"
	}
	return "CompilerOption(?)"
}

// Conv3D is a 3D convolution operation ready to be dispatched: with its Strategy selected,
// kernel generated, and weights and biases uploaded.
//
// It owns its device resources, freed with Release. It's not safe for concurrent use.
type Conv3D struct {
	info     *device.Info
	def      OperationDef
	strategy Strategy

	stride, padding, kernelSize, dilation shapes.Int3

	args            *arguments.Arguments
	code            string
	compilerOptions []CompilerOption
}

// Names of the int arguments set by Conv3D.BindArguments.
const (
	argGridSizeS = "grid_size_s"
)

var axisNames = [3]string{"x", "y", "z"}

// New creates a Conv3D operation for the device described by info.
//
// It returns an error if attr is invalid, if the kernel generation fails, or if the upload of the
// weights and biases fails, in which case the error is (or wraps) a *storage.ResourceCreationError.
func New(info *device.Info, def OperationDef, attr *Attributes, creator storage.Creator, generator KernelGenerator) (*Conv3D, error) {
	if err := attr.Validate(); err != nil {
		return nil, err
	}
	op := &Conv3D{
		info:       info,
		def:        def,
		strategy:   GuessBestParams(info, def, attr),
		stride:     attr.Strides.XYZ(),
		kernelSize: attr.KernelSize(),
		dilation:   attr.Dilations.XYZ(),
		args:       arguments.New(),
	}
	pre := attr.Padding.Prepended.XYZ()
	op.padding = shapes.Int3{X: -pre.X, Y: -pre.Y, Z: -pre.Z}
	op.declareArguments()

	strideCorrection := def.BatchSupported && op.stride.X != 1
	code, err := generator.Generate(def, strideCorrection, op.strategy, op.args)
	if err != nil {
		return nil, errors.WithMessagef(err, "conv3d: failed to generate kernel for %s", op.strategy)
	}
	op.code = code
	if info.IsPowerVR() && def.Precision == dtypes.PrecisionF16 {
		op.compilerOptions = append(op.compilerOptions, CompilerOptionPowerVRFP16)
	}

	if err := UploadData(attr.Weights, attr.Bias, op.strategy, def, creator, op.args); err != nil {
		op.args.Release()
		return nil, errors.WithMessagef(err, "conv3d: failed to upload %s weights", attr.Weights.Shape)
	}
	klog.V(1).Infof("conv3d: created operation for weights %s on %q", attr.Weights.Shape, info.Name)
	return op, nil
}

// kernelIs1 returns the trivial axes flags, indexed by axis.
func (op *Conv3D) kernelIs1() [3]bool {
	s := op.strategy
	return [3]bool{s.XKernelIs1, s.YKernelIs1, s.ZKernelIs1}
}

// declareArguments declares the int arguments set by BindArguments.
// Trivial axes have no arguments: the kernel doesn't loop over them.
func (op *Conv3D) declareArguments() {
	for axis, is1 := range op.kernelIs1() {
		if is1 {
			continue
		}
		name := axisNames[axis]
		op.args.AddInt("stride_"+name, op.stride.At(axis))
		op.args.AddInt("padding_"+name, op.padding.At(axis))
		op.args.AddInt("kernel_size_"+name, op.kernelSize.At(axis))
		op.args.AddInt("dilation_"+name, op.dilation.At(axis))
	}
	op.args.AddInt(argGridSizeS, 1)
}

// BindArguments sets the int arguments for computing an output shaped dst.
//
// The batch is folded into the width axis, so padding and dilation on x are scaled by the batch size.
func (op *Conv3D) BindArguments(dst shapes.BHWDC) error {
	is1 := op.kernelIs1()
	for axis := range is1 {
		if is1[axis] {
			continue
		}
		scale := 1
		if axis == 0 {
			scale = dst.B
		}
		name := axisNames[axis]
		for _, arg := range []struct {
			name  string
			value int
		}{
			{"stride_" + name, op.stride.At(axis)},
			{"padding_" + name, op.padding.At(axis) * scale},
			{"kernel_size_" + name, op.kernelSize.At(axis)},
			{"dilation_" + name, op.dilation.At(axis) * scale},
		} {
			if err := op.args.SetInt(arg.name, arg.value); err != nil {
				return errors.WithMessage(err, "conv3d.BindArguments")
			}
		}
	}
	return errors.WithMessage(
		op.args.SetInt(argGridSizeS, shapes.DivideRoundUp(dst.Slices(), op.strategy.BlockSize.W)),
		"conv3d.BindArguments")
}

// Strategy returns the selected execution strategy.
func (op *Conv3D) Strategy() Strategy { return op.strategy }

// Definition returns the operation definition.
func (op *Conv3D) Definition() OperationDef { return op.def }

// Arguments returns the named arguments of the kernel.
func (op *Conv3D) Arguments() *arguments.Arguments { return op.args }

// Code returns the kernel source generated for the strategy.
func (op *Conv3D) Code() string { return op.code }

// CompilerOptions returns the options to compile the kernel with.
func (op *Conv3D) CompilerOptions() []CompilerOption { return op.compilerOptions }

// GridSize returns the dispatch grid to compute an output shaped dst.
func (op *Conv3D) GridSize(dst shapes.BHWDC) shapes.Int3 { return GridSize(dst, op.strategy) }

// PossibleWorkGroups yields the work-group candidates to compute an output shaped dst.
func (op *Conv3D) PossibleWorkGroups(tuning workgroups.TuningType, kernelInfo workgroups.KernelInfo,
	dst shapes.BHWDC) iter.Seq[shapes.Int3] {
	return PossibleWorkGroups(tuning, op.info, kernelInfo, GridSize(dst, op.strategy), op.strategy)
}

// Release frees the device resources of the operation.
func (op *Conv3D) Release() {
	op.args.Release()
}
