// conv3d_plan prints how a 3D convolution would be executed on a GPU device: the strategy selected,
// the device resources uploaded, the dispatch grid and the work-group candidates for tuning.
//
// It doesn't need a GPU: the device is described by a built-in profile or a YAML file (see
// package device), and the resources are created in host memory, enforcing the device limits.
//
// Example:
//
//	conv3d_plan -device=adreno -weights=32,3,3,3,16 -output=1,64,64,8,32 -precision=f16
package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gomlx/conv3d/backends/gpu/arguments"
	"github.com/gomlx/conv3d/backends/gpu/conv3d"
	"github.com/gomlx/conv3d/backends/gpu/device"
	"github.com/gomlx/conv3d/backends/gpu/storage"
	"github.com/gomlx/conv3d/backends/gpu/workgroups"
	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/gomlx/conv3d/pkg/core/tensors"
	"github.com/gomlx/conv3d/pkg/support/xslices"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagDevice = flag.String("device", "",
		fmt.Sprintf("GPU device: a built-in profile (%s) or a YAML file. Defaults to $%s or %q.",
			strings.Join(device.ProfileNames(), ", "), device.GOMLX_GPU_DEVICE, device.DefaultProfile))
	flagWeights   = xslices.Flag("weights", []int{8, 3, 3, 3, 4}, "Weights shape: O,H,W,D,I.", strconv.Atoi)
	flagOutput    = xslices.Flag("output", []int{1, 32, 32, 32, 8}, "Output shape: B,H,W,D,C.", strconv.Atoi)
	flagStrides   = xslices.Flag("strides", []int{1, 1, 1}, "Strides: H,W,D.", strconv.Atoi)
	flagDilations = xslices.Flag("dilations", []int{1, 1, 1}, "Dilations: H,W,D.", strconv.Atoi)
	flagPadding   = xslices.Flag("padding", []int{0, 0, 0}, "Padding on both sides: H,W,D.", strconv.Atoi)
	flagPrecision = flag.String("precision", "f32", "Calculation precision: f32, f16 or f32_f16.")
	flagBatch     = flag.Bool("batch", false, "Whether the tensors have a batch folded in the width axis.")
	flagTuning    = flag.String("tuning", "fast", "Work-group tuning: none, fast or exhaustive.")
	flagMemory    = flag.Int64("memory", 0, "Device memory budget in bytes, 0 for unlimited.")
	flagMaxCands  = flag.Int("max_candidates", 16, "Maximum number of work-group candidates to list.")
)

// planGenerator stands in for the kernel source generator: the plan only needs the strategy.
type planGenerator struct{}

func (planGenerator) Generate(def conv3d.OperationDef, strideCorrection bool, s conv3d.Strategy,
	args *arguments.Arguments) (string, error) {
	return fmt.Sprintf("// conv3d %s, precision=%s, stride_correction=%t", s, def.Precision, strideCorrection), nil
}

func hwd(name string, values []int) shapes.HWD {
	if len(values) != 3 {
		klog.Fatalf("-%s requires 3 values (H,W,D), got %v", name, values)
	}
	return shapes.HWD{H: values[0], W: values[1], D: values[2]}
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if err := run(); err != nil {
		klog.Errorf("conv3d_plan failed: %+v", err)
		os.Exit(1)
	}
}

func run() error {
	var info *device.Info
	var err error
	if *flagDevice != "" {
		info, err = device.FromConfig(*flagDevice)
	} else {
		info, err = device.FromEnv()
	}
	if err != nil {
		return err
	}
	precision, err := dtypes.PrecisionString(*flagPrecision)
	if err != nil {
		return err
	}
	tuning, err := workgroups.TuningTypeString(*flagTuning)
	if err != nil {
		return err
	}
	if len(*flagWeights) != 5 || len(*flagOutput) != 5 {
		return errors.Errorf("-weights and -output require 5 values each, got %v and %v", *flagWeights, *flagOutput)
	}
	for _, v := range append(slices.Clone(*flagWeights), *flagOutput...) {
		if v <= 0 {
			return errors.Errorf("-weights and -output dimensions must be positive, got %v and %v", *flagWeights, *flagOutput)
		}
	}
	w := *flagWeights
	weightsShape := shapes.MakeOHWDI(w[0], w[1], w[2], w[3], w[4])
	o := *flagOutput
	dst := shapes.BHWDC{B: o[0], H: o[1], W: o[2], D: o[3], C: o[4]}
	padding := hwd("padding", *flagPadding)
	attr := &conv3d.Attributes{
		Weights:   tensors.FromShape(weightsShape),
		Bias:      tensors.LinearZeros(weightsShape.O),
		Strides:   hwd("strides", *flagStrides),
		Dilations: hwd("dilations", *flagDilations),
		Padding:   conv3d.Padding{Prepended: padding, Appended: padding},
	}
	def := conv3d.OperationDef{Precision: precision, BatchSupported: *flagBatch}

	mem := storage.NewMemory(info)
	mem.MaxTotalBytes = *flagMemory
	op, err := conv3d.New(info, def, attr, mem, planGenerator{})
	if err != nil {
		return err
	}
	defer op.Release()
	if err = op.BindArguments(dst); err != nil {
		return err
	}

	fmt.Println(titleStyle.Render("Device"))
	table := newPlainTable()
	table.Row("name", info.Name)
	table.Row("vendor", info.Vendor.String())
	table.Row("model", info.Model)
	table.Row("work-group limits", fmt.Sprintf("%s, %d invocations", info.MaxWorkGroupSize, info.MaxWorkGroupInvocations))
	table.Row("local memory", fmt.Sprintf("%t (subgroup %d)", info.SupportsLocalMemory, info.SubgroupSize))
	table.Row("2D images", fmt.Sprintf("%t (%dx%d)", info.SupportsImage2D, info.MaxImage2DWidth, info.MaxImage2DHeight))
	fmt.Println(table.Render())

	s := op.Strategy()
	fmt.Println(titleStyle.Render("Strategy"))
	table = newPlainTable()
	table.Row("weights", weightsShape.String())
	table.Row("block size", s.BlockSize.String())
	table.Row("work-group", s.WorkGroupSize.String())
	table.Row("launch order", s.LaunchOrder.String())
	table.Row("src depth loop", strconv.Itoa(s.SrcDepthLoopSize))
	table.Row("upload", s.Upload.String())
	table.Row("kernel is 1 (x,y,z)", fmt.Sprintf("%t, %t, %t", s.XKernelIs1, s.YKernelIs1, s.ZKernelIs1))
	table.Row("compiler options", fmt.Sprintf("%v", op.CompilerOptions()))
	fmt.Println(table.Render())

	fmt.Println(titleStyle.Render("Resources"))
	table = newPlainTable("name", "resource", "size")
	args := op.Arguments()
	for _, name := range args.ObjectNames() {
		obj, _ := args.Object(name)
		kind, size := describeResource(obj.Resource)
		table.Row(name, kind, size)
	}
	table.Row("total", fmt.Sprintf("%d resources", mem.NumResources()), humanize.Bytes(uint64(mem.AllocatedBytes())))
	fmt.Println(table.Render())

	fmt.Println(titleStyle.Render("Dispatch"))
	table = newPlainTable()
	table.Row("output", dst.String())
	table.Row("tiles", conv3d.TileGrid(dst, s).String())
	table.Row("grid", op.GridSize(dst).String())
	for _, name := range args.IntNames() {
		v, _ := args.Int(name)
		table.Row(name, strconv.Itoa(v))
	}
	fmt.Println(table.Render())

	fmt.Println(titleStyle.Render(fmt.Sprintf("Work-group candidates (%s)", tuning)))
	table = newPlainTable("#", "work-group", "invocations")
	count := 0
	for wg := range op.PossibleWorkGroups(tuning, workgroups.KernelInfo{}, dst) {
		if count >= *flagMaxCands {
			break
		}
		count++
		table.Row(strconv.Itoa(count), wg.String(), humanize.Comma(int64(wg.Volume())))
	}
	fmt.Println(table.Render())
	return nil
}

// describeResource returns the kind and the size of a device resource.
func describeResource(resource any) (kind, size string) {
	switch r := resource.(type) {
	case storage.Buffer:
		return "buffer", humanize.Bytes(uint64(r.SizeBytes()))
	case storage.Texture2D:
		return fmt.Sprintf("texture %dx%d %s", r.Width(), r.Height(), r.DType()),
			humanize.Bytes(uint64(r.Width() * r.Height() * dtypes.QuadSize(r.DType())))
	case *storage.LinearStorage:
		return fmt.Sprintf("linear %s %s", r.Descriptor.StorageType, r.Descriptor.ElementType),
			humanize.Bytes(uint64(r.Depth * dtypes.QuadSize(r.Descriptor.ElementType)))
	}
	return fmt.Sprintf("%T", resource), ""
}
