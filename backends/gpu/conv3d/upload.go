// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"fmt"

	"github.com/gomlx/conv3d/backends/gpu/arguments"
	"github.com/gomlx/conv3d/backends/gpu/storage"
	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/gomlx/conv3d/pkg/core/tensors"
	"github.com/x448/float16"
	"k8s.io/klog/v2"
)

// Names of the resources registered by UploadData, referenced verbatim by the kernel source.
const (
	WeightsBufferName = "weights"
	BiasesName        = "biases"
)

// WeightsTextureName returns the name of the weights texture plane (0 to 3).
func WeightsTextureName(plane int) string { return fmt.Sprintf("weights%d", plane) }

// packWeights rearranges the weights for Strategy s, returning the raw bytes to upload.
func packWeights[T dtypes.Element](weights *tensors.Weights, s Strategy) []byte {
	quads := make([]dtypes.Quad[T], PackedWeightsLen(weights.Shape, s))
	RearrangeWeights(weights, s, quads)
	return dtypes.QuadsAsBytes(quads)
}

// UploadData packs and uploads the weights and biases of the convolution, and registers the
// created resources in args.
//
// The weights are stored in Float32 for PrecisionF32, and in Float16 otherwise. Buffer strategies
// create one buffer named "weights"; texture strategies create four textures "weights0" to
// "weights3". The biases are uploaded as a linear storage named "biases", of the operation's
// data type, backed by a buffer or a texture following the weights.
//
// If any creation fails, the resources already created are released, nothing is registered in args,
// and a *storage.ResourceCreationError naming the failed resource is returned.
func UploadData(weights *tensors.Weights, biases *tensors.Linear, s Strategy, def OperationDef,
	creator storage.Creator, args *arguments.Arguments) error {
	f32Weights := def.Precision == dtypes.PrecisionF32
	weightsDType := dtypes.Float16
	var data []byte
	if f32Weights {
		weightsDType = dtypes.Float32
		data = packWeights[float32](weights, s)
	} else {
		data = packWeights[float16.Float16](weights, s)
	}

	type created struct {
		name       string
		resource   arguments.Releaser
		descriptor any
	}
	var resources []created
	releaseAll := func() {
		for _, r := range resources {
			r.resource.Release()
		}
	}

	if s.AreWeightsBuffer() {
		buf, err := creator.CreateReadOnlyBuffer(len(data), data)
		if err != nil {
			return storage.NewResourceCreationError(WeightsBufferName, err)
		}
		resources = append(resources, created{WeightsBufferName, buf,
			storage.BufferDescriptor{ElementType: weightsDType, ElementSize: dtypes.QuadLanes}})
	} else {
		width, height := TextureSize(weights.Shape, s)
		planeBytes := width * height * dtypes.QuadSize(weightsDType)
		for plane := range dtypes.QuadLanes {
			name := WeightsTextureName(plane)
			tex, err := creator.CreateTexture2DRGBA(weightsDType, width, height, data[plane*planeBytes:(plane+1)*planeBytes])
			if err != nil {
				releaseAll()
				return storage.NewResourceCreationError(name, err)
			}
			resources = append(resources, created{name, tex, storage.Texture2DDescriptor{ElementType: weightsDType}})
		}
	}

	biasDesc := storage.TensorLinearDescriptor{StorageType: storage.LinearTexture2D, ElementType: def.DataType()}
	if s.AreWeightsBuffer() {
		biasDesc.StorageType = storage.LinearBuffer
	}
	biasStorage, err := storage.CreateLinearStorage(biasDesc, biases.Data, creator)
	if err != nil {
		releaseAll()
		return storage.NewResourceCreationError(BiasesName, err)
	}
	resources = append(resources, created{BiasesName, biasStorage, biasDesc})

	for _, r := range resources {
		args.AddObject(r.name, arguments.Read, r.resource, r.descriptor)
	}
	klog.V(2).Infof("conv3d: uploaded %d bytes of %s weights (%s) and %d biases",
		len(data), weightsDType, s.Upload, len(biases.Data))
	return nil
}
