// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package conv3d

import (
	"testing"

	"github.com/gomlx/conv3d/backends/gpu/arguments"
	"github.com/gomlx/conv3d/backends/gpu/storage"
	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/gomlx/conv3d/pkg/core/tensors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestUploadData_Buffer(t *testing.T) {
	shape := shapes.MakeOHWDI(8, 3, 3, 3, 4)
	weights := iotaWeights(shape)
	biases := tensors.LinearFromFlatData([]float32{1, 2, 3, 4, 5, 6, 7, 8})
	s := bufferStrategy(1)

	for _, tc := range []struct {
		precision  dtypes.Precision
		quadSize   int
		weightType dtypes.DType
	}{
		{dtypes.PrecisionF32, 16, dtypes.Float32},
		{dtypes.PrecisionF16, 8, dtypes.Float16},
		{dtypes.PrecisionF32F16, 8, dtypes.Float16},
	} {
		t.Run(tc.precision.String(), func(t *testing.T) {
			mem := storage.NewMemory(profile(t, "generic"))
			args := arguments.New()
			require.NoError(t, UploadData(weights, biases, s, OperationDef{Precision: tc.precision}, mem, args))
			assert.Equal(t, []string{WeightsBufferName, BiasesName}, args.ObjectNames())
			assert.Equal(t, 2, mem.NumResources())

			obj, found := args.Object(WeightsBufferName)
			require.True(t, found)
			assert.Equal(t, storage.BufferDescriptor{ElementType: tc.weightType, ElementSize: 4}, obj.Descriptor)
			buf := obj.Resource.(*storage.MemoryBuffer)
			assert.Equal(t, PackedWeightsLen(shape, s)*tc.quadSize, buf.SizeBytes())
			if tc.weightType == dtypes.Float32 {
				assert.Equal(t, weights, UnpackWeights(dtypes.QuadsFromBytes[float32](buf.Data), shape, s))
			} else {
				assert.Equal(t, weights, UnpackWeights(dtypes.QuadsFromBytes[float16.Float16](buf.Data), shape, s))
			}

			obj, found = args.Object(BiasesName)
			require.True(t, found)
			assert.Equal(t, storage.TensorLinearDescriptor{StorageType: storage.LinearBuffer, ElementType: tc.weightType},
				obj.Descriptor)
			bias := obj.Resource.(*storage.LinearStorage)
			assert.Equal(t, 2, bias.Depth)
			assert.Nil(t, bias.Texture)

			args.Release()
			assert.Zero(t, mem.NumResources())
			assert.Zero(t, mem.AllocatedBytes())
		})
	}
}

func TestUploadData_Textures(t *testing.T) {
	shape := shapes.MakeOHWDI(6, 2, 1, 3, 5)
	weights := iotaWeights(shape)
	s := textureStrategy(2)
	mem := storage.NewMemory(profile(t, "adreno"))
	args := arguments.New()
	require.NoError(t, UploadData(weights, tensors.LinearZeros(6), s, OperationDef{Precision: dtypes.PrecisionF32}, mem, args))
	assert.Equal(t, []string{"weights0", "weights1", "weights2", "weights3", BiasesName}, args.ObjectNames())
	assert.Equal(t, 5, mem.NumResources())

	width, height := TextureSize(shape, s)
	var planes []byte
	for plane := range 4 {
		obj, found := args.Object(WeightsTextureName(plane))
		require.True(t, found)
		assert.Equal(t, storage.Texture2DDescriptor{ElementType: dtypes.Float32}, obj.Descriptor)
		tex := obj.Resource.(*storage.MemoryTexture2D)
		assert.Equal(t, width, tex.Width())
		assert.Equal(t, height, tex.Height())
		planes = append(planes, tex.Data...)
	}
	assert.Equal(t, weights, UnpackWeights(dtypes.QuadsFromBytes[float32](planes), shape, s))

	obj, found := args.Object(BiasesName)
	require.True(t, found)
	bias := obj.Resource.(*storage.LinearStorage)
	assert.Equal(t, storage.LinearTexture2D, bias.Descriptor.StorageType)
	assert.NotNil(t, bias.Texture)
	args.Release()
	assert.Zero(t, mem.NumResources())
}

func TestUploadData_Failures(t *testing.T) {
	shape := shapes.MakeOHWDI(8, 3, 3, 3, 4)
	weights := iotaWeights(shape)
	biases := tensors.LinearZeros(8)
	def := OperationDef{Precision: dtypes.PrecisionF16}

	t.Run("TextureTooTall", func(t *testing.T) {
		info := profile(t, "adreno")
		info.MaxImage2DHeight = 26 // Planes need 27 rows.
		mem := storage.NewMemory(info)
		args := arguments.New()
		err := UploadData(weights, biases, textureStrategy(2), def, mem, args)
		require.Error(t, err)
		var rce *storage.ResourceCreationError
		require.True(t, errors.As(err, &rce))
		assert.Equal(t, "weights0", rce.Resource)
		assert.Empty(t, args.ObjectNames())
		assert.Zero(t, mem.NumResources())
	})

	t.Run("NoImages", func(t *testing.T) {
		info := profile(t, "generic")
		info.SupportsImage2D = false
		err := UploadData(weights, biases, textureStrategy(2), def, storage.NewMemory(info), arguments.New())
		require.True(t, storage.IsResourceCreationError(err))
	})

	t.Run("OutOfMemoryOnBiases", func(t *testing.T) {
		mem := storage.NewMemory(profile(t, "generic"))
		s := bufferStrategy(1)
		mem.MaxTotalBytes = int64(PackedWeightsLen(shape, s) * 8) // Only the Float16 weights fit.
		args := arguments.New()
		err := UploadData(weights, biases, s, def, mem, args)
		var rce *storage.ResourceCreationError
		require.True(t, errors.As(err, &rce))
		assert.Equal(t, BiasesName, rce.Resource)
		assert.ErrorContains(t, err, "out of device memory")
		assert.Empty(t, args.ObjectNames())
		assert.Zero(t, mem.NumResources())
		assert.Zero(t, mem.AllocatedBytes())
	})

	t.Run("BufferTooLarge", func(t *testing.T) {
		info := profile(t, "generic")
		info.MaxBufferSize = 64
		err := UploadData(weights, biases, bufferStrategy(4), def, storage.NewMemory(info), arguments.New())
		var rce *storage.ResourceCreationError
		require.True(t, errors.As(err, &rce))
		assert.Equal(t, WeightsBufferName, rce.Resource)
	})
}
