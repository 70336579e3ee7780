// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package storage

import (
	"testing"

	"github.com/gomlx/conv3d/backends/gpu/device"
	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/janpfeifer/must"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func newTestMemory(t *testing.T, profile string) *Memory {
	t.Helper()
	return NewMemory(must.M1(device.FromProfile(profile)))
}

func TestMemory_Buffers(t *testing.T) {
	m := newTestMemory(t, "generic")
	buf, err := m.CreateReadOnlyBuffer(8, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	assert.Equal(t, 8, buf.SizeBytes())
	assert.Equal(t, int64(8), m.AllocatedBytes())
	assert.Equal(t, 1, m.NumResources())

	_, err = m.CreateReadOnlyBuffer(8, []byte{1})
	require.Error(t, err)

	buf.Release()
	buf.Release() // Idempotent.
	assert.Equal(t, int64(0), m.AllocatedBytes())
	assert.Equal(t, 0, m.NumResources())

	m.MaxTotalBytes = 10
	_, err = m.CreateReadOnlyBuffer(16, make([]byte, 16))
	require.ErrorContains(t, err, "out of device memory")

	m.info.MaxBufferSize = 4
	m.MaxTotalBytes = 0
	_, err = m.CreateReadOnlyBuffer(8, make([]byte, 8))
	require.ErrorContains(t, err, "max buffer size")
}

func TestMemory_Textures(t *testing.T) {
	m := newTestMemory(t, "generic")
	tex, err := m.CreateTexture2DRGBA(dtypes.Float16, 3, 2, make([]byte, 3*2*8))
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Width())
	assert.Equal(t, 2, tex.Height())
	assert.Equal(t, dtypes.Float16, tex.DType())
	assert.Equal(t, int64(48), m.AllocatedBytes())
	tex.Release()
	assert.Equal(t, int64(0), m.AllocatedBytes())

	_, err = m.CreateTexture2DRGBA(dtypes.Float32, 3, 2, make([]byte, 3*2*8))
	require.Error(t, err)
	_, err = m.CreateTexture2DRGBA(dtypes.Float32, m.info.MaxImage2DWidth+1, 1, nil)
	require.ErrorContains(t, err, "2D image limits")
	m.info.SupportsImage2D = false
	_, err = m.CreateTexture2DRGBA(dtypes.Float32, 1, 1, make([]byte, 16))
	require.ErrorContains(t, err, "doesn't support 2D images")
}

func TestCreateLinearStorage(t *testing.T) {
	m := newTestMemory(t, "generic")
	values := []float32{1, 2, 3, 4, 5}

	ls, err := CreateLinearStorage(TensorLinearDescriptor{StorageType: LinearBuffer, ElementType: dtypes.Float32}, values, m)
	require.NoError(t, err)
	assert.Equal(t, 2, ls.Depth)
	require.NotNil(t, ls.Buffer)
	assert.Nil(t, ls.Texture)
	quads := dtypes.QuadsFromBytes[float32](ls.Buffer.(*MemoryBuffer).Data)
	assert.Equal(t, []dtypes.Quad[float32]{{1, 2, 3, 4}, {5, 0, 0, 0}}, quads)
	ls.Release()

	ls, err = CreateLinearStorage(TensorLinearDescriptor{StorageType: LinearTexture2D, ElementType: dtypes.Float16}, values, m)
	require.NoError(t, err)
	require.NotNil(t, ls.Texture)
	assert.Equal(t, 2, ls.Texture.Width())
	assert.Equal(t, 1, ls.Texture.Height())
	halfQuads := dtypes.QuadsFromBytes[float16.Float16](ls.Texture.(*MemoryTexture2D).Data)
	assert.Equal(t, float32(5), halfQuads[1][0].Float32())
	assert.Equal(t, float32(0), halfQuads[1][3].Float32())
	ls.Release()
	assert.Equal(t, int64(0), m.AllocatedBytes())

	_, err = CreateLinearStorage(TensorLinearDescriptor{ElementType: dtypes.InvalidDType}, values, m)
	require.Error(t, err)
}

func TestResourceCreationError(t *testing.T) {
	base := errors.New("out of memory")
	err := NewResourceCreationError("weights", base)
	require.True(t, IsResourceCreationError(err))
	assert.ErrorIs(t, err, base)
	assert.Equal(t, base, errors.Cause(err))
	assert.Contains(t, err.Error(), `"weights"`)

	// Wrapping twice keeps the innermost resource name.
	wrapped := NewResourceCreationError("biases", errors.WithMessage(err, "context"))
	var rce *ResourceCreationError
	require.True(t, errors.As(wrapped, &rce))
	assert.Equal(t, "weights", rce.Resource)

	assert.NoError(t, NewResourceCreationError("weights", nil))
	assert.False(t, IsResourceCreationError(base))
}
