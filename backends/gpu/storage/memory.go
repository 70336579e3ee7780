// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package storage

import (
	"slices"
	"sync"

	"github.com/gomlx/conv3d/backends/gpu/device"
	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/pkg/errors"
)

// Memory is a Creator that keeps the resources in host memory, while enforcing the limits of the
// device it emulates: maximum buffer size, 2D image support and dimensions, and an optional
// total memory budget.
//
// It is safe for concurrent use.
type Memory struct {
	info *device.Info

	// MaxTotalBytes is the total memory budget, 0 for unlimited.
	// It should be set before any allocation.
	MaxTotalBytes int64

	mu             sync.Mutex
	allocatedBytes int64
	numResources   int
}

var _ Creator = (*Memory)(nil)

// NewMemory returns a host-memory Creator emulating the limits of the given device.
func NewMemory(info *device.Info) *Memory {
	return &Memory{info: info}
}

// AllocatedBytes returns the current number of bytes allocated (and not released).
func (m *Memory) AllocatedBytes() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.allocatedBytes
}

// NumResources returns the current number of resources allocated (and not released).
func (m *Memory) NumResources() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.numResources
}

func (m *Memory) reserve(sizeBytes int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.MaxTotalBytes > 0 && m.allocatedBytes+int64(sizeBytes) > m.MaxTotalBytes {
		return errors.Errorf("out of device memory: %d bytes requested, %d of %d bytes in use",
			sizeBytes, m.allocatedBytes, m.MaxTotalBytes)
	}
	m.allocatedBytes += int64(sizeBytes)
	m.numResources++
	return nil
}

func (m *Memory) free(sizeBytes int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.allocatedBytes -= int64(sizeBytes)
	m.numResources--
}

// CreateReadOnlyBuffer implements Creator.
func (m *Memory) CreateReadOnlyBuffer(sizeBytes int, data []byte) (Buffer, error) {
	if sizeBytes <= 0 || len(data) != sizeBytes {
		return nil, errors.Errorf("CreateReadOnlyBuffer(%d bytes): invalid size or data with %d bytes", sizeBytes, len(data))
	}
	if m.info.MaxBufferSize > 0 && int64(sizeBytes) > m.info.MaxBufferSize {
		return nil, errors.Errorf("CreateReadOnlyBuffer(%d bytes): exceeds device %q max buffer size of %d bytes",
			sizeBytes, m.info.Name, m.info.MaxBufferSize)
	}
	if err := m.reserve(sizeBytes); err != nil {
		return nil, err
	}
	return &MemoryBuffer{owner: m, Data: slices.Clone(data)}, nil
}

// CreateTexture2DRGBA implements Creator.
func (m *Memory) CreateTexture2DRGBA(dtype dtypes.DType, width, height int, data []byte) (Texture2D, error) {
	if dtype != dtypes.Float32 && dtype != dtypes.Float16 {
		return nil, errors.Errorf("CreateTexture2DRGBA: unsupported dtype %s", dtype)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Errorf("CreateTexture2DRGBA(%dx%d): invalid dimensions", width, height)
	}
	if !m.info.SupportsImage2D {
		return nil, errors.Errorf("CreateTexture2DRGBA: device %q doesn't support 2D images", m.info.Name)
	}
	if !m.info.FitsImage2D(width, height) {
		return nil, errors.Errorf("CreateTexture2DRGBA(%dx%d): exceeds device %q 2D image limits of %dx%d",
			width, height, m.info.Name, m.info.MaxImage2DWidth, m.info.MaxImage2DHeight)
	}
	sizeBytes := width * height * dtypes.QuadSize(dtype)
	if len(data) != sizeBytes {
		return nil, errors.Errorf("CreateTexture2DRGBA(%s, %dx%d): got %d bytes of data, wanted %d",
			dtype, width, height, len(data), sizeBytes)
	}
	if err := m.reserve(sizeBytes); err != nil {
		return nil, err
	}
	return &MemoryTexture2D{owner: m, Data: slices.Clone(data), width: width, height: height, dtype: dtype}, nil
}

// MemoryBuffer is the Buffer created by Memory.
type MemoryBuffer struct {
	owner *Memory

	// Data holds a copy of the uploaded bytes.
	Data []byte
}

// SizeBytes implements Buffer.
func (b *MemoryBuffer) SizeBytes() int { return len(b.Data) }

// Release implements Buffer.
func (b *MemoryBuffer) Release() {
	if b.Data == nil {
		return
	}
	b.owner.free(len(b.Data))
	b.Data = nil
}

// MemoryTexture2D is the Texture2D created by Memory.
type MemoryTexture2D struct {
	owner *Memory

	// Data holds a copy of the uploaded bytes, row-major, one Quad per pixel.
	Data []byte

	width, height int
	dtype         dtypes.DType
}

// Width implements Texture2D.
func (t *MemoryTexture2D) Width() int { return t.width }

// Height implements Texture2D.
func (t *MemoryTexture2D) Height() int { return t.height }

// DType implements Texture2D.
func (t *MemoryTexture2D) DType() dtypes.DType { return t.dtype }

// Release implements Texture2D.
func (t *MemoryTexture2D) Release() {
	if t.Data == nil {
		return
	}
	t.owner.free(len(t.Data))
	t.Data = nil
}
