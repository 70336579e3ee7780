// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package storage

import (
	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
	"k8s.io/klog/v2"
)

// LinearStorageType selects the device resource backing a LinearStorage.
type LinearStorageType int

const (
	// LinearBuffer backs the storage with a linear buffer.
	LinearBuffer LinearStorageType = iota

	// LinearTexture2D backs the storage with a (slices x 1) 2D texture.
	LinearTexture2D
)

// String implements fmt.Stringer.
func (t LinearStorageType) String() string {
	switch t {
	case LinearBuffer:
		return "buffer"
	case LinearTexture2D:
		return "texture_2d"
	}
	return "LinearStorageType(?)"
}

// TensorLinearDescriptor describes a 1D tensor uploaded as a LinearStorage.
type TensorLinearDescriptor struct {
	StorageType LinearStorageType
	ElementType dtypes.DType
}

// LinearStorage holds a 1D tensor on the device, packed in Quads: one slice of 4 values per element.
type LinearStorage struct {
	Descriptor TensorLinearDescriptor

	// Depth is the number of Quads (slices) stored.
	Depth int

	// Exactly one of Buffer or Texture is set, according to Descriptor.StorageType.
	Buffer  Buffer
	Texture Texture2D
}

// Release frees the device resource.
func (ls *LinearStorage) Release() {
	if ls.Buffer != nil {
		ls.Buffer.Release()
		ls.Buffer = nil
	}
	if ls.Texture != nil {
		ls.Texture.Release()
		ls.Texture = nil
	}
}

// CreateLinearStorage uploads values as a LinearStorage, converted to desc.ElementType and
// zero-padded to a multiple of 4 values.
func CreateLinearStorage(desc TensorLinearDescriptor, values []float32, creator Creator) (*LinearStorage, error) {
	var data []byte
	var depth int
	switch desc.ElementType {
	case dtypes.Float32:
		quads := dtypes.PackQuads[float32](values)
		depth, data = len(quads), dtypes.QuadsAsBytes(quads)
	case dtypes.Float16:
		quads := dtypes.PackQuads[float16.Float16](values)
		depth, data = len(quads), dtypes.QuadsAsBytes(quads)
	default:
		return nil, errors.Errorf("CreateLinearStorage: unsupported element type %s", desc.ElementType)
	}
	ls := &LinearStorage{Descriptor: desc, Depth: depth}
	var err error
	switch desc.StorageType {
	case LinearBuffer:
		ls.Buffer, err = creator.CreateReadOnlyBuffer(len(data), data)
	case LinearTexture2D:
		ls.Texture, err = creator.CreateTexture2DRGBA(desc.ElementType, depth, 1, data)
	default:
		return nil, errors.Errorf("CreateLinearStorage: unknown storage type %d", desc.StorageType)
	}
	if err != nil {
		return nil, errors.WithMessagef(err, "CreateLinearStorage(%s, %d values)", desc.StorageType, len(values))
	}
	klog.V(2).Infof("created linear storage (%s, %s) with %d slices", desc.StorageType, desc.ElementType, depth)
	return ls, nil
}
