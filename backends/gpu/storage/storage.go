// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package storage defines the device resources (buffers, 2D textures, linear storages) GPU
// operations upload their constant data to, and the Creator interface that allocates them.
//
// The actual allocation and upload mechanics belong to the device layer implementing Creator.
// This package also provides Memory, a host-memory Creator that enforces the limits of a
// device.Info, used for offline planning and tests.
package storage

import (
	"fmt"

	"github.com/gomlx/conv3d/pkg/core/dtypes"
	"github.com/pkg/errors"
)

// Buffer is a handle to a linear, read-only device buffer.
type Buffer interface {
	// SizeBytes is the size of the buffer.
	SizeBytes() int

	// Release frees the device memory. The handle becomes invalid.
	Release()
}

// Texture2D is a handle to a 2D RGBA device image, where each pixel holds one Quad.
type Texture2D interface {
	Width() int
	Height() int
	DType() dtypes.DType

	// Release frees the device memory. The handle becomes invalid.
	Release()
}

// Creator allocates device resources initialized with the given bytes.
//
// Allocations are synchronous from the caller's perspective: whatever fencing is needed
// for the upload is the responsibility of the implementation.
type Creator interface {
	// CreateReadOnlyBuffer creates a buffer of sizeBytes, initialized with data (len(data) == sizeBytes).
	CreateReadOnlyBuffer(sizeBytes int, data []byte) (Buffer, error)

	// CreateTexture2DRGBA creates a width x height RGBA image of the given dtype, initialized with
	// data, whose length must be width*height*4*dtype.Size() bytes.
	CreateTexture2DRGBA(dtype dtypes.DType, width, height int, data []byte) (Texture2D, error)
}

// BufferDescriptor describes how a kernel reads a Buffer.
type BufferDescriptor struct {
	ElementType dtypes.DType

	// ElementSize is the number of lanes read at once (4 for Quads).
	ElementSize int
}

// Texture2DDescriptor describes how a kernel reads a Texture2D.
type Texture2DDescriptor struct {
	ElementType dtypes.DType
}

// ResourceCreationError is returned when the allocation of a device resource fails, e.g. when
// the device is out of memory or the requested dimensions exceed the device limits.
type ResourceCreationError struct {
	// Resource is the name of the resource being created, e.g. "weights0".
	Resource string

	// Err is the underlying reason.
	Err error
}

// Error implements error.
func (e *ResourceCreationError) Error() string {
	return fmt.Sprintf("failed to create device resource %q: %v", e.Resource, e.Err)
}

// Unwrap returns the underlying error, for errors.Is/errors.As.
func (e *ResourceCreationError) Unwrap() error { return e.Err }

// Cause returns the underlying error, for github.com/pkg/errors.Cause.
func (e *ResourceCreationError) Cause() error { return e.Err }

// NewResourceCreationError wraps err as a ResourceCreationError for the named resource.
//
// If err is already a ResourceCreationError it is returned as is.
func NewResourceCreationError(resource string, err error) error {
	if err == nil {
		return nil
	}
	var rce *ResourceCreationError
	if errors.As(err, &rce) {
		return err
	}
	return &ResourceCreationError{Resource: resource, Err: err}
}

// IsResourceCreationError returns whether err is (or wraps) a ResourceCreationError.
func IsResourceCreationError(err error) bool {
	var rce *ResourceCreationError
	return errors.As(err, &rce)
}
