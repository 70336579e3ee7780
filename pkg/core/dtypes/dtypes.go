// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package dtypes includes the DType enum for the element types that can be uploaded to a GPU
// device, and the Precision an operation is calculated in.
//
// Go float16 support uses the github.com/x448/float16 implementation.
//
// It also includes the Element constraint used by the generic weight-packing functions, and
// converters to/from float32.
package dtypes

import (
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// panicf panics with the formatted description.
//
// It is only used for "bugs in the code" -- when parameters are invalid.
// In principle, it should never happen -- the same way nil-pointer panics should never happen.
func panicf(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}

// Element is the constraint for the Go types that can be used as an element of the packed
// device data.
type Element interface {
	float32 | float16.Float16
}

// FromGenericsType returns the DType enum for the given type that this package knows about.
func FromGenericsType[T Element]() DType {
	var t T
	switch (any(t)).(type) {
	case float32:
		return Float32
	case float16.Float16:
		return Float16
	}
	return InvalidDType
}

// FromFloat32 converts a float32 value to the Element type T.
//
// For Float16 it rounds to the nearest even, as float16.Fromfloat32 does.
func FromFloat32[T Element](v float32) T {
	var t T
	switch p := any(&t).(type) {
	case *float32:
		*p = v
	case *float16.Float16:
		*p = float16.Fromfloat32(v)
	}
	return t
}

// ToFloat32 converts the Element value to float32.
func ToFloat32[T Element](v T) float32 {
	switch e := any(v).(type) {
	case float32:
		return e
	case float16.Float16:
		return e.Float32()
	}
	return 0
}

// Pre-generate constant reflect.TypeOf for convenience.
var (
	float32Type = reflect.TypeOf(float32(0))
	float16Type = reflect.TypeOf(float16.Float16(0))
)

// GoType returns the Go `reflect.Type` corresponding to the DType.
func (dtype DType) GoType() reflect.Type {
	switch dtype {
	case Float16:
		return float16Type
	case Float32:
		return float32Type
	default:
		panicf("unknown dtype %q (%d) in DType.GoType", dtype, dtype)
		panic(nil)
	}
}

// Size returns the number of bytes for the given DType.
func (dtype DType) Size() int {
	return int(dtype.GoType().Size())
}

// Bits returns the number of bits for the given DType.
func (dtype DType) Bits() int {
	return dtype.Size() * 8
}

// IsFloat16 returns whether dtype is the half-precision float.
func (dtype DType) IsFloat16() bool {
	return dtype == Float16
}

// FromName returns the DType for the given name (case-insensitive), or InvalidDType if it is not known.
func FromName(name string) DType {
	if dtype, found := MapOfNames[name]; found {
		return dtype
	}
	for key, dtype := range MapOfNames {
		if strings.EqualFold(key, name) {
			return dtype
		}
	}
	return InvalidDType
}
