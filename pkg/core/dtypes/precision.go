// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dtypes

// Precision in which a GPU operation calculates.
//
// It decides the DType of the tensors the operation reads and writes, and of its uploaded
// constant data (weights, biases).
//
//go:generate go tool enumer -type=Precision -trimprefix=Precision -transform=snake -text -output=gen_precision_enumer.go precision.go
type Precision int

const (
	// PrecisionF32 calculates and stores everything in Float32.
	PrecisionF32 Precision = iota

	// PrecisionF16 calculates and stores everything in Float16.
	PrecisionF16

	// PrecisionF32F16 stores in Float16 but accumulates in Float32.
	PrecisionF32F16
)

// DataType returns the DType used to store tensors and constants for the precision.
func (p Precision) DataType() DType {
	if p == PrecisionF32 {
		return Float32
	}
	return Float16
}
