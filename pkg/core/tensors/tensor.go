// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package tensors implements the host-side (CPU) tensors holding the constant data of GPU operations,
// e.g. the trained weights and biases of a convolution.
//
// The tensors are owned by the caller: the GPU operations only read them while building their
// device resources, and don't keep references afterwards.
//
// There are various ways to construct them:
//
//   - FromShape: creates a zero-filled tensor of the given shape.
//   - FromFlatData: creates a tensor with the given shape, using the given flat data (not copied).
//   - FromFunc: creates a tensor whose values are computed from the coordinates.
package tensors

import (
	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/gomlx/exceptions"
	"github.com/pkg/errors"
)

// Weights holds a float32 tensor shaped OHWDI, the natural layout of 3D convolution weights.
type Weights struct {
	Shape shapes.OHWDI
	Data  []float32
}

// FromShape returns zero-filled Weights with the given shape.
func FromShape(shape shapes.OHWDI) *Weights {
	return &Weights{Shape: shape, Data: make([]float32, shape.Size())}
}

// FromFlatData returns Weights backed by data, which must have shape.Size() elements.
//
// The data is not copied.
func FromFlatData(shape shapes.OHWDI, data []float32) (*Weights, error) {
	if len(data) != shape.Size() {
		return nil, errors.Errorf("tensors.FromFlatData(%s): got %d values, wanted %d", shape, len(data), shape.Size())
	}
	return &Weights{Shape: shape, Data: data}, nil
}

// FromFunc returns Weights with each value set to fn(index).
func FromFunc(shape shapes.OHWDI, fn func(idx shapes.OHWDIIndex) float32) *Weights {
	w := FromShape(shape)
	for flatIdx, idx := range shape.Iter() {
		w.Data[flatIdx] = fn(idx)
	}
	return w
}

// At returns the value at the given coordinates.
//
// It panics if the coordinates are out of the shape: this is a bug in the caller.
func (w *Weights) At(o, h, x, d, i int) float32 {
	if !w.Shape.Contains(o, h, x, d, i) {
		exceptions.Panicf("Weights.At(%d, %d, %d, %d, %d) out-of-bounds for shape %s", o, h, x, d, i, w.Shape)
	}
	return w.Data[w.Shape.LinearIndex(o, h, x, d, i)]
}

// Set the value at the given coordinates.
func (w *Weights) Set(o, h, x, d, i int, value float32) {
	if !w.Shape.Contains(o, h, x, d, i) {
		exceptions.Panicf("Weights.Set(%d, %d, %d, %d, %d) out-of-bounds for shape %s", o, h, x, d, i, w.Shape)
	}
	w.Data[w.Shape.LinearIndex(o, h, x, d, i)] = value
}

// CheckValid returns an error if the data doesn't match the shape.
func (w *Weights) CheckValid() error {
	if w == nil {
		return errors.New("nil Weights")
	}
	if w.Shape.O <= 0 || w.Shape.H <= 0 || w.Shape.W <= 0 || w.Shape.D <= 0 || w.Shape.I <= 0 {
		return errors.Errorf("invalid weights shape %s", w.Shape)
	}
	if len(w.Data) != w.Shape.Size() {
		return errors.Errorf("weights shaped %s have %d values, wanted %d", w.Shape, len(w.Data), w.Shape.Size())
	}
	return nil
}

// Linear holds a 1D float32 tensor, e.g. the biases of a convolution.
type Linear struct {
	Shape shapes.Linear
	Data  []float32
}

// LinearFromFlatData returns a Linear tensor backed by data (not copied).
func LinearFromFlatData(data []float32) *Linear {
	return &Linear{Shape: shapes.Linear{V: len(data)}, Data: data}
}

// LinearZeros returns a zero-filled Linear tensor of the given size.
func LinearZeros(size int) *Linear {
	return LinearFromFlatData(make([]float32, size))
}
