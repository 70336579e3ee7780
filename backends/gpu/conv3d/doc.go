// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package conv3d plans the GPU execution of a 3D convolution: it selects the execution Strategy
// for a device, rearranges the weights into the layout the generated kernel reads, uploads
// weights and biases as named device resources, and computes the dispatch geometry.
//
// The pieces can be used separately:
//
//   - GuessBestParams and GuessBestParamsForSlices select the Strategy.
//   - RearrangeWeights packs the OHWDI weights into Quads, for linear buffers or texture planes.
//   - UploadData creates the device resources ("weights" or "weights0".."weights3", and "biases").
//   - GridSize and PossibleWorkGroups size the dispatch.
//
// Or tied together by New, which builds a Conv3D operation.
//
// ## Glossary
//
//   - Slice: a group of 4 consecutive channels, packed in one Quad.
//   - Block: the number of output values (per axis) computed by one GPU thread.
//     BlockSize.W is the number of output slices per thread.
//   - Launch order: the mapping of the tile axes to the dispatch axes.
package conv3d
