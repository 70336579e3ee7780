// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes

import "iter"

// OHWDIIndex holds the coordinates of one element of an OHWDI shaped tensor.
type OHWDIIndex struct {
	O, H, W, D, I int
}

// Iter iterates sequentially, in memory order, over all indices of the shape.
//
// It yields the flat index (counter) and the coordinates for each axis.
func (s OHWDI) Iter() iter.Seq2[int, OHWDIIndex] {
	return func(yield func(int, OHWDIIndex) bool) {
		if s.Size() <= 0 {
			return
		}
		flatIdx := 0
		var idx OHWDIIndex
		for idx.O = 0; idx.O < s.O; idx.O++ {
			for idx.H = 0; idx.H < s.H; idx.H++ {
				for idx.W = 0; idx.W < s.W; idx.W++ {
					for idx.D = 0; idx.D < s.D; idx.D++ {
						for idx.I = 0; idx.I < s.I; idx.I++ {
							if !yield(flatIdx, idx) {
								return // Consumer requested to stop iteration.
							}
							flatIdx++
						}
					}
				}
			}
		}
	}
}
