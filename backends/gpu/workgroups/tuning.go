// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package workgroups

// TuningType selects how many work-group candidates are proposed to the tuner.
//
//go:generate go tool enumer -type=TuningType -trimprefix=Tuning -transform=snake -text -output=gen_tuningtype_enumer.go tuning.go
type TuningType int

const (
	// TuningNone proposes only the default work-group.
	TuningNone TuningType = iota

	// TuningFast proposes a single heuristic work-group.
	TuningFast

	// TuningExhaustive proposes every work-group that divides the grid precisely, within the device limits.
	TuningExhaustive
)
