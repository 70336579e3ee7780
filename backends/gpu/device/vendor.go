// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package device

// Vendor of the GPU, the main key used by the performance heuristics.
//
//go:generate go tool enumer -type=Vendor -trimprefix=Vendor -transform=lower -text -output=gen_vendor_enumer.go vendor.go
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorNvidia
	VendorAMD
	VendorIntel
	VendorPowerVR
	VendorMali
	VendorAdreno
	VendorApple
)
