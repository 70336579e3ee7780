// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package device describes the performance-relevant capabilities of a GPU device.
//
// Info is a read-only descriptor: it is filled by whatever layer queries the device (or loaded from
// a profile, see FromProfile and LoadYAML), and consumed by the operation planners to pick
// execution strategies. Nothing in this package talks to an actual device.
package device

import (
	"strings"
	"unicode"

	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Info is the capability descriptor of a GPU device.
type Info struct {
	// Name is a free-form description, used for logging.
	Name string `yaml:"name"`

	// Vendor drives most of the vendor-specific tuning.
	Vendor Vendor `yaml:"vendor"`

	// Model is the device model as reported by the driver, e.g. "Adreno (TM) 640".
	Model string `yaml:"model"`

	// MaxWorkGroupSize is the per-axis limit of the work-group dimensions.
	MaxWorkGroupSize shapes.Int3 `yaml:"max_work_group_size"`

	// MaxWorkGroupInvocations is the limit of the total number of invocations (x*y*z) in a work-group.
	MaxWorkGroupInvocations int `yaml:"max_work_group_invocations"`

	// SupportsLocalMemory indicates fast work-group local (shared) memory, where threads can cooperatively
	// gather data to be broadcast to the whole work-group.
	SupportsLocalMemory bool `yaml:"supports_local_memory"`

	// SubgroupSize is the width of the local-memory broadcast primitive (asynchronous sub-group copy),
	// or 0 if not supported.
	SubgroupSize int `yaml:"subgroup_size"`

	// SupportsImage2D indicates that 2D images (textures) can be created and sampled by compute kernels.
	SupportsImage2D bool `yaml:"supports_image2d"`

	// MaxImage2DWidth and MaxImage2DHeight are the limits of a 2D image, in pixels.
	MaxImage2DWidth  int `yaml:"max_image2d_width"`
	MaxImage2DHeight int `yaml:"max_image2d_height"`

	// PrefersTextures indicates that sampling weights from textures is faster than reading them from
	// linear buffers.
	PrefersTextures bool `yaml:"prefers_textures"`

	// WideRegisterFile indicates a register file large enough for each thread to keep more output
	// values in flight.
	WideRegisterFile bool `yaml:"wide_register_file"`

	// MaxBufferSize is the maximum size of one linear buffer in bytes, 0 if unlimited.
	MaxBufferSize int64 `yaml:"max_buffer_size"`
}

// IsNvidia returns whether the device is a Nvidia GPU.
func (info *Info) IsNvidia() bool { return info.Vendor == VendorNvidia }

// IsPowerVR returns whether the device is an Imagination PowerVR GPU.
func (info *Info) IsPowerVR() bool { return info.Vendor == VendorPowerVR }

// IsMali returns whether the device is an ARM Mali GPU.
func (info *Info) IsMali() bool { return info.Vendor == VendorMali }

// IsAdreno returns whether the device is a Qualcomm Adreno GPU.
func (info *Info) IsAdreno() bool { return info.Vendor == VendorAdreno }

// AdrenoGeneration returns the generation (the first digit of the model number) of an Adreno GPU,
// or 0 if it's not an Adreno or the model can't be parsed.
//
// E.g.: "Adreno (TM) 330" is generation 3.
func (info *Info) AdrenoGeneration() int {
	if !info.IsAdreno() {
		return 0
	}
	pos := strings.IndexFunc(info.Model, unicode.IsDigit)
	if pos < 0 {
		return 0
	}
	return int(info.Model[pos] - '0')
}

// IsAdreno3xx returns whether the device is an Adreno of the 3xx generation.
func (info *Info) IsAdreno3xx() bool { return info.AdrenoGeneration() == 3 }

// SupportsSubgroupBroadcast returns whether the device can broadcast local memory to groups of the given width.
func (info *Info) SupportsSubgroupBroadcast(width int) bool {
	return info.SupportsLocalMemory && info.SubgroupSize > 0 && info.SubgroupSize == width
}

// FitsImage2D returns whether a 2D image of the given dimensions can be created.
func (info *Info) FitsImage2D(width, height int) bool {
	return info.SupportsImage2D && width <= info.MaxImage2DWidth && height <= info.MaxImage2DHeight
}

// Validate checks that the descriptor is self-consistent.
func (info *Info) Validate() error {
	if info == nil {
		return errors.New("nil device.Info")
	}
	if !info.Vendor.IsAVendor() {
		return errors.Errorf("device %q: invalid vendor %s", info.Name, info.Vendor)
	}
	wg := info.MaxWorkGroupSize
	if wg.X <= 0 || wg.Y <= 0 || wg.Z <= 0 {
		return errors.Errorf("device %q: invalid max_work_group_size %s", info.Name, wg)
	}
	if info.MaxWorkGroupInvocations <= 0 {
		return errors.Errorf("device %q: invalid max_work_group_invocations %d", info.Name, info.MaxWorkGroupInvocations)
	}
	if info.SupportsImage2D && (info.MaxImage2DWidth <= 0 || info.MaxImage2DHeight <= 0) {
		return errors.Errorf("device %q: supports 2D images but limits are %dx%d",
			info.Name, info.MaxImage2DWidth, info.MaxImage2DHeight)
	}
	if info.SubgroupSize < 0 || info.MaxBufferSize < 0 {
		return errors.Errorf("device %q: negative subgroup_size or max_buffer_size", info.Name)
	}
	return nil
}

// Clone returns a copy of the descriptor.
func (info *Info) Clone() *Info {
	c := *info
	return &c
}
