// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package device

import (
	"slices"

	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Built-in profiles, with typical values for each vendor's recent devices. They are used when no
// device is available (planning offline, tests) and as the base for YAML profiles.
var profiles = map[string]func() *Info{
	"nvidia": func() *Info {
		return &Info{
			Name:                    "nvidia",
			Vendor:                  VendorNvidia,
			Model:                   "GeForce RTX",
			MaxWorkGroupSize:        shapes.Int3{X: 1024, Y: 1024, Z: 64},
			MaxWorkGroupInvocations: 1024,
			SupportsLocalMemory:     true,
			SubgroupSize:            32,
			SupportsImage2D:         true,
			MaxImage2DWidth:         32768,
			MaxImage2DHeight:        32768,
			WideRegisterFile:        true,
		}
	},
	"powervr": func() *Info {
		return &Info{
			Name:                    "powervr",
			Vendor:                  VendorPowerVR,
			Model:                   "PowerVR Rogue GE8320",
			MaxWorkGroupSize:        shapes.Int3{X: 512, Y: 512, Z: 512},
			MaxWorkGroupInvocations: 512,
			SupportsLocalMemory:     true,
			SubgroupSize:            32,
			SupportsImage2D:         true,
			MaxImage2DWidth:         8192,
			MaxImage2DHeight:        8192,
		}
	},
	"mali": func() *Info {
		return &Info{
			Name:                    "mali",
			Vendor:                  VendorMali,
			Model:                   "Mali-G76",
			MaxWorkGroupSize:        shapes.Int3{X: 384, Y: 384, Z: 384},
			MaxWorkGroupInvocations: 384,
			SupportsImage2D:         true,
			MaxImage2DWidth:         65536,
			MaxImage2DHeight:        65536,
		}
	},
	"adreno": func() *Info {
		return &Info{
			Name:                    "adreno",
			Vendor:                  VendorAdreno,
			Model:                   "Adreno (TM) 640",
			MaxWorkGroupSize:        shapes.Int3{X: 1024, Y: 1024, Z: 1024},
			MaxWorkGroupInvocations: 1024,
			SupportsLocalMemory:     true,
			SupportsImage2D:         true,
			MaxImage2DWidth:         16384,
			MaxImage2DHeight:        16384,
			PrefersTextures:         true,
		}
	},
	"adreno3xx": func() *Info {
		return &Info{
			Name:                    "adreno3xx",
			Vendor:                  VendorAdreno,
			Model:                   "Adreno (TM) 330",
			MaxWorkGroupSize:        shapes.Int3{X: 512, Y: 512, Z: 512},
			MaxWorkGroupInvocations: 512,
			SupportsImage2D:         true,
			MaxImage2DWidth:         8192,
			MaxImage2DHeight:        8192,
			PrefersTextures:         true,
		}
	},
	"generic": func() *Info {
		return &Info{
			Name:                    "generic",
			Vendor:                  VendorUnknown,
			MaxWorkGroupSize:        shapes.Int3{X: 256, Y: 256, Z: 64},
			MaxWorkGroupInvocations: 256,
			SupportsImage2D:         true,
			MaxImage2DWidth:         8192,
			MaxImage2DHeight:        8192,
		}
	},
}

// ProfileNames returns the names of the built-in profiles, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// FromProfile returns a new Info for the built-in profile with the given name.
func FromProfile(name string) (*Info, error) {
	fn, found := profiles[name]
	if !found {
		return nil, errors.Errorf("unknown GPU device profile %q, known profiles: %q", name, ProfileNames())
	}
	return fn(), nil
}
