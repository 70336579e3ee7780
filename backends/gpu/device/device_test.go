// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package device

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomlx/conv3d/pkg/core/shapes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles(t *testing.T) {
	names := ProfileNames()
	require.Contains(t, names, "powervr")
	require.Contains(t, names, "generic")
	for _, name := range names {
		info, err := FromProfile(name)
		require.NoError(t, err, "profile %q", name)
		require.NoError(t, info.Validate(), "profile %q", name)
	}
	_, err := FromProfile("voodoo2")
	require.Error(t, err)

	// Each call returns a new copy.
	a, b := must.M1(FromProfile("nvidia")), must.M1(FromProfile("nvidia"))
	a.Name = "changed"
	assert.Equal(t, "nvidia", b.Name)
}

func TestAdrenoGeneration(t *testing.T) {
	info := must.M1(FromProfile("adreno3xx"))
	assert.True(t, info.IsAdreno())
	assert.Equal(t, 3, info.AdrenoGeneration())
	assert.True(t, info.IsAdreno3xx())

	info = must.M1(FromProfile("adreno"))
	assert.Equal(t, 6, info.AdrenoGeneration())
	assert.False(t, info.IsAdreno3xx())

	info.Vendor = VendorMali
	assert.Equal(t, 0, info.AdrenoGeneration())
}

func TestCapabilities(t *testing.T) {
	info := must.M1(FromProfile("powervr"))
	assert.True(t, info.SupportsSubgroupBroadcast(32))
	assert.False(t, info.SupportsSubgroupBroadcast(16))
	info.SupportsLocalMemory = false
	assert.False(t, info.SupportsSubgroupBroadcast(32))

	assert.True(t, info.FitsImage2D(8192, 8192))
	assert.False(t, info.FitsImage2D(8193, 1))
	info.SupportsImage2D = false
	assert.False(t, info.FitsImage2D(1, 1))
}

func TestValidate(t *testing.T) {
	var info *Info
	require.Error(t, info.Validate())
	info = must.M1(FromProfile("mali"))
	info.MaxWorkGroupSize = shapes.Int3{X: 0, Y: 1, Z: 1}
	require.Error(t, info.Validate())
	info = must.M1(FromProfile("mali"))
	info.MaxImage2DHeight = 0
	require.Error(t, info.Validate())
	info = must.M1(FromProfile("mali"))
	info.Vendor = Vendor(100)
	require.ErrorContains(t, info.Validate(), "Vendor(100)")
}

func TestVendor(t *testing.T) {
	for _, v := range VendorValues() {
		text, err := v.MarshalText()
		require.NoError(t, err)
		var parsed Vendor
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, v, parsed)
	}
	v, err := VendorString("PowerVR")
	require.NoError(t, err)
	assert.Equal(t, VendorPowerVR, v)
	_, err = VendorString("3dfx")
	require.Error(t, err)
	assert.Equal(t, []string{"unknown", "nvidia", "amd", "intel", "powervr", "mali", "adreno", "apple"}, VendorStrings())
}

func TestLoadYAML(t *testing.T) {
	info, err := LoadYAML(strings.NewReader(`
base: adreno
name: pixel4
max_image2d_width: 4096
max_work_group_size: {x: 512, y: 512, z: 64}
`))
	require.NoError(t, err)
	assert.Equal(t, "pixel4", info.Name)
	assert.Equal(t, VendorAdreno, info.Vendor)
	assert.Equal(t, "Adreno (TM) 640", info.Model) // From base profile.
	assert.Equal(t, 4096, info.MaxImage2DWidth)
	assert.Equal(t, 16384, info.MaxImage2DHeight)
	assert.Equal(t, shapes.Int3{X: 512, Y: 512, Z: 64}, info.MaxWorkGroupSize)
	assert.True(t, info.PrefersTextures)

	info, err = LoadYAML(strings.NewReader(`
name: custom
vendor: powervr
max_work_group_size: {x: 256, y: 256, z: 64}
max_work_group_invocations: 256
supports_local_memory: true
subgroup_size: 32
`))
	require.NoError(t, err)
	assert.True(t, info.IsPowerVR())
	assert.False(t, info.SupportsImage2D)

	_, err = LoadYAML(strings.NewReader("vendor: 3dfx\n"))
	require.Error(t, err)
	_, err = LoadYAML(strings.NewReader("base: unknown_profile\n"))
	require.Error(t, err)
	// Missing work-group limits.
	_, err = LoadYAML(strings.NewReader("name: empty\n"))
	require.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(GOMLX_GPU_DEVICE, "")
	info, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultProfile, info.Name)

	t.Setenv(GOMLX_GPU_DEVICE, "mali")
	info, err = FromEnv()
	require.NoError(t, err)
	assert.True(t, info.IsMali())

	path := filepath.Join(t.TempDir(), "device.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base: nvidia\nname: lab-gpu\n"), 0o644))
	t.Setenv(GOMLX_GPU_DEVICE, path)
	info, err = FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "lab-gpu", info.Name)
	assert.True(t, info.IsNvidia())

	_, err = FromConfig(filepath.Join(t.TempDir(), "missing.yml"))
	require.ErrorContains(t, err, "not found")

	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.WriteFile(filepath.Join(home, "pixel.yaml"), []byte("base: adreno\nname: pixel\n"), 0o644))
	info, err = FromConfig("~/pixel.yaml")
	require.NoError(t, err)
	assert.Equal(t, "pixel", info.Name)
	assert.True(t, info.IsAdreno())
}
