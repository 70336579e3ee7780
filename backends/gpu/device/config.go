// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package device

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomlx/conv3d/pkg/support/fsutil"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// GOMLX_GPU_DEVICE is the environment variable with the default device configuration to use.
//
// It can be either the name of a built-in profile (see ProfileNames) or the path to a YAML
// file (with extension ".yaml" or ".yml"), see LoadYAML for its format.
const GOMLX_GPU_DEVICE = "GOMLX_GPU_DEVICE"

// DefaultProfile is used by FromEnv when GOMLX_GPU_DEVICE is not set.
var DefaultProfile = "generic"

// FromEnv returns the device descriptor configured by GOMLX_GPU_DEVICE, or the DefaultProfile.
func FromEnv() (*Info, error) {
	return FromConfig(os.Getenv(GOMLX_GPU_DEVICE))
}

// FromConfig interprets config as a profile name or a YAML file path. An empty config selects
// the DefaultProfile.
func FromConfig(config string) (*Info, error) {
	if config == "" {
		config = DefaultProfile
	}
	ext := strings.ToLower(filepath.Ext(config))
	if ext == ".yaml" || ext == ".yml" {
		return LoadFile(config)
	}
	return FromProfile(config)
}

// LoadFile loads a device descriptor from a YAML file. See LoadYAML.
//
// A leading "~" in path is replaced by the home directory.
func LoadFile(path string) (*Info, error) {
	path, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	exists, err := fsutil.FileExists(path)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errors.Errorf("GPU device descriptor file %q not found", path)
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read GPU device descriptor from %q", path)
	}
	info, err := LoadYAML(bytes.NewReader(contents))
	if err != nil {
		return nil, errors.WithMessagef(err, "while loading %q", path)
	}
	klog.V(1).Infof("loaded GPU device descriptor %q from %q", info.Name, path)
	return info, nil
}

// LoadYAML reads a device descriptor in YAML format. The keys are the `yaml` tags of Info, plus
// an optional "base" key naming a built-in profile whose values are used for the keys not given.
//
// Example:
//
//	base: adreno
//	name: pixel4
//	model: Adreno (TM) 640
//	max_image2d_width: 8192
//	max_work_group_size: {x: 512, y: 512, z: 64}
func LoadYAML(r io.Reader) (*Info, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read GPU device descriptor")
	}
	var header struct {
		Base string `yaml:"base"`
	}
	if err = yaml.Unmarshal(contents, &header); err != nil {
		return nil, errors.Wrap(err, "failed to parse GPU device descriptor")
	}
	info := &Info{}
	if header.Base != "" {
		info, err = FromProfile(header.Base)
		if err != nil {
			return nil, err
		}
	}
	// Unknown keys, including "base", are ignored.
	if err = yaml.Unmarshal(contents, info); err != nil {
		return nil, errors.Wrap(err, "failed to parse GPU device descriptor")
	}
	if err = info.Validate(); err != nil {
		return nil, err
	}
	return info, nil
}
