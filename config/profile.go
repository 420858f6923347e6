// SPDX-License-Identifier: Unlicense OR MIT

// Package config loads an optional TOML render profile describing default
// border toggles and map-mode gradient stops, so a caller isn't limited to
// the CLI's ad hoc flags for every render setting.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// GradientStop is one color stop in a named map mode's gradient, in sRGB
// hex (e.g. "c03030").
type GradientStop struct {
	At    float64 `toml:"at"`
	Color string  `toml:"color"`
}

// MapModeProfile configures one named map mode's gradient.
type MapModeProfile struct {
	Gradient []GradientStop `toml:"gradient"`
}

// Profile is the root of a render-profile TOML file.
type Profile struct {
	NoLocationBorders bool                      `toml:"no_location_borders"`
	NoOwnerBorders    bool                      `toml:"no_owner_borders"`
	MapModes          map[string]MapModeProfile `toml:"map_modes"`
}

// Default returns the profile used when no --profile flag is given.
func Default() Profile {
	return Profile{}
}

// Load reads and decodes a render profile from path.
func Load(path string) (Profile, error) {
	var p Profile
	if _, err := toml.DecodeFile(path, &p); err != nil {
		return Profile{}, fmt.Errorf("pdxmap: config: load %s: %w", path, err)
	}
	return p, nil
}
