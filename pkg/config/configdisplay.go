// Console Mode
// Copyright (c) 2025 The Console Mode Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Console Mode.
//
// Console Mode is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Console Mode is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Console Mode.  If not, see <http://www.gnu.org/licenses/>.

package config

type Display struct {
	Preferred  string `toml:"preferred,omitempty" validate:"omitempty,connector"`
	ColorDepth int    `toml:"color_depth,omitempty" validate:"omitempty,oneof=8 10 12"`
}

// PreferredDisplay returns the connector name to select without prompting,
// e.g. "card1-HDMI-A-1". Empty means ask.
func (c *Instance) PreferredDisplay() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Display.Preferred
}

func (c *Instance) SetPreferredDisplay(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Display.Preferred = name
}

// ColorDepth returns the configured bits per channel override, or 0 to use
// the depth reported by the display.
func (c *Instance) ColorDepth() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Display.ColorDepth
}

func (c *Instance) SetColorDepth(depth int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Display.ColorDepth = depth
}
