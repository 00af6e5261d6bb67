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

import (
	"strings"
	"time"
)

type Launcher struct {
	Environment  map[string]string `toml:"environment,omitempty"`
	GamescopeBin string            `toml:"gamescope_bin,omitempty"`
	SteamBin     string            `toml:"steam_bin,omitempty"`
	SteamArgs    string            `toml:"steam_args,omitempty,multiline"`
	ExtraArgs    string            `toml:"extra_args,omitempty,multiline"`
	MenuCmd      string            `toml:"menu_cmd,omitempty"`
	Pause        string            `toml:"pause,omitempty" validate:"omitempty,duration"`
	MangoHud     *bool             `toml:"mangohud,omitempty"`
}

const (
	defaultGamescopeBin = "gamescope"
	defaultSteamBin     = "steam"
	defaultPause        = 1 * time.Second
)

func (c *Instance) GamescopeBin() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Launcher.GamescopeBin == "" {
		return defaultGamescopeBin
	}
	return c.vals.Launcher.GamescopeBin
}

func (c *Instance) SetGamescopeBin(bin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launcher.GamescopeBin = bin
}

func (c *Instance) SteamBin() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Launcher.SteamBin == "" {
		return defaultSteamBin
	}
	return c.vals.Launcher.SteamBin
}

func (c *Instance) SetSteamBin(bin string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launcher.SteamBin = bin
}

// SteamArgs returns extra arguments appended to the steam invocation, one
// per line in the config file.
func (c *Instance) SteamArgs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return splitLines(c.vals.Launcher.SteamArgs)
}

func (c *Instance) SetSteamArgs(args []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launcher.SteamArgs = strings.Join(args, "\n")
}

// ExtraArgs returns extra gamescope arguments, one per line in the config
// file. They are appended after all generated flags so they can override
// them.
func (c *Instance) ExtraArgs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return splitLines(c.vals.Launcher.ExtraArgs)
}

func (c *Instance) SetExtraArgs(args []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launcher.ExtraArgs = strings.Join(args, "\n")
}

// Environment returns additional environment variables set on the launched
// session. Entries here win over generated session variables.
func (c *Instance) Environment() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	env := make(map[string]string, len(c.vals.Launcher.Environment))
	for k, v := range c.vals.Launcher.Environment {
		env[k] = v
	}
	return env
}

func (c *Instance) SetEnvironment(env map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launcher.Environment = env
}

// MenuCmd returns the external menu command used for display selection, e.g.
// "rofi -dmenu" or "dmenu". Empty means prompt on the terminal.
func (c *Instance) MenuCmd() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Launcher.MenuCmd
}

func (c *Instance) SetMenuCmd(cmd string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launcher.MenuCmd = cmd
}

// Pause returns the delay between orchestrator phases, used to keep console
// output readable on a TV across the room.
func (c *Instance) Pause() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Launcher.Pause == "" {
		return defaultPause
	}
	d, err := time.ParseDuration(c.vals.Launcher.Pause)
	if err != nil {
		return defaultPause
	}
	return d
}

func (c *Instance) SetPause(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launcher.Pause = d.String()
}

// MangoHudEnabled reports whether the mangoapp overlay flag is added to the
// gamescope command. Defaults to true when unset.
func (c *Instance) MangoHudEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Launcher.MangoHud == nil {
		return true
	}
	return *c.vals.Launcher.MangoHud
}

func (c *Instance) SetMangoHudEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Launcher.MangoHud = &enabled
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
