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

package cli

import (
	"testing"

	"github.com/consolemode/core/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}

func boolPtr(b bool) *bool {
	return &b
}

// emptyFlags returns a Flags with every value unset, as if the user passed
// nothing on the command line.
func emptyFlags() *Flags {
	return &Flags{
		Display:      strPtr(""),
		Resolution:   strPtr(""),
		Refresh:      intPtr(0),
		ColorDepth:   intPtr(0),
		ForceVRR:     boolPtr(false),
		NoVRR:        boolPtr(false),
		ForceHDR:     boolPtr(false),
		NoHDR:        boolPtr(false),
		SafeMode:     boolPtr(false),
		NoMangoHud:   boolPtr(false),
		GamescopeBin: strPtr(""),
		SteamBin:     strPtr(""),
		SteamArgs:    strPtr(""),
		Menu:         strPtr(""),
		Version:      boolPtr(false),
	}
}

func testConfig(t *testing.T) *config.Instance {
	t.Helper()
	cfg, err := config.NewConfig(t.TempDir(), config.BaseDefaults)
	require.NoError(t, err)
	return cfg
}

func TestOverrides_ConfigDefaultsFlowThrough(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.SetPreferredDisplay("card0-DP-1")
	cfg.SetGamescopeBin("/opt/gamescope")
	cfg.SetMenuCmd("rofi -dmenu")
	cfg.SetColorDepth(10)
	cfg.SetEnvironment(map[string]string{"PROTON_LOG": "1"})

	o := emptyFlags().Overrides(cfg, nil)

	assert.Equal(t, "card0-DP-1", o.Display)
	assert.Equal(t, "/opt/gamescope", o.GamescopeBin)
	assert.Equal(t, "steam", o.SteamBin, "unset everywhere falls to built-in")
	assert.Equal(t, "rofi -dmenu", o.MenuCmd)
	assert.Equal(t, 10, o.ColorDepth)
	assert.Equal(t, map[string]string{"PROTON_LOG": "1"}, o.Env)
	assert.True(t, o.MangoHud, "overlay defaults on")
	assert.False(t, o.SafeMode)
}

func TestOverrides_FlagsBeatConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.SetPreferredDisplay("card0-DP-1")
	cfg.SetGamescopeBin("/opt/gamescope")
	cfg.SetColorDepth(10)

	f := emptyFlags()
	f.Display = strPtr("card1-HDMI-A-1")
	f.Resolution = strPtr("2560x1440")
	f.Refresh = intPtr(144)
	f.ColorDepth = intPtr(12)
	f.GamescopeBin = strPtr("/usr/local/bin/gamescope")
	f.ForceVRR = boolPtr(true)
	f.SafeMode = boolPtr(true)

	o := f.Overrides(cfg, nil)

	assert.Equal(t, "card1-HDMI-A-1", o.Display)
	assert.Equal(t, "2560x1440", o.Resolution)
	assert.Equal(t, 144, o.Refresh)
	assert.Equal(t, 12, o.ColorDepth)
	assert.Equal(t, "/usr/local/bin/gamescope", o.GamescopeBin)
	assert.True(t, o.ForceVRR)
	assert.True(t, o.SafeMode)
}

func TestOverrides_SteamArgs(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.SetSteamArgs([]string{"-tenfoot"})

	t.Run("config args used when flag unset", func(t *testing.T) {
		t.Parallel()
		o := emptyFlags().Overrides(cfg, nil)
		assert.Equal(t, []string{"-tenfoot"}, o.SteamArgs)
	})

	t.Run("flag replaces config args", func(t *testing.T) {
		t.Parallel()
		f := emptyFlags()
		f.SteamArgs = strPtr("-nochatui -nofriendsui")
		o := f.Overrides(cfg, nil)
		assert.Equal(t, []string{"-nochatui", "-nofriendsui"}, o.SteamArgs)
	})
}

func TestOverrides_ExtraArgsAppendAfterConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.SetExtraArgs([]string{"--rt"})

	o := emptyFlags().Overrides(cfg, []string{"--force-grab-cursor"})

	assert.Equal(t, []string{"--rt", "--force-grab-cursor"}, o.ExtraArgs,
		"command line extra args come after configured ones")
}

func TestOverrides_MangoHud(t *testing.T) {
	t.Parallel()

	t.Run("flag disables configured overlay", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		f := emptyFlags()
		f.NoMangoHud = boolPtr(true)
		assert.False(t, f.Overrides(cfg, nil).MangoHud)
	})

	t.Run("config disables overlay", func(t *testing.T) {
		t.Parallel()
		cfg := testConfig(t)
		cfg.SetMangoHudEnabled(false)
		assert.False(t, emptyFlags().Overrides(cfg, nil).MangoHud)
	})
}
