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

package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestGamescopeArgs_FullFeatures(t *testing.T) {
	t.Parallel()

	cfg := LaunchConfig{
		Output:     "HDMI-A-1",
		Width:      2560,
		Height:     1440,
		Refresh:    144,
		ColorDepth: 10,
		VRR:        true,
		HDR:        true,
		MangoHud:   true,
	}

	want := []string{
		"-W", "2560",
		"-H", "1440",
		"-r", "144",
		"--prefer-output", "HDMI-A-1",
		"--adaptive-sync",
		"--hdr-enabled", "--hdr-itm-enable",
		"--mangoapp",
		"-f", "-e",
	}
	assert.Equal(t, want, GamescopeArgs(cfg))
}

func TestGamescopeArgs_Minimal(t *testing.T) {
	t.Parallel()

	cfg := LaunchConfig{
		Output:  "DP-2",
		Width:   1920,
		Height:  1080,
		Refresh: 60,
	}

	want := []string{
		"-W", "1920",
		"-H", "1080",
		"-r", "60",
		"--prefer-output", "DP-2",
		"-f", "-e",
	}
	assert.Equal(t, want, GamescopeArgs(cfg))
}

func TestGamescopeArgs_Nested(t *testing.T) {
	t.Parallel()

	cfg := LaunchConfig{
		Width:    1920,
		Height:   1080,
		Refresh:  60,
		MangoHud: true,
		Nested:   true,
	}

	want := []string{
		"-W", "1920",
		"-H", "1080",
		"-r", "60",
		"--nested-width", "1920",
		"--nested-height", "1080",
		"--nested-refresh", "60",
		"--mangoapp",
		"-e",
	}
	assert.Equal(t, want, GamescopeArgs(cfg))
	assert.NotContains(t, GamescopeArgs(cfg), "-f", "nested must not go fullscreen")
	assert.NotContains(t, GamescopeArgs(cfg), "--prefer-output")
}

func TestGamescopeArgs_NoOutput(t *testing.T) {
	t.Parallel()

	cfg := LaunchConfig{Width: 1920, Height: 1080, Refresh: 60}
	assert.NotContains(t, GamescopeArgs(cfg), "--prefer-output")
}

func TestGamescopeArgs_ExtraArgsLast(t *testing.T) {
	t.Parallel()

	cfg := LaunchConfig{
		Output:    "HDMI-A-1",
		Width:     1920,
		Height:    1080,
		Refresh:   60,
		ExtraArgs: []string{"--force-grab-cursor", "--rt"},
	}

	args := GamescopeArgs(cfg)
	assert.Equal(t, []string{"--force-grab-cursor", "--rt"}, args[len(args)-2:],
		"user extra args must come after every generated flag")
}

func TestCommandLine(t *testing.T) {
	t.Parallel()

	cfg := LaunchConfig{
		GamescopeBin: "/usr/bin/gamescope",
		SteamBin:     "steam",
		SteamArgs:    []string{"-tenfoot", "-nochatui"},
		Width:        1920,
		Height:       1080,
		Refresh:      60,
	}

	name, args := CommandLine(cfg)
	assert.Equal(t, "/usr/bin/gamescope", name)

	want := []string{
		"-W", "1920",
		"-H", "1080",
		"-r", "60",
		"-f", "-e",
		"--", "steam", "-bigpicture", "-tenfoot", "-nochatui",
	}
	assert.Equal(t, want, args)
}

func TestEnviron(t *testing.T) {
	t.Parallel()

	t.Run("user vars win over base", func(t *testing.T) {
		t.Parallel()
		cfg := LaunchConfig{Env: map[string]string{"PATH": "/custom"}}
		env := Environ(cfg, []string{"PATH=/usr/bin", "HOME=/home/deck"})
		assert.Contains(t, env, "PATH=/custom")
		assert.Contains(t, env, "HOME=/home/deck")
		assert.NotContains(t, env, "PATH=/usr/bin")
	})

	t.Run("sorted output", func(t *testing.T) {
		t.Parallel()
		cfg := LaunchConfig{Env: map[string]string{"ZVAR": "1", "AVAR": "2"}}
		env := Environ(cfg, []string{"MVAR=3"})
		assert.Equal(t, []string{"AVAR=2", "MVAR=3", "ZVAR=1"}, env)
	})

	t.Run("malformed base entries skipped", func(t *testing.T) {
		t.Parallel()
		env := Environ(LaunchConfig{}, []string{"GOOD=1", "malformed"})
		assert.Equal(t, []string{"GOOD=1"}, env)
	})

	t.Run("later base duplicate wins", func(t *testing.T) {
		t.Parallel()
		env := Environ(LaunchConfig{}, []string{"VAR=old", "VAR=new"})
		assert.Equal(t, []string{"VAR=new"}, env)
	})
}

func TestGamescopeArgs_PropertyDeterministic(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		cfg := LaunchConfig{
			Output:   rapid.SampledFrom([]string{"", "HDMI-A-1", "DP-3", "eDP-1"}).Draw(t, "output"),
			Width:    rapid.IntRange(640, 7680).Draw(t, "width"),
			Height:   rapid.IntRange(480, 4320).Draw(t, "height"),
			Refresh:  rapid.IntRange(24, 500).Draw(t, "refresh"),
			VRR:      rapid.Bool().Draw(t, "vrr"),
			HDR:      rapid.Bool().Draw(t, "hdr"),
			MangoHud: rapid.Bool().Draw(t, "mangohud"),
			Nested:   rapid.Bool().Draw(t, "nested"),
			ExtraArgs: rapid.SliceOfN(
				rapid.SampledFrom([]string{"--rt", "--force-grab-cursor", "--immediate-flips"}),
				0, 3,
			).Draw(t, "extraArgs"),
		}

		first := GamescopeArgs(cfg)
		second := GamescopeArgs(cfg)
		if len(first) != len(second) {
			t.Fatalf("argv length changed between calls: %d vs %d", len(first), len(second))
		}
		for i := range first {
			if first[i] != second[i] {
				t.Fatalf("argv differs at %d: %q vs %q", i, first[i], second[i])
			}
		}

		// Geometry flags always lead, regardless of features.
		if first[0] != "-W" || first[2] != "-H" || first[4] != "-r" {
			t.Fatalf("geometry flags not leading: %v", first[:6])
		}

		// Extra args always trail.
		tail := first[len(first)-len(cfg.ExtraArgs):]
		for i, arg := range cfg.ExtraArgs {
			if tail[i] != arg {
				t.Fatalf("extra arg %q not at tail position %d: %v", arg, i, tail)
			}
		}
	})
}
