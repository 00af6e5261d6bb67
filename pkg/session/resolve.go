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
	"github.com/consolemode/core/pkg/display"
	"github.com/consolemode/core/pkg/edid"
	"github.com/consolemode/core/pkg/validation"
)

// Built-in last-resort defaults, used when neither detection nor overrides
// produced a value.
const (
	defaultWidth     = 1920
	defaultHeight    = 1080
	defaultRefresh   = 60
	defaultGamescope = "gamescope"
	defaultSteam     = "steam"
)

// LaunchConfig is the fully resolved decision of what to run. Built fresh
// per attempt and never mutated afterwards; the builder serializes it
// deterministically.
type LaunchConfig struct {
	Env          map[string]string
	Output       string
	GamescopeBin string
	SteamBin     string
	SteamArgs    []string
	ExtraArgs    []string
	Width        int
	Height       int
	Refresh      int
	ColorDepth   int
	VRR          bool
	HDR          bool
	MangoHud     bool
	Nested       bool
	Safe         bool
}

// Resolve merges detected capabilities with user overrides into a
// LaunchConfig. Precedence per feature, strongest first: safe mode, explicit
// override, disable flag, force flag, detected value, conservative default.
// Overrides must already be validated.
func Resolve(d display.Display, caps edid.Capabilities, o Overrides) LaunchConfig {
	out := LaunchConfig{
		Output:       d.Connector.Output(),
		GamescopeBin: stringOr(o.GamescopeBin, defaultGamescope),
		SteamBin:     stringOr(o.SteamBin, defaultSteam),
		SteamArgs:    o.SteamArgs,
		ExtraArgs:    o.ExtraArgs,
		Env:          o.Env,
		Safe:         o.SafeMode,
		MangoHud:     o.MangoHud && !o.SafeMode,
	}

	// Native baseline: the kernel's preferred mode, then the EDID detailed
	// timing, then the built-in default.
	baseW, baseH := d.Width, d.Height
	if baseW <= 0 || baseH <= 0 {
		baseW, baseH = caps.NativeWidth, caps.NativeHeight
	}
	if baseW <= 0 || baseH <= 0 {
		baseW, baseH = defaultWidth, defaultHeight
	}

	baseRefresh := caps.MaxRefresh
	if baseRefresh <= 0 {
		baseRefresh = defaultRefresh
	}

	switch {
	case o.SafeMode:
		// Safe mode discards resolution and refresh overrides: whatever was
		// asked for may be what failed.
		out.Width, out.Height = baseW, baseH
		out.Refresh = baseRefresh
	default:
		out.Width, out.Height = baseW, baseH
		if o.Resolution != "" {
			if w, h, err := validation.ParseResolution(o.Resolution); err == nil {
				out.Width, out.Height = w, h
			}
		}
		out.Refresh = baseRefresh
		if o.Refresh > 0 {
			out.Refresh = o.Refresh
		}
	}

	out.VRR = resolveToggle(o.SafeMode, o.NoVRR, o.ForceVRR, caps.VRR)
	out.HDR = resolveToggle(o.SafeMode, o.NoHDR, o.ForceHDR, caps.HDR)

	out.ColorDepth = normalizeDepth(caps.ColorDepth)
	if o.ColorDepth != 0 {
		out.ColorDepth = o.ColorDepth
	}

	return out
}

// ResolveNested builds the configuration for running inside another
// compositor: override-or-default geometry, no output targeting, no VRR or
// HDR. DRM state is never consulted.
func ResolveNested(o Overrides) LaunchConfig {
	out := LaunchConfig{
		GamescopeBin: stringOr(o.GamescopeBin, defaultGamescope),
		SteamBin:     stringOr(o.SteamBin, defaultSteam),
		SteamArgs:    o.SteamArgs,
		ExtraArgs:    o.ExtraArgs,
		Env:          o.Env,
		Nested:       true,
		MangoHud:     o.MangoHud,
		Width:        defaultWidth,
		Height:       defaultHeight,
		Refresh:      defaultRefresh,
		ColorDepth:   8,
	}

	if o.Resolution != "" {
		if w, h, err := validation.ParseResolution(o.Resolution); err == nil {
			out.Width, out.Height = w, h
		}
	}
	if o.Refresh > 0 {
		out.Refresh = o.Refresh
	}

	return out
}

// resolveToggle applies the boolean feature precedence: safe mode kills it,
// then disable beats force, then force, then detection.
func resolveToggle(safe, disable, force, detected bool) bool {
	switch {
	case safe:
		return false
	case disable:
		return false
	case force:
		return true
	default:
		return detected
	}
}

func normalizeDepth(depth int) int {
	switch depth {
	case 10, 12:
		return depth
	default:
		return 8
	}
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
