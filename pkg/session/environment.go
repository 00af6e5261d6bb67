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
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/spf13/afero"
)

// x11SocketDir is the directory containing X11 unix sockets.
const x11SocketDir = "/tmp/.X11-unix"

// BaseEnv extends an inherited environment with the variables a gamescope
// Steam session needs. Appended entries win over inherited duplicates once
// merged through Environ. XDG_RUNTIME_DIR is only defaulted when the session
// did not provide one.
func BaseEnv(environ []string, uid int) []string {
	out := make([]string, len(environ), len(environ)+4)
	copy(out, environ)

	out = append(out,
		"STEAM_FORCE_DESKTOPUI_SCALING=1",
		"XDG_SESSION_TYPE=wayland",
		"LIBSEAT_BACKEND=logind",
	)

	if envValue(environ, "XDG_RUNTIME_DIR") == "" {
		out = append(out, "XDG_RUNTIME_DIR=/run/user/"+strconv.Itoa(uid))
	}

	return out
}

func envValue(environ []string, key string) string {
	prefix := key + "="
	for _, kv := range environ {
		if strings.HasPrefix(kv, prefix) {
			return kv[len(prefix):]
		}
	}
	return ""
}

// compositorNames are process names that mean a display server is already
// running. gamescope itself counts: launching a second full session inside
// it will not work.
var compositorNames = map[string]struct{}{
	"gamescope":     {},
	"kwin_wayland":  {},
	"gnome-shell":   {},
	"mutter":        {},
	"sway":          {},
	"Hyprland":      {},
	"weston":        {},
	"wayfire":       {},
	"river":         {},
	"labwc":         {},
	"cosmic-comp":   {},
	"Xorg":          {},
	"xfwm4":         {},
	"cinnamon":      {},
	"plasmashell":   {},
	"steamcompmgr":  {},
	"cage":          {},
	"niri":          {},
	"budgie-wm":     {},
	"marco":         {},
	"muffin":        {},
	"openbox":       {},
	"picom":         {},
	"kwin_x11":      {},
	"gala":          {},
	"enlightenment": {},
}

// NestedDetector decides whether the process is already inside a graphical
// session, in which case gamescope must run as a nested client instead of
// taking over a DRM output.
type NestedDetector struct {
	Fs      afero.Fs
	Environ []string
	// ProcessNames lists running process names; nil uses the system table.
	ProcessNames func() []string
}

// NewNestedDetector builds a detector over the real system state.
func NewNestedDetector(environ []string) *NestedDetector {
	return &NestedDetector{
		Fs:      afero.NewOsFs(),
		Environ: environ,
	}
}

// Detect reports whether a compositor session is already active. Session
// env vars are authoritative; without them, an X11 socket plus a running
// compositor process also counts (covers sessions that scrub the env).
func (d *NestedDetector) Detect() bool {
	if envValue(d.Environ, "WAYLAND_DISPLAY") != "" || envValue(d.Environ, "DISPLAY") != "" {
		log.Debug().Msg("nested session: display env var set")
		return true
	}

	sockets, err := afero.Glob(d.Fs, filepath.Join(x11SocketDir, "X*"))
	if err != nil || len(sockets) == 0 {
		return false
	}

	names := d.ProcessNames
	if names == nil {
		names = systemProcessNames
	}
	for _, name := range names() {
		if _, ok := compositorNames[name]; ok {
			log.Debug().Msgf("nested session: %s running with X11 socket present", name)
			return true
		}
	}

	return false
}

func systemProcessNames() []string {
	procs, err := process.Processes()
	if err != nil {
		log.Debug().Err(err).Msg("failed to list processes")
		return nil
	}

	names := make([]string, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			continue
		}
		names = append(names, name)
	}
	return names
}
