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
	"sort"
	"strconv"
	"strings"
)

// GamescopeArgs serializes a LaunchConfig to the gamescope flag list. Pure
// and order-stable: identical configs produce identical argv. User extra
// args go last so they can override anything generated.
func GamescopeArgs(cfg LaunchConfig) []string {
	args := []string{
		"-W", strconv.Itoa(cfg.Width),
		"-H", strconv.Itoa(cfg.Height),
		"-r", strconv.Itoa(cfg.Refresh),
	}

	if cfg.Nested {
		args = append(args,
			"--nested-width", strconv.Itoa(cfg.Width),
			"--nested-height", strconv.Itoa(cfg.Height),
			"--nested-refresh", strconv.Itoa(cfg.Refresh),
		)
	} else if cfg.Output != "" {
		args = append(args, "--prefer-output", cfg.Output)
	}

	if cfg.VRR {
		args = append(args, "--adaptive-sync")
	}

	if cfg.HDR {
		args = append(args, "--hdr-enabled", "--hdr-itm-enable")
	}

	if cfg.MangoHud {
		args = append(args, "--mangoapp")
	}

	if cfg.Nested {
		// No fullscreen inside another compositor, just expose the socket.
		args = append(args, "-e")
	} else {
		args = append(args, "-f", "-e")
	}

	args = append(args, cfg.ExtraArgs...)

	return args
}

// CommandLine returns the executable and full argument list for a launch
// attempt: the gamescope flags, then the steam invocation after the
// separator.
func CommandLine(cfg LaunchConfig) (name string, args []string) {
	args = GamescopeArgs(cfg)
	args = append(args, "--", cfg.SteamBin, "-bigpicture")
	args = append(args, cfg.SteamArgs...)
	return cfg.GamescopeBin, args
}

// Environ merges the user's env vars over a base environment. Later base
// duplicates win over earlier ones, user entries win over everything, and
// the result is sorted so identical inputs serialize identically.
func Environ(cfg LaunchConfig, base []string) []string {
	merged := make(map[string]string, len(base)+len(cfg.Env))
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		merged[k] = v
	}
	for k, v := range cfg.Env {
		merged[k] = v
	}

	out := make([]string, 0, len(merged))
	for k, v := range merged {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
