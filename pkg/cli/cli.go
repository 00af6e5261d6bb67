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
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/consolemode/core/pkg/config"
	"github.com/consolemode/core/pkg/helpers"
	"github.com/consolemode/core/pkg/session"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Flags struct {
	Display      *string
	Resolution   *string
	Refresh      *int
	ColorDepth   *int
	ForceVRR     *bool
	NoVRR        *bool
	ForceHDR     *bool
	NoHDR        *bool
	SafeMode     *bool
	NoMangoHud   *bool
	GamescopeBin *string
	SteamBin     *string
	SteamArgs    *string
	Menu         *string
	Version      *bool
}

// SetupFlags defines all launcher flags. Arguments after -- pass through
// to gamescope verbatim.
func SetupFlags() *Flags {
	return &Flags{
		Display: flag.String(
			"display",
			"",
			"override display selection (connector name, e.g. card1-HDMI-A-1)",
		),
		Resolution: flag.String(
			"resolution",
			"",
			"override resolution (e.g. 1920x1080)",
		),
		Refresh: flag.Int(
			"refresh",
			0,
			"override refresh rate in Hz",
		),
		ColorDepth: flag.Int(
			"color-depth",
			0,
			"override color depth (8, 10 or 12)",
		),
		ForceVRR: flag.Bool(
			"force-vrr",
			false,
			"force enable VRR/adaptive sync",
		),
		NoVRR: flag.Bool(
			"no-vrr",
			false,
			"disable VRR even if supported",
		),
		ForceHDR: flag.Bool(
			"force-hdr",
			false,
			"force enable HDR",
		),
		NoHDR: flag.Bool(
			"no-hdr",
			false,
			"disable HDR even if supported",
		),
		SafeMode: flag.Bool(
			"safe-mode",
			false,
			"use safe mode (disable advanced features)",
		),
		NoMangoHud: flag.Bool(
			"no-mangohud",
			false,
			"disable the mangoapp performance overlay",
		),
		GamescopeBin: flag.String(
			"gamescope-bin",
			"",
			"custom gamescope binary path",
		),
		SteamBin: flag.String(
			"steam-bin",
			"",
			"custom steam binary path",
		),
		SteamArgs: flag.String(
			"steam-args",
			"",
			"additional steam arguments, space separated",
		),
		Menu: flag.String(
			"menu",
			"",
			"menu command for display selection (e.g. \"rofi -dmenu\")",
		),
		Version: flag.Bool(
			"version",
			false,
			"print version and exit",
		),
	}
}

// Pre runs flag parsing and actions any immediate flags that don't
// require environment setup. Add any custom flags before running this.
func (f *Flags) Pre() {
	flag.Parse()

	if *f.Version {
		_, _ = fmt.Printf("Console Mode v%s\n", config.AppVersion)
		os.Exit(0)
	}
}

// Overrides merges flag values over config defaults into the session
// overrides. extraArgs are the trailing arguments after --, appended after
// any configured extra args so the command line wins.
func (f *Flags) Overrides(cfg *config.Instance, extraArgs []string) session.Overrides {
	o := session.Overrides{
		Env:          cfg.Environment(),
		Display:      stringOr(*f.Display, cfg.PreferredDisplay()),
		Resolution:   *f.Resolution,
		GamescopeBin: stringOr(*f.GamescopeBin, cfg.GamescopeBin()),
		SteamBin:     stringOr(*f.SteamBin, cfg.SteamBin()),
		MenuCmd:      stringOr(*f.Menu, cfg.MenuCmd()),
		SteamArgs:    cfg.SteamArgs(),
		ExtraArgs:    append(cfg.ExtraArgs(), extraArgs...),
		Refresh:      *f.Refresh,
		ColorDepth:   *f.ColorDepth,
		ForceVRR:     *f.ForceVRR,
		NoVRR:        *f.NoVRR,
		ForceHDR:     *f.ForceHDR,
		NoHDR:        *f.NoHDR,
		SafeMode:     *f.SafeMode,
		MangoHud:     cfg.MangoHudEnabled() && !*f.NoMangoHud,
	}

	if *f.SteamArgs != "" {
		o.SteamArgs = strings.Fields(*f.SteamArgs)
	}
	if o.ColorDepth == 0 {
		o.ColorDepth = cfg.ColorDepth()
	}

	return o
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// Setup initializes logging and the user config. Returns a user config
// object.
//
//nolint:gocritic // config struct copied for immutability
func Setup(defaults config.Values, writers []io.Writer) *config.Instance {
	logDir := filepath.Join(xdg.DataHome, config.AppName)
	err := helpers.InitLogging(logDir, writers)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}

	configDir := filepath.Join(xdg.ConfigHome, config.AppName)
	cfg, err := config.NewConfig(configDir, defaults)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if cfg.DebugLogging() {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Tag this run so interleaved log files stay attributable.
	log.Logger = log.With().Str("run", uuid.New().String()[:8]).Logger()

	return cfg
}
