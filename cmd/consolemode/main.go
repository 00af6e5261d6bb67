//go:build linux

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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/consolemode/core/pkg/cli"
	"github.com/consolemode/core/pkg/config"
	"github.com/consolemode/core/pkg/display"
	"github.com/consolemode/core/pkg/drm"
	"github.com/consolemode/core/pkg/edid"
	"github.com/consolemode/core/pkg/helpers/command"
	"github.com/consolemode/core/pkg/session"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// Ctrl+C keeps its default disposition on purpose: gamescope runs in our
// foreground process group and the retry prompt tells the user to interrupt.
func run() error {
	flags := cli.SetupFlags()
	flags.Pre()

	cfg := cli.Setup(config.BaseDefaults, nil)
	log.Info().Msgf("starting console mode v%s", config.AppVersion)

	overrides := flags.Overrides(cfg, flag.Args())
	overrides.ApplySunshineEnv(os.Getenv, os.Stderr)
	if err := overrides.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	clock := clockwork.NewRealClock()
	exe := &command.RealExecutor{}
	baseEnv := session.BaseEnv(os.Environ(), os.Getuid())

	orch := session.NewOrchestrator(exe, os.Stdin, os.Stdout, baseEnv)
	orch.SetPacing(clock, cfg.Pause())

	if session.NewNestedDetector(os.Environ()).Detect() {
		printNestedNotice()
		clock.Sleep(2 * cfg.Pause())
		log.Info().Msg("nested session detected, skipping display detection")
		return orch.Run(ctx, session.ResolveNested(overrides), nil)
	}

	scanner := drm.NewSysfsScanner()
	displays, err := display.Detect(scanner)
	if err != nil {
		return fmt.Errorf("detecting displays: %w", err)
	}

	selector := display.NewSelector(os.Stdin, os.Stdout, exe)
	selector.MenuCmd = overrides.MenuCmd
	selector.Pause = cfg.Pause()
	chosen, err := selector.Select(ctx, displays, overrides.Display)
	if err != nil {
		return fmt.Errorf("selecting display: %w", err)
	}
	log.Info().Msgf("selected display %s at %s", chosen.Name(), chosen.Mode())

	fmt.Printf("\n=== Detecting Display Capabilities ===\n\n")
	caps := edid.Conservative()
	switch {
	case overrides.SafeMode:
		fmt.Println("⚠ Safe mode enabled - using conservative defaults")
	default:
		raw, edidErr := scanner.EDID(chosen.Connector.Name)
		if edidErr != nil {
			fmt.Println("⚠ EDID not accessible, using defaults")
			log.Warn().Err(edidErr).Msg("edid read failed")
		} else {
			decodeCtx, cancel := context.WithTimeout(ctx, config.DecodeTimeout)
			caps = edid.NewDecoder(exe).Decode(decodeCtx, raw)
			cancel()
		}
	}

	launch := session.Resolve(chosen, caps, overrides)
	if !overrides.SafeMode {
		resolved := edid.Capabilities{
			MaxRefresh: launch.Refresh,
			ColorDepth: launch.ColorDepth,
			VRR:        launch.VRR,
			HDR:        launch.HDR,
		}
		resolved.WriteReport(os.Stdout)
	}
	fmt.Println()
	clock.Sleep(2 * cfg.Pause())

	// The retry tier only exists when the first attempt was not already
	// safe mode.
	var safe *session.LaunchConfig
	if !overrides.SafeMode {
		safeCfg := session.Resolve(chosen, caps, overrides.WithSafeMode())
		safe = &safeCfg
	}

	return orch.Run(ctx, launch, safe)
}

func printNestedNotice() {
	fmt.Println("Detected nested environment (running inside another compositor)")
	fmt.Println("Launching in nested Wayland mode...")
	fmt.Println("\nNote: You may see some warnings from gamescope/Mesa:")
	fmt.Println("  - 'No CAP_SYS_NICE' - normal, doesn't affect gaming performance")
	fmt.Println("  - 'libdecor warnings' - expected in nested mode")
	fmt.Println("  - 'RADV not conformant' - safe to ignore, RADV works great for gaming")
	fmt.Println("  - 'vk_khr_present_wait overridden' - informational only")
	fmt.Println()
}
