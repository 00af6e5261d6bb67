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

// Package session resolves what to launch and runs it: user overrides merge
// with detected display capabilities into a launch configuration, which is
// serialized to a gamescope command line and driven through a retrying
// launch state machine.
package session

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/consolemode/core/pkg/validation"
)

// ErrInvalidOverride is returned when a user-supplied override fails
// validation. Always fatal before any subprocess work starts.
var ErrInvalidOverride = errors.New("invalid override")

// Overrides carries every user decision for a run: command line flags over
// config file values over nothing. Immutable once validated; the safe-mode
// retry derives a copy instead of mutating.
type Overrides struct {
	Env          map[string]string
	Display      string `validate:"omitempty,connector"`
	Resolution   string `validate:"omitempty,resolution"`
	GamescopeBin string
	SteamBin     string
	MenuCmd      string
	SteamArgs    []string
	ExtraArgs    []string
	Refresh      int `validate:"omitempty,gt=0,lte=500"`
	ColorDepth   int `validate:"omitempty,oneof=8 10 12"`
	ForceVRR     bool
	NoVRR        bool
	ForceHDR     bool
	NoHDR        bool
	SafeMode     bool
	MangoHud     bool
}

// Validate checks override formats before any detection or subprocess work.
func (o *Overrides) Validate() error {
	if err := validation.Validate(o); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidOverride, err)
	}
	return nil
}

// WithSafeMode returns a copy with safe mode forced on, for the retry
// attempt.
func (o Overrides) WithSafeMode() Overrides {
	o.SafeMode = true
	return o
}

// Sunshine exports the client's geometry to launched applications. When the
// user did not override resolution or refresh themselves, the stream
// client's values are the right ones to use.
const (
	sunshineWidthEnv  = "SUNSHINE_CLIENT_WIDTH"
	sunshineHeightEnv = "SUNSHINE_CLIENT_HEIGHT"
	sunshineFPSEnv    = "SUNSHINE_CLIENT_FPS"
)

// ApplySunshineEnv backfills resolution and refresh from Sunshine client
// variables, only for fields the user left unset. Notices go to notices
// (stderr in practice) so they do not interleave with selection prompts.
func (o *Overrides) ApplySunshineEnv(getenv func(string) string, notices io.Writer) {
	if o.Resolution == "" {
		width := getenv(sunshineWidthEnv)
		height := getenv(sunshineHeightEnv)
		if width != "" && height != "" {
			o.Resolution = width + "x" + height
			fmt.Fprintf(notices, "Using Sunshine client resolution: %s\n", o.Resolution)
		}
	}

	if o.Refresh == 0 {
		if fps := getenv(sunshineFPSEnv); fps != "" {
			if rate, err := strconv.Atoi(fps); err == nil {
				o.Refresh = rate
				fmt.Fprintf(notices, "Using Sunshine client FPS as refresh rate: %dHz\n", rate)
			}
		}
	}
}
