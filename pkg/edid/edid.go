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

// Package edid turns raw EDID blobs into display capabilities. The primary
// strategy pipes the blob through the edid-decode tool; a built-in parser of
// the base EDID block covers systems without the tool. When neither works
// the result is a fixed conservative default rather than an error, so
// callers never have to branch on decode failure.
package edid

import (
	"fmt"
	"io"
)

// Capabilities describes what a display can do, as far as its EDID reveals.
// Zero values mean unknown, except the booleans which mean unsupported.
type Capabilities struct {
	// MaxRefresh is the highest vertical refresh rate in Hz.
	MaxRefresh int
	// ColorDepth is bits per primary color channel: 8, 10 or 12.
	ColorDepth int
	// NativeWidth and NativeHeight are the preferred mode dimensions, or 0
	// when the blob did not carry a usable detailed timing.
	NativeWidth  int
	NativeHeight int
	// VRR reports adaptive sync support in any vendor flavor.
	VRR bool
	// HDR reports HDR static metadata support.
	HDR bool
}

// Conservative returns the capabilities assumed when nothing can be
// detected: a baseline every display made this century can drive.
func Conservative() Capabilities {
	return Capabilities{
		MaxRefresh: 60,
		ColorDepth: 8,
	}
}

// HasNative reports whether the capabilities carry a native resolution.
func (c Capabilities) HasNative() bool {
	return c.NativeWidth > 0 && c.NativeHeight > 0
}

// WriteReport prints the user-facing capability summary.
func (c Capabilities) WriteReport(w io.Writer) {
	if c.VRR {
		fmt.Fprintln(w, "✓ VRR/Adaptive Sync supported")
	} else {
		fmt.Fprintln(w, "✗ VRR/Adaptive Sync not detected")
	}

	if c.HDR {
		fmt.Fprintln(w, "✓ HDR supported")
	} else {
		fmt.Fprintln(w, "✗ HDR not detected")
	}

	switch c.ColorDepth {
	case 12:
		fmt.Fprintln(w, "✓ 12-bit color depth supported")
	case 10:
		fmt.Fprintln(w, "✓ 10-bit color depth supported")
	default:
		fmt.Fprintln(w, "✓ 8-bit color depth (standard)")
	}

	fmt.Fprintf(w, "✓ Maximum refresh rate: %dHz\n", c.MaxRefresh)
}
