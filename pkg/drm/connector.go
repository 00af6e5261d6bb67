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

// Package drm enumerates display connectors through the kernel's DRM sysfs
// interface and reads their EDID blobs and mode lists.
package drm

import (
	"errors"
	"strings"
)

// Status is the link state a connector reports in its sysfs status file.
type Status int

const (
	StatusUnknown Status = iota
	StatusConnected
	StatusDisconnected
)

func (s Status) String() string {
	switch s {
	case StatusConnected:
		return "connected"
	case StatusDisconnected:
		return "disconnected"
	case StatusUnknown:
		return "unknown"
	default:
		return "unknown"
	}
}

// ParseStatus maps the contents of a sysfs status file to a Status. Anything
// other than the two known values is treated as unknown, which callers count
// as not connected.
func ParseStatus(raw string) Status {
	switch strings.TrimSpace(raw) {
	case "connected":
		return StatusConnected
	case "disconnected":
		return StatusDisconnected
	default:
		return StatusUnknown
	}
}

// Connector is a single display output under /sys/class/drm, e.g.
// card1-HDMI-A-1.
type Connector struct {
	// Name is the full sysfs entry name including the card prefix.
	Name string
	// Card is the DRM device the connector belongs to, e.g. "card1".
	Card string
	// Status is the link state at scan time.
	Status Status
}

func (c Connector) Connected() bool {
	return c.Status == StatusConnected
}

// Output returns the connector name without the card prefix, which is the
// form compositors expect, e.g. "HDMI-A-1" for "card1-HDMI-A-1".
func (c Connector) Output() string {
	return OutputName(c.Name)
}

// OutputName strips the leading "cardN-" from a connector name. Names
// without the prefix are returned unchanged.
func OutputName(name string) string {
	card, rest, ok := strings.Cut(name, "-")
	if !ok || !isCardName(card) {
		return name
	}
	return rest
}

func isCardName(s string) bool {
	if !strings.HasPrefix(s, "card") || len(s) == len("card") {
		return false
	}
	for _, r := range s[len("card"):] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var (
	// ErrNoConnectors is returned when the DRM sysfs tree is unreadable or
	// has no connector entries at all, which means there is no usable
	// graphics driver.
	ErrNoConnectors = errors.New("no display connectors found")

	// ErrEdidUnavailable is returned when a connector has no EDID blob, e.g.
	// the display is off or the link does not carry DDC.
	ErrEdidUnavailable = errors.New("EDID unavailable")
)
