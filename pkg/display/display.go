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

// Package display builds the list of displays from connector state and
// picks one, either automatically, by user override, through a terminal
// prompt, or via an external menu command.
package display

import (
	"errors"
	"fmt"

	"github.com/consolemode/core/pkg/drm"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNoDisplays is returned when connectors exist but none is connected.
	ErrNoDisplays = errors.New("no connected displays found")

	// ErrDisplayNotFound is returned when a user-named display is not in the
	// usable list. Matching is exact; there is no fuzzy fallback.
	ErrDisplayNotFound = errors.New("display not found")
)

// Display is one output port and whatever is attached to it: a connector
// plus its preferred mode, when the kernel exposes one.
type Display struct {
	Connector drm.Connector
	Width     int
	Height    int
}

// Connected reports whether a display is attached to the connector.
func (d Display) Connected() bool {
	return d.Connector.Connected()
}

// HasMode reports whether the kernel exposed a readable preferred mode.
func (d Display) HasMode() bool {
	return d.Width > 0 && d.Height > 0
}

// Mode returns the preferred mode as WIDTHxHEIGHT, or "unknown" when the
// kernel did not expose one.
func (d Display) Mode() string {
	if !d.HasMode() {
		return "unknown"
	}
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// Name returns the full connector name.
func (d Display) Name() string {
	return d.Connector.Name
}

func (d Display) String() string {
	return d.Name() + " - " + d.Mode()
}

// ConnectorSource lists connectors and their preferred modes. *drm.Scanner
// satisfies it.
type ConnectorSource interface {
	List() ([]drm.Connector, error)
	NativeMode(name string) (width, height int, err error)
}

// Detect gathers a Display for every enumerated connector, attaching the
// preferred mode where one is readable. Disconnected connectors stay in the
// list so an explicit override can still target them; capability detection
// degrades to defaults for those. Errors from the underlying list (including
// drm.ErrNoConnectors) propagate.
func Detect(src ConnectorSource) ([]Display, error) {
	conns, err := src.List()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(conns))
	for _, conn := range conns {
		d := Display{Connector: conn}
		w, h, modeErr := src.NativeMode(conn.Name)
		if modeErr != nil {
			log.Debug().Err(modeErr).Msgf("no usable mode for connector %s", conn.Name)
		} else {
			d.Width, d.Height = w, h
		}
		displays = append(displays, d)
	}

	return displays, nil
}
