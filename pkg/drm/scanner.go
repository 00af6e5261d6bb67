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

package drm

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/consolemode/core/pkg/validation"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const DefaultSysfsRoot = "/sys/class/drm"

// edidBlockSize is the size of one EDID block. Valid blobs are a whole
// number of blocks.
const edidBlockSize = 128

// Scanner reads connector state from a DRM sysfs tree.
type Scanner struct {
	fs   afero.Fs
	root string
}

// NewScanner creates a Scanner over the given filesystem and sysfs root.
func NewScanner(fs afero.Fs, root string) *Scanner {
	return &Scanner{fs: fs, root: root}
}

// NewSysfsScanner creates a Scanner over the real /sys/class/drm tree.
func NewSysfsScanner() *Scanner {
	return NewScanner(afero.NewOsFs(), DefaultSysfsRoot)
}

// List enumerates all connectors, connected or not, sorted by name. Returns
// ErrNoConnectors when the tree is unreadable or has no connector entries.
func (s *Scanner) List() ([]Connector, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		// An unreadable tree and an empty one mean the same thing to
		// callers: nothing to launch on.
		return nil, fmt.Errorf("%w: reading %s: %v", ErrNoConnectors, s.root, err)
	}

	var conns []Connector
	for _, entry := range entries {
		name := entry.Name()
		card, rest, ok := strings.Cut(name, "-")
		if !ok || rest == "" || !isCardName(card) {
			// cardN device nodes, renderD nodes, version file
			continue
		}

		conns = append(conns, Connector{
			Name:   name,
			Card:   card,
			Status: s.status(name),
		})
	}

	if len(conns) == 0 {
		return nil, ErrNoConnectors
	}

	sort.Slice(conns, func(i, j int) bool {
		return conns[i].Name < conns[j].Name
	})

	return conns, nil
}

// Connected returns only connectors whose status file reports connected,
// sorted by name. Returns ErrNoConnectors when the tree has no connector
// entries at all; an empty result with nil error means connectors exist but
// none are connected.
func (s *Scanner) Connected() ([]Connector, error) {
	all, err := s.List()
	if err != nil {
		return nil, err
	}

	conns := make([]Connector, 0, len(all))
	for _, c := range all {
		if c.Connected() {
			conns = append(conns, c)
		}
	}
	return conns, nil
}

func (s *Scanner) status(name string) Status {
	data, err := afero.ReadFile(s.fs, filepath.Join(s.root, name, "status"))
	if err != nil {
		log.Debug().Err(err).Msgf("no status for connector %s", name)
		return StatusUnknown
	}
	return ParseStatus(string(data))
}

// EDID reads the raw EDID blob for a connector. Returns ErrEdidUnavailable
// when the blob is missing or empty, and an error when the blob is not a
// whole number of 128-byte blocks.
func (s *Scanner) EDID(name string) ([]byte, error) {
	path := filepath.Join(s.root, name, "edid")
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrEdidUnavailable, name)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEdidUnavailable, name)
	}
	if len(data) < edidBlockSize || len(data)%edidBlockSize != 0 {
		return nil, fmt.Errorf("malformed EDID for %s: %d bytes", name, len(data))
	}
	return data, nil
}

// NativeMode reads the first entry of a connector's modes file, which the
// kernel orders preferred-first. Used as the resolution source when EDID
// decoding is not possible.
func (s *Scanner) NativeMode(name string) (width, height int, err error) {
	path := filepath.Join(s.root, name, "modes")
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read modes for %s: %w", name, err)
	}

	first, _, _ := strings.Cut(string(data), "\n")
	first = strings.TrimSpace(first)
	if first == "" {
		return 0, 0, fmt.Errorf("no modes listed for %s", name)
	}

	width, height, err = validation.ParseResolution(first)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse mode for %s: %w", name, err)
	}
	return width, height, nil
}
