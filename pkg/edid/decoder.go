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

package edid

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/consolemode/core/pkg/helpers/command"
	"github.com/rs/zerolog/log"
)

// decodeTool is the external EDID parser used when available. It understands
// extension blocks, which the built-in fallback does not.
const decodeTool = "edid-decode"

// maxSaneRefresh filters out figures from the tool report that are not
// refresh rates, e.g. horizontal frequencies quoted in Hz.
const maxSaneRefresh = 500

// Decoder extracts capabilities from a raw EDID blob. Implementations
// absorb their own failures and degrade toward Conservative; identical input
// always produces identical output.
type Decoder interface {
	Decode(ctx context.Context, raw []byte) Capabilities
}

// NewDecoder picks the decode strategy: the external tool when it is on
// PATH, otherwise the built-in base block parser.
func NewDecoder(exe command.Executor) Decoder {
	if _, err := exe.LookPath(decodeTool); err != nil {
		log.Info().Msgf("%s not found, using built-in EDID parser", decodeTool)
		return &BaseBlockDecoder{}
	}
	return &ToolDecoder{exe: exe}
}

// ToolDecoder pipes EDID blobs through edid-decode and scans the text
// report for capability markers. Tool failure falls back to the base block
// parser.
type ToolDecoder struct {
	exe command.Executor
}

// NewToolDecoder creates a ToolDecoder using the given executor.
func NewToolDecoder(exe command.Executor) *ToolDecoder {
	return &ToolDecoder{exe: exe}
}

func (d *ToolDecoder) Decode(ctx context.Context, raw []byte) Capabilities {
	out, err := d.exe.Pipe(ctx, raw, decodeTool)
	if err != nil {
		log.Warn().Err(err).Msgf("%s failed, falling back to built-in parser", decodeTool)
		return (&BaseBlockDecoder{}).Decode(ctx, raw)
	}

	text := string(out)
	if strings.TrimSpace(text) == "" {
		log.Warn().Msgf("%s produced no output, falling back to built-in parser", decodeTool)
		return (&BaseBlockDecoder{}).Decode(ctx, raw)
	}

	return ParseReport(text)
}

var (
	vrrMarkers = []string{
		"Variable Refresh Rate",
		"FreeSync",
		"G-SYNC Compatible",
		"VESA VRR",
		"Vendor-Specific Data Block (AMD)",
	}

	hdrMarkers = []string{
		"HDR Static Metadata",
		"HDR10",
		"SMPTE ST 2084",
	}

	refreshRe = regexp.MustCompile(`(\d+)\.?\d*\s*Hz`)
)

// ParseReport extracts capabilities from edid-decode text output. Pure:
// same text in, same capabilities out.
func ParseReport(text string) Capabilities {
	caps := Conservative()

	for _, marker := range vrrMarkers {
		if strings.Contains(text, marker) {
			caps.VRR = true
			break
		}
	}

	for _, marker := range hdrMarkers {
		if strings.Contains(text, marker) {
			caps.HDR = true
			break
		}
	}

	switch {
	case strings.Contains(text, "12 bits per") ||
		strings.Contains(text, "Bits per primary color channel: 12"):
		caps.ColorDepth = 12
	case strings.Contains(text, "10 bits per") ||
		strings.Contains(text, "Bits per primary color channel: 10"):
		caps.ColorDepth = 10
	}

	for _, m := range refreshRe.FindAllStringSubmatch(text, -1) {
		rate, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if rate > caps.MaxRefresh && rate <= maxSaneRefresh {
			caps.MaxRefresh = rate
		}
	}

	return caps
}
