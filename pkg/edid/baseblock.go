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
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
)

// BaseBlockDecoder parses the fixed-offset fields of the base 128-byte EDID
// block. VRR and HDR live in extension blocks it does not read, so it always
// reports both unsupported.
type BaseBlockDecoder struct{}

func (*BaseBlockDecoder) Decode(_ context.Context, raw []byte) Capabilities {
	caps, err := ParseBaseBlock(raw)
	if err != nil {
		log.Debug().Err(err).Msg("base block parse failed, using conservative defaults")
		return Conservative()
	}
	return caps
}

var baseBlockHeader = []byte{0x00, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0x00}

const (
	baseBlockSize    = 128
	videoInputOffset = 20
	descriptorSize   = 18
	rangeLimitsTag   = 0xFD
)

// descriptorOffsets are the four 18-byte descriptor slots in the base block.
// The first slot holds the preferred detailed timing.
var descriptorOffsets = []int{54, 72, 90, 108}

// ParseBaseBlock derives capabilities from the base EDID block alone: color
// depth from the video input byte, native resolution and refresh from the
// preferred detailed timing, and the maximum vertical rate from the display
// range limits descriptor when present.
func ParseBaseBlock(raw []byte) (Capabilities, error) {
	if len(raw) < baseBlockSize {
		return Capabilities{}, fmt.Errorf("EDID too short: %d bytes", len(raw))
	}
	if !bytes.Equal(raw[:len(baseBlockHeader)], baseBlockHeader) {
		return Capabilities{}, fmt.Errorf("bad EDID header: % x", raw[:len(baseBlockHeader)])
	}

	caps := Conservative()
	caps.ColorDepth = parseColorDepth(raw[videoInputOffset])

	for i, off := range descriptorOffsets {
		desc := raw[off : off+descriptorSize]
		pixelClock := int(desc[0]) | int(desc[1])<<8
		if pixelClock != 0 {
			if i == 0 {
				parsePreferredTiming(desc, pixelClock, &caps)
			}
			continue
		}
		if desc[3] == rangeLimitsTag {
			maxV := parseRangeLimits(desc)
			if maxV > caps.MaxRefresh && maxV <= maxSaneRefresh {
				caps.MaxRefresh = maxV
			}
		}
	}

	return caps, nil
}

// parseColorDepth reads bits per channel from the video input byte. Analog
// inputs and undefined codes count as 8; depths above 12 are reported as 12,
// the deepest the launcher can request.
func parseColorDepth(b byte) int {
	if b&0x80 == 0 {
		return 8
	}
	switch (b >> 4) & 0x07 {
	case 0b011:
		return 10
	case 0b100, 0b101, 0b110:
		return 12
	default:
		return 8
	}
}

// parsePreferredTiming fills native resolution and refresh from the first
// detailed timing descriptor. The pixel clock is in units of 10 kHz.
func parsePreferredTiming(desc []byte, pixelClock int, caps *Capabilities) {
	hactive := int(desc[2]) | int(desc[4]&0xF0)<<4
	hblank := int(desc[3]) | int(desc[4]&0x0F)<<8
	vactive := int(desc[5]) | int(desc[7]&0xF0)<<4
	vblank := int(desc[6]) | int(desc[7]&0x0F)<<8

	if hactive > 0 && vactive > 0 {
		caps.NativeWidth = hactive
		caps.NativeHeight = vactive
	}

	total := (hactive + hblank) * (vactive + vblank)
	if total <= 0 {
		return
	}
	refresh := (pixelClock*10000 + total/2) / total
	if refresh > caps.MaxRefresh && refresh <= maxSaneRefresh {
		caps.MaxRefresh = refresh
	}
}

// parseRangeLimits reads the maximum vertical rate from a display range
// limits descriptor, applying the +255 offset flag when set.
func parseRangeLimits(desc []byte) int {
	maxV := int(desc[6])
	if desc[4]&0x02 != 0 {
		maxV += 255
	}
	return maxV
}
