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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverridesValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		overrides Overrides
		wantErr   bool
	}{
		{
			name:      "empty overrides valid",
			overrides: Overrides{},
			wantErr:   false,
		},
		{
			name: "full valid overrides",
			overrides: Overrides{
				Display:    "card1-HDMI-A-1",
				Resolution: "2560x1440",
				Refresh:    144,
				ColorDepth: 10,
				ForceVRR:   true,
			},
			wantErr: false,
		},
		{
			name:      "bad connector format",
			overrides: Overrides{Display: "HDMI-A-1"},
			wantErr:   true,
		},
		{
			name:      "bad resolution format",
			overrides: Overrides{Resolution: "1920by1080"},
			wantErr:   true,
		},
		{
			name:      "refresh too high",
			overrides: Overrides{Refresh: 600},
			wantErr:   true,
		},
		{
			name:      "negative refresh",
			overrides: Overrides{Refresh: -60},
			wantErr:   true,
		},
		{
			name:      "unsupported color depth",
			overrides: Overrides{ColorDepth: 9},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.overrides.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidOverride)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestWithSafeMode(t *testing.T) {
	t.Parallel()

	orig := Overrides{
		Resolution: "3840x2160",
		Refresh:    120,
		ForceVRR:   true,
	}

	safe := orig.WithSafeMode()

	assert.True(t, safe.SafeMode)
	assert.Equal(t, "3840x2160", safe.Resolution, "copy keeps other fields")
	assert.False(t, orig.SafeMode, "original must not be mutated")
}

func TestApplySunshineEnv(t *testing.T) {
	t.Parallel()

	tests := []struct {
		env            map[string]string
		name           string
		wantResolution string
		wantNotice     string
		overrides      Overrides
		wantRefresh    int
	}{
		{
			name: "backfills resolution and refresh",
			env: map[string]string{
				"SUNSHINE_CLIENT_WIDTH":  "2560",
				"SUNSHINE_CLIENT_HEIGHT": "1440",
				"SUNSHINE_CLIENT_FPS":    "120",
			},
			wantResolution: "2560x1440",
			wantRefresh:    120,
			wantNotice:     "Using Sunshine client resolution: 2560x1440\n",
		},
		{
			name:      "user resolution wins over client",
			overrides: Overrides{Resolution: "1920x1080"},
			env: map[string]string{
				"SUNSHINE_CLIENT_WIDTH":  "2560",
				"SUNSHINE_CLIENT_HEIGHT": "1440",
			},
			wantResolution: "1920x1080",
		},
		{
			name:      "user refresh wins over client",
			overrides: Overrides{Refresh: 60},
			env: map[string]string{
				"SUNSHINE_CLIENT_FPS": "120",
			},
			wantRefresh: 60,
		},
		{
			name: "width alone is not enough",
			env: map[string]string{
				"SUNSHINE_CLIENT_WIDTH": "2560",
			},
			wantResolution: "",
		},
		{
			name: "non-numeric fps ignored",
			env: map[string]string{
				"SUNSHINE_CLIENT_FPS": "fast",
			},
			wantRefresh: 0,
		},
		{
			name:           "no client env leaves overrides alone",
			env:            map[string]string{},
			wantResolution: "",
			wantRefresh:    0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			o := tt.overrides
			var notices bytes.Buffer
			o.ApplySunshineEnv(func(key string) string {
				return tt.env[key]
			}, &notices)

			assert.Equal(t, tt.wantResolution, o.Resolution)
			assert.Equal(t, tt.wantRefresh, o.Refresh)
			if tt.wantNotice != "" {
				assert.Contains(t, notices.String(), tt.wantNotice)
			}
		})
	}
}
