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

package display

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/consolemode/core/pkg/helpers/command"
	"github.com/jonboulle/clockwork"
)

// Selector picks one display out of the detected list. Prompt reads and
// writes go through the injected streams so tests can script them; pacing
// pauses keep output readable on a TV and use the injected clock.
type Selector struct {
	In      io.Reader
	Out     io.Writer
	Exe     command.Executor
	Clock   clockwork.Clock
	MenuCmd string
	Pause   time.Duration
}

// NewSelector creates a Selector with a real clock.
func NewSelector(in io.Reader, out io.Writer, exe command.Executor) *Selector {
	return &Selector{
		In:    in,
		Out:   out,
		Exe:   exe,
		Clock: clockwork.NewRealClock(),
		Pause: time.Second,
	}
}

// Select resolves which display to use:
//   - override names a connector: exact match against every enumerated
//     connector, connected or not, else ErrDisplayNotFound
//   - nothing connected: ErrNoDisplays
//   - exactly one connected: picked automatically with an informational line
//   - multiple connected: external menu command when configured, terminal
//     prompt otherwise
func (s *Selector) Select(ctx context.Context, displays []Display, override string) (Display, error) {
	if override != "" {
		for _, d := range displays {
			if d.Name() == override {
				return d, nil
			}
		}
		return Display{}, fmt.Errorf("%w: %q", ErrDisplayNotFound, override)
	}

	connected := make([]Display, 0, len(displays))
	for _, d := range displays {
		if d.Connected() {
			connected = append(connected, d)
		}
	}

	if len(connected) == 0 {
		return Display{}, ErrNoDisplays
	}

	if len(connected) == 1 {
		only := connected[0]
		fmt.Fprintf(s.Out, "Detected display: %s at %s\n", only.Name(), only.Mode())
		s.sleep(s.Pause)
		return only, nil
	}

	if s.MenuCmd != "" {
		return s.selectWithMenu(ctx, connected)
	}

	return s.selectInteractive(connected)
}

// selectInteractive prints a numbered list and blocks on stdin. Out-of-range
// or non-numeric input re-prompts; only a closed input stream gives up.
func (s *Selector) selectInteractive(displays []Display) (Display, error) {
	fmt.Fprintf(s.Out, "\n=== Gaming Display Selection ===\n\n")
	for i, d := range displays {
		fmt.Fprintf(s.Out, "  [%d] %s - %s\n", i+1, d.Name(), d.Mode())
	}

	scanner := bufio.NewScanner(s.In)
	for {
		fmt.Fprintf(s.Out, "\nSelect display (1-%d): ", len(displays))

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return Display{}, fmt.Errorf("failed to read selection: %w", err)
			}
			return Display{}, errors.New("input closed before a display was selected")
		}

		choice, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil || choice < 1 || choice > len(displays) {
			fmt.Fprintf(s.Out, "Invalid choice, enter a number between 1 and %d\n", len(displays))
			continue
		}

		selected := displays[choice-1]
		fmt.Fprintf(s.Out, "Using %s at %s\n\n", selected.Name(), selected.Mode())
		s.sleep(2 * s.Pause)
		return selected, nil
	}
}

// selectWithMenu pipes "name - mode" lines to an external menu command such
// as dmenu or rofi and parses the chosen line back. Any failure is fatal:
// a dead or cancelled menu means the user declined.
func (s *Selector) selectWithMenu(ctx context.Context, displays []Display) (Display, error) {
	options := make([]string, len(displays))
	for i, d := range displays {
		options[i] = d.String()
	}

	parts := strings.Fields(s.MenuCmd)
	if len(parts) == 0 {
		return Display{}, errors.New("menu command is empty")
	}

	out, err := s.Exe.Pipe(ctx, []byte(strings.Join(options, "\n")), parts[0], parts[1:]...)
	if err != nil {
		return Display{}, fmt.Errorf("menu command failed (user may have cancelled): %w", err)
	}

	selection := strings.TrimSpace(string(out))
	if selection == "" {
		return Display{}, errors.New("no display selected")
	}

	name, _, _ := strings.Cut(selection, " - ")
	for _, d := range displays {
		if d.Name() == name {
			fmt.Fprintf(s.Out, "Using %s at %s\n", d.Name(), d.Mode())
			return d, nil
		}
	}
	return Display{}, fmt.Errorf("%w: %q", ErrDisplayNotFound, name)
}

func (s *Selector) sleep(d time.Duration) {
	if s.Clock == nil || d <= 0 {
		return
	}
	s.Clock.Sleep(d)
}
