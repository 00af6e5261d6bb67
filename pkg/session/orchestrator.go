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
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/consolemode/core/pkg/helpers/command"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// State is a step in the launch lifecycle.
type State int

const (
	StateIdle State = iota
	StateLaunching
	StateRunning
	StateSucceeded
	StateFailed
	StatePromptRetry
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLaunching:
		return "launching"
	case StateRunning:
		return "running"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	case StatePromptRetry:
		return "prompt-retry"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// LaunchError is one failed attempt: either the process never started (Err
// set) or it exited non-zero (Code set).
type LaunchError struct {
	Err  error
	Code int
}

func (e *LaunchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to start gamescope: %v", e.Err)
	}
	return fmt.Sprintf("gamescope exited with status %d", e.Code)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// Orchestrator drives launch attempts through the lifecycle:
//
//	Idle -> Launching -> Running -> Succeeded
//	                  \-> Failed -> PromptRetry -> Launching (safe, once)
//	                               \-> Aborted
//
// The safe attempt never re-prompts; its failure is final.
type Orchestrator struct {
	exe     command.Executor
	clock   clockwork.Clock
	in      io.Reader
	out     io.Writer
	baseEnv []string
	history []State
	pause   time.Duration
}

// NewOrchestrator creates an Orchestrator attached to the given streams.
// baseEnv is the environment every attempt starts from.
func NewOrchestrator(exe command.Executor, in io.Reader, out io.Writer, baseEnv []string) *Orchestrator {
	return &Orchestrator{
		exe:     exe,
		clock:   clockwork.NewRealClock(),
		in:      in,
		out:     out,
		baseEnv: baseEnv,
		history: []State{StateIdle},
		pause:   time.Second,
	}
}

// SetPacing adjusts the pause between user-facing steps. Zero disables
// pacing entirely.
func (o *Orchestrator) SetPacing(clock clockwork.Clock, pause time.Duration) {
	o.clock = clock
	o.pause = pause
}

// History returns the state transitions so far, oldest first.
func (o *Orchestrator) History() []State {
	out := make([]State, len(o.history))
	copy(out, o.history)
	return out
}

func (o *Orchestrator) transition(s State) {
	log.Debug().Msgf("launch state: %s -> %s", o.history[len(o.history)-1], s)
	o.history = append(o.history, s)
}

// Run executes the primary attempt and, when it fails and safe is non-nil,
// offers exactly one safe-mode retry. Nested launches pass safe as nil:
// there is no safer tier inside another compositor.
func (o *Orchestrator) Run(ctx context.Context, primary LaunchConfig, safe *LaunchConfig) error {
	err := o.attempt(ctx, primary)
	if err == nil {
		return nil
	}

	log.Error().Err(err).Msg("launch attempt failed")

	if safe == nil {
		return fmt.Errorf("gamescope session failed: %w", err)
	}

	o.transition(StatePromptRetry)
	fmt.Fprintf(o.out, "\n======================================\n")
	fmt.Fprintf(o.out, "Gamescope failed to start!\n")
	fmt.Fprintf(o.out, "======================================\n\n")
	fmt.Fprintf(o.out, "Press Enter to retry with safe options, or Ctrl+C to exit: ")

	if _, readErr := bufio.NewReader(o.in).ReadString('\n'); readErr != nil {
		o.transition(StateAborted)
		return fmt.Errorf("retry declined: %w", err)
	}

	fmt.Fprintf(o.out, "\nRetrying with safe options...\n")
	o.sleep(2 * o.pause)

	if retryErr := o.attempt(ctx, *safe); retryErr != nil {
		return fmt.Errorf("safe mode launch failed: %w", retryErr)
	}
	return nil
}

// attempt runs one launch to completion. Returns nil on a clean exit and a
// *LaunchError otherwise.
func (o *Orchestrator) attempt(ctx context.Context, cfg LaunchConfig) error {
	flags := strings.Join(GamescopeArgs(cfg), " ")
	if cfg.Nested {
		fmt.Fprintf(o.out, "Launching gamescope in nested mode with: %s\n\n", flags)
	} else {
		fmt.Fprintf(o.out, "Launching gamescope with: %s\n\n", flags)
	}

	o.transition(StateLaunching)
	o.sleep(o.pause)

	name, args := CommandLine(cfg)
	env := Environ(cfg, o.baseEnv)

	code, err := o.exe.Attach(ctx, env, name, args...)
	if err != nil {
		o.transition(StateFailed)
		return &LaunchError{Err: err}
	}

	o.transition(StateRunning)
	if code == 0 {
		o.transition(StateSucceeded)
		return nil
	}

	o.transition(StateFailed)
	return &LaunchError{Code: code}
}

func (o *Orchestrator) sleep(d time.Duration) {
	if o.clock == nil || d <= 0 {
		return
	}
	o.clock.Sleep(d)
}
