// Package transition drives a fixed sequence of named stages, one advance
// at a time. Multi-step flows (generate, then render, then commit) run as
// a Sequence so each step has a name, failures carry that name, and a
// second caller cannot barge in while a stage is mid-flight.
package transition

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// State describes where a sequence is in its lifecycle.
type State string

const (
	// StateIdle means the sequence is between stages with more to run.
	StateIdle State = "idle"
	// StateRunning means a stage is currently executing.
	StateRunning State = "running"
	// StateDone means every stage completed.
	StateDone State = "done"
	// StateFailed means a stage returned an error; the sequence is stuck there.
	StateFailed State = "failed"
)

// ErrBusy is returned when Advance is called while a stage is already
// executing.
var ErrBusy = errors.New("a stage is already running")

// Stage is one named step of a sequence.
type Stage struct {
	Name string
	Run  func(ctx context.Context) error
}

// Sequence executes its stages strictly in order. Advance is the only
// driver: each call runs exactly one stage, and state moves through
// idle -> running -> idle per stage until done or failed.
type Sequence struct {
	mu     sync.Mutex
	stages []Stage
	next   int
	state  State
	err    error
}

// NewSequence builds a sequence over the given stages. A sequence with no
// stages is already done.
func NewSequence(stages ...Stage) *Sequence {
	state := StateIdle
	if len(stages) == 0 {
		state = StateDone
	}
	return &Sequence{stages: stages, state: state}
}

// State reports the sequence's current lifecycle state.
func (s *Sequence) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Next returns the name of the stage the next Advance would run, or ""
// when there is nothing left to run.
func (s *Sequence) Next() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle && s.next < len(s.stages) {
		return s.stages[s.next].Name
	}
	return ""
}

// Advance runs the next stage and reports its name and whether the
// sequence has now finished. Calling Advance while a stage is executing
// returns ErrBusy without touching the sequence. After a failure the
// sequence stays failed and Advance keeps returning the original error.
func (s *Sequence) Advance(ctx context.Context) (stage string, done bool, err error) {
	s.mu.Lock()
	switch s.state {
	case StateRunning:
		s.mu.Unlock()
		return "", false, ErrBusy
	case StateDone:
		s.mu.Unlock()
		return "", true, nil
	case StateFailed:
		name := s.stages[s.next].Name
		failure := s.err
		s.mu.Unlock()
		return name, true, failure
	}

	if err := ctx.Err(); err != nil {
		s.mu.Unlock()
		return "", false, err
	}

	current := s.stages[s.next]
	s.state = StateRunning
	s.mu.Unlock()

	runErr := current.Run(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if runErr != nil {
		s.state = StateFailed
		s.err = fmt.Errorf("stage %s failed: %w", current.Name, runErr)
		return current.Name, true, s.err
	}

	s.next++
	if s.next == len(s.stages) {
		s.state = StateDone
		return current.Name, true, nil
	}
	s.state = StateIdle
	return current.Name, false, nil
}

// Run advances the sequence to completion, stopping at the first failure.
// The observer, when non-nil, is called with each stage name just before
// that stage runs.
func (s *Sequence) Run(ctx context.Context, observer func(stage string)) error {
	for {
		if observer != nil {
			if name := s.Next(); name != "" {
				observer(name)
			}
		}
		_, done, err := s.Advance(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}
