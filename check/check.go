// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package check

import (
	"context"
	"errors"
	"fmt"

	"github.com/hacs/hacs/types"
)

type State int

const (
	NotRun State = iota
	Running
	Passed
	Failed
)

func (s State) String() string {
	switch s {
	case NotRun:
		return "not run"
	case Running:
		return "running"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Check is a named requirement a repository must meet. A check implements
// Validator, AsyncValidator or both; one that implements neither passes.
type Check interface {
	Name() string
}

// Validator may block, it is run on the runner's worker pool.
type Validator interface {
	Validate(repository *types.Repository) error
}

type AsyncValidator interface {
	ValidateAsync(ctx context.Context, repository *types.Repository) error
}

// Gated checks only run in action mode and pass silently otherwise.
type Gated interface {
	ActionOnly() bool
}

// Failure is the error a check returns when the repository does not meet
// the requirement. Any other error aborts the whole run.
type Failure struct {
	Message string
}

func (f *Failure) Error() string {
	return f.Message
}

func Failf(format string, args ...any) error {
	return &Failure{Message: fmt.Sprintf(format, args...)}
}

// AsFailure unwraps a soft failure from err.
func AsFailure(err error) (*Failure, bool) {
	var failure *Failure
	if errors.As(err, &failure) {
		return failure, true
	}
	return nil, false
}

// Outcome is the terminal state of one check in one run.
type Outcome struct {
	Name    string
	State   State
	Message string
}

type Result struct {
	Outcomes []Outcome
}

func (r Result) Failed() bool {
	for _, outcome := range r.Outcomes {
		if outcome.State == Failed {
			return true
		}
	}
	return false
}

// Reasons lists the failure messages in check order.
func (r Result) Reasons() []string {
	var reasons []string
	for _, outcome := range r.Outcomes {
		if outcome.State == Failed {
			reasons = append(reasons, outcome.Message)
		}
	}
	return reasons
}

// Outcome returns the outcome of the named check.
func (r Result) Outcome(name string) (Outcome, bool) {
	for _, outcome := range r.Outcomes {
		if outcome.Name == name {
			return outcome, true
		}
	}
	return Outcome{}, false
}
