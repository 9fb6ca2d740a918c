// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotCompatible    = errors.New("the host version is not compatible with this repository")
	ErrValidationFailed = errors.New("repository validation failed")
)

// Workflow is a sequence of phases run against one repository.
type Workflow interface {
	Name() string
	Execute(ctx context.Context) error
}

// State is the phase a workflow is in.
type State int

const (
	StatePending State = iota
	StatePreInstall
	StateInstall
	StatePostInstall
	StatePreRegistration
	StateValidate
	StateCommonRegistration
	StatePostRegistration
	StateUninstall
	StateRefresh
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StatePreInstall:
		return "pre-install"
	case StateInstall:
		return "install"
	case StatePostInstall:
		return "post-install"
	case StatePreRegistration:
		return "pre-registration"
	case StateValidate:
		return "validate"
	case StateCommonRegistration:
		return "common-registration"
	case StatePostRegistration:
		return "post-registration"
	case StateUninstall:
		return "uninstall"
	case StateRefresh:
		return "refresh"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type phase struct {
	state State
	run   func(ctx context.Context) error
}

// phases runs its phases in order. The first error aborts the sequence and
// nothing already done is rolled back. Every run starts over from Pending.
type phases struct {
	state State
}

func (p *phases) State() State {
	return p.state
}

func (p *phases) execute(ctx context.Context, sequence ...phase) error {
	p.state = StatePending
	for _, next := range sequence {
		if err := ctx.Err(); err != nil {
			p.state = StateAborted
			return err
		}
		p.state = next.state
		if err := next.run(ctx); err != nil {
			p.state = StateAborted
			return fmt.Errorf("%s: %w", next.state, err)
		}
	}
	p.state = StateDone
	return nil
}
