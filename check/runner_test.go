// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package check

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/hacs/hacs/metrics"
	"github.com/hacs/hacs/types"
)

type fakeCheck struct {
	name       string
	actionOnly bool
	sync       func(*types.Repository) error
	async      func(context.Context, *types.Repository) error
}

func (f fakeCheck) Name() string     { return f.name }
func (f fakeCheck) ActionOnly() bool { return f.actionOnly }

type syncCheck struct{ fakeCheck }

func (s syncCheck) Validate(r *types.Repository) error { return s.sync(r) }

type asyncCheck struct{ fakeCheck }

func (a asyncCheck) ValidateAsync(ctx context.Context, r *types.Repository) error {
	return a.async(ctx, r)
}

type bothCheck struct{ fakeCheck }

func (b bothCheck) Validate(r *types.Repository) error { return b.sync(r) }
func (b bothCheck) ValidateAsync(ctx context.Context, r *types.Repository) error {
	return b.async(ctx, r)
}

func TestRunner_Run(t *testing.T) {
	errWrong := fmt.Errorf("something went wrong")
	pass := func(*types.Repository) error { return nil }
	fail := func(*types.Repository) error { return Failf("nope") }

	tests := []struct {
		name        string
		action      bool
		checks      []Check
		wantFailed  bool
		wantReasons []string
		wantStates  []State
		wantErr     assert.ErrorAssertionFunc
	}{
		{
			name:       "no hooks passes",
			checks:     []Check{fakeCheck{name: "empty"}},
			wantStates: []State{Passed},
			wantErr:    assert.NoError,
		},
		{
			name: "sync failure is soft",
			checks: []Check{
				syncCheck{fakeCheck{name: "first", sync: fail}},
				syncCheck{fakeCheck{name: "second", sync: pass}},
			},
			wantFailed:  true,
			wantReasons: []string{"nope"},
			wantStates:  []State{Failed, Passed},
			wantErr:     assert.NoError,
		},
		{
			name: "async failure is soft",
			checks: []Check{
				asyncCheck{fakeCheck{name: "async", async: func(context.Context, *types.Repository) error {
					return Failf("async nope")
				}}},
			},
			wantFailed:  true,
			wantReasons: []string{"async nope"},
			wantStates:  []State{Failed},
			wantErr:     assert.NoError,
		},
		{
			name: "wrapped failure is soft",
			checks: []Check{
				syncCheck{fakeCheck{name: "wrapped", sync: func(*types.Repository) error {
					return fmt.Errorf("context: %w", Failf("inner"))
				}}},
			},
			wantFailed:  true,
			wantReasons: []string{"inner"},
			wantStates:  []State{Failed},
			wantErr:     assert.NoError,
		},
		{
			name: "reasons keep check order",
			checks: []Check{
				syncCheck{fakeCheck{name: "a", sync: func(*types.Repository) error { return Failf("a") }}},
				syncCheck{fakeCheck{name: "b", sync: pass}},
				syncCheck{fakeCheck{name: "c", sync: func(*types.Repository) error { return Failf("c") }}},
			},
			wantFailed:  true,
			wantReasons: []string{"a", "c"},
			wantStates:  []State{Failed, Passed, Failed},
			wantErr:     assert.NoError,
		},
		{
			name: "unexpected error is hard",
			checks: []Check{
				syncCheck{fakeCheck{name: "broken", sync: func(*types.Repository) error { return errWrong }}},
			},
			wantErr: func(t assert.TestingT, err error, i ...interface{}) bool {
				return assert.ErrorIs(t, err, errWrong)
			},
		},
		{
			name: "gated check skipped outside action",
			checks: []Check{
				syncCheck{fakeCheck{name: "gated", actionOnly: true, sync: fail}},
			},
			wantStates: []State{Passed},
			wantErr:    assert.NoError,
		},
		{
			name:   "gated check runs in action",
			action: true,
			checks: []Check{
				syncCheck{fakeCheck{name: "gated", actionOnly: true, sync: fail}},
			},
			wantFailed:  true,
			wantReasons: []string{"nope"},
			wantStates:  []State{Failed},
			wantErr:     assert.NoError,
		},
		{
			name: "sync failure skips async hook",
			checks: []Check{
				bothCheck{fakeCheck{
					name: "both",
					sync: fail,
					async: func(context.Context, *types.Repository) error {
						return errWrong
					},
				}},
			},
			wantFailed:  true,
			wantReasons: []string{"nope"},
			wantStates:  []State{Failed},
			wantErr:     assert.NoError,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			runner := NewRunner(RunnerConfig{
				Action: test.action,
				Logger: zaptest.NewLogger(t),
			})

			result, err := runner.Run(context.Background(), &types.Repository{FullName: "owner/repo"}, test.checks)
			if !test.wantErr(t, err) || err != nil {
				return
			}

			assert.Equal(t, test.wantFailed, result.Failed())
			assert.Equal(t, test.wantReasons, result.Reasons())

			states := make([]State, 0, len(result.Outcomes))
			for _, outcome := range result.Outcomes {
				states = append(states, outcome.State)
			}
			assert.Equal(t, test.wantStates, states)
		})
	}
}

func TestRunner_BoundsBlockingValidators(t *testing.T) {
	var (
		active int32
		peak   int32
	)
	blocking := func(*types.Repository) error {
		n := atomic.AddInt32(&active, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		atomic.AddInt32(&active, -1)
		return nil
	}

	checks := make([]Check, 0, 20)
	for i := 0; i < 20; i++ {
		checks = append(checks, syncCheck{fakeCheck{name: fmt.Sprintf("c%d", i), sync: blocking}})
	}

	runner := NewRunner(RunnerConfig{Workers: 2})
	result, err := runner.Run(context.Background(), &types.Repository{}, checks)
	assert.NoError(t, err)
	assert.False(t, result.Failed())
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestRunner_WithAction(t *testing.T) {
	runner := NewRunner(RunnerConfig{})
	assert.False(t, runner.Action())
	assert.True(t, runner.WithAction(true).Action())
	assert.False(t, runner.Action())
}

func TestRunner_Metrics(t *testing.T) {
	runner := NewRunner(RunnerConfig{Logger: zaptest.NewLogger(t)})
	checks := []Check{
		syncCheck{fakeCheck{name: "metered_pass", sync: func(*types.Repository) error { return nil }}},
		syncCheck{fakeCheck{name: "metered_fail", sync: func(*types.Repository) error { return Failf("nope") }}},
		syncCheck{fakeCheck{name: "metered_gated", actionOnly: true, sync: func(*types.Repository) error { return nil }}},
	}

	_, err := runner.Run(context.Background(), &types.Repository{FullName: "owner/repo"}, checks)
	assert.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ChecksTotal.WithLabelValues("metered_pass", metrics.OutcomeSuccess)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ChecksTotal.WithLabelValues("metered_fail", metrics.OutcomeFailure)))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.ChecksTotal.WithLabelValues("metered_gated", metrics.OutcomeSkipped)))
	assert.Zero(t, testutil.ToFloat64(metrics.ChecksTotal.WithLabelValues("metered_gated", metrics.OutcomeSuccess)))
}
