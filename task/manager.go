// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package task

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/metrics"
	"github.com/hacs/hacs/storage"
	"github.com/hacs/hacs/types"
)

var (
	ErrAlreadyLoaded = errors.New("tasks are already loaded")
	ErrNotLoaded     = errors.New("tasks are not loaded")
	ErrUnknownTask   = errors.New("unknown task")
)

// State of the manager. Loaded is terminal.
type State int

const (
	StateUnloaded State = iota
	StateLoading
	StateLoaded
)

type ManagerConfig struct {
	Factories []Factory
	// Runs records the last run of every task when set.
	Runs   storage.Storage[storage.TaskRun]
	Logger *zap.Logger
}

func NewManager(config ManagerConfig) *Manager {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		factories: config.Factories,
		runs:      config.Runs,
		logger:    logger,
		tasks:     make(map[string]Task),
	}
}

// Manager discovers tasks once and runs them by stage, event, schedule or
// request.
type Manager struct {
	factories []Factory
	runs      storage.Storage[storage.TaskRun]
	logger    *zap.Logger

	lock  sync.RWMutex
	state State
	tasks map[string]Task
}

func (m *Manager) State() State {
	m.lock.RLock()
	defer m.lock.RUnlock()

	return m.state
}

// Load runs every factory concurrently and indexes the tasks by slug.
func (m *Manager) Load(ctx context.Context) error {
	m.lock.Lock()
	if m.state != StateUnloaded {
		m.lock.Unlock()
		return ErrAlreadyLoaded
	}
	m.state = StateLoading
	m.lock.Unlock()

	tasks := make([]Task, len(m.factories))
	g, gctx := errgroup.WithContext(ctx)
	for i, factory := range m.factories {
		i, factory := i, factory
		g.Go(func() error {
			t, err := factory(gctx)
			if err != nil {
				return err
			}
			tasks[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		m.lock.Lock()
		m.state = StateUnloaded
		m.lock.Unlock()
		return fmt.Errorf("loading tasks: %w", err)
	}

	loaded := make(map[string]Task, len(tasks))
	for _, t := range tasks {
		if t == nil {
			continue
		}
		slug := Slug(t)
		if _, ok := loaded[slug]; ok {
			m.lock.Lock()
			m.state = StateUnloaded
			m.lock.Unlock()
			return fmt.Errorf("task %s registered twice", slug)
		}
		loaded[slug] = t
		m.logger.Debug("loaded task", zap.String("task", slug), zap.Stringer("kind", t.Kind()))
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.tasks = loaded
	m.state = StateLoaded
	m.logger.Info("tasks loaded", zap.Int("count", len(m.tasks)))
	return nil
}

// Slugs returns the loaded task slugs in order.
func (m *Manager) Slugs() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()

	slugs := make([]string, 0, len(m.tasks))
	for slug := range m.tasks {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)
	return slugs
}

func (m *Manager) Get(slug string) (Task, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	t, ok := m.tasks[slug]
	if !ok {
		return nil, fmt.Errorf("%s: %w", slug, ErrUnknownTask)
	}
	return t, nil
}

func (m *Manager) byKind(kind Kind) map[string]Task {
	m.lock.RLock()
	defer m.lock.RUnlock()

	result := make(map[string]Task)
	for slug, t := range m.tasks {
		if t.Kind() == kind {
			result[slug] = t
		}
	}
	return result
}

// ExecuteApplicable runs every runtime task that applies to stage
// concurrently. Tasks do not cancel each other, the first error is
// returned once all of them are done.
func (m *Manager) ExecuteApplicable(ctx context.Context, stage types.Stage) error {
	if m.State() != StateLoaded {
		return ErrNotLoaded
	}

	var g errgroup.Group
	count := 0
	for slug, t := range m.byKind(KindRuntime) {
		if !AppliesTo(t, stage) {
			continue
		}
		slug, t := slug, t
		count++
		g.Go(func() error {
			return m.execute(ctx, slug, t)
		})
	}
	m.logger.Debug("executing applicable tasks",
		zap.String("stage", string(stage)),
		zap.Int("count", count),
	)
	return g.Wait()
}

// ExecuteManual runs one task by slug, whatever its kind.
func (m *Manager) ExecuteManual(ctx context.Context, slug string) error {
	t, err := m.Get(slug)
	if err != nil {
		return err
	}
	return m.execute(ctx, slug, t)
}

func (m *Manager) execute(ctx context.Context, slug string, t Task) error {
	start := time.Now()
	m.logger.Debug("executing task", zap.String("task", slug))

	err := t.Execute(ctx)
	metrics.TasksTotal.WithLabelValues(slug, metrics.Outcome(err)).Inc()
	m.record(slug, err)

	if err != nil {
		m.logger.Error("task failed",
			zap.String("task", slug),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return fmt.Errorf("task %s: %w", slug, err)
	}
	m.logger.Debug("task done",
		zap.String("task", slug),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}

func (m *Manager) record(slug string, err error) {
	if m.runs == nil {
		return
	}

	run, getErr := m.runs.Get([]byte(slug))
	if getErr != nil {
		run = storage.TaskRun{Slug: slug}
	}
	run.LastRun = time.Now().Unix()
	if err != nil {
		run.Failures++
	} else {
		run.Failures = 0
	}
	if err := m.runs.Put([]byte(slug), run); err != nil {
		m.logger.Warn("failed to record task run", zap.String("task", slug), zap.Error(err))
	}
}

// Start subscribes event tasks to their topics, arms schedule tasks and runs
// the applicable runtime tasks on every stage change published on the bus.
// The returned function stops everything Start armed.
func (m *Manager) Start(ctx context.Context, bus event.Bus) (func(), error) {
	if m.State() != StateLoaded {
		return nil, ErrNotLoaded
	}

	ctx, cancel := context.WithCancel(ctx)
	var (
		unsubscribe []func()
		wg          sync.WaitGroup
	)

	for slug, t := range m.byKind(KindEvent) {
		triggered, ok := t.(Triggered)
		if !ok {
			continue
		}
		slug, t := slug, t
		for _, topic := range triggered.Events() {
			unsubscribe = append(unsubscribe, bus.Subscribe(topic, func(ctx context.Context, e event.Event) error {
				return m.execute(event.NewContext(ctx, e), slug, t)
			}))
		}
	}

	unsubscribe = append(unsubscribe, bus.Subscribe(constant.StageTopic, func(ctx context.Context, e event.Event) error {
		stage, ok := StageOf(e)
		if !ok {
			return fmt.Errorf("event without stage on %s", constant.StageTopic)
		}
		return m.ExecuteApplicable(ctx, stage)
	}))

	for slug, t := range m.byKind(KindSchedule) {
		scheduled, ok := t.(Scheduled)
		if !ok || scheduled.Interval() <= 0 {
			m.logger.Warn("schedule task without interval", zap.String("task", slug))
			continue
		}
		s := &schedule{
			slug:     slug,
			task:     t,
			interval: scheduled.Interval(),
			run:      m.execute,
			logger:   m.logger,
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.start(ctx)
		}()
	}

	return func() {
		for _, f := range unsubscribe {
			f()
		}
		cancel()
		wg.Wait()
	}, nil
}

// StageOf reads the stage carried by a stage event.
func StageOf(e event.Event) (types.Stage, bool) {
	switch stage := e.Data["stage"].(type) {
	case types.Stage:
		return stage, true
	case string:
		return types.Stage(stage), true
	default:
		return "", false
	}
}
