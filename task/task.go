// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package task

import (
	"context"
	"reflect"
	"strings"
	"time"
	"unicode"

	"github.com/hacs/hacs/types"
)

// Kind is what triggers a task.
type Kind int

const (
	// KindRuntime tasks run once when their stage is reached.
	KindRuntime Kind = iota
	// KindEvent tasks run for every event on one of their topics.
	KindEvent
	// KindSchedule tasks run every interval.
	KindSchedule
	// KindManual tasks only run on request.
	KindManual
)

func (k Kind) String() string {
	switch k {
	case KindRuntime:
		return "runtime"
	case KindEvent:
		return "event"
	case KindSchedule:
		return "schedule"
	case KindManual:
		return "manual"
	default:
		return "unknown"
	}
}

type Task interface {
	Kind() Kind
	// Stages the task applies to, every stage when empty.
	Stages() []types.Stage
	Execute(ctx context.Context) error
}

// Scheduled is implemented by schedule tasks.
type Scheduled interface {
	Interval() time.Duration
}

// Triggered is implemented by event tasks.
type Triggered interface {
	Events() []string
}

// Factory builds a task. A nil task opts out.
type Factory func(ctx context.Context) (Task, error)

// Base carries the trigger settings of a task. Embed it and implement
// Execute.
type Base struct {
	TaskKind     Kind
	TaskStages   []types.Stage
	TaskInterval time.Duration
	TaskEvents   []string
}

func (b Base) Kind() Kind              { return b.TaskKind }
func (b Base) Stages() []types.Stage   { return b.TaskStages }
func (b Base) Interval() time.Duration { return b.TaskInterval }
func (b Base) Events() []string        { return b.TaskEvents }

// AppliesTo reports whether a task runs in stage.
func AppliesTo(t Task, stage types.Stage) bool {
	stages := t.Stages()
	if len(stages) == 0 {
		return true
	}
	for _, s := range stages {
		if s == stage {
			return true
		}
	}
	return false
}

// Slug is the snake case name of the task's type, RestoreData becomes
// restore_data.
func Slug(t Task) string {
	typ := reflect.TypeOf(t)
	for typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}

	var b strings.Builder
	runes := []rune(typ.Name())
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteRune('_')
			}
			r = unicode.ToLower(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
