// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package engine

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hacs/hacs/metrics"
	"github.com/hacs/hacs/workflow"
)

var _ workflow.Executor = &WorkflowEngine{}

func NewWorkflowEngine(logger *zap.Logger) *WorkflowEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WorkflowEngine{logger: logger}
}

// WorkflowEngine runs workflows, logging and timing each one.
type WorkflowEngine struct {
	logger *zap.Logger
}

func (w WorkflowEngine) Execute(ctx context.Context, wf workflow.Workflow) error {
	start := time.Now()
	err := wf.Execute(ctx)
	elapsed := time.Since(start)

	metrics.WorkflowDuration.WithLabelValues(wf.Name()).Observe(elapsed.Seconds())
	metrics.WorkflowsTotal.WithLabelValues(wf.Name(), metrics.Outcome(err)).Inc()

	if err != nil {
		w.logger.Error("workflow failed",
			zap.String("workflow", wf.Name()),
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		return err
	}
	w.logger.Debug("workflow done",
		zap.String("workflow", wf.Name()),
		zap.Duration("elapsed", elapsed),
	)
	return nil
}
