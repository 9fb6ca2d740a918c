// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package task

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// schedule re-runs a task every interval until its context ends. The first
// run happens one interval after start.
type schedule struct {
	slug     string
	task     Task
	interval time.Duration
	run      func(ctx context.Context, slug string, t Task) error
	logger   *zap.Logger
}

func (s *schedule) start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info("schedule armed", zap.String("task", s.slug), zap.Duration("interval", s.interval))
	for {
		select {
		case <-ticker.C:
			// failures are logged by run, the schedule stays armed
			_ = s.run(ctx, s.slug, s.task)
		case <-ctx.Done():
			s.logger.Debug("schedule stopped", zap.String("task", s.slug))
			return
		}
	}
}
