// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package tasks

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/types"
)

const (
	// maxQuotaReserve is the most of the API quota a sweep leaves to
	// installs and manual requests. Smaller quotas keep a fifth.
	maxQuotaReserve = 1000
	// requestsPerRepository is what refreshing one repository costs.
	requestsPerRepository = 10
)

// budget is how many repositories the remaining API quota can refresh, -1
// when the service does not limit requests.
func budget(ctx context.Context, deps Deps) (int, error) {
	limit, err := deps.Client.RateLimit(ctx)
	if errors.Is(err, client.ErrNotFound) {
		return -1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("checking rate limit: %w", err)
	}

	reserve := limit.Limit / 5
	if reserve > maxQuotaReserve {
		reserve = maxQuotaReserve
	}
	n := (limit.Remaining - reserve) / requestsPerRepository
	if n <= 0 {
		deps.logger().Info("rate limited",
			zap.Int("remaining", limit.Remaining),
			zap.Time("reset", limit.Reset),
		)
		return 0, nil
	}
	return n, nil
}

// withinBudget keeps as many of repositories as the quota allows, least
// recently fetched first.
func withinBudget(ctx context.Context, deps Deps, repositories []*types.Repository) ([]*types.Repository, error) {
	n, err := budget(ctx, deps)
	if err != nil {
		return nil, err
	}
	if n < 0 || n >= len(repositories) {
		return repositories, nil
	}

	sorted := append([]*types.Repository(nil), repositories...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LastFetched.Before(sorted[j].LastFetched)
	})
	deps.logger().Info("sweep capped by rate limit",
		zap.Int("repositories", len(repositories)),
		zap.Int("budget", n),
	)
	return sorted[:n], nil
}
