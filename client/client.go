// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package client

import (
	"context"
	"errors"

	"github.com/hacs/hacs/types"
)

// ErrNotFound is returned when the requested repository, ref or file does
// not exist upstream.
var ErrNotFound = errors.New("not found")

// Client reads repository data from the hosting service.
type Client interface {
	FetchMetadata(ctx context.Context, fullName string) (types.Metadata, error)
	// FetchTree lists every file and directory at ref, recursively.
	FetchTree(ctx context.Context, fullName string, ref string) ([]types.TreeFile, error)
	// FetchReleases returns published releases, newest first.
	FetchReleases(ctx context.Context, fullName string) ([]types.Release, error)
	FetchFile(ctx context.Context, fullName string, ref string, path string) ([]byte, error)
	// LastCommit resolves the head commit of a branch.
	LastCommit(ctx context.Context, fullName string, branch string) (string, error)
	// RateLimit reports the remaining API quota. ErrNotFound means the
	// service does not limit requests.
	RateLimit(ctx context.Context) (types.RateLimit, error)
}
