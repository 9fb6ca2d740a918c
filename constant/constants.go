// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package constant

import "time"

const (
	AppName = "hacs"
	// Version is the manager's own version, compared against the
	// minimum a repository's hacs.json asks for.
	Version = "2.0.0"

	// IntegrationFullName is the repository of the manager itself.
	IntegrationFullName = "hacs/integration"

	// MaxConcurrentRequests bounds the in-flight network operations across
	// the whole process.
	MaxConcurrentRequests = 15
	// RequestDelay is held after every batched operation before its slot is
	// released.
	RequestDelay = 5 * time.Second

	// MaxBlockingIO bounds concurrent local file system work.
	MaxBlockingIO = 10

	RepositoryTopic = "hacs/repository"
	StageTopic      = "hacs/stage"

	GitHubURL = "https://github.com"

	// DataRepository publishes the removed and critical lists.
	DataRepository    = "hacs/default"
	DataRepositoryRef = "master"
	RemovedFile       = "removed"
	CriticalFile      = "critical"
)

// DefaultRepositories are registered at startup unless already tracked.
var DefaultRepositories = map[string]string{
	IntegrationFullName: "integration",
}
