// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"github.com/hacs/hacs/types"
)

const defaultBranchFallback = "main"

// Host describes the versions of the running host application and of the
// manager itself.
type Host struct {
	HomeAssistant string
	Hacs          string
}

// CanInstall reports whether the host satisfies the repository's minimum
// version constraints.
func CanInstall(r *types.Repository, host Host) bool {
	if r.HomeAssistantMinVersion != nil && r.Releases {
		if !HigherOrEqual(host.HomeAssistant, r.HomeAssistantMinVersion) {
			return false
		}
	}
	if r.HacsMinVersion != nil {
		if !HigherOrEqual(host.Hacs, r.HacsMinVersion) {
			return false
		}
	}
	return true
}

// PendingUpdate reports whether an installed repository has something newer
// to install. Repositories pinned to their default branch are judged by
// commit drift only.
func PendingUpdate(r *types.Repository, host Host) bool {
	if !CanInstall(r, host) {
		return false
	}
	if !r.Installed {
		return false
	}
	if r.TracksDefaultBranch() {
		return r.InstalledCommit != r.LastCommit
	}

	available := r.DisplayAvailableVersion()
	installed := r.DisplayInstalledVersion()
	if r.DisplayVersionOrCommit() == types.DisplayModeVersion {
		// Falls through to the inequality when either side is not a version.
		if result, ok := compare(available, installed); ok {
			return result >= 0 && available != installed
		}
	}
	return installed != available
}

// DisplayStatus summarizes the repository state for listings.
func DisplayStatus(r *types.Repository, host Host) string {
	switch {
	case r.New:
		return "new"
	case r.PendingRestart:
		return "pending-restart"
	case PendingUpdate(r, host):
		return "pending-upgrade"
	case r.Installed:
		return "installed"
	default:
		return "default"
	}
}

// ToDownload selects the ref to install when the caller did not ask for a
// specific version. A forced ref always wins, a selected tag equal to the
// latest release is cleared.
func ToDownload(r *types.Repository) string {
	if r.ForceBranch && r.SelectedTag != "" {
		return r.SelectedTag
	}
	if r.LastVersion != "" {
		if r.SelectedTag != "" {
			if r.SelectedTag == r.LastVersion {
				r.SelectedTag = ""
				return r.LastVersion
			}
			return r.SelectedTag
		}
		return r.LastVersion
	}

	if r.SelectedTag != "" {
		if r.SelectedTag == r.DefaultBranch {
			return r.DefaultBranch
		}
		for _, tag := range r.PublishedTags {
			if tag == r.SelectedTag {
				return r.SelectedTag
			}
		}
	}

	if r.DefaultBranch != "" {
		return r.DefaultBranch
	}
	return defaultBranchFallback
}
