// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/hacs/hacs/constant"
)

var commitPattern = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

// IsCommit reports whether ref is a full commit SHA.
func IsCommit(ref string) bool {
	return commitPattern.MatchString(ref)
}

// Site is the web root repositories are cloned and downloaded from,
// constant.GitHubURL when empty.
type Site string

func (s Site) base() string {
	if s == "" {
		return constant.GitHubURL
	}
	return strings.TrimSuffix(string(s), "/")
}

// CloneURL is the git remote of a repository.
func (s Site) CloneURL(fullName string) string {
	return fmt.Sprintf("%s/%s.git", s.base(), fullName)
}

// ReleaseAssetURL is the download location of an asset attached to a release.
func (s Site) ReleaseAssetURL(fullName, version, filename string) string {
	return fmt.Sprintf("%s/%s/releases/download/%s/%s", s.base(), fullName, version, filename)
}

// ArchiveURL is the source archive of a ref. Branches and tags are addressed
// through refs/heads and refs/tags, commits directly.
func (s Site) ArchiveURL(fullName, ref string, branch bool) string {
	if IsCommit(ref) {
		return fmt.Sprintf("%s/%s/archive/%s.zip", s.base(), fullName, ref)
	}
	variant := "tags"
	if branch {
		variant = "heads"
	}
	return fmt.Sprintf("%s/%s/archive/refs/%s/%s.zip", s.base(), fullName, variant, ref)
}

// SiteFor derives the web root from an API endpoint. GitHub Enterprise
// serves its API below /api/v3 of the web root, anything else maps to the
// public site.
func SiteFor(apiURL string) Site {
	trimmed := strings.TrimSuffix(apiURL, "/")
	if strings.HasSuffix(trimmed, "/api/v3") {
		return Site(strings.TrimSuffix(trimmed, "/api/v3"))
	}
	return ""
}
