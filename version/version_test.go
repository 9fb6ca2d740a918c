// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHigherOrEqual(t *testing.T) {
	tests := []struct {
		name  string
		left  any
		right any
		want  bool
	}{
		{name: "equal strings", left: "1.0.0", right: "1.0.0", want: true},
		{name: "equal unparseable strings", left: "main", right: "main", want: true},
		{name: "release over beta", left: "1.0.0", right: "1.0.0b1", want: true},
		{name: "beta under release", left: "1.0.0b1", right: "1.0.0", want: false},
		{name: "rc over beta", left: "1.0.0rc1", right: "1.0.0b1", want: true},
		{name: "patch bump", left: "1.0.1", right: "1.0.0", want: true},
		{name: "older", left: "0.9.9", right: "1.0.0", want: false},
		{name: "v prefix", left: "v2.0.0", right: "1.9.0", want: true},
		{name: "nil left", left: nil, right: "1.0.0", want: false},
		{name: "nil right", left: "1.0.0", right: nil, want: false},
		{name: "float left", left: 1.0, right: "1.0.0rc0", want: false},
		{name: "int right", left: "2021.12.0", right: 2021, want: false},
		{name: "garbage", left: "not a version", right: "1.0.0", want: false},
		{name: "commit", left: "0123456789abcdef0123456789abcdef01234567", right: "1.0.0", want: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, HigherOrEqual(test.left, test.right))
		})
	}
}

func TestHigher(t *testing.T) {
	assert.False(t, Higher("1.0.0", "1.0.0"))
	assert.True(t, Higher("1.0.1", "1.0.0"))
	assert.False(t, Higher(nil, "1.0.0"))
}

func TestSite_ArchiveURL(t *testing.T) {
	tests := []struct {
		name   string
		site   Site
		ref    string
		branch bool
		want   string
	}{
		{
			name:   "branch",
			ref:    "main",
			branch: true,
			want:   "https://github.com/owner/repo/archive/refs/heads/main.zip",
		},
		{
			name: "tag",
			ref:  "1.2.3",
			want: "https://github.com/owner/repo/archive/refs/tags/1.2.3.zip",
		},
		{
			name:   "commit",
			ref:    "0123456789abcdef0123456789abcdef01234567",
			branch: true,
			want:   "https://github.com/owner/repo/archive/0123456789abcdef0123456789abcdef01234567.zip",
		},
		{
			name: "enterprise tag",
			site: "https://git.example.com/",
			ref:  "1.2.3",
			want: "https://git.example.com/owner/repo/archive/refs/tags/1.2.3.zip",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.want, test.site.ArchiveURL("owner/repo", test.ref, test.branch))
		})
	}
}

func TestSite_ReleaseAssetURL(t *testing.T) {
	assert.Equal(
		t,
		"https://github.com/owner/repo/releases/download/1.0.0/card.js",
		Site("").ReleaseAssetURL("owner/repo", "1.0.0", "card.js"),
	)
	assert.Equal(
		t,
		"https://git.example.com/owner/repo/releases/download/1.0.0/card.js",
		Site("https://git.example.com").ReleaseAssetURL("owner/repo", "1.0.0", "card.js"),
	)
}

func TestSite_CloneURL(t *testing.T) {
	assert.Equal(t, "https://github.com/owner/repo.git", Site("").CloneURL("owner/repo"))
	assert.Equal(t, "https://git.example.com/owner/repo.git", Site("https://git.example.com/").CloneURL("owner/repo"))
}

func TestSiteFor(t *testing.T) {
	assert.Equal(t, Site(""), SiteFor(""))
	assert.Equal(t, Site(""), SiteFor("https://api.github.com/"))
	assert.Equal(t, Site("https://git.example.com"), SiteFor("https://git.example.com/api/v3/"))
}
