// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"fmt"
	"path"
	"strings"
	"time"
)

const (
	DisplayModeVersion = "version"
	DisplayModeCommit  = "commit"

	TreeTypeBlob = "blob"
	TreeTypeTree = "tree"
)

// TreeFile is one entry of a repository's file tree at a given ref.
type TreeFile struct {
	Filename string `yaml:"filename" json:"filename"`
	Type     string `yaml:"type" json:"type"`
}

func (t TreeFile) IsDirectory() bool {
	return t.Type == TreeTypeTree
}

// Dir is the directory holding the entry, "" for the repository root.
func (t TreeFile) Dir() string {
	dir := path.Dir(t.Filename)
	if dir == "." {
		return ""
	}
	return dir
}

// Name is the last element of the entry's path.
func (t TreeFile) Name() string {
	return path.Base(t.Filename)
}

type Asset struct {
	Name          string `yaml:"name"`
	DownloadURL   string `yaml:"downloadUrl"`
	DownloadCount int    `yaml:"downloadCount"`
}

type Release struct {
	Tag        string  `yaml:"tag"`
	Prerelease bool    `yaml:"prerelease"`
	Assets     []Asset `yaml:"assets"`
}

// Metadata is what the network client knows about a repository.
type Metadata struct {
	ID            int64
	FullName      string
	Description   string
	Topics        []string
	DefaultBranch string
	PushedAt      time.Time
	Archived      bool
	Fork          bool
	Stars         int
}

// Repository is a tracked, installable content package.
type Repository struct {
	ID            int64     `yaml:"id"`
	FullName      string    `yaml:"fullName"`
	Description   string    `yaml:"description"`
	Topics        []string  `yaml:"topics"`
	DefaultBranch string    `yaml:"defaultBranch"`
	PushedAt      time.Time `yaml:"pushedAt"`
	Archived      bool      `yaml:"archived"`
	Fork          bool      `yaml:"fork"`
	Stars         int       `yaml:"stars"`

	// Tree is refreshed before every check run and is not persisted.
	Tree []TreeFile `yaml:"-"`

	Installed        bool     `yaml:"installed"`
	InstalledCommit  string   `yaml:"installedCommit"`
	InstalledVersion string   `yaml:"installedVersion"`
	LastCommit       string   `yaml:"lastCommit"`
	LastVersion      string   `yaml:"lastVersion"`
	Prerelease       string   `yaml:"prerelease"`
	ShowBeta         bool     `yaml:"showBeta"`
	SelectedTag      string   `yaml:"selectedTag"`
	ForceBranch      bool     `yaml:"-"`
	Releases         bool     `yaml:"releases"`
	PublishedTags    []string `yaml:"publishedTags"`
	Downloads        int      `yaml:"downloads"`
	New              bool     `yaml:"new"`
	PendingRestart   bool     `yaml:"-"`
	FirstInstall     bool     `yaml:"-"`
	Hide             bool     `yaml:"hide"`

	Category                Category `yaml:"category"`
	DisplayName             string   `yaml:"displayName"`
	Domain                  string   `yaml:"domain"`
	ManifestName            string   `yaml:"manifestName"`
	Authors                 []string `yaml:"authors"`
	ConfigFlow              bool     `yaml:"configFlow"`
	HomeAssistantMinVersion any      `yaml:"homeassistantMinVersion"`
	HacsMinVersion          any      `yaml:"hacsMinVersion"`
	RenderReadme            bool     `yaml:"renderReadme"`
	ContentInRoot           bool     `yaml:"contentInRoot"`
	ZipRelease              bool     `yaml:"zipRelease"`
	HideDefaultBranch       bool     `yaml:"hideDefaultBranch"`
	PersistentDirectory     string   `yaml:"persistentDirectory"`
	FileName                string   `yaml:"fileName"`

	// ContentPath is the directory inside the repository holding the
	// installable content, "" for the root and "release" for a single
	// release asset.
	ContentPath string `yaml:"contentPath"`

	LastFetched time.Time `yaml:"lastFetched"`
}

// NewRepository returns an unregistered repository of the given category.
func NewRepository(fullName string, category Category) *Repository {
	return &Repository{
		FullName: fullName,
		Category: category,
		New:      true,
	}
}

func (r *Repository) String() string {
	return fmt.Sprintf("<%s %s>", r.Category, r.FullName)
}

// Name is the short name of the repository, the domain for integrations.
func (r *Repository) Name() string {
	if r.Category == Integration && r.Domain != "" {
		return r.Domain
	}
	parts := strings.Split(r.FullName, "/")
	return parts[len(parts)-1]
}

// Owner is the account part of the full name.
func (r *Repository) Owner() string {
	owner, _, _ := strings.Cut(r.FullName, "/")
	return owner
}

// ApplyMetadata copies freshly fetched metadata onto the repository.
func (r *Repository) ApplyMetadata(m Metadata) {
	if m.ID != 0 {
		r.ID = m.ID
	}
	if m.FullName != "" {
		r.FullName = m.FullName
	}
	r.Description = m.Description
	r.Topics = append([]string(nil), m.Topics...)
	r.DefaultBranch = m.DefaultBranch
	r.PushedAt = m.PushedAt
	r.Archived = m.Archived
	r.Fork = m.Fork
	r.Stars = m.Stars
}

// Filenames returns the full path of every tree entry.
func (r *Repository) Filenames() []string {
	names := make([]string, 0, len(r.Tree))
	for _, file := range r.Tree {
		names = append(names, file.Filename)
	}
	return names
}

// HasFile reports whether the tree contains the given path, ignoring case.
func (r *Repository) HasFile(filename string) bool {
	for _, file := range r.Tree {
		if strings.EqualFold(file.Filename, filename) {
			return true
		}
	}
	return false
}

// DisplayVersionOrCommit is "version" when the repository publishes releases.
func (r *Repository) DisplayVersionOrCommit() string {
	if r.Releases {
		return DisplayModeVersion
	}
	return DisplayModeCommit
}

func (r *Repository) DisplayInstalledVersion() string {
	if r.InstalledVersion != "" {
		return r.InstalledVersion
	}
	return r.InstalledCommit
}

func (r *Repository) DisplayAvailableVersion() string {
	if r.ShowBeta && r.Prerelease != "" {
		return r.Prerelease
	}
	if r.LastVersion != "" {
		return r.LastVersion
	}
	return r.LastCommit
}

// TracksDefaultBranch is true when the installation is pinned to the
// default branch and follows its head.
func (r *Repository) TracksDefaultBranch() bool {
	return r.SelectedTag != "" && r.SelectedTag == r.DefaultBranch
}

// IntegrationDirectory is the first directory below custom_components, ""
// when there is none.
func (r *Repository) IntegrationDirectory() string {
	for _, file := range r.Tree {
		if file.IsDirectory() && file.Dir() == "custom_components" {
			return file.Filename
		}
	}
	for _, file := range r.Tree {
		if parts := strings.Split(file.Filename, "/"); len(parts) > 2 && parts[0] == "custom_components" {
			return path.Join(parts[0], parts[1])
		}
	}
	return ""
}
