// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/json"
	"fmt"
)

// HacsManifest is the content of a repository's hacs.json.
//
// Homeassistant and Hacs are kept untyped, manifests in the wild sometimes
// carry numbers instead of version strings.
type HacsManifest struct {
	Name                string `json:"name"`
	ContentInRoot       bool   `json:"content_in_root"`
	Filename            string `json:"filename"`
	RenderReadme        bool   `json:"render_readme"`
	ZipRelease          bool   `json:"zip_release"`
	HideDefaultBranch   bool   `json:"hide_default_branch"`
	PersistentDirectory string `json:"persistent_directory"`
	Homeassistant       any    `json:"homeassistant"`
	Hacs                any    `json:"hacs"`
	Country             any    `json:"country"`
}

func ParseHacsManifest(b []byte) (HacsManifest, error) {
	manifest := HacsManifest{}
	if err := json.Unmarshal(b, &manifest); err != nil {
		return HacsManifest{}, fmt.Errorf("invalid hacs.json: %w", err)
	}
	if manifest.Filename != "" {
		if err := ValidName(manifest.Filename); err != nil {
			return HacsManifest{}, fmt.Errorf("invalid hacs.json filename: %w", err)
		}
	}
	if manifest.PersistentDirectory != "" {
		if err := ValidRelativePath(manifest.PersistentDirectory); err != nil {
			return HacsManifest{}, fmt.Errorf("invalid hacs.json persistent_directory: %w", err)
		}
	}
	return manifest, nil
}

// Apply copies the manifest settings onto the repository.
func (m HacsManifest) Apply(r *Repository) {
	r.ContentInRoot = m.ContentInRoot
	r.RenderReadme = m.RenderReadme
	r.ZipRelease = m.ZipRelease
	r.HideDefaultBranch = m.HideDefaultBranch
	r.PersistentDirectory = m.PersistentDirectory
	r.HomeAssistantMinVersion = m.Homeassistant
	r.HacsMinVersion = m.Hacs
	if m.Filename != "" {
		r.FileName = m.Filename
	}
	if m.Name != "" {
		r.DisplayName = m.Name
	}
}

// IntegrationManifest is the subset of an integration's manifest.json we read.
type IntegrationManifest struct {
	Domain     string   `json:"domain"`
	Name       string   `json:"name"`
	Version    string   `json:"version"`
	Codeowners []string `json:"codeowners"`
	ConfigFlow bool     `json:"config_flow"`
}

func ParseIntegrationManifest(b []byte) (IntegrationManifest, error) {
	manifest := IntegrationManifest{}
	if err := json.Unmarshal(b, &manifest); err != nil {
		return IntegrationManifest{}, fmt.Errorf("invalid manifest.json: %w", err)
	}
	if manifest.Domain == "" {
		return IntegrationManifest{}, fmt.Errorf("manifest.json is missing the domain key")
	}
	if err := ValidName(manifest.Domain); err != nil {
		return IntegrationManifest{}, fmt.Errorf("invalid manifest.json domain: %w", err)
	}
	return manifest, nil
}
