// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package check

import (
	"github.com/hacs/hacs/types"
)

var (
	_ Validator = &HacsJSON{}
	_ Validator = &Description{}
	_ Validator = &Information{}
	_ Validator = &Topics{}
	_ Validator = &Archived{}

	_ Gated = &HacsJSON{}
	_ Gated = &Information{}
	_ Gated = &Archived{}
)

const HacsManifestFile = "hacs.json"

// HacsJSON requires the hacs.json manifest at the repository root.
type HacsJSON struct{}

func (HacsJSON) Name() string     { return "hacs_json" }
func (HacsJSON) ActionOnly() bool { return true }

func (HacsJSON) Validate(r *types.Repository) error {
	if !r.HasFile(HacsManifestFile) {
		return Failf("The repository has no '%s' file", HacsManifestFile)
	}
	return nil
}

type Description struct{}

func (Description) Name() string { return "description" }

func (Description) Validate(r *types.Repository) error {
	if r.Description == "" {
		return Failf("The repository has no description")
	}
	return nil
}

// Information requires a human readable info file. Repositories rendering
// their readme may use it instead.
type Information struct{}

func (Information) Name() string     { return "information" }
func (Information) ActionOnly() bool { return true }

func (Information) Validate(r *types.Repository) error {
	candidates := []string{"info", "info.md"}
	if r.RenderReadme {
		candidates = append(candidates, "readme", "readme.md")
	}
	for _, candidate := range candidates {
		if r.HasFile(candidate) {
			return nil
		}
	}
	return Failf("The repository has no information file")
}

type Topics struct{}

func (Topics) Name() string { return "topics" }

func (Topics) Validate(r *types.Repository) error {
	if len(r.Topics) == 0 {
		return Failf("The repository has no topics")
	}
	return nil
}

type Archived struct{}

func (Archived) Name() string     { return "archived" }
func (Archived) ActionOnly() bool { return true }

func (Archived) Validate(r *types.Repository) error {
	if r.Archived {
		return Failf("The repository is archived")
	}
	return nil
}
