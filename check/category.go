// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package check

import (
	"path"
	"strings"

	"github.com/hacs/hacs/types"
)

var (
	_ Validator = &IntegrationManifest{}
	_ Validator = &PluginJavaScript{}
	_ Validator = &ThemeYAML{}
	_ Validator = &PythonScript{}
	_ Validator = &AppDaemonApp{}
)

const IntegrationManifestFile = "manifest.json"

// IntegrationManifest requires the integration's own manifest.json.
type IntegrationManifest struct{}

func (IntegrationManifest) Name() string { return "integration_manifest" }

func (IntegrationManifest) Validate(r *types.Repository) error {
	if r.ContentInRoot {
		if r.HasFile(IntegrationManifestFile) {
			return nil
		}
		return Failf("The repository has no '%s' file", IntegrationManifestFile)
	}

	dir := r.IntegrationDirectory()
	if dir == "" {
		return Failf("The repository has no integration directory in 'custom_components'")
	}
	if !r.HasFile(path.Join(dir, IntegrationManifestFile)) {
		return Failf("The repository has no '%s' file", path.Join(dir, IntegrationManifestFile))
	}
	return nil
}

// PluginJavaScript requires a .js file in dist/ or the repository root.
type PluginJavaScript struct{}

func (PluginJavaScript) Name() string { return "plugin_javascript" }

func (PluginJavaScript) Validate(r *types.Repository) error {
	dirs := []string{"dist", ""}
	if r.ContentInRoot {
		dirs = []string{""}
	}
	if !hasFileWithSuffix(r, dirs, ".js") {
		return Failf("The repository has no '.js' file in %s", describe(dirs))
	}
	return nil
}

type ThemeYAML struct{}

func (ThemeYAML) Name() string { return "theme_yaml" }

func (ThemeYAML) Validate(r *types.Repository) error {
	dirs := []string{"themes"}
	if r.ContentInRoot {
		dirs = []string{""}
	}
	if !hasFileWithSuffix(r, dirs, ".yaml") {
		return Failf("The repository has no '.yaml' file in %s", describe(dirs))
	}
	return nil
}

type PythonScript struct{}

func (PythonScript) Name() string { return "python_script_file" }

func (PythonScript) Validate(r *types.Repository) error {
	dirs := []string{"python_scripts"}
	if r.ContentInRoot {
		dirs = []string{""}
	}
	if !hasFileWithSuffix(r, dirs, ".py") {
		return Failf("The repository has no '.py' file in %s", describe(dirs))
	}
	return nil
}

type AppDaemonApp struct{}

func (AppDaemonApp) Name() string { return "appdaemon_app" }

func (AppDaemonApp) Validate(r *types.Repository) error {
	for _, file := range r.Tree {
		if file.IsDirectory() && file.Dir() == "apps" {
			return nil
		}
	}
	return Failf("The repository has no app directory in 'apps'")
}

func hasFileWithSuffix(r *types.Repository, dirs []string, suffix string) bool {
	for _, file := range r.Tree {
		if file.IsDirectory() || !strings.HasSuffix(strings.ToLower(file.Filename), suffix) {
			continue
		}
		for _, dir := range dirs {
			if file.Dir() == dir {
				return true
			}
		}
	}
	return false
}

func describe(dirs []string) string {
	quoted := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		if dir == "" {
			dir = "the root"
		} else {
			dir = "'" + dir + "'"
		}
		quoted = append(quoted, dir)
	}
	return strings.Join(quoted, " or ")
}
