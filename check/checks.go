// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package check

import "github.com/hacs/hacs/types"

// Common applies to every category.
func Common() []Check {
	return []Check{
		HacsJSON{},
		Description{},
		Information{},
		Topics{},
		Archived{},
	}
}

// ForCategory returns the checks specific to one category.
func ForCategory(category types.Category) []Check {
	switch category {
	case types.Integration:
		return []Check{IntegrationManifest{}}
	case types.Plugin:
		return []Check{PluginJavaScript{}}
	case types.Theme:
		return []Check{ThemeYAML{}}
	case types.PythonScript:
		return []Check{PythonScript{}}
	case types.AppDaemon:
		return []Check{AppDaemonApp{}}
	default:
		return nil
	}
}

// For returns the common checks followed by the category checks.
func For(category types.Category) []Check {
	return append(Common(), ForCategory(category)...)
}
