// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import "fmt"

// Category is the kind of content a repository provides.
type Category string

const (
	AppDaemon    Category = "appdaemon"
	Integration  Category = "integration"
	NetDaemon    Category = "netdaemon"
	Plugin       Category = "plugin"
	PythonScript Category = "python_script"
	Template     Category = "template"
	Theme        Category = "theme"
)

var categories = []Category{
	AppDaemon,
	Integration,
	NetDaemon,
	Plugin,
	PythonScript,
	Template,
	Theme,
}

func Categories() []Category {
	return append([]Category(nil), categories...)
}

func ParseCategory(s string) (Category, error) {
	for _, c := range categories {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("%q is not a valid category", s)
}
