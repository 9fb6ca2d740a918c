// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"errors"
	"fmt"
	"path"
	"strings"
)

// ErrInvalidName is returned for names that would resolve outside the
// directory they are joined to.
var ErrInvalidName = errors.New("invalid name")

// ValidName accepts a single path element.
func ValidName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%q: %w", name, ErrInvalidName)
	case strings.ContainsAny(name, "/\\\x00"):
		return fmt.Errorf("%q contains a path separator: %w", name, ErrInvalidName)
	}
	return nil
}

// ValidRelativePath accepts a relative path that never climbs above its root.
func ValidRelativePath(p string) error {
	if p == "" || path.IsAbs(p) || strings.HasPrefix(p, "\\") || strings.ContainsAny(p, ":\x00") {
		return fmt.Errorf("%q: %w", p, ErrInvalidName)
	}
	for _, elem := range strings.FieldsFunc(p, func(r rune) bool { return r == '/' || r == '\\' }) {
		if elem == ".." {
			return fmt.Errorf("%q leaves its directory: %w", p, ErrInvalidName)
		}
	}
	return nil
}
