// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package version

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Coerce parses a version string such as "1.2.3", "v1.2.3", "1.0.0b1" or
// "1.0.0-rc.1". Anything that is not a string is rejected.
func Coerce(v any) (*goversion.Version, bool) {
	s, ok := v.(string)
	if !ok {
		return nil, false
	}
	s = strings.TrimSpace(s)
	if s == "" || IsCommit(s) {
		return nil, false
	}
	parsed, err := goversion.NewVersion(s)
	if err != nil {
		return nil, false
	}
	return parsed, true
}

// compare returns the ordering of left against right and false when either
// side could not be coerced.
func compare(left, right any) (int, bool) {
	l, ok := Coerce(left)
	if !ok {
		return 0, false
	}
	r, ok := Coerce(right)
	if !ok {
		return 0, false
	}
	return l.Compare(r), true
}

// HigherOrEqual reports whether left is newer than or the same as right.
// Identical strings are always equal, unparseable input is never newer.
func HigherOrEqual(left, right any) bool {
	if l, ok := left.(string); ok {
		if r, ok := right.(string); ok && l == r {
			return true
		}
	}
	result, ok := compare(left, right)
	return ok && result >= 0
}

// Higher reports whether left is strictly newer than right.
func Higher(left, right any) bool {
	result, ok := compare(left, right)
	return ok && result > 0
}
