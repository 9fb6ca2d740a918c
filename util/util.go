// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package util

import (
	"fmt"
	"strings"
)

const fullNameDelimiter = "/"

// ParseFullName splits an owner/name repository reference.
func ParseFullName(fullName string) (owner string, name string, err error) {
	parsed := strings.Split(fullName, fullNameDelimiter)
	if len(parsed) != 2 || parsed[0] == "" || parsed[1] == "" {
		return "", "", fmt.Errorf("%q is not a valid repository (must be in the form of owner/name)", fullName)
	}
	return parsed[0], parsed[1], nil
}

// NormalizeFullName accepts a bare owner/name or a GitHub URL and returns
// owner/name.
func NormalizeFullName(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "/")
	s = strings.TrimSuffix(s, ".git")
	for _, prefix := range []string{"https://github.com/", "http://github.com/", "github.com/"} {
		if strings.HasPrefix(s, prefix) {
			return strings.TrimPrefix(s, prefix)
		}
	}
	return s
}
