// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Credential authenticates against the GitHub API and, through the git
// transport, against private remotes.
type Credential struct {
	Username string `yaml:"username"`
	Token    string `yaml:"token"`
}

// ReadCredential decodes a yaml credentials file. An empty path yields the
// zero value, which is safe to use for anonymous access.
func ReadCredential(fs afero.Fs, path string) (Credential, error) {
	result := Credential{}
	if path == "" {
		return result, nil
	}

	bytes, err := afero.ReadFile(fs, path)
	if err != nil {
		return result, fmt.Errorf("failed to read credentials: %w", err)
	}
	if err := yaml.Unmarshal(bytes, &result); err != nil {
		return result, fmt.Errorf("failed to parse credentials: %w", err)
	}
	return result, nil
}
