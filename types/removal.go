// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// RemovalCritical marks content that must be uninstalled right away.
const RemovalCritical = "critical"

// Removal is an entry of the removed or critical list published in the data
// repository.
type Removal struct {
	Repository  string `json:"repository" yaml:"repository"`
	Reason      string `json:"reason" yaml:"reason"`
	Link        string `json:"link" yaml:"link"`
	RemovalType string `json:"removal_type" yaml:"removalType"`
}

func (r Removal) Critical() bool {
	return r.RemovalType == RemovalCritical
}

// ParseRemovals reads a removed or critical list. Entries without a
// repository are dropped.
func ParseRemovals(b []byte) ([]Removal, error) {
	var entries []Removal
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("invalid removal list: %w", err)
	}
	removals := entries[:0]
	for _, entry := range entries {
		if entry.Repository != "" {
			removals = append(removals, entry)
		}
	}
	return removals, nil
}

// RateLimit is the remaining request quota of the hosting service's API.
type RateLimit struct {
	Limit     int
	Remaining int
	Reset     time.Time
}
