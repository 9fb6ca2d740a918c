// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRemovals(t *testing.T) {
	removals, err := ParseRemovals([]byte(`[
		{"repository": "owner/old", "reason": "archived", "link": "https://example.com", "removal_type": "remove"},
		{"reason": "no repository"},
		{"repository": "owner/bad", "reason": "malware", "removal_type": "critical"}
	]`))
	assert.NoError(t, err)
	assert.Equal(t, []Removal{
		{Repository: "owner/old", Reason: "archived", Link: "https://example.com", RemovalType: "remove"},
		{Repository: "owner/bad", Reason: "malware", RemovalType: RemovalCritical},
	}, removals)
	assert.False(t, removals[0].Critical())
	assert.True(t, removals[1].Critical())

	_, err = ParseRemovals([]byte(`{"repository": "owner/old"}`))
	assert.Error(t, err)
}
