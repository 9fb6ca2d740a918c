// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"testing"

	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"github.com/stretchr/testify/assert"
)

func TestIterator_All(t *testing.T) {
	db := memdb.New()
	runs := NewTaskRuns(db)

	assert.NoError(t, runs.Put([]byte("b"), TaskRun{Slug: "b", LastRun: 2}))
	assert.NoError(t, runs.Put([]byte("a"), TaskRun{Slug: "a", LastRun: 1, Failures: 3}))

	all, err := runs.Iterator().All()
	assert.NoError(t, err)
	assert.Equal(t, []TaskRun{
		{Slug: "a", LastRun: 1, Failures: 3},
		{Slug: "b", LastRun: 2},
	}, all)
}

func TestIterator_Empty(t *testing.T) {
	all, err := NewTaskRuns(memdb.New()).Iterator().All()
	assert.NoError(t, err)
	assert.Empty(t, all)
}

func TestIterator_KeyValue(t *testing.T) {
	db := memdb.New()
	runs := NewTaskRuns(db)
	assert.NoError(t, runs.Put([]byte("restore_data"), TaskRun{Slug: "restore_data"}))

	itr := runs.Iterator()
	defer itr.Release()

	assert.True(t, itr.Next())
	assert.Equal(t, []byte("restore_data"), itr.Key())
	value, err := itr.Value()
	assert.NoError(t, err)
	assert.Equal(t, "restore_data", value.Slug)
	assert.False(t, itr.Next())
	assert.NoError(t, itr.Error())
}

func TestIterator_DecodeError(t *testing.T) {
	db := memdb.New()
	runs := NewTaskRuns(db)
	assert.NoError(t, runs.Put([]byte("ok"), TaskRun{Slug: "ok"}))
	assert.NoError(t, prefixdb.New(taskPrefix, db).Put([]byte("broken"), []byte("slug: [")))

	_, err := runs.Iterator().All()
	assert.Error(t, err)
}
