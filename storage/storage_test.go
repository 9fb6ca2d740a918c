package storage

import (
	"testing"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/memdb"
	"github.com/stretchr/testify/assert"

	"github.com/hacs/hacs/types"
)

func TestStorage_PutGet(t *testing.T) {
	db := memdb.New()
	repositories := NewRepositories(db)

	repository := types.Repository{
		ID:            1296269,
		FullName:      "hacs/integration",
		DefaultBranch: "main",
		Category:      types.Integration,
		Installed:     true,
		Topics:        []string{"hacs"},
		// not persisted
		Tree: []types.TreeFile{{Filename: "hacs.json", Type: types.TreeTypeBlob}},
	}

	key := []byte("1296269")
	assert.NoError(t, repositories.Put(key, repository))

	ok, err := repositories.Has(key)
	assert.NoError(t, err)
	assert.True(t, ok)

	got, err := repositories.Get(key)
	assert.NoError(t, err)
	assert.Equal(t, repository.FullName, got.FullName)
	assert.Equal(t, repository.Topics, got.Topics)
	assert.True(t, got.Installed)
	assert.Empty(t, got.Tree)
}

func TestStorage_GetMissing(t *testing.T) {
	repositories := NewRepositories(memdb.New())

	_, err := repositories.Get([]byte("missing"))
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestStorage_Delete(t *testing.T) {
	repositories := NewRepositories(memdb.New())
	key := []byte("1")

	assert.NoError(t, repositories.Put(key, types.Repository{ID: 1}))
	assert.NoError(t, repositories.Delete(key))

	ok, err := repositories.Has(key)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestStorage_PrefixIsolation(t *testing.T) {
	db := memdb.New()
	repositories := NewRepositories(db)
	runs := NewTaskRuns(db)

	assert.NoError(t, repositories.Put([]byte("a"), types.Repository{ID: 1}))
	assert.NoError(t, runs.Put([]byte("a"), TaskRun{Slug: "a"}))

	all, err := repositories.Iterator().All()
	assert.NoError(t, err)
	assert.Len(t, all, 1)

	allRuns, err := runs.Iterator().All()
	assert.NoError(t, err)
	assert.Equal(t, []TaskRun{{Slug: "a"}}, allRuns)
}
