// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/prefixdb"
	"gopkg.in/yaml.v3"

	"github.com/hacs/hacs/types"
)

var (
	repositoryPrefix = []byte("repository")
	taskPrefix       = []byte("task")

	_ Storage[any] = &storage[any]{}
)

// Storage is a typed key/value view over a database. Values are yaml encoded.
type Storage[V any] interface {
	Has([]byte) (bool, error)
	Put([]byte, V) error
	Get([]byte) (V, error)
	Delete([]byte) error
	Iterator() *Iterator[V]
}

// TaskRun records the last completion of a scheduled task.
type TaskRun struct {
	Slug     string `yaml:"slug"`
	LastRun  int64  `yaml:"lastRun"`
	Failures int    `yaml:"failures"`
}

func New[V any](prefix []byte, db database.Database) Storage[V] {
	return &storage[V]{
		db: prefixdb.New(prefix, db),
	}
}

func NewRepositories(db database.Database) Storage[types.Repository] {
	return New[types.Repository](repositoryPrefix, db)
}

func NewTaskRuns(db database.Database) Storage[TaskRun] {
	return New[TaskRun](taskPrefix, db)
}

type storage[V any] struct {
	db database.Database
}

func (c *storage[V]) Has(key []byte) (bool, error) {
	return c.db.Has(key)
}

func (c *storage[V]) Put(key []byte, value V) error {
	valueBytes, err := yaml.Marshal(value)
	if err != nil {
		return err
	}
	return c.db.Put(key, valueBytes)
}

func (c *storage[V]) Get(key []byte) (V, error) {
	value := new(V)
	valueBytes, err := c.db.Get(key)
	if err != nil {
		return *value, err
	}

	if err := yaml.Unmarshal(valueBytes, value); err != nil {
		return *value, err
	}

	return *value, nil
}

func (c *storage[V]) Delete(key []byte) error {
	return c.db.Delete(key)
}

func (c *storage[V]) Iterator() *Iterator[V] {
	return NewIterator[V](c.db.NewIterator())
}
