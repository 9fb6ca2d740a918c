// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package storage

import (
	"fmt"

	"github.com/ava-labs/avalanchego/database"
	"gopkg.in/yaml.v3"
)

func NewIterator[V any](itr database.Iterator) *Iterator[V] {
	return &Iterator[V]{itr: itr}
}

// Iterator walks a database in key order and decodes each value as V.
type Iterator[V any] struct {
	itr database.Iterator
}

func (i *Iterator[V]) Next() bool   { return i.itr.Next() }
func (i *Iterator[V]) Error() error { return i.itr.Error() }
func (i *Iterator[V]) Key() []byte  { return i.itr.Key() }
func (i *Iterator[V]) Release()     { i.itr.Release() }

// Value decodes the current entry. A decode failure names the key.
func (i *Iterator[V]) Value() (V, error) {
	var value V
	if err := yaml.Unmarshal(i.itr.Value(), &value); err != nil {
		return value, fmt.Errorf("failed to decode %q: %w", i.itr.Key(), err)
	}
	return value, nil
}

// All drains the iterator and releases it.
func (i *Iterator[V]) All() ([]V, error) {
	defer i.Release()

	var values []V
	for i.Next() {
		value, err := i.Value()
		if err != nil {
			return nil, err
		}
		values = append(values, value)
	}
	return values, i.Error()
}
