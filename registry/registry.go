// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package registry

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/storage"
	"github.com/hacs/hacs/types"
)

var ErrNotFound = errors.New("repository not found")

type Config struct {
	Storage storage.Storage[types.Repository]
	Logger  *zap.Logger
}

func New(config Config) *Registry {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		storage:    config.Storage,
		logger:     logger,
		byID:       make(map[int64]*types.Repository),
		byFullName: make(map[string]*types.Repository),
		defaults:   make(map[int64]struct{}),
		removed:    make(map[string]types.Removal),
	}
}

// Registry indexes the tracked repositories by ID and by case-insensitive
// full name. Repositories are shared; callers must not run two pipelines on
// the same repository at once.
type Registry struct {
	storage storage.Storage[types.Repository]
	logger  *zap.Logger

	lock       sync.RWMutex
	byID       map[int64]*types.Repository
	byFullName map[string]*types.Repository
	defaults   map[int64]struct{}
	removed    map[string]types.Removal
}

// Register indexes a repository. A repository without an ID is ignored. When
// the ID is already tracked under another name the tracked entry is renamed
// and kept.
func (r *Registry) Register(repository *types.Repository, isDefault bool) *types.Repository {
	if repository.ID == 0 {
		return repository
	}

	r.lock.Lock()
	defer r.lock.Unlock()

	if registered, ok := r.byID[repository.ID]; ok {
		if registered == repository || registered.FullName == repository.FullName {
			r.rekey(registered)
			if isDefault {
				r.defaults[repository.ID] = struct{}{}
			}
			return registered
		}

		r.logger.Info("repository renamed",
			zap.String("from", registered.FullName),
			zap.String("to", repository.FullName),
		)
		delete(r.byFullName, key(registered.FullName))
		registered.FullName = repository.FullName
		registered.New = false
		repository = registered
	}

	r.byID[repository.ID] = repository
	r.byFullName[key(repository.FullName)] = repository
	if isDefault {
		r.defaults[repository.ID] = struct{}{}
	}
	return repository
}

// rekey moves the name index of repository after its full name changed in
// place.
func (r *Registry) rekey(repository *types.Repository) {
	k := key(repository.FullName)
	if r.byFullName[k] == repository {
		return
	}
	for name, indexed := range r.byFullName {
		if indexed == repository {
			delete(r.byFullName, name)
		}
	}
	r.byFullName[k] = repository
}

// Unregister drops a repository from the index and from storage.
func (r *Registry) Unregister(repository *types.Repository) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	registered, ok := r.byID[repository.ID]
	if !ok {
		return fmt.Errorf("%s: %w", repository, ErrNotFound)
	}
	delete(r.byID, repository.ID)
	for name, indexed := range r.byFullName {
		if indexed == registered {
			delete(r.byFullName, name)
		}
	}
	delete(r.defaults, repository.ID)

	if r.storage == nil {
		return nil
	}
	return r.storage.Delete(idKey(repository.ID))
}

func (r *Registry) Get(id int64) (*types.Repository, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	repository, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%d: %w", id, ErrNotFound)
	}
	return repository, nil
}

func (r *Registry) GetByFullName(fullName string) (*types.Repository, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	repository, ok := r.byFullName[key(fullName)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", fullName, ErrNotFound)
	}
	return repository, nil
}

func (r *Registry) IsRegistered(fullName string) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	_, ok := r.byFullName[key(fullName)]
	return ok
}

func (r *Registry) IsDefault(id int64) bool {
	r.lock.RLock()
	defer r.lock.RUnlock()

	_, ok := r.defaults[id]
	return ok
}

// MarkRemoved records that a repository was pulled from the default list.
// The record lives for the process only, the list is fetched on every
// start.
func (r *Registry) MarkRemoved(removal types.Removal) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.removed[key(removal.Repository)] = removal
}

// Removal returns the removal record of fullName, if there is one.
func (r *Registry) Removal(fullName string) (types.Removal, bool) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	removal, ok := r.removed[key(fullName)]
	return removal, ok
}

// Custom is true for repositories a user added by hand.
func (r *Registry) Custom(repository *types.Repository) bool {
	if strings.EqualFold(repository.FullName, constant.IntegrationFullName) {
		return false
	}
	if _, ok := constant.DefaultRepositories[strings.ToLower(repository.FullName)]; ok {
		return false
	}
	return !r.IsDefault(repository.ID)
}

// All returns every tracked repository ordered by full name. The order
// follows the index, so it never reads a repository another goroutine may be
// refreshing.
func (r *Registry) All() []*types.Repository {
	r.lock.RLock()
	defer r.lock.RUnlock()

	names := make([]string, 0, len(r.byFullName))
	for name := range r.byFullName {
		names = append(names, name)
	}
	sort.Strings(names)

	result := make([]*types.Repository, 0, len(names))
	for _, name := range names {
		result = append(result, r.byFullName[name])
	}
	return result
}

func (r *Registry) Installed() []*types.Repository {
	var result []*types.Repository
	for _, repository := range r.All() {
		if repository.Installed {
			result = append(result, repository)
		}
	}
	return result
}

// Store persists one repository.
func (r *Registry) Store(repository *types.Repository) error {
	if r.storage == nil || repository.ID == 0 {
		return nil
	}
	return r.storage.Put(idKey(repository.ID), *repository)
}

// StoreAll persists every tracked repository. It reads every record, so it
// must not run while workflows are refreshing them.
func (r *Registry) StoreAll() error {
	for _, repository := range r.All() {
		if err := r.Store(repository); err != nil {
			return fmt.Errorf("storing %s: %w", repository, err)
		}
	}
	return nil
}

// Restore indexes every persisted repository and returns how many were
// loaded.
func (r *Registry) Restore() (int, error) {
	if r.storage == nil {
		return 0, nil
	}

	repositories, err := r.storage.Iterator().All()
	if err != nil {
		return 0, err
	}
	for i := range repositories {
		r.Register(&repositories[i], false)
	}
	return len(repositories), nil
}

func key(fullName string) string {
	return strings.ToLower(fullName)
}

func idKey(id int64) []byte {
	return []byte(strconv.FormatInt(id, 10))
}
