// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package workflow

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hacs/hacs/category"
	"github.com/hacs/hacs/check"
	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/registry"
	"github.com/hacs/hacs/types"
)

var _ Workflow = &Register{}

type RegisterConfig struct {
	Repository *types.Repository
	// Ref pins the repository to a tag, branch or commit before validation.
	Ref string
	// Default marks the repository as part of the default set.
	Default bool

	Client   client.Client
	Handler  category.Handler
	Runner   *check.Runner
	Registry *registry.Registry
	Bus      event.Bus
	Logger   *zap.Logger
}

func NewRegister(config RegisterConfig) *Register {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Register{
		repository: config.Repository,
		ref:        config.Ref,
		isDefault:  config.Default,
		client:     config.Client,
		handler:    config.Handler,
		runner:     config.Runner,
		registry:   config.Registry,
		bus:        config.Bus,
		logger:     logger,
	}
}

// Register validates a repository and adds it to the registry. Nothing is
// registered when validation fails.
type Register struct {
	phases

	repository *types.Repository
	ref        string
	isDefault  bool

	client   client.Client
	handler  category.Handler
	runner   *check.Runner
	registry *registry.Registry
	bus      event.Bus
	logger   *zap.Logger

	result check.Result
}

func (r *Register) Name() string {
	return "register"
}

// Result is the outcome of the last validation.
func (r *Register) Result() check.Result {
	return r.result
}

// Execute wraps ErrValidationFailed with the failure reasons when the
// repository did not validate.
func (r *Register) Execute(ctx context.Context) error {
	ok, err := r.Run(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w: %v", r.repository, ErrValidationFailed, r.result.Reasons())
	}
	return nil
}

// Run registers the repository and reports false when validation failed.
func (r *Register) Run(ctx context.Context) (bool, error) {
	r.result = check.Result{}
	validated := true

	err := r.execute(ctx,
		phase{state: StatePreRegistration, run: r.preRegistration},
		phase{state: StateValidate, run: func(ctx context.Context) error {
			ok, err := r.validate(ctx)
			if err != nil {
				return err
			}
			if !ok {
				validated = false
				return errValidation
			}
			return nil
		}},
		phase{state: StateCommonRegistration, run: r.commonRegistration},
		phase{state: StatePostRegistration, run: r.postRegistration},
	)
	if !validated {
		return false, nil
	}
	return err == nil, err
}

// errValidation stops the phase sequence, it never leaves Run.
var errValidation = errors.New("validation")

func (r *Register) preRegistration(ctx context.Context) error {
	if r.ref != "" {
		r.repository.SelectedTag = r.ref
		r.repository.ForceBranch = true
	}
	return r.handler.PreRegistration(ctx, r.repository)
}

func (r *Register) validate(ctx context.Context) (bool, error) {
	if err := Refresh(ctx, r.client, r.handler, r.repository); err != nil {
		return false, err
	}

	result, err := r.runner.Run(ctx, r.repository, check.For(r.repository.Category))
	r.result = result
	if err != nil {
		return false, err
	}
	if result.Failed() {
		r.logger.Error("repository did not validate",
			zap.Stringer("repository", r.repository),
			zap.Strings("reasons", result.Reasons()),
		)
		return false, nil
	}
	return true, nil
}

func (r *Register) commonRegistration(ctx context.Context) error {
	metadata, err := r.client.FetchMetadata(ctx, r.repository.FullName)
	if err != nil {
		return fmt.Errorf("fetching metadata of %s: %w", r.repository, err)
	}
	r.repository.ApplyMetadata(metadata)

	r.repository = r.registry.Register(r.repository, r.isDefault)
	if err := r.registry.Store(r.repository); err != nil {
		return err
	}
	r.bus.Publish(ctx, constant.RepositoryTopic, map[string]any{
		"action":     event.ActionRegister,
		"repository": r.repository.FullName,
	})
	return nil
}

func (r *Register) postRegistration(ctx context.Context) error {
	return r.handler.PostRegistration(ctx, r.repository)
}
