// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package hacs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/ava-labs/avalanchego/database"
	"github.com/ava-labs/avalanchego/database/leveldb"
	"github.com/ava-labs/avalanchego/utils/logging"
	"github.com/ava-labs/avalanchego/utils/perms"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/juju/fslock"
	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/hacs/hacs/batch"
	"github.com/hacs/hacs/category"
	"github.com/hacs/hacs/check"
	"github.com/hacs/hacs/client"
	"github.com/hacs/hacs/config"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/engine"
	"github.com/hacs/hacs/event"
	"github.com/hacs/hacs/filesystem"
	"github.com/hacs/hacs/git"
	"github.com/hacs/hacs/github"
	"github.com/hacs/hacs/metrics"
	"github.com/hacs/hacs/registry"
	"github.com/hacs/hacs/storage"
	"github.com/hacs/hacs/task"
	"github.com/hacs/hacs/tasks"
	"github.com/hacs/hacs/types"
	"github.com/hacs/hacs/url"
	"github.com/hacs/hacs/util"
	"github.com/hacs/hacs/version"
	"github.com/hacs/hacs/workflow"
)

const (
	dbDir    = "db"
	lockFile = "hacs.lock"
)

var (
	ErrDefaultRepository = errors.New("default repositories can not be removed")
	ErrRemovedRepository = errors.New("repository was removed")
)

type Config struct {
	// Directory holds the database and the lock file.
	Directory string
	// ConfigDir is the host configuration directory content installs into.
	ConfigDir    string
	Host         version.Host
	Action       bool
	RequestDelay time.Duration
	Credential   config.Credential
	APIURL       string
	// WebURL is the site repositories are cloned and downloaded from,
	// github.com when empty.
	WebURL string
	// MetricsAddr is where Run serves prometheus metrics, nowhere when
	// empty.
	MetricsAddr string
	// Fs holds the configuration directory and the downloads. The database
	// and the lock file always live on the OS filesystem under Directory.
	Fs afero.Fs

	// Client replaces the GitHub API client when set.
	Client client.Client
	// UrlClient replaces the grab downloader when set.
	UrlClient url.Client
	// DB replaces the leveldb database under Directory when set.
	DB database.Database

	Out    io.Writer
	Logger *zap.Logger
}

// HACS tracks, installs and keeps up to date the repositories of a host
// configuration directory.
type HACS struct {
	registry  *registry.Registry
	handlers  *category.Handlers
	runner    *check.Runner
	client    client.Client
	executor  workflow.Executor
	installer workflow.Installer
	fs        filesystem.FileSystem
	bus       *event.LocalBus
	manager   *task.Manager
	host      version.Host

	metricsAddr string

	db     database.Database
	lock   *fslock.Lock
	stop   func()
	out    io.Writer
	logger *zap.Logger
}

func New(ctx context.Context, config Config) (*HACS, error) {
	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	out := config.Out
	if out == nil {
		out = os.Stdout
	}
	if err := os.MkdirAll(config.Directory, perms.ReadWriteExecute); err != nil {
		return nil, err
	}

	db := config.DB
	if db == nil {
		var err error
		db, err = leveldb.New(filepath.Join(config.Directory, dbDir), []byte{}, logging.NoLog{})
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
	}

	c := config.Client
	if c == nil {
		var err error
		c, err = newClient(config, logger)
		if err != nil {
			return nil, err
		}
	}
	urlClient := config.UrlClient
	if urlClient == nil {
		urlClient = url.NewClient(url.ClientConfig{
			Fs:        config.Fs,
			Logger:    logger,
			UserAgent: fmt.Sprintf("%s/%s", constant.AppName, constant.Version),
		})
	}

	host := config.Host
	if host.Hacs == "" {
		host.Hacs = constant.Version
	}

	fs := filesystem.New(filesystem.Config{Fs: config.Fs})
	runner := check.NewRunner(check.RunnerConfig{
		Action: config.Action,
		Logger: logger,
	})
	bus := event.NewLocalBus(event.LocalBusConfig{Logger: logger})
	reg := registry.New(registry.Config{
		Storage: storage.NewRepositories(db),
		Logger:  logger,
	})
	handlers := category.New(category.Config{
		ConfigDir: config.ConfigDir,
		Client:    c,
		Runner:    runner,
		Logger:    logger,
	})
	executor := engine.NewWorkflowEngine(logger)

	manager := task.NewManager(task.ManagerConfig{
		Factories: tasks.Factories(tasks.Deps{
			Registry: reg,
			Client:   c,
			Handlers: handlers,
			Runner:   runner,
			Executor: executor,
			Fs:       fs,
			Bus:      bus,
			Host:     host,
			Batch: batch.Config{
				Semaphore: batch.NewSemaphore(),
				Delay:     config.RequestDelay,
				Logger:    logger,
			},
			Defaults: constant.DefaultRepositories,
			Logger:   logger,
		}),
		Runs:   storage.NewTaskRuns(db),
		Logger: logger,
	})

	h := &HACS{
		registry: reg,
		handlers: handlers,
		runner:   runner,
		client:   c,
		executor: executor,
		installer: workflow.NewContentInstaller(workflow.ContentInstallerConfig{
			Fs:        fs,
			UrlClient: urlClient,
			Site:      version.Site(config.WebURL),
			Logger:    logger,
		}),
		fs:      fs,
		bus:     bus,
		manager: manager,
		host:    host,

		metricsAddr: config.MetricsAddr,

		db:     db,
		lock:   fslock.New(filepath.Join(config.Directory, lockFile)),
		out:    out,
		logger: logger,
	}

	if err := h.start(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return h, nil
}

func newClient(config Config, logger *zap.Logger) (*github.Client, error) {
	var auth *http.BasicAuth
	if config.Credential.Token != "" {
		auth = &http.BasicAuth{
			Username: config.Credential.Username,
			Password: config.Credential.Token,
		}
	}
	return github.NewClient(github.ClientConfig{
		Token:   config.Credential.Token,
		BaseURL: config.APIURL,
		Site:    version.Site(config.WebURL),
		Remote:  git.NewRemote(git.RemoteConfig{Auth: auth}),
		Logger:  logger,
	})
}

// start loads the tasks, restores the persisted registry and arms the event
// and schedule tasks.
func (h *HACS) start(ctx context.Context) error {
	if err := h.manager.Load(ctx); err != nil {
		return err
	}
	if err := h.manager.ExecuteApplicable(ctx, types.StageSetup); err != nil {
		return err
	}
	stop, err := h.manager.Start(ctx, h.bus)
	if err != nil {
		return err
	}
	h.stop = stop
	return nil
}

// Close stops the background tasks, persists the registry and closes the
// database.
func (h *HACS) Close() error {
	if h.stop != nil {
		h.stop()
	}
	storeErr := h.registry.StoreAll()
	if err := h.db.Close(); err != nil {
		return err
	}
	return storeErr
}

func (h *HACS) withLock(f func() error) error {
	if err := h.lock.TryLock(); err != nil {
		return err
	}
	defer func() {
		_ = h.lock.Unlock()
	}()
	return f()
}

func (h *HACS) repository(fullName string) (*types.Repository, category.Handler, error) {
	r, err := h.registry.GetByFullName(fullName)
	if err != nil {
		return nil, nil, err
	}
	handler, err := h.handlers.For(r.Category)
	if err != nil {
		return nil, nil, err
	}
	return r, handler, nil
}

// Register validates a repository and starts tracking it. A ref pins the
// repository to that tag or branch.
func (h *HACS) Register(ctx context.Context, fullName string, c string, ref string) error {
	fullName = util.NormalizeFullName(fullName)
	if _, _, err := util.ParseFullName(fullName); err != nil {
		return err
	}

	return h.withLock(func() error {
		if h.registry.IsRegistered(fullName) {
			fmt.Fprintf(h.out, "Repository %s is already tracked. Skipping.\n", fullName)
			return nil
		}
		if removal, ok := h.registry.Removal(fullName); ok {
			return fmt.Errorf("%s: %w: %s", fullName, ErrRemovedRepository, removal.Reason)
		}

		parsed, err := types.ParseCategory(c)
		if err != nil {
			return err
		}
		handler, err := h.handlers.For(parsed)
		if err != nil {
			return err
		}

		wf := workflow.NewRegister(workflow.RegisterConfig{
			Repository: types.NewRepository(fullName, parsed),
			Ref:        ref,
			Client:     h.client,
			Handler:    handler,
			Runner:     h.runner,
			Registry:   h.registry,
			Bus:        h.bus,
			Logger:     h.logger,
		})
		if err := h.executor.Execute(ctx, wf); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Registered %s.\n", fullName)
		return nil
	})
}

// Remove uninstalls a repository if needed and stops tracking it.
func (h *HACS) Remove(ctx context.Context, fullName string) error {
	return h.withLock(func() error {
		r, handler, err := h.repository(fullName)
		if err != nil {
			return err
		}
		if !h.registry.Custom(r) {
			return fmt.Errorf("%s: %w", fullName, ErrDefaultRepository)
		}
		if r.Installed {
			if err := h.uninstall(ctx, r, handler); err != nil {
				return err
			}
		}
		if err := h.registry.Unregister(r); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Removed %s.\n", fullName)
		return nil
	})
}

// Install downloads a tracked repository into the configuration directory.
// Without a ref the version policy picks what to download.
func (h *HACS) Install(ctx context.Context, fullName string, ref string) error {
	return h.withLock(func() error {
		r, handler, err := h.repository(fullName)
		if err != nil {
			return err
		}
		if r.Installed && ref == "" && !version.PendingUpdate(r, h.host) {
			fmt.Fprintf(h.out, "%s is already at %s. Skipping.\n", fullName, r.DisplayInstalledVersion())
			return nil
		}

		wf := workflow.NewInstall(workflow.InstallConfig{
			Repository: r,
			Version:    ref,
			Host:       h.host,
			Handler:    handler,
			Installer:  h.installer,
			Fs:         h.fs,
			Bus:        h.bus,
			Logger:     h.logger,
		})
		if err := h.executor.Execute(ctx, wf); err != nil {
			return err
		}
		fmt.Fprintf(h.out, "Installed %s@%s.\n", fullName, r.DisplayInstalledVersion())
		return nil
	})
}

// Uninstall removes the installed content of a repository but keeps
// tracking it.
func (h *HACS) Uninstall(ctx context.Context, fullName string) error {
	return h.withLock(func() error {
		r, handler, err := h.repository(fullName)
		if err != nil {
			return err
		}
		if !r.Installed {
			fmt.Fprintf(h.out, "%s is not installed. Skipping.\n", fullName)
			return nil
		}
		return h.uninstall(ctx, r, handler)
	})
}

func (h *HACS) uninstall(ctx context.Context, r *types.Repository, handler category.Handler) error {
	wf := workflow.NewUninstall(workflow.UninstallConfig{
		Repository: r,
		Handler:    handler,
		Fs:         h.fs,
		Bus:        h.bus,
		Logger:     h.logger,
	})
	if err := h.executor.Execute(ctx, wf); err != nil {
		return err
	}
	fmt.Fprintf(h.out, "Uninstalled %s.\n", r.FullName)
	return nil
}

// Update refreshes one repository, or every tracked one when fullName is
// empty.
func (h *HACS) Update(ctx context.Context, fullName string) error {
	return h.withLock(func() error {
		if fullName == "" {
			return h.manager.ExecuteManual(ctx, task.Slug(&tasks.UpdateAllRepositories{}))
		}

		r, handler, err := h.repository(fullName)
		if err != nil {
			return err
		}
		wf := workflow.NewUpdate(workflow.UpdateConfig{
			Repository: r,
			Host:       h.host,
			Client:     h.client,
			Handler:    handler,
			Registry:   h.registry,
			Bus:        h.bus,
			Logger:     h.logger,
		})
		if err := h.executor.Execute(ctx, wf); err != nil {
			return err
		}
		if version.PendingUpdate(r, h.host) {
			fmt.Fprintf(h.out, "Update available for %s: %s -> %s.\n", fullName, r.DisplayInstalledVersion(), r.DisplayAvailableVersion())
		}
		return nil
	})
}

// Validate runs the checks against one repository, or every tracked one when
// fullName is empty.
func (h *HACS) Validate(ctx context.Context, fullName string) error {
	if fullName == "" {
		return h.manager.ExecuteManual(ctx, task.Slug(&tasks.ValidateAllRepositories{}))
	}

	r, handler, err := h.repository(fullName)
	if err != nil {
		return err
	}
	if err := workflow.Refresh(ctx, h.client, handler, r); err != nil {
		return err
	}
	result, err := h.runner.Run(ctx, r, check.For(r.Category))
	if err != nil {
		return err
	}
	for _, reason := range result.Reasons() {
		fmt.Fprintf(h.out, "  %s\n", reason)
	}
	if result.Failed() {
		return fmt.Errorf("%s failed validation", fullName)
	}
	fmt.Fprintf(h.out, "%s passed validation.\n", fullName)
	return nil
}

// List prints every tracked repository.
func (h *HACS) List() error {
	w := tabwriter.NewWriter(h.out, 1, 1, 1, ' ', 0)
	fmt.Fprintln(w, "repository\tcategory\tstatus\tinstalled\tavailable")
	for _, r := range h.registry.All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			r.FullName,
			r.Category,
			version.DisplayStatus(r, h.host),
			r.DisplayInstalledVersion(),
			r.DisplayAvailableVersion(),
		)
	}
	return w.Flush()
}

// Run walks the lifecycle stages, then keeps the scheduled tasks running
// until ctx is done. Metrics are served for as long when an address is
// configured.
func (h *HACS) Run(ctx context.Context) error {
	return h.withLock(func() error {
		if h.metricsAddr != "" {
			listener, err := net.Listen("tcp", h.metricsAddr)
			if err != nil {
				return fmt.Errorf("failed to listen for metrics: %w", err)
			}
			served := make(chan struct{})
			go func() {
				defer close(served)
				if err := metrics.Serve(ctx, listener, h.logger); err != nil {
					h.logger.Error("metrics server stopped", zap.Error(err))
				}
			}()
			defer func() {
				<-served
			}()
		}

		for _, stage := range []types.Stage{types.StageStartup, types.StageWaiting, types.StageRunning} {
			h.logger.Info("entering stage", zap.String("stage", string(stage)))
			h.bus.Publish(ctx, constant.StageTopic, map[string]any{"stage": stage})
		}
		<-ctx.Done()
		return nil
	})
}
