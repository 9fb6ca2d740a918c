// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/ava-labs/avalanchego/utils/wrappers"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/hacs/hacs/config"
	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/hacs"
	"github.com/hacs/hacs/version"
)

// New builds the root command. Every subcommand resolves its configuration
// from flags, the environment, a .env file and an optional config file, in
// that order of precedence.
func New(fs afero.Fs) (*cobra.Command, error) {
	v := viper.New()
	config.SetDefaults(v)

	rootCmd := &cobra.Command{
		Use:           constant.AppName,
		Short:         "hacs tracks, installs and updates community content for Home Assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			// flags are only parsed once Execute runs, so the environment
			// is wired here rather than in New.
			return initializeEnv(v)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String(config.ConfigFileKey, "", "path to configuration file")
	flags.String(config.HacsPathKey, config.DefaultDirectory, "path to the directory hacs keeps its database in")
	flags.String(config.ConfigDirKey, config.DefaultConfigDir, "path to the Home Assistant configuration directory")
	flags.String(config.CredentialsFileKey, "", "path to credentials file")
	flags.String(config.TokenKey, "", "GitHub personal access token")
	flags.String(config.APIURLKey, "", "GitHub API endpoint, the public API when empty")
	flags.String(config.WebURLKey, "", "GitHub web root repositories are cloned and downloaded from, derived from the API endpoint when empty")
	flags.String(config.MetricsAddrKey, "", "address the run command serves prometheus metrics on, disabled when empty")
	flags.String(config.HomeAssistantKey, "", "version of the running Home Assistant")
	flags.Bool(config.ActionKey, false, "run the checks reserved for automated validation")
	flags.Duration(config.RequestDelayKey, constant.RequestDelay, "delay held after every batched request")
	flags.String(config.LogLevelKey, "info", "log level")

	errs := wrappers.Errs{}
	for _, key := range []string{
		config.ConfigFileKey,
		config.HacsPathKey,
		config.ConfigDirKey,
		config.CredentialsFileKey,
		config.TokenKey,
		config.APIURLKey,
		config.WebURLKey,
		config.MetricsAddrKey,
		config.HomeAssistantKey,
		config.ActionKey,
		config.RequestDelayKey,
		config.LogLevelKey,
	} {
		errs.Add(v.BindPFlag(key, flags.Lookup(key)))
	}
	if errs.Errored() {
		return nil, errs.Err
	}

	open := func(ctx context.Context) (*hacs.HACS, error) {
		return initHACS(ctx, v, fs)
	}
	rootCmd.AddCommand(
		addRepository(open),
		removeRepository(open),
		install(open),
		uninstall(open),
		update(open),
		validate(open),
		listRepositories(open),
		run(open),
	)

	return rootCmd, nil
}

func initializeEnv(v *viper.Viper) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(l)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg.Build()
}

type opener func(ctx context.Context) (*hacs.HACS, error)

func initHACS(ctx context.Context, v *viper.Viper, fs afero.Fs) (*hacs.HACS, error) {
	cfg, err := config.Load(v, fs)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	return hacs.New(ctx, hacs.Config{
		Directory:    cfg.Directory,
		ConfigDir:    cfg.ConfigDir,
		Host:         version.Host{HomeAssistant: cfg.HomeAssistant},
		Action:       cfg.Action,
		RequestDelay: cfg.RequestDelay,
		Credential:   cfg.Credential,
		APIURL:       cfg.APIURL,
		WebURL:       cfg.WebURL,
		MetricsAddr:  cfg.MetricsAddr,
		Fs:           fs,
		Logger:       logger,
	})
}

// withHACS opens the manager for the duration of f.
func withHACS(cmd *cobra.Command, open opener, f func(context.Context, *hacs.HACS) error) error {
	ctx := cmd.Context()
	h, err := open(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = h.Close()
	}()
	return f(ctx, h)
}
