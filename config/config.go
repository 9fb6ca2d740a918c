// Copyright (C) 2019-2022, HACS contributors. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/hacs/hacs/constant"
	"github.com/hacs/hacs/version"
)

const (
	ConfigFileKey      = "config-file"
	HacsPathKey        = "hacs-path"
	ConfigDirKey       = "config-dir"
	CredentialsFileKey = "credentials-file"
	TokenKey           = "token"
	APIURLKey          = "api-url"
	WebURLKey          = "web-url"
	MetricsAddrKey     = "metrics-addr"
	HomeAssistantKey   = "homeassistant-version"
	ActionKey          = "action"
	RequestDelayKey    = "request-delay"
	LogLevelKey        = "log-level"

	EnvPrefix = "HACS"

	defaultLogLevel      = "info"
	defaultHomeAssistant = "2024.1.0"
)

var (
	homeDir = os.ExpandEnv("$HOME")

	// DefaultDirectory holds the database, the lock file and downloads.
	DefaultDirectory = filepath.Join(homeDir, fmt.Sprintf(".%s", constant.AppName))
	// DefaultConfigDir is the host configuration directory content is
	// installed into.
	DefaultConfigDir = filepath.Join(homeDir, ".homeassistant")
)

// Config is the resolved runtime configuration of the manager.
type Config struct {
	Directory     string
	ConfigDir     string
	HomeAssistant string
	APIURL        string
	WebURL        string
	MetricsAddr   string
	Action        bool
	RequestDelay  time.Duration
	LogLevel      string
	Credential    Credential
}

// SetDefaults registers the fallback of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(HacsPathKey, DefaultDirectory)
	v.SetDefault(ConfigDirKey, DefaultConfigDir)
	v.SetDefault(HomeAssistantKey, defaultHomeAssistant)
	v.SetDefault(RequestDelayKey, constant.RequestDelay)
	v.SetDefault(LogLevelKey, defaultLogLevel)
}

// Load reads the optional config file named by ConfigFileKey and resolves
// the configuration. A token given directly wins over the credentials file.
func Load(v *viper.Viper, fs afero.Fs) (Config, error) {
	if v.IsSet(ConfigFileKey) && v.GetString(ConfigFileKey) != "" {
		v.SetFs(fs)
		v.SetConfigFile(os.ExpandEnv(v.GetString(ConfigFileKey)))
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	credential, err := ReadCredential(fs, v.GetString(CredentialsFileKey))
	if err != nil {
		return Config{}, err
	}
	if token := v.GetString(TokenKey); token != "" {
		credential.Token = token
	}

	delay := v.GetDuration(RequestDelayKey)
	if delay < 0 {
		return Config{}, fmt.Errorf("%s must not be negative, got %s", RequestDelayKey, delay)
	}

	apiURL := v.GetString(APIURLKey)
	webURL := v.GetString(WebURLKey)
	if webURL == "" {
		webURL = string(version.SiteFor(apiURL))
	}

	return Config{
		Directory:     os.ExpandEnv(v.GetString(HacsPathKey)),
		ConfigDir:     os.ExpandEnv(v.GetString(ConfigDirKey)),
		HomeAssistant: v.GetString(HomeAssistantKey),
		APIURL:        apiURL,
		WebURL:        webURL,
		MetricsAddr:   v.GetString(MetricsAddrKey),
		Action:        v.GetBool(ActionKey),
		RequestDelay:  delay,
		LogLevel:      v.GetString(LogLevelKey),
		Credential:    credential,
	}, nil
}
