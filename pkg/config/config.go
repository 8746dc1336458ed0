// Package config loads lg2e2e configuration: the deployment under test, browser settings and
// notification channels. Values come from an embedded default config, a global config in the
// user config dir and a local .lg2e2e/config, later ones winning, then environment overrides.
package config

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/leggera/lg2e2e/pkg/notify"
)

//go:embed defaults/config
var defaultsFS embed.FS

// LocalDirName is the directory holding a project local config.
const LocalDirName = ".lg2e2e"

// Config is the resolved configuration.
type Config struct {
	Values
	NotifyParams notify.Params

	configDir string
	localDir  string
}

// DefaultConfigDir returns ~/.config/lg2e2e, or a relative .config/lg2e2e if home is unknown.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "lg2e2e")
	}
	return filepath.Join(home, ".config", "lg2e2e")
}

// Load resolves the configuration from configDir (empty means DefaultConfigDir) and the local
// .lg2e2e directory of the working directory, then applies environment overrides.
func Load(configDir string) (*Config, error) {
	return load(configDir, LocalDirName, os.LookupEnv)
}

func load(configDir, localDir string, lookupEnv func(string) (string, bool)) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	localConfig := ""
	if localDir != "" {
		if st, err := os.Stat(localDir); err == nil && st.IsDir() {
			localConfig = filepath.Join(localDir, "config")
		} else {
			localDir = ""
		}
	}

	values, err := newValuesLoader(defaultsFS).Load(localConfig, filepath.Join(configDir, "config"))
	if err != nil {
		return nil, err
	}
	if err := applyEnv(&values, lookupEnv); err != nil {
		return nil, err
	}

	return &Config{
		Values:       values,
		NotifyParams: values.notifyParams(),
		configDir:    configDir,
		localDir:     localDir,
	}, nil
}

// Install writes the default config into configDir (empty means DefaultConfigDir) if missing.
func Install(configDir string) error {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return newDefaultsInstaller(defaultsFS).Install(configDir)
}

// ConfigDir returns the global config directory in use.
func (c *Config) ConfigDir() string { return c.configDir }

// LocalDir returns the local config directory, empty if none was found.
func (c *Config) LocalDir() string { return c.localDir }

// Timeout returns the playwright default timeout.
func (c *Config) Timeout() time.Duration { return time.Duration(c.TimeoutMs) * time.Millisecond }

// applyEnv overrides file values with DEPLOY_URL, BUILD_NUMBER and E2E_HEADLESS.
func applyEnv(v *Values, lookupEnv func(string) (string, bool)) error {
	if val, ok := lookupEnv("DEPLOY_URL"); ok && val != "" {
		v.DeployURL = val
	}
	if val, ok := lookupEnv("BUILD_NUMBER"); ok && val != "" {
		v.BuildNumber = val
	}
	if val, ok := lookupEnv("E2E_HEADLESS"); ok && val != "" {
		headless, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid E2E_HEADLESS %q: %w", val, err)
		}
		v.Headless, v.HeadlessSet = headless, true
	}
	return nil
}

// notifyParams maps the notify_* values to notify.Params.
func (v *Values) notifyParams() notify.Params {
	return notify.Params{
		Channels:      v.NotifyChannels,
		OnError:       v.NotifyOnError,
		OnComplete:    v.NotifyOnComplete,
		TimeoutMs:     v.NotifyTimeoutMs,
		TelegramToken: v.NotifyTelegramToken,
		TelegramChat:  v.NotifyTelegramChat,
		SlackToken:    v.NotifySlackToken,
		SlackChannel:  v.NotifySlackChannel,
		SMTPHost:      v.NotifySMTPHost,
		SMTPPort:      v.NotifySMTPPort,
		SMTPUsername:  v.NotifySMTPUsername,
		SMTPPassword:  v.NotifySMTPPassword,
		SMTPStartTLS:  v.NotifySMTPStartTLS,
		EmailFrom:     v.NotifyEmailFrom,
		EmailTo:       v.NotifyEmailTo,
		WebhookURLs:   v.NotifyWebhookURLs,
		CustomScript:  v.NotifyCustomScript,
	}
}
