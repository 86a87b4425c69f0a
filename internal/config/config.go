// Package config resolves the configuration directory, the settings file
// and the task store location.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	// AppName is the application directory name.
	AppName = "tasker"

	// SettingsFile is the optional TOML settings filename.
	SettingsFile = "config.toml"

	// DefaultStoreFile is the task store filename, relative to the config directory.
	DefaultStoreFile = "tasks.json"

	// OAuthClientFile is the OAuth client credentials filename.
	OAuthClientFile = "oauth_client.json"

	// TokenFile is the stored OAuth token filename.
	TokenFile = "token.json"
)

// Environments select the log format and default level.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// StoreFile overrides Settings.StoreFile when set (--file flag).
	StoreFile string

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool

	// Settings are read from config.toml and the environment.
	Settings Settings
}

// Settings are the user-tunable values. Environment variables override
// the settings file; defaults fill whatever is left.
type Settings struct {
	// StoreFile is the task store path; relative paths resolve against the config dir.
	StoreFile string `toml:"store_file" env:"TASKER_STORE_FILE" env-default:"tasks.json"`

	// Env is one of local, dev, prod.
	Env string `toml:"env" env:"TASKER_ENV" env-default:"prod"`

	HTTP   HTTPSettings   `toml:"http"`
	Google GoogleSettings `toml:"google"`
}

// HTTPSettings configure `tasker serve`.
type HTTPSettings struct {
	Host            string        `toml:"host" env:"TASKER_HTTP_HOST" env-default:"127.0.0.1"`
	Port            string        `toml:"port" env:"TASKER_HTTP_PORT" env-default:"8000"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"TASKER_HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// GoogleSettings configure `tasker push`.
type GoogleSettings struct {
	// List is the Google Tasks list name; empty means the default list.
	List string `toml:"list" env:"TASKER_GOOGLE_LIST"`
}

// New creates a Config for configDir, reading config.toml from it when present.
// If configDir is empty, uses XDG_CONFIG_HOME/tasker or $HOME/.config/tasker.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}

	cfg := &Config{Dir: dir}
	if err := cfg.readSettings(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readSettings() error {
	_, err := os.Stat(c.SettingsPath())
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(c.SettingsPath(), &c.Settings); err != nil {
			return fmt.Errorf("read %s: %w", SettingsFile, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err := cleanenv.ReadEnv(&c.Settings); err != nil {
			return fmt.Errorf("read environment: %w", err)
		}
	default:
		return fmt.Errorf("stat %s: %w", SettingsFile, err)
	}

	switch c.Settings.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return fmt.Errorf("unknown env: %s", c.Settings.Env)
	}
	return nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// SettingsPath returns the path to config.toml.
func (c *Config) SettingsPath() string {
	return filepath.Join(c.Dir, SettingsFile)
}

// StorePath returns the task store path.
// The --file override wins over settings; relative settings paths resolve
// against the config directory.
func (c *Config) StorePath() string {
	if c.StoreFile != "" {
		return c.StoreFile
	}
	file := c.Settings.StoreFile
	if file == "" {
		file = DefaultStoreFile
	}
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(c.Dir, file)
}

// OAuthClientPath returns the path to the OAuth client credentials file.
func (c *Config) OAuthClientPath() string {
	return filepath.Join(c.Dir, OAuthClientFile)
}

// TokenPath returns the path to the stored OAuth token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasOAuthClient checks if the OAuth client credentials file exists.
func (c *Config) HasOAuthClient() bool {
	_, err := os.Stat(c.OAuthClientPath())
	return err == nil
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}

// RemoveToken deletes the token file.
func (c *Config) RemoveToken() error {
	return os.Remove(c.TokenPath())
}
