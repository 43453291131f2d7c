// Package config loads microboard settings from defaults, an optional
// microboard.yaml, MICROBOARD_* environment variables and command flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Server      Server      `mapstructure:"server" yaml:"server"`
	Store       Store       `mapstructure:"store" yaml:"store"`
	Credentials Credentials `mapstructure:"credentials" yaml:"credentials"`
	Debug       bool        `mapstructure:"debug" yaml:"debug"`
}

type Server struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// Store selects the persistence backend. Driver is one of memory, sqlite,
// postgres, mysql or mongo; Database is only read by the mongo driver.
type Store struct {
	Driver   string `mapstructure:"driver" yaml:"driver"`
	DSN      string `mapstructure:"dsn" yaml:"dsn"`
	Database string `mapstructure:"database" yaml:"database"`
}

type Credentials struct {
	Scheme string `mapstructure:"scheme" yaml:"scheme"`
}

var ErrUnknownDriver = errors.New("unknown store driver")

// Defaults returns the values used when nothing else sets a key.
func Defaults() map[string]any {
	return map[string]any{
		"server.addr":        ":8080",
		"store.driver":       "memory",
		"store.dsn":          "microboard.db",
		"store.database":     "microboard",
		"credentials.scheme": "plain",
		"debug":              false,
	}
}

// Load builds a Config. An explicit file path, when non-empty, must exist;
// otherwise microboard.yaml is looked up in the working directory and the
// user and system config directories and is optional.
func Load(flags *pflag.FlagSet, file string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName("microboard")
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	}
	v.AddConfigPath(".")
	if p, err := configPath(false); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}
	if p, err := configPath(true); err == nil {
		v.AddConfigPath(filepath.Dir(p))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return c, fmt.Errorf("reading config: %w", err)
		}
	}

	v.SetEnvPrefix("microboard")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return c, err
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}

	return c, c.validate()
}

func (c Config) validate() error {
	switch c.Store.Driver {
	case "memory", "sqlite", "postgres", "mysql", "mongo":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDriver, c.Store.Driver)
	}
	switch c.Credentials.Scheme {
	case "plain", "bcrypt":
	default:
		return fmt.Errorf("unknown credentials scheme %q", c.Credentials.Scheme)
	}
	return nil
}

// Write stores c as YAML at path, creating parent directories. An empty
// path resolves to the user (or system) config location.
func Write(c Config, path string, system bool) (string, error) {
	if path == "" {
		p, err := configPath(system)
		if err != nil {
			return "", err
		}
		path = p
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("could not create config directory: %w", err)
	}

	// 0600: the dsn may carry credentials
	return path, os.WriteFile(path, data, 0600)
}

func configPath(system bool) (string, error) {
	var dir string
	if system {
		switch runtime.GOOS {
		case "windows":
			dir = filepath.Join(os.Getenv("ProgramData"), "Microboard")
		default:
			dir = "/etc/microboard"
		}
	} else {
		d, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("could not get user config directory: %w", err)
		}
		dir = filepath.Join(d, "microboard")
	}
	return filepath.Join(dir, "microboard.yaml"), nil
}
