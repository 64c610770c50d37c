// Package config loads client configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config exposes the settings the rest of the client needs.
type Config interface {
	BaseURL() string
	Timeout() time.Duration
	BasePath() string
}

// Load walks viper through the usual places: a .dayplan file in the
// working directory (or DAYPLAN_CONFIG_PATH), then DAYPLAN_* env vars.
func Load() (Config, error) {
	home, err := homedir.Dir()
	if err != nil {
		home = "."
	}

	viper.SetDefault("base_url", "http://localhost:8000")
	viper.SetDefault("timeout", "10s")
	viper.SetDefault("path", filepath.Join(home, ".dayplan.db"))
	viper.SetConfigName(".dayplan") // .yaml is implicit
	viper.SetEnvPrefix("DAYPLAN")
	viper.AutomaticEnv()

	if override := os.Getenv("DAYPLAN_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}
	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	timeout := viper.GetDuration("timeout")
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &fileConfig{
		URL:         viper.GetString("base_url"),
		CallTimeout: timeout,
		Path:        viper.GetString("path"),
	}, nil
}

type fileConfig struct {
	URL         string        `json:"base_url"`
	CallTimeout time.Duration `json:"timeout"`
	Path        string        `json:"path"`
}

func (f *fileConfig) BaseURL() string        { return f.URL }
func (f *fileConfig) Timeout() time.Duration { return f.CallTimeout }
func (f *fileConfig) BasePath() string       { return f.Path }

// Static builds a fixed config, mostly for tests.
func Static(baseURL, path string, timeout time.Duration) Config {
	return &fileConfig{URL: baseURL, CallTimeout: timeout, Path: path}
}
