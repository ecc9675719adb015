package config

import (
	"errors"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port   string `yaml:"port"`
		Secret string `yaml:"secret"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Browser struct {
		Headless       *bool  `yaml:"headless"`
		ExecutablePath string `yaml:"executable_path"`
		NavTimeout     string `yaml:"nav_timeout"`
	} `yaml:"browser"`
	Solver struct {
		DownloadTimeout string `yaml:"download_timeout"`
	} `yaml:"solver"`
	Submit struct {
		Timeout string `yaml:"timeout"`
	} `yaml:"submit"`
	Runner struct {
		MaxConcurrent int    `yaml:"max_concurrent"`
		MaxChainDepth int    `yaml:"max_chain_depth"`
		VisitedTTL    string `yaml:"visited_ttl"`
	} `yaml:"runner"`
}

// Load reads YAML config from path. A missing file is not an error; the
// service can run entirely from environment variables and defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
