package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the client settings. Resolution order, later wins:
// built-in defaults, YAML config file, environment variables. Command
// flags are applied on top by the cmd package.
type Config struct {
	APIURL   string        `yaml:"api_url"`
	Timeout  time.Duration `yaml:"timeout"`
	PageSize int           `yaml:"page_size"`
}

const (
	DefaultAPIURL   = "http://localhost:8080"
	DefaultTimeout  = 20 * time.Second
	DefaultPageSize = 10
)

func Default() Config {
	return Config{
		APIURL:   DefaultAPIURL,
		Timeout:  DefaultTimeout,
		PageSize: DefaultPageSize,
	}
}

// Path returns the config file location, honoring LIBROCLI_CONFIG.
func Path() (string, error) {
	if p := os.Getenv("LIBROCLI_CONFIG"); p != "" {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "librocli", "config.yaml"), nil
}

// Load resolves the effective configuration. A missing config file is
// not an error; a malformed one is.
func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err == nil {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := loadEnv(&cfg); err != nil {
		return Config{}, err
	}

	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func loadEnv(cfg *Config) error {
	if v := os.Getenv("LIBROCLI_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("LIBROCLI_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing LIBROCLI_TIMEOUT: %w", err)
		}
		cfg.Timeout = d
	}
	if v := os.Getenv("LIBROCLI_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing LIBROCLI_PAGE_SIZE: %w", err)
		}
		cfg.PageSize = n
	}
	return nil
}
