package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LIBROCLI_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("LIBROCLI_API_URL", "")
	t.Setenv("LIBROCLI_TIMEOUT", "")
	t.Setenv("LIBROCLI_PAGE_SIZE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != DefaultAPIURL {
		t.Errorf("Expected default api url, got %s", cfg.APIURL)
	}
	if cfg.PageSize != DefaultPageSize {
		t.Errorf("Expected default page size, got %d", cfg.PageSize)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Expected default timeout, got %s", cfg.Timeout)
	}
}

func TestLoadFileAndEnvPrecedence(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "api_url: http://file.example:9000\npage_size: 25\ntimeout: 5s\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("LIBROCLI_CONFIG", path)
	t.Setenv("LIBROCLI_API_URL", "http://env.example:7000")
	t.Setenv("LIBROCLI_TIMEOUT", "")
	t.Setenv("LIBROCLI_PAGE_SIZE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.APIURL != "http://env.example:7000" {
		t.Errorf("Expected env to win over file, got %s", cfg.APIURL)
	}
	if cfg.PageSize != 25 {
		t.Errorf("Expected page size from file, got %d", cfg.PageSize)
	}
	if cfg.Timeout != 5*time.Second {
		t.Errorf("Expected timeout from file, got %s", cfg.Timeout)
	}
}

func TestLoadBadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LIBROCLI_CONFIG", path)

	if _, err := Load(); err == nil {
		t.Error("Expected error for malformed config file")
	}
}

func TestLoadBadEnvValues(t *testing.T) {
	t.Setenv("LIBROCLI_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	t.Setenv("LIBROCLI_TIMEOUT", "not-a-duration")
	if _, err := Load(); err == nil {
		t.Error("Expected error for bad timeout")
	}
	t.Setenv("LIBROCLI_TIMEOUT", "")

	t.Setenv("LIBROCLI_PAGE_SIZE", "ten")
	if _, err := Load(); err == nil {
		t.Error("Expected error for bad page size")
	}
}
