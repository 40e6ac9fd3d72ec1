package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestLoader_CreatesDefaultConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yml")
	loader, err := NewLoaderWithPath(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be written: %v", err)
	}
	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("expected default base URL, got %s", cfg.API.BaseURL)
	}
	if !reflect.DeepEqual(cfg.List.PageSizes, []int{5, 10, 20, 50}) {
		t.Errorf("unexpected page sizes %v", cfg.List.PageSizes)
	}
	if cfg.List.SearchDebounce() != 500*time.Millisecond {
		t.Errorf("unexpected debounce %v", cfg.List.SearchDebounce())
	}
	if cfg.Display.DateFormat != "02/01/2006" {
		t.Errorf("unexpected date format %s", cfg.Display.DateFormat)
	}
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := []byte("api:\n  base_url: https://tasks.example.com/v1\nlist:\n  page_size: 7\n")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	loader, _ := NewLoaderWithPath(path)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://tasks.example.com/v1" {
		t.Errorf("unexpected base URL %s", cfg.API.BaseURL)
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Errorf("expected default timeout, got %d", cfg.API.TimeoutSeconds)
	}
	if !reflect.DeepEqual(cfg.List.PageSizes, []int{5, 7, 10, 20, 50}) {
		t.Errorf("expected configured page size added to the choices, got %v", cfg.List.PageSizes)
	}
	if len(cfg.Keybindings.Quit) == 0 {
		t.Error("expected default keybindings")
	}
}

func TestLoader_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	t.Setenv("MTODO_API_BASE_URL", "http://api.internal:8080")
	t.Setenv("MTODO_PAGE_SIZE", "20")
	t.Setenv("MTODO_PAGE_SIZES", "10, 20")
	t.Setenv("MTODO_LOG_LEVEL", "debug")

	loader, _ := NewLoaderWithPath(path)
	cfg, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://api.internal:8080" {
		t.Errorf("expected env base URL, got %s", cfg.API.BaseURL)
	}
	if cfg.List.PageSize != 20 || !reflect.DeepEqual(cfg.List.PageSizes, []int{10, 20}) {
		t.Errorf("unexpected list config %+v", cfg.List)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("expected debug level, got %s", cfg.Logging.Level)
	}

	// Overrides are not persisted.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	saved, err := Parse(data)
	if err != nil {
		t.Fatal(err)
	}
	if saved.API.BaseURL != DefaultBaseURL {
		t.Errorf("env override leaked into the file: %s", saved.API.BaseURL)
	}
}

func TestLoader_EnvInvalidInt(t *testing.T) {
	t.Setenv("MTODO_PAGE_SIZE", "many")
	loader, _ := NewLoaderWithPath(filepath.Join(t.TempDir(), "config.yml"))
	if _, err := loader.Load(); err == nil {
		t.Error("expected an error for a non-numeric page size")
	}
}

func TestNormalize_RejectsBadBaseURL(t *testing.T) {
	for _, raw := range []string{"localhost:3001", "ftp://x", "http://"} {
		cfg := Default()
		cfg.API.BaseURL = raw
		if err := cfg.Normalize(); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("base URL %q: expected ErrInvalidConfig, got %v", raw, err)
		}
	}
}

func TestLoader_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	loader, _ := NewLoaderWithPath(path)

	cfg := Default()
	cfg.API.Token = "secret"
	cfg.Display.DateFormat = "2006-01-02"
	if err := loader.Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := loader.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.API.Token != "secret" || loaded.Display.DateFormat != "2006-01-02" {
		t.Errorf("unexpected config %+v %+v", loaded.API, loaded.Display)
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("MTODO_TEST_DOTENV=from-file\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("MTODO_TEST_DOTENV") })

	if err := LoadDotEnv(envFile, filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("MTODO_TEST_DOTENV"); got != "from-file" {
		t.Errorf("expected value from .env, got %q", got)
	}
}
