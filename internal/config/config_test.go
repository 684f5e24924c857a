package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("expected zero config (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "staffdesk", "config.json")

	want := &Config{APIURL: "https://hr.example.com/api", Theme: "dark", LogLevel: "debug"}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := filepath.Join(dir, "config.json")

	cfg := &Config{Theme: "light"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://env.example.com/api/")
	t.Setenv(EnvLogLevel, "")

	rt := Resolve(&Config{APIURL: "https://file.example.com", LogLevel: "warn"})

	want := Runtime{APIURL: "https://env.example.com/api", LogLevel: "warn"}
	if diff := cmp.Diff(want, rt); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_Defaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvLogLevel, "")

	rt := Resolve(nil)

	want := Runtime{APIURL: DefaultAPIURL, LogLevel: "info"}
	if diff := cmp.Diff(want, rt); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestThemeStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := (&Config{APIURL: "https://keep.example.com"}).SaveTo(path); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	store := NewThemeStoreAt(path)
	if got, err := store.Get(); err != nil || got != "" {
		t.Fatalf("Get before Set = %q, %v; want empty", got, err)
	}

	if err := store.Set("dark"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := store.Get(); got != "dark" {
		t.Errorf("Get = %q, want dark", got)
	}

	cfg, _ := LoadFrom(path)
	if cfg.APIURL != "https://keep.example.com" {
		t.Errorf("Set clobbered api url: %q", cfg.APIURL)
	}

	if err := store.Remove(); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if got, _ := store.Get(); got != "" {
		t.Errorf("Get after Remove = %q, want empty", got)
	}
}

func TestThemeStore_UsesPathOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	SetPath(path)
	t.Cleanup(ResetPath)

	if err := NewThemeStore().Set("light"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Theme != "light" {
		t.Errorf("Theme = %q, want light", cfg.Theme)
	}
}
