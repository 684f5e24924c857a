package config

import (
	"strings"
	"testing"
)

func TestLookup_Exists(t *testing.T) {
	spec := Lookup("api-url")
	if spec == nil {
		t.Fatal("expected to find key 'api-url', got nil")
	}
	if spec.Name != "api-url" {
		t.Errorf("expected Name %q, got %q", "api-url", spec.Name)
	}
}

func TestLookup_CaseInsensitive(t *testing.T) {
	spec := Lookup("API-URL")
	if spec == nil {
		t.Fatal("expected case-insensitive lookup to succeed")
	}
	if spec.Name != "api-url" {
		t.Errorf("expected Name %q, got %q", "api-url", spec.Name)
	}
}

func TestLookup_NotFound(t *testing.T) {
	spec := Lookup("nonexistent-key")
	if spec != nil {
		t.Errorf("expected nil for unknown key, got %+v", spec)
	}
}

func TestKeys_AllHaveGetAndSet(t *testing.T) {
	for _, k := range Keys {
		if k.Get == nil {
			t.Errorf("key %q has nil Get function", k.Name)
		}
		if k.Set == nil {
			t.Errorf("key %q has nil Set function", k.Name)
		}
		if k.Description == "" {
			t.Errorf("key %q has empty Description", k.Name)
		}
	}
}

func TestKeys_GetSetRoundtrip(t *testing.T) {
	values := map[string]string{
		"api-url":   "https://staff.example.com/api",
		"theme":     "dark",
		"log-level": "debug",
	}
	for _, k := range Keys {
		want, ok := values[k.Name]
		if !ok {
			t.Errorf("no roundtrip value for key %q", k.Name)
			continue
		}
		if k.Validate != nil {
			if err := k.Validate(want); err != nil {
				t.Errorf("key %q: Validate(%q) = %v", k.Name, want, err)
			}
		}
		cfg := &Config{}
		k.Set(cfg, want)
		if got := k.Get(cfg); got != want {
			t.Errorf("key %q: Set then Get = %q, want %q", k.Name, got, want)
		}
	}
}

func TestKeys_ValidateRejects(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"api-url", "not a url"},
		{"api-url", "ftp://example.com"},
		{"theme", "sepia"},
		{"theme", ""},
		{"log-level", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			spec := Lookup(tt.key)
			if spec == nil || spec.Validate == nil {
				t.Fatalf("key %q has no validator", tt.key)
			}
			if err := spec.Validate(tt.value); err == nil {
				t.Errorf("expected %q to be rejected for %s", tt.value, tt.key)
			}
		})
	}
}

func TestKeys_SetNormalizes(t *testing.T) {
	cfg := &Config{}
	Lookup("api-url").Set(cfg, " https://staff.example.com/api/ ")
	Lookup("theme").Set(cfg, "DARK")
	Lookup("log-level").Set(cfg, "WARN")

	want := Config{APIURL: "https://staff.example.com/api", Theme: "dark", LogLevel: "warn"}
	if *cfg != want {
		t.Errorf("normalized config = %+v, want %+v", *cfg, want)
	}
}

func TestKeyNames(t *testing.T) {
	names := KeyNames()
	if len(names) != len(Keys) {
		t.Fatalf("expected %d names, got %d", len(Keys), len(names))
	}
	for i, name := range names {
		if name != Keys[i].Name {
			t.Errorf("index %d: expected %q, got %q", i, Keys[i].Name, name)
		}
	}
}

func TestKeysHelp_ContainsAllKeys(t *testing.T) {
	help := KeysHelp()
	if !strings.Contains(help, "Available keys:") {
		t.Error("expected 'Available keys:' header in help output")
	}
	for _, k := range Keys {
		if !strings.Contains(help, k.Name) {
			t.Errorf("expected key %q in help output", k.Name)
		}
		if !strings.Contains(help, k.Description) {
			t.Errorf("expected description %q in help output", k.Description)
		}
	}
}

func TestLookup_ThemeKey(t *testing.T) {
	spec := Lookup("theme")
	if spec == nil {
		t.Fatal("expected theme key to be registered")
	}
	cfg := &Config{}
	spec.Set(cfg, "dark")
	if cfg.Theme != "dark" {
		t.Errorf("expected Theme to be set, got %q", cfg.Theme)
	}
}
