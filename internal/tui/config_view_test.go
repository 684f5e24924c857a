package tui

import (
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/staffdesk/internal/config"
	"nathanbeddoewebdev/staffdesk/internal/shell"
	"nathanbeddoewebdev/staffdesk/internal/theme"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestConfigView(t *testing.T) (configViewModel, *shell.Shell) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	sh := shell.New(shell.Options{
		Store:           config.NewThemeStore(),
		DarkPreference:  func() bool { return false },
		CacheDir:        t.TempDir(),
		ApplyBackground: func(bool) {},
	})
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	m := newConfigViewModel(sh, cfg)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return updated.(configViewModel), sh
}

func updateConfigView(m configViewModel, msg tea.Msg) (configViewModel, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(configViewModel), cmd
}

// editKey moves the cursor to name and opens the editor with value.
func editKey(t *testing.T, m configViewModel, name, value string) configViewModel {
	t.Helper()
	for m.keys[m.cursor].Name != name {
		if m.cursor == len(m.keys)-1 {
			t.Fatalf("key %q not found", name)
		}
		m, _ = updateConfigView(m, key("j"))
	}
	m, _ = updateConfigView(m, key("e"))
	if !m.editing {
		t.Fatal("expected edit mode")
	}
	m.editor.SetValue(value)
	return m
}

func TestConfigView_SaveThemeAppliesMode(t *testing.T) {
	m, sh := newTestConfigView(t)
	if sh.Mode() != theme.Light {
		t.Fatalf("initial mode = %s, want light", sh.Mode())
	}

	m = editKey(t, m, "theme", "Dark")
	m, cmd := updateConfigView(m, key("enter"))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	m, _ = updateConfigView(m, cmd())

	if m.editing || m.isError {
		t.Errorf("expected saved state, got editing=%v status=%q", m.editing, m.status)
	}
	if sh.Mode() != theme.Dark {
		t.Errorf("shell mode = %s, want dark", sh.Mode())
	}
	if m.styles != sh.Styles() {
		t.Error("view should pick up the dark styles")
	}
	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Theme != "dark" {
		t.Errorf("saved theme = %q, want dark", cfg.Theme)
	}
}

func TestConfigView_RejectsInvalidValue(t *testing.T) {
	m, _ := newTestConfigView(t)

	m = editKey(t, m, "api-url", "ftp://staff.example.com")
	m, cmd := updateConfigView(m, key("enter"))

	if cmd != nil {
		t.Error("invalid value must not be saved")
	}
	if !m.editing || !m.isError || !strings.Contains(m.status, "http or https") {
		t.Errorf("expected inline error, got editing=%v status=%q", m.editing, m.status)
	}
}

func TestConfigView_EmptyValueClearsKey(t *testing.T) {
	m, _ := newTestConfigView(t)
	m.cfg.LogLevel = "debug"

	m = editKey(t, m, "log-level", "")
	m, cmd := updateConfigView(m, key("enter"))
	if cmd == nil {
		t.Fatal("expected save command")
	}
	updateConfigView(m, cmd())

	cfg, err := config.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "" {
		t.Errorf("log level should be cleared, got %q", cfg.LogLevel)
	}
}

func TestConfigView_RendersKeys(t *testing.T) {
	m, _ := newTestConfigView(t)

	view := m.View()
	for _, name := range config.KeyNames() {
		if !strings.Contains(view, name) {
			t.Errorf("expected key %q in view", name)
		}
	}
}
