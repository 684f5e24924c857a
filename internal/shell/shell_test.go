package shell

import (
	"errors"
	"path/filepath"
	"testing"

	"nathanbeddoewebdev/staffdesk/internal/config"
	"nathanbeddoewebdev/staffdesk/internal/theme"
	"nathanbeddoewebdev/staffdesk/internal/toast"

	"github.com/google/go-cmp/cmp"
)

type memStore struct {
	value  string
	getErr error
	sets   []string
}

func (m *memStore) Get() (string, error) { return m.value, m.getErr }

func (m *memStore) Set(mode string) error {
	m.sets = append(m.sets, mode)
	m.value = mode
	return nil
}

func (m *memStore) Remove() error {
	m.value = ""
	return nil
}

type bgRecorder struct{ calls []bool }

func (b *bgRecorder) apply(dark bool) { b.calls = append(b.calls, dark) }

func (b *bgRecorder) last() bool { return b.calls[len(b.calls)-1] }

func newTestShell(t *testing.T, store ModeStore, prefersDark bool) (*Shell, *bgRecorder) {
	t.Helper()
	bg := &bgRecorder{}
	sh := New(Options{
		Store:           store,
		DarkPreference:  func() bool { return prefersDark },
		CacheDir:        t.TempDir(),
		ApplyBackground: bg.apply,
	})
	return sh, bg
}

func TestNew_UsesDarkPreferenceWhenNothingStored(t *testing.T) {
	sh, bg := newTestShell(t, &memStore{}, true)
	if sh.Mode() != theme.Dark {
		t.Errorf("mode = %s, want dark", sh.Mode())
	}
	if !bg.last() {
		t.Error("expected dark background to be applied")
	}

	sh, _ = newTestShell(t, &memStore{}, false)
	if sh.Mode() != theme.Light {
		t.Errorf("mode = %s, want light", sh.Mode())
	}
}

func TestNew_StoredModeWinsOverPreference(t *testing.T) {
	prefCalled := false
	sh := New(Options{
		Store:           &memStore{value: "light"},
		DarkPreference:  func() bool { prefCalled = true; return true },
		CacheDir:        t.TempDir(),
		ApplyBackground: func(bool) {},
	})
	if sh.Mode() != theme.Light {
		t.Errorf("mode = %s, want light", sh.Mode())
	}
	if prefCalled {
		t.Error("dark preference must not be consulted when a mode is stored")
	}
}

func TestNew_StoreErrorFallsBack(t *testing.T) {
	sh, _ := newTestShell(t, &memStore{getErr: errors.New("disk on fire")}, true)
	if sh.Mode() != theme.Dark {
		t.Errorf("mode = %s, want dark fallback", sh.Mode())
	}
}

func TestNew_InvalidStoredValueFallsBack(t *testing.T) {
	sh, _ := newTestShell(t, &memStore{value: "sepia"}, false)
	if sh.Mode() != theme.Light {
		t.Errorf("mode = %s, want light", sh.Mode())
	}
}

func TestNew_NilStore(t *testing.T) {
	sh, _ := newTestShell(t, nil, true)
	if sh.Mode() != theme.Dark {
		t.Errorf("mode = %s, want dark", sh.Mode())
	}
	sh.Toggle()
	if sh.Mode() != theme.Light {
		t.Errorf("toggle without a store should still switch, got %s", sh.Mode())
	}
}

func TestToggle_PersistsAndApplies(t *testing.T) {
	store := &memStore{}
	sh, bg := newTestShell(t, store, false)

	if got := sh.Toggle(); got != theme.Dark {
		t.Fatalf("Toggle = %s, want dark", got)
	}
	if diff := cmp.Diff([]string{"dark"}, store.sets); diff != "" {
		t.Errorf("persisted modes mismatch (-want +got):\n%s", diff)
	}
	if !bg.last() {
		t.Error("expected dark background after toggle")
	}
	if sh.Theme().Mode != theme.Dark {
		t.Errorf("theme mode = %s", sh.Theme().Mode)
	}

	sh.Toggle()
	if bg.last() {
		t.Error("expected light background after second toggle")
	}
}

func TestToggle_PersistedAcrossRestart(t *testing.T) {
	store := config.NewThemeStoreAt(filepath.Join(t.TempDir(), "config.json"))

	first := New(Options{Store: store, DarkPreference: func() bool { return false }, CacheDir: t.TempDir(), ApplyBackground: func(bool) {}})
	first.Toggle()

	second := New(Options{
		Store: store,
		DarkPreference: func() bool {
			t.Error("preference consulted despite a persisted choice")
			return false
		},
		CacheDir:        t.TempDir(),
		ApplyBackground: func(bool) {},
	})
	if second.Mode() != theme.Dark {
		t.Errorf("restarted mode = %s, want dark", second.Mode())
	}
}

func TestThemeAndStyles_Memoized(t *testing.T) {
	sh, _ := newTestShell(t, &memStore{}, false)

	if diff := cmp.Diff(sh.Theme(), sh.Theme()); diff != "" {
		t.Errorf("Theme not stable:\n%s", diff)
	}
	lightStyles := sh.Styles()
	if sh.Styles() != lightStyles {
		t.Error("Styles should be memoized per mode")
	}

	sh.Toggle()
	if sh.Styles() == lightStyles {
		t.Error("dark mode should use different styles")
	}
	sh.Toggle()
	if sh.Styles() != lightStyles {
		t.Error("returning to light should reuse the memoized styles")
	}
}

func TestCache_IdentityStable(t *testing.T) {
	sh, _ := newTestShell(t, &memStore{}, false)
	c := sh.Cache()
	if c == nil {
		t.Fatal("expected a cache")
	}
	sh.Toggle()
	if sh.Cache() != c {
		t.Error("cache identity changed")
	}
	if diff := cmp.Diff(DefaultCachePolicy, c.Policy()); diff != "" {
		t.Errorf("cache policy mismatch (-want +got):\n%s", diff)
	}
}

func TestSubscribe(t *testing.T) {
	sh, _ := newTestShell(t, &memStore{}, false)

	var got []theme.Mode
	unsubscribe := sh.Subscribe(func(m theme.Mode) { got = append(got, m) })

	sh.Toggle()
	sh.SetMode(theme.Dark) // no change, no notification
	sh.Toggle()
	unsubscribe()
	sh.Toggle()

	want := []theme.Mode{theme.Dark, theme.Light}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}

func TestResetMode(t *testing.T) {
	store := &memStore{value: "dark"}
	sh, _ := newTestShell(t, store, false)

	if got := sh.ResetMode(func() bool { return false }); got != theme.Light {
		t.Errorf("ResetMode = %s, want light", got)
	}
	if store.value != "" {
		t.Errorf("stored value = %q, want cleared", store.value)
	}
}

func TestNotify(t *testing.T) {
	sh, _ := newTestShell(t, &memStore{}, false)

	sh.Notify("Employee created successfully", toast.Success)

	active := sh.Toasts().Active()
	if len(active) != 1 {
		t.Fatalf("expected 1 toast, got %d", len(active))
	}
	if active[0].Kind != toast.Success || active[0].Message != "Employee created successfully" {
		t.Errorf("unexpected toast %+v", active[0])
	}
	sh.Close()
}
