// Package shell holds the process-wide state every staffdesk view shares:
// the theme mode and its styles, the query cache, the toast surface and the
// logger. cmd builds one Shell at startup and passes it down explicitly.
package shell

import (
	"sync"
	"time"

	"nathanbeddoewebdev/staffdesk/internal/swrcache"
	"nathanbeddoewebdev/staffdesk/internal/theme"
	"nathanbeddoewebdev/staffdesk/internal/toast"
	"nathanbeddoewebdev/staffdesk/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

// DefaultCachePolicy is the query cache configuration for a session. List
// data is served without refetching for 60 seconds, then served stale for up
// to an hour while a background refetch runs.
var DefaultCachePolicy = swrcache.Policy{FreshTTL: 60 * time.Second, MaxStale: time.Hour}

// ModeStore persists the chosen theme mode between runs.
type ModeStore interface {
	Get() (string, error)
	Set(mode string) error
	Remove() error
}

// DarkPreference reports whether the terminal prefers a dark palette.
type DarkPreference func() bool

// Options configures New. Zero values get production defaults.
type Options struct {
	Store          ModeStore
	DarkPreference DarkPreference

	// Cache is the shared query cache. When nil, one is created at
	// CacheDir (or swrcache.DefaultDir) with DefaultCachePolicy.
	Cache    *swrcache.Cache
	CacheDir string

	Logger *zap.Logger
	Toasts *toast.Surface

	// ApplyBackground sets the global dark-background attribute. It
	// defaults to lipgloss.SetHasDarkBackground.
	ApplyBackground func(dark bool)
}

// Shell is the shared application context.
type Shell struct {
	store  ModeStore
	cache  *swrcache.Cache
	toasts *toast.Surface
	logger *zap.Logger
	apply  func(dark bool)

	mu       sync.RWMutex
	mode     theme.Mode
	themes   map[theme.Mode]theme.Theme
	styles   map[theme.Mode]*styles.Styles
	nextSub  int
	watchers map[int]func(theme.Mode)
}

// New builds the shell. The initial mode is the persisted choice if one is
// stored and valid, else the terminal's dark preference, else light. The
// dark preference is only consulted when nothing is stored.
func New(opts Options) *Shell {
	s := &Shell{
		store:    opts.Store,
		cache:    opts.Cache,
		toasts:   opts.Toasts,
		logger:   opts.Logger,
		apply:    opts.ApplyBackground,
		themes:   make(map[theme.Mode]theme.Theme, 2),
		styles:   make(map[theme.Mode]*styles.Styles, 2),
		watchers: make(map[int]func(theme.Mode)),
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.toasts == nil {
		s.toasts = toast.NewSurface()
	}
	if s.apply == nil {
		s.apply = lipgloss.SetHasDarkBackground
	}
	if s.cache == nil {
		dir := opts.CacheDir
		if dir == "" {
			dir = swrcache.DefaultDir()
		}
		s.cache = swrcache.NewWithPolicy(dir, DefaultCachePolicy)
	}

	pref := opts.DarkPreference
	if pref == nil {
		pref = lipgloss.HasDarkBackground
	}
	s.mode = s.initialMode(pref)
	s.apply(s.mode.IsDark())
	s.logger.Debug("theme initialized", zap.String("mode", s.mode.String()))
	return s
}

func (s *Shell) initialMode(pref DarkPreference) theme.Mode {
	if s.store != nil {
		stored, err := s.store.Get()
		if err != nil {
			s.logger.Debug("theme store unavailable", zap.Error(err))
		} else if stored != "" {
			if m, perr := theme.ParseMode(stored); perr == nil {
				return m
			}
			s.logger.Debug("ignoring stored theme", zap.String("value", stored))
		}
	}
	if pref() {
		return theme.Dark
	}
	return theme.Light
}

// Cache returns the session's query cache. It is the same pointer for the
// life of the shell.
func (s *Shell) Cache() *swrcache.Cache { return s.cache }

// Toasts returns the toast surface.
func (s *Shell) Toasts() *toast.Surface { return s.toasts }

// Logger returns the session logger.
func (s *Shell) Logger() *zap.Logger { return s.logger }

// Mode returns the current theme mode.
func (s *Shell) Mode() theme.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// Theme returns the theme for the current mode. Repeated calls in the same
// mode return an identical value.
func (s *Shell) Theme() theme.Theme {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.themeLocked(s.mode)
}

// Styles returns lipgloss styles for the current mode, built once per mode.
func (s *Shell) Styles() *styles.Styles {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.styles[s.mode]; ok {
		return st
	}
	st := styles.New(s.themeLocked(s.mode))
	s.styles[s.mode] = st
	return st
}

func (s *Shell) themeLocked(m theme.Mode) theme.Theme {
	if t, ok := s.themes[m]; ok {
		return t
	}
	t := theme.New(m)
	s.themes[m] = t
	return t
}

// SetMode switches to m, persists it best-effort and notifies subscribers.
func (s *Shell) SetMode(m theme.Mode) {
	if m != theme.Dark {
		m = theme.Light
	}

	if s.store != nil {
		if err := s.store.Set(m.String()); err != nil {
			s.logger.Debug("failed to persist theme", zap.Error(err))
		}
	}
	s.switchTo(m)
}

// Toggle flips between light and dark and returns the new mode.
func (s *Shell) Toggle() theme.Mode {
	next := s.Mode().Toggle()
	s.SetMode(next)
	return next
}

// ResetMode forgets the persisted choice and falls back to pref (or the
// terminal's preference when pref is nil).
func (s *Shell) ResetMode(pref DarkPreference) theme.Mode {
	if s.store != nil {
		if err := s.store.Remove(); err != nil {
			s.logger.Debug("failed to clear theme", zap.Error(err))
		}
	}
	if pref == nil {
		pref = lipgloss.HasDarkBackground
	}
	m := theme.Light
	if pref() {
		m = theme.Dark
	}
	s.switchTo(m)
	return m
}

// switchTo applies m and notifies subscribers outside the lock.
func (s *Shell) switchTo(m theme.Mode) {
	s.mu.Lock()
	changed := s.mode != m
	s.mode = m
	watchers := make([]func(theme.Mode), 0, len(s.watchers))
	for _, fn := range s.watchers {
		watchers = append(watchers, fn)
	}
	s.mu.Unlock()

	s.apply(m.IsDark())
	if !changed {
		return
	}
	s.logger.Info("theme changed", zap.String("mode", m.String()))
	for _, fn := range watchers {
		fn(m)
	}
}

// Subscribe registers fn to be called after every mode change. The returned
// func removes the subscription.
func (s *Shell) Subscribe(fn func(theme.Mode)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.watchers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
}

// Notify shows a toast. It never blocks and is safe from any goroutine.
func (s *Shell) Notify(message string, kind toast.Kind) {
	s.toasts.Notify(message, kind)
}

// Close flushes the logger.
func (s *Shell) Close() {
	_ = s.logger.Sync()
}
