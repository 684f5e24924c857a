package config

// ThemeStore persists the theme mode in the config file. It is the single
// key client-side store used by the app shell.
type ThemeStore struct {
	path string
}

// NewThemeStore returns a store over the default config path.
func NewThemeStore() *ThemeStore {
	return &ThemeStore{}
}

// NewThemeStoreAt returns a store over the config file at path.
func NewThemeStoreAt(path string) *ThemeStore {
	return &ThemeStore{path: path}
}

// Get returns the stored mode, or "" if none has been saved.
func (s *ThemeStore) Get() (string, error) {
	cfg, err := loadFrom(s.path)
	if err != nil {
		return "", err
	}
	return cfg.Theme, nil
}

// Set stores mode, preserving the other config values.
func (s *ThemeStore) Set(mode string) error {
	cfg, err := loadFrom(s.path)
	if err != nil {
		return err
	}
	cfg.Theme = mode
	return cfg.saveTo(s.path)
}

// Remove clears the stored mode.
func (s *ThemeStore) Remove() error {
	return s.Set("")
}
