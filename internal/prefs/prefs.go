// ABOUTME: Typed user preferences over a key-value settings store.
// ABOUTME: Each channel is a load/save pair; loading an unset key persists its default.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/2389-research/minidiary/internal/models"
	"github.com/2389-research/minidiary/internal/platform"
	"github.com/2389-research/minidiary/internal/settings"
)

// Keys in the settings document.
const (
	KeyDir           = "filePath"
	KeyFutureEntries = "allowFutureEntries"
	KeyTheme         = "theme"
)

// Defaults that do not depend on the platform.
const (
	DefaultAllowFutureEntries = false
	DefaultTheme              = models.ThemeLight
)

// Channel names accepted by GetByName and SetByName.
const (
	NameDir           = "dir"
	NameFutureEntries = "future-entries"
	NameTheme         = "theme"
)

// Names lists the preference channels in display order.
var Names = []string{NameDir, NameFutureEntries, NameTheme}

var (
	// ErrConfigCorruption marks a stored value that does not match its
	// channel's type.
	ErrConfigCorruption = errors.New("config corruption")

	// ErrInvalidTheme is returned when saving a theme outside auto/light/dark.
	ErrInvalidTheme = errors.New("invalid theme preference")

	// ErrUnknownPreference is returned for channel names not in Names.
	ErrUnknownPreference = errors.New("unknown preference")
)

// CorruptionError describes a stored preference value of the wrong type.
type CorruptionError struct {
	Key   string
	Value string
	Err   error
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("%s: preference %q holds %s: %v", ErrConfigCorruption, e.Key, e.Value, e.Err)
}

func (e *CorruptionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrConfigCorruption) match.
func (e *CorruptionError) Is(target error) bool { return target == ErrConfigCorruption }

// Preferences is a snapshot of every channel.
type Preferences struct {
	Dir                string           `json:"filePath"`
	AllowFutureEntries bool             `json:"allowFutureEntries"`
	Theme              models.ThemePref `json:"theme"`
}

// Service exposes the preference channels. Construct one at startup and pass
// it to every consumer.
type Service struct {
	store      settings.Store
	platform   platform.Info
	defaultDir func() (string, error)
	logger     *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger used to report initialized defaults.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithDefaultDir overrides the default diary directory, which is otherwise
// the platform user data directory.
func WithDefaultDir(dir string) Option {
	return func(s *Service) {
		s.defaultDir = func() (string, error) { return dir, nil }
	}
}

// New creates a preferences service over store.
func New(store settings.Store, info platform.Info, opts ...Option) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("settings store is required")
	}
	if info == nil {
		info = platform.Host()
	}

	s := &Service{
		store:      store,
		platform:   info,
		defaultDir: platform.UserDataDir,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetOrInitialize returns the raw value stored under key. When the key is
// unset, def is persisted first and returned with initialized set, so that
// the store afterwards holds an explicit value.
func (s *Service) GetOrInitialize(key string, def any) (json.RawMessage, bool, error) {
	return s.getOrInitialize(key, func() (any, error) { return def, nil })
}

func (s *Service) getOrInitialize(key string, def func() (any, error)) (json.RawMessage, bool, error) {
	ok, err := s.store.Has(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check preference %s: %w", key, err)
	}
	if ok {
		raw, err := s.store.Get(key)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read preference %s: %w", key, err)
		}
		return raw, false, nil
	}

	value, err := def()
	if err != nil {
		return nil, false, fmt.Errorf("failed to compute default for %s: %w", key, err)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return nil, false, fmt.Errorf("failed to encode default for %s: %w", key, err)
	}
	if err := s.store.Set(key, value); err != nil {
		return nil, false, fmt.Errorf("failed to store default for %s: %w", key, err)
	}

	s.logger.Info("preference initialized", "key", key, "value", string(raw))
	return raw, true, nil
}

// LoadDir returns the directory the diary is stored in.
func (s *Service) LoadDir() (string, error) {
	raw, _, err := s.getOrInitialize(KeyDir, func() (any, error) { return s.defaultDir() })
	if err != nil {
		return "", err
	}
	var dir string
	if err := json.Unmarshal(raw, &dir); err != nil {
		return "", corrupt(KeyDir, raw, err)
	}
	if strings.TrimSpace(dir) == "" {
		return "", corrupt(KeyDir, raw, errors.New("empty path"))
	}
	return dir, nil
}

// SaveDir updates the diary directory.
func (s *Service) SaveDir(dir string) error {
	return s.set(KeyDir, dir)
}

// LoadFutureEntries returns whether entries may be written for future days.
func (s *Service) LoadFutureEntries() (bool, error) {
	raw, _, err := s.GetOrInitialize(KeyFutureEntries, DefaultAllowFutureEntries)
	if err != nil {
		return false, err
	}
	var allow *bool
	if err := json.Unmarshal(raw, &allow); err != nil {
		return false, corrupt(KeyFutureEntries, raw, err)
	}
	if allow == nil {
		return false, corrupt(KeyFutureEntries, raw, errors.New("null value"))
	}
	return *allow, nil
}

// SaveFutureEntries updates the future entries preference.
func (s *Service) SaveFutureEntries(allow bool) error {
	return s.set(KeyFutureEntries, allow)
}

// DefaultThemePref is "auto" on systems with a dark mode to follow, else "light".
func (s *Service) DefaultThemePref() models.ThemePref {
	if platform.AtLeastMojave(s.platform) {
		return models.ThemeAuto
	}
	return DefaultTheme
}

// LoadTheme returns the theme preference. ThemeAuto follows the system theme.
func (s *Service) LoadTheme() (models.ThemePref, error) {
	raw, _, err := s.GetOrInitialize(KeyTheme, s.DefaultThemePref())
	if err != nil {
		return "", err
	}
	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return "", corrupt(KeyTheme, raw, err)
	}
	theme, ok := models.ParseThemePref(str)
	if !ok {
		return "", corrupt(KeyTheme, raw, fmt.Errorf("want one of %v", models.ThemePrefs))
	}
	return theme, nil
}

// SaveTheme updates the theme preference.
func (s *Service) SaveTheme(theme models.ThemePref) error {
	if !theme.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	return s.set(KeyTheme, theme)
}

// Load returns every preference, initializing unset ones.
func (s *Service) Load() (Preferences, error) {
	var p Preferences
	var err error
	if p.Dir, err = s.LoadDir(); err != nil {
		return p, err
	}
	if p.AllowFutureEntries, err = s.LoadFutureEntries(); err != nil {
		return p, err
	}
	if p.Theme, err = s.LoadTheme(); err != nil {
		return p, err
	}
	return p, nil
}

// Save writes every preference in p.
func (s *Service) Save(p Preferences) error {
	if err := s.SaveDir(p.Dir); err != nil {
		return err
	}
	if err := s.SaveFutureEntries(p.AllowFutureEntries); err != nil {
		return err
	}
	return s.SaveTheme(p.Theme)
}

// GetByName returns the display form of the named preference.
func (s *Service) GetByName(name string) (string, error) {
	switch name {
	case NameDir:
		return s.LoadDir()
	case NameFutureEntries:
		allow, err := s.LoadFutureEntries()
		if err != nil {
			return "", err
		}
		return strconv.FormatBool(allow), nil
	case NameTheme:
		theme, err := s.LoadTheme()
		return string(theme), err
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreference, name)
	}
}

// SetByName parses value for the named preference and saves it.
func (s *Service) SetByName(name, value string) error {
	switch name {
	case NameDir:
		if strings.TrimSpace(value) == "" {
			return fmt.Errorf("diary directory cannot be empty")
		}
		return s.SaveDir(value)
	case NameFutureEntries:
		allow, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, name, err)
		}
		return s.SaveFutureEntries(allow)
	case NameTheme:
		return s.SaveTheme(models.ThemePref(value))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPreference, name)
	}
}

func (s *Service) set(key string, value any) error {
	if err := s.store.Set(key, value); err != nil {
		return fmt.Errorf("failed to save preference %s: %w", key, err)
	}
	return nil
}

func corrupt(key string, raw json.RawMessage, err error) error {
	return &CorruptionError{Key: key, Value: string(raw), Err: err}
}
