package prefs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	// ErrStorageRead marks a failed backend read; the field default is used instead.
	ErrStorageRead = errors.New("preference storage read failed")
	// ErrStorageWrite marks a failed backend write; the in-memory value is kept.
	ErrStorageWrite = errors.New("preference storage write failed")
)

// Backend is the key-value device store preferences persist to.
type Backend interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for storage failures.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAppearanceDetector sets how ThemeAuto is resolved.
func WithAppearanceDetector(detect AppearanceDetector) Option {
	return func(s *Store) {
		s.detect = detect
	}
}

// WithWriteTimeout bounds each backend write. Zero means no bound.
func WithWriteTimeout(d time.Duration) Option {
	return func(s *Store) {
		s.writeTimeout = d
	}
}

// Store holds the current PreferenceSet. Setters update memory synchronously
// and persist in the background; readers always see the latest setter call.
type Store struct {
	backend      Backend
	logger       *log.Logger
	detect       AppearanceDetector
	writeTimeout time.Duration
	writes       *writeQueue

	mu          sync.RWMutex
	current     PreferenceSet
	subscribers map[int]func(PreferenceSet)
	nextSub     int
	lastSyncErr error

	// Sets waiting for delivery, in mutation order. One caller at a time
	// delivers them; setters called from a subscriber only append.
	notes      []PreferenceSet
	delivering bool
}

// NewStore creates a store holding the defaults. Call Initialize to load
// persisted values.
func NewStore(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:     backend,
		logger:      log.New(io.Discard),
		current:     Defaults(),
		subscribers: make(map[int]func(PreferenceSet)),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.writes = newWriteQueue(s.persist, s.recordWrite)
	s.writes.timeout = s.writeTimeout
	return s
}

// Initialize loads each field independently from the backend. Missing,
// invalid or unreadable fields fall back to their defaults. It never fails.
func (s *Store) Initialize(ctx context.Context) PreferenceSet {
	def := Defaults()
	loaded := PreferenceSet{
		ThemeMode:     loadField(ctx, s, KeyTheme, ParseThemeMode, def.ThemeMode),
		AccentScheme:  loadField(ctx, s, KeyColorScheme, ParseAccentScheme, def.AccentScheme),
		FontSizeTier:  loadField(ctx, s, KeyFontSize, ParseFontSizeTier, def.FontSizeTier),
		LayoutDensity: loadField(ctx, s, KeyLayoutDensity, ParseLayoutDensity, def.LayoutDensity),
	}

	s.mu.Lock()
	s.current = loaded
	s.notes = append(s.notes, loaded)
	s.mu.Unlock()

	s.deliver()
	s.logger.Debug("preferences loaded",
		"theme", loaded.ThemeMode,
		"colorScheme", loaded.AccentScheme,
		"fontSize", loaded.FontSizeTier,
		"layoutDensity", loaded.LayoutDensity,
	)
	return loaded
}

func loadField[T ~string](ctx context.Context, s *Store, key string, parse func(string) (T, error), def T) T {
	raw, ok, err := s.backend.Get(ctx, key)
	if err != nil {
		s.logger.Warn("reading preference", "key", key, "error", fmt.Errorf("%w: %w", ErrStorageRead, err))
		return def
	}
	if !ok {
		return def
	}
	value, err := parse(raw)
	if err != nil {
		s.logger.Warn("ignoring stored preference", "key", key, "value", raw, "error", err)
		return def
	}
	return value
}

// Preferences returns the current preference set.
func (s *Store) Preferences() PreferenceSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// PresentationProfile derives the profile from the current preferences.
func (s *Store) PresentationProfile() PresentationProfile {
	return Derive(s.Preferences(), s.detect)
}

// SetThemeMode validates and applies a theme mode.
func (s *Store) SetThemeMode(mode ThemeMode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	s.apply(KeyTheme, string(mode), func(p *PreferenceSet) { p.ThemeMode = mode })
	return nil
}

// SetAccentScheme validates and applies an accent scheme.
func (s *Store) SetAccentScheme(scheme AccentScheme) error {
	if err := scheme.Validate(); err != nil {
		return err
	}
	s.apply(KeyColorScheme, string(scheme), func(p *PreferenceSet) { p.AccentScheme = scheme })
	return nil
}

// SetFontSizeTier validates and applies a font size tier.
func (s *Store) SetFontSizeTier(tier FontSizeTier) error {
	if err := tier.Validate(); err != nil {
		return err
	}
	s.apply(KeyFontSize, string(tier), func(p *PreferenceSet) { p.FontSizeTier = tier })
	return nil
}

// SetLayoutDensity validates and applies a layout density.
func (s *Store) SetLayoutDensity(density LayoutDensity) error {
	if err := density.Validate(); err != nil {
		return err
	}
	s.apply(KeyLayoutDensity, string(density), func(p *PreferenceSet) { p.LayoutDensity = density })
	return nil
}

// Set applies a raw value by storage key.
func (s *Store) Set(key, raw string) error {
	switch key {
	case KeyTheme:
		v, err := ParseThemeMode(raw)
		if err != nil {
			return err
		}
		return s.SetThemeMode(v)
	case KeyColorScheme:
		v, err := ParseAccentScheme(raw)
		if err != nil {
			return err
		}
		return s.SetAccentScheme(v)
	case KeyFontSize:
		v, err := ParseFontSizeTier(raw)
		if err != nil {
			return err
		}
		return s.SetFontSizeTier(v)
	case KeyLayoutDensity:
		v, err := ParseLayoutDensity(raw)
		if err != nil {
			return err
		}
		return s.SetLayoutDensity(v)
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidPreferenceValue, key)
	}
}

// Reset restores every field to its default through the setters.
func (s *Store) Reset() {
	def := Defaults()
	_ = s.SetThemeMode(def.ThemeMode)
	_ = s.SetAccentScheme(def.AccentScheme)
	_ = s.SetFontSizeTier(def.FontSizeTier)
	_ = s.SetLayoutDensity(def.LayoutDensity)
}

// Subscribe registers fn to receive every new preference set. The returned
// func removes the subscription.
func (s *Store) Subscribe(fn func(PreferenceSet)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// LastSyncError returns the most recent write failure, or nil once a later
// write succeeded.
func (s *Store) LastSyncError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastSyncErr
}

// Flush waits for queued writes to reach the backend.
func (s *Store) Flush(ctx context.Context) error {
	return s.writes.wait(ctx)
}

// Close flushes pending writes and stops persisting further changes.
func (s *Store) Close(ctx context.Context) error {
	err := s.Flush(ctx)
	s.writes.close()
	return err
}

func (s *Store) apply(key, value string, mutate func(*PreferenceSet)) {
	s.mu.Lock()
	mutate(&s.current)
	s.notes = append(s.notes, s.current)
	// Enqueue under mu so backend writes follow the order of mutations.
	queued := s.writes.enqueue(key, value)
	s.mu.Unlock()

	if !queued {
		s.logger.Warn("store closed, preference not persisted", "key", key, "value", value)
	}
	s.deliver()
}

// deliver hands queued sets to subscribers in mutation order. If another
// call is already delivering it returns at once and that call delivers.
func (s *Store) deliver() {
	s.mu.Lock()
	if s.delivering {
		s.mu.Unlock()
		return
	}
	s.delivering = true
	for len(s.notes) > 0 {
		set := s.notes[0]
		s.notes = s.notes[1:]
		subs := s.subscriberList()
		s.mu.Unlock()

		for _, fn := range subs {
			fn(set)
		}

		s.mu.Lock()
	}
	s.delivering = false
	s.mu.Unlock()
}

func (s *Store) persist(ctx context.Context, key, value string) error {
	return s.backend.Set(ctx, key, value)
}

func (s *Store) recordWrite(key, value string, err error) {
	if err != nil {
		err = fmt.Errorf("%w: %s: %w", ErrStorageWrite, key, err)
		s.logger.Error("saving preference", "key", key, "value", value, "error", err)
	}
	s.mu.Lock()
	s.lastSyncErr = err
	s.mu.Unlock()
}

// subscriberList copies the subscribers; the caller holds mu.
func (s *Store) subscriberList() []func(PreferenceSet) {
	subs := make([]func(PreferenceSet), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	return subs
}
