package prefs_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prosecraft/prosecraft/internal/prefs"
)

type fakeBackend struct {
	mu      sync.Mutex
	values  map[string]string
	readErr map[string]error
	setErr  error
	writes  []string

	entered chan struct{}
	release chan struct{}
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		values:  map[string]string{},
		readErr: map[string]error{},
	}
}

func (f *fakeBackend) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.readErr[key]; err != nil {
		return "", false, err
	}
	v, ok := f.values[key]
	return v, ok, nil
}

func (f *fakeBackend) Set(_ context.Context, key, value string) error {
	if f.entered != nil {
		select {
		case f.entered <- struct{}{}:
		default:
		}
	}
	if f.release != nil {
		<-f.release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.values[key] = value
	f.writes = append(f.writes, key+"="+value)
	return nil
}

func (f *fakeBackend) value(key string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values[key]
}

func (f *fakeBackend) writeLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.writes...)
}

func flush(t *testing.T, s *prefs.Store) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Flush(ctx))
}

func TestStore_InitializeEmptyBackendYieldsDefaults(t *testing.T) {
	s := prefs.NewStore(newFakeBackend())

	got := s.Initialize(context.Background())

	assert.Equal(t, prefs.Defaults(), got)
	assert.Equal(t, prefs.PreferenceSet{
		ThemeMode:     prefs.ThemeDark,
		AccentScheme:  prefs.AccentCyan,
		FontSizeTier:  prefs.FontMedium,
		LayoutDensity: prefs.DensityComfortable,
	}, s.Preferences())
}

func TestStore_InitializeUsesStoredValues(t *testing.T) {
	backend := newFakeBackend()
	backend.values[prefs.KeyTheme] = "light"
	backend.values[prefs.KeyColorScheme] = "orange"
	backend.values[prefs.KeyFontSize] = "small"
	backend.values[prefs.KeyLayoutDensity] = "spacious"

	got := prefs.NewStore(backend).Initialize(context.Background())

	assert.Equal(t, prefs.ThemeLight, got.ThemeMode)
	assert.Equal(t, prefs.AccentOrange, got.AccentScheme)
	assert.Equal(t, prefs.FontSmall, got.FontSizeTier)
	assert.Equal(t, prefs.DensitySpacious, got.LayoutDensity)
}

func TestStore_InitializeFieldsAreIndependent(t *testing.T) {
	tests := []struct {
		name  string
		setup func(b *fakeBackend)
	}{
		{
			name:  "corrupt font size",
			setup: func(b *fakeBackend) { b.values[prefs.KeyFontSize] = "gigantic" },
		},
		{
			name:  "missing font size",
			setup: func(b *fakeBackend) { delete(b.values, prefs.KeyFontSize) },
		},
		{
			name:  "unreadable font size",
			setup: func(b *fakeBackend) { b.readErr[prefs.KeyFontSize] = errors.New("disk on fire") },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backend := newFakeBackend()
			backend.values[prefs.KeyTheme] = "light"
			backend.values[prefs.KeyColorScheme] = "pink"
			backend.values[prefs.KeyFontSize] = "large"
			tt.setup(backend)

			got := prefs.NewStore(backend).Initialize(context.Background())

			assert.Equal(t, prefs.ThemeLight, got.ThemeMode)
			assert.Equal(t, prefs.AccentPink, got.AccentScheme)
			assert.Equal(t, prefs.FontMedium, got.FontSizeTier)
			assert.Equal(t, prefs.DensityComfortable, got.LayoutDensity)
		})
	}
}

func TestStore_SettersReflectInProfile(t *testing.T) {
	for _, mode := range []prefs.ThemeMode{prefs.ThemeDark, prefs.ThemeLight} {
		s := prefs.NewStore(newFakeBackend())
		require.NoError(t, s.SetThemeMode(mode))
		assert.Equal(t, mode, s.PresentationProfile().Mode)
	}

	for _, scheme := range prefs.AccentSchemes() {
		s := prefs.NewStore(newFakeBackend())
		require.NoError(t, s.SetAccentScheme(scheme))
		assert.Equal(t, prefs.AccentColor(scheme), s.PresentationProfile().Colors.Primary)
	}

	for _, tier := range prefs.FontSizeTiers() {
		s := prefs.NewStore(newFakeBackend())
		require.NoError(t, s.SetFontSizeTier(tier))
		assert.Equal(t, prefs.FontSizesFor(tier), s.PresentationProfile().FontSizes)
	}

	for _, density := range prefs.LayoutDensities() {
		s := prefs.NewStore(newFakeBackend())
		require.NoError(t, s.SetLayoutDensity(density))
		assert.Equal(t, prefs.SpacingFor(density), s.PresentationProfile().Spacing)
	}
}

func TestStore_SetAccentSchemePurple(t *testing.T) {
	s := prefs.NewStore(newFakeBackend())

	require.NoError(t, s.SetAccentScheme(prefs.AccentPurple))

	assert.Equal(t, "#9C27B0", s.PresentationProfile().Colors.Primary)
}

func TestStore_LargeFontKeepsPalette(t *testing.T) {
	s := prefs.NewStore(newFakeBackend())
	s.Initialize(context.Background())
	before := s.PresentationProfile()

	require.NoError(t, s.SetFontSizeTier(prefs.FontLarge))

	after := s.PresentationProfile()
	assert.Equal(t, prefs.FontSizeScale{Small: 16, Medium: 18, Large: 20}, after.FontSizes)
	assert.Equal(t, before.Colors, after.Colors)
	assert.Equal(t, "#00BCD4", after.Colors.Primary)
	assert.Equal(t, "#1A1A2E", after.Colors.Background)
	assert.Equal(t, 18, after.InputFontSize())
}

func TestStore_SetterIsIdempotent(t *testing.T) {
	backend := newFakeBackend()
	s := prefs.NewStore(backend)

	require.NoError(t, s.SetLayoutDensity(prefs.DensityCompact))
	flush(t, s)
	first := s.Preferences()

	require.NoError(t, s.SetLayoutDensity(prefs.DensityCompact))
	flush(t, s)

	assert.Equal(t, first, s.Preferences())
	assert.Equal(t, "compact", backend.value(prefs.KeyLayoutDensity))
}

func TestStore_RoundTrip(t *testing.T) {
	backend := newFakeBackend()
	s := prefs.NewStore(backend)
	s.Initialize(context.Background())

	require.NoError(t, s.SetThemeMode(prefs.ThemeLight))
	flush(t, s)

	reloaded := prefs.NewStore(backend).Initialize(context.Background())
	assert.Equal(t, prefs.ThemeLight, reloaded.ThemeMode)
}

func TestStore_ProfileIsDeterministic(t *testing.T) {
	s := prefs.NewStore(newFakeBackend())
	require.NoError(t, s.SetAccentScheme(prefs.AccentGreen))

	assert.Equal(t, s.PresentationProfile(), s.PresentationProfile())
}

func TestStore_RejectsInvalidValues(t *testing.T) {
	backend := newFakeBackend()
	s := prefs.NewStore(backend)

	assert.ErrorIs(t, s.SetThemeMode("neon"), prefs.ErrInvalidPreferenceValue)
	assert.ErrorIs(t, s.SetAccentScheme("teal"), prefs.ErrInvalidPreferenceValue)
	assert.ErrorIs(t, s.SetFontSizeTier(""), prefs.ErrInvalidPreferenceValue)
	assert.ErrorIs(t, s.SetLayoutDensity("cozy"), prefs.ErrInvalidPreferenceValue)
	assert.ErrorIs(t, s.Set("wallpaper", "blue"), prefs.ErrInvalidPreferenceValue)

	flush(t, s)
	assert.Equal(t, prefs.Defaults(), s.Preferences())
	assert.Empty(t, backend.writeLog())
}

func TestStore_SetByKeyNormalizes(t *testing.T) {
	backend := newFakeBackend()
	s := prefs.NewStore(backend)

	require.NoError(t, s.Set(prefs.KeyColorScheme, "  Purple "))
	flush(t, s)

	assert.Equal(t, prefs.AccentPurple, s.Preferences().AccentScheme)
	assert.Equal(t, "purple", backend.value(prefs.KeyColorScheme))
}

func TestStore_WriteFailureKeepsValue(t *testing.T) {
	backend := newFakeBackend()
	backend.setErr = errors.New("read-only filesystem")
	s := prefs.NewStore(backend)

	require.NoError(t, s.SetThemeMode(prefs.ThemeLight))
	flush(t, s)

	assert.Equal(t, prefs.ThemeLight, s.Preferences().ThemeMode)
	assert.ErrorIs(t, s.LastSyncError(), prefs.ErrStorageWrite)

	backend.mu.Lock()
	backend.setErr = nil
	backend.mu.Unlock()

	require.NoError(t, s.SetThemeMode(prefs.ThemeAuto))
	flush(t, s)
	assert.NoError(t, s.LastSyncError())
	assert.Equal(t, "auto", backend.value(prefs.KeyTheme))
}

func TestStore_WritesPerKeyLandInOrder(t *testing.T) {
	backend := newFakeBackend()
	backend.entered = make(chan struct{}, 1)
	backend.release = make(chan struct{})
	s := prefs.NewStore(backend)

	require.NoError(t, s.SetThemeMode(prefs.ThemeLight))
	<-backend.entered

	require.NoError(t, s.SetThemeMode(prefs.ThemeAuto))
	require.NoError(t, s.SetThemeMode(prefs.ThemeDark))
	assert.Equal(t, prefs.ThemeDark, s.Preferences().ThemeMode)

	close(backend.release)
	flush(t, s)

	assert.Equal(t, "dark", backend.value(prefs.KeyTheme))
	assert.Equal(t, []string{"theme=light", "theme=dark"}, backend.writeLog())
}

func TestStore_SubscribeNotifiesUntilCancelled(t *testing.T) {
	s := prefs.NewStore(newFakeBackend())

	var got []prefs.PreferenceSet
	cancel := s.Subscribe(func(p prefs.PreferenceSet) {
		got = append(got, p)
	})

	require.NoError(t, s.SetAccentScheme(prefs.AccentBlue))
	cancel()
	require.NoError(t, s.SetAccentScheme(prefs.AccentPink))

	require.Len(t, got, 1)
	assert.Equal(t, prefs.AccentBlue, got[0].AccentScheme)
}

func TestStore_ResetRestoresDefaults(t *testing.T) {
	backend := newFakeBackend()
	s := prefs.NewStore(backend)
	require.NoError(t, s.SetThemeMode(prefs.ThemeLight))
	require.NoError(t, s.SetFontSizeTier(prefs.FontSmall))

	s.Reset()
	flush(t, s)

	assert.Equal(t, prefs.Defaults(), s.Preferences())
	assert.Equal(t, "dark", backend.value(prefs.KeyTheme))
	assert.Equal(t, "medium", backend.value(prefs.KeyFontSize))
}

func TestStore_AutoModeUsesDetector(t *testing.T) {
	dark := true
	s := prefs.NewStore(newFakeBackend(), prefs.WithAppearanceDetector(func() bool { return dark }))
	require.NoError(t, s.SetThemeMode(prefs.ThemeAuto))

	assert.Equal(t, prefs.ThemeDark, s.PresentationProfile().Mode)
	assert.Equal(t, "#1A1A2E", s.PresentationProfile().Colors.Background)

	dark = false
	assert.Equal(t, prefs.ThemeLight, s.PresentationProfile().Mode)
	assert.Equal(t, "#FFFFFF", s.PresentationProfile().Colors.Background)
}

func TestStore_CloseStopsPersisting(t *testing.T) {
	backend := newFakeBackend()
	s := prefs.NewStore(backend)
	require.NoError(t, s.SetThemeMode(prefs.ThemeLight))

	require.NoError(t, s.Close(context.Background()))
	require.NoError(t, s.SetThemeMode(prefs.ThemeAuto))
	flush(t, s)

	assert.Equal(t, prefs.ThemeAuto, s.Preferences().ThemeMode)
	assert.Equal(t, "light", backend.value(prefs.KeyTheme))
}

func TestStore_SetterInsideSubscriberLandsLast(t *testing.T) {
	backend := newFakeBackend()
	s := prefs.NewStore(backend)

	var seen []prefs.ThemeMode
	s.Subscribe(func(p prefs.PreferenceSet) {
		seen = append(seen, p.ThemeMode)
		if p.ThemeMode == prefs.ThemeLight {
			require.NoError(t, s.SetThemeMode(prefs.ThemeDark))
		}
	})

	require.NoError(t, s.SetThemeMode(prefs.ThemeLight))
	flush(t, s)

	assert.Equal(t, prefs.ThemeDark, s.Preferences().ThemeMode)
	assert.Equal(t, "dark", backend.value(prefs.KeyTheme))
	assert.Equal(t, []prefs.ThemeMode{prefs.ThemeLight, prefs.ThemeDark}, seen)
}

func TestStore_ConcurrentSettersAgreeWithBackend(t *testing.T) {
	backend := newFakeBackend()
	s := prefs.NewStore(backend)

	var (
		mu   sync.Mutex
		last prefs.AccentScheme
	)
	s.Subscribe(func(p prefs.PreferenceSet) {
		mu.Lock()
		last = p.AccentScheme
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for _, scheme := range prefs.AccentSchemes() {
		wg.Add(1)
		go func(scheme prefs.AccentScheme) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				assert.NoError(t, s.SetAccentScheme(scheme))
			}
		}(scheme)
	}
	wg.Wait()
	flush(t, s)

	current := s.Preferences().AccentScheme
	assert.Equal(t, string(current), backend.value(prefs.KeyColorScheme))
	mu.Lock()
	assert.Equal(t, current, last)
	mu.Unlock()
}
