package validate

import (
	"context"
	"fmt"

	"github.com/prosecraft/prosecraft/internal/prefs"
)

// probeKey is written and removed to check the backend accepts writes.
const probeKey = "__prosecraft_probe__"

// Store is the subset of the storage backend the checks need.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Storage checks the backend with a write, read and remove round trip.
func Storage(ctx context.Context, backend string, store Store) Result {
	result := Result{Title: "Storage"}

	if err := store.Set(ctx, probeKey, "ok"); err != nil {
		result.AddError(fmt.Sprintf("%s: write failed: %v", backend, err))
		result.AddItem(StatusError, backend, "write failed: "+err.Error())
		return result
	}
	value, ok, err := store.Get(ctx, probeKey)
	switch {
	case err != nil:
		result.AddError(fmt.Sprintf("%s: read failed: %v", backend, err))
		result.AddItem(StatusError, backend, "read failed: "+err.Error())
	case !ok || value != "ok":
		result.AddError(fmt.Sprintf("%s: wrote a value but read back %q", backend, value))
		result.AddItem(StatusError, backend, "read back a different value")
	default:
		result.AddItem(StatusSuccess, backend, "read/write ok")
	}
	if err := store.Remove(ctx, probeKey); err != nil {
		result.AddWarning(fmt.Sprintf("%s: could not remove probe key: %v", backend, err))
	}
	return result
}

// Preferences reports stored preference values that would be ignored on load.
func Preferences(ctx context.Context, store Store) Result {
	result := Result{Title: "Preferences"}

	parsers := map[string]func(string) error{
		prefs.KeyTheme:         func(s string) error { _, err := prefs.ParseThemeMode(s); return err },
		prefs.KeyColorScheme:   func(s string) error { _, err := prefs.ParseAccentScheme(s); return err },
		prefs.KeyFontSize:      func(s string) error { _, err := prefs.ParseFontSizeTier(s); return err },
		prefs.KeyLayoutDensity: func(s string) error { _, err := prefs.ParseLayoutDensity(s); return err },
	}

	for _, key := range prefs.Keys() {
		raw, ok, err := store.Get(ctx, key)
		switch {
		case err != nil:
			result.AddWarning(fmt.Sprintf("%s: unreadable, default used", key))
			result.AddItem(StatusWarning, key, err.Error())
		case !ok:
			def, _ := prefs.Defaults().Value(key)
			result.AddItem(StatusPending, key, "not set, default "+def)
		case parsers[key](raw) != nil:
			def, _ := prefs.Defaults().Value(key)
			result.AddWarning(fmt.Sprintf("%s: stored value %q is invalid, default used", key, raw))
			result.AddItem(StatusWarning, key, fmt.Sprintf("%q is invalid, default %s used", raw, def))
		default:
			result.AddItem(StatusSuccess, key, raw)
		}
	}
	return result
}
