package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/prosecraft/prosecraft/internal/account"
	"github.com/prosecraft/prosecraft/internal/analysis"
	"github.com/prosecraft/prosecraft/internal/platform"
	"github.com/prosecraft/prosecraft/internal/prefs"
	"github.com/prosecraft/prosecraft/internal/storage"
	"github.com/prosecraft/prosecraft/internal/ui"
)

const closeTimeout = 5 * time.Second

// appState holds the services a command works with. It is built once per
// invocation in PersistentPreRunE and closed by Execute.
type appState struct {
	store       storage.Store
	prefs       *prefs.Store
	accounts    *account.Service
	analyzer    *analysis.Client
	unsubscribe func()
}

var app *appState

func openApp(ctx context.Context) (*appState, error) {
	dataDir, err := platform.DataDir()
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg.Storage, dataDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Storage.Backend, err)
	}

	detect := appearanceDetector()
	prefStore := prefs.NewStore(store,
		prefs.WithLogger(logger),
		prefs.WithAppearanceDetector(detect),
		prefs.WithWriteTimeout(cfg.WriteTimeout()),
	)
	unsubscribe := prefStore.Subscribe(applyPresentation(detect))
	prefStore.Initialize(ctx)

	accounts := account.NewService(store, account.WithLogger(logger))
	if err := accounts.Load(ctx); err != nil {
		logger.Warn("could not restore session", "error", err)
	}

	analyzer := analysis.NewClient(analysis.Options{
		Endpoint: cfg.Analysis.Endpoint,
		Model:    cfg.Analysis.Model,
		APIKey:   cfg.Analysis.APIKey,
		Timeout:  cfg.AnalysisTimeout(),
		Logger:   logger,
	})

	return &appState{
		store:       store,
		prefs:       prefStore,
		accounts:    accounts,
		analyzer:    analyzer,
		unsubscribe: unsubscribe,
	}, nil
}

// applyPresentation restyles the terminal and the log levels for each new
// preference set.
func applyPresentation(detect prefs.AppearanceDetector) func(prefs.PreferenceSet) {
	return func(set prefs.PreferenceSet) {
		ui.ApplyProfile(prefs.Derive(set, detect))
		if logger != nil {
			logger.SetStyles(logStyles())
		}
	}
}

// close waits for queued preference writes and releases the backend.
func (a *appState) close() error {
	if a == nil {
		return nil
	}
	a.unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var errs []error
	if err := a.prefs.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("flushing preferences: %w", err))
	}
	if err := a.prefs.LastSyncError(); err != nil {
		logger.Warn("last preference change was not saved", "error", err)
	}
	if err := a.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("closing storage: %w", err))
	}
	return errors.Join(errs...)
}

// appearanceDetector asks the terminal for its background only when one is
// attached; otherwise auto resolves to light.
func appearanceDetector() prefs.AppearanceDetector {
	if !ui.IsInteractiveTerminal() {
		return nil
	}
	return lipgloss.HasDarkBackground
}

func requireApp() (*appState, error) {
	if app == nil {
		return nil, errors.New("application not initialized")
	}
	return app, nil
}
