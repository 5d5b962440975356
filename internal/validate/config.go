package validate

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/prosecraft/prosecraft/internal/config"
)

// Config validates the prosecraft configuration file.
func Config(_ context.Context, configPath string) Result {
	result := Result{Title: "Configuration"}
	name := filepath.Base(configPath)

	if _, err := os.Stat(configPath); err != nil {
		result.AddWarning("No prosecraft.yaml found, using defaults")
		result.AddItem(StatusPending, name, "not found, using defaults")
		return result
	}

	loadedCfg, err := config.Load(configPath)
	if err != nil {
		result.AddError(fmt.Sprintf("Config: %v", err))
		result.AddItem(StatusError, name, err.Error())
		return result
	}
	if err := loadedCfg.Validate(); err != nil {
		result.AddError(fmt.Sprintf("Config: %v", err))
		result.AddItem(StatusError, name, err.Error())
		return result
	}
	result.AddItem(StatusSuccess, name, configPath)
	return result
}

// Analysis checks that the text analysis API is configured.
func Analysis(_ context.Context, cfg config.AnalysisConfig) Result {
	result := Result{Title: "Analysis API"}

	u, err := url.Parse(cfg.Endpoint)
	if err != nil || u.Scheme == "" || u.Host == "" {
		result.AddError(fmt.Sprintf("invalid endpoint %q", cfg.Endpoint))
		result.AddItem(StatusError, "endpoint", cfg.Endpoint)
	} else {
		result.AddItem(StatusSuccess, "endpoint", u.Host)
	}

	result.AddItem(StatusSuccess, "model", cfg.Model)

	if cfg.APIKey == "" {
		result.AddWarning("GEMINI_API_KEY is not set; analyses will fail")
		result.AddItem(StatusWarning, "api key", "not set")
	} else {
		result.AddItem(StatusSuccess, "api key", "set")
	}
	return result
}
