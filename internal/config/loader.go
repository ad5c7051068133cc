package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Load builds a validated Config from viper values. The API key is read
// from the environment rather than the config file so it never lands on
// disk next to the rest of the configuration.
func Load(v *viper.Viper) (*Config, error) {
	timeout, err := time.ParseDuration(v.GetString("exec-timeout"))
	if err != nil {
		return nil, fmt.Errorf("invalid exec-timeout: %w", err)
	}

	cfg := &Config{
		Root:             v.GetString("root"),
		DeniedPaths:      v.GetStringSlice("denied-paths"),
		ExcludedPatterns: v.GetStringSlice("exclude"),
		MaxFindResults:   v.GetInt("max-find-results"),
		MaxListEntries:   v.GetInt("max-list-entries"),
		MaxWalkEntries:   v.GetInt("max-walk-entries"),
		ExecTimeout:      timeout,
		ExecExtensions:   v.GetStringSlice("exec-extensions"),
		Interpreter:      v.GetString("interpreter"),
		Model:            v.GetString("model"),
		BaseURL:          v.GetString("base-url"),
		AuditDBPath:      v.GetString("audit-db"),
		Verbose:          v.GetBool("verbose"),
		AutoConfirm:      v.GetBool("yes"),
	}

	cfg.APIKey = os.Getenv("OPENROUTER_API_KEY")
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("FILEPILOT_API_KEY")
	}

	if len(cfg.DeniedPaths) == 0 {
		cfg.DeniedPaths = nil
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
