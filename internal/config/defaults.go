package config

import (
	"github.com/spf13/viper"
)

// SetViperDefaults registers every configuration default in viper. Flags
// and the config file override these.
func SetViperDefaults(v *viper.Viper) {
	v.SetDefault("root", "")
	v.SetDefault("denied-paths", []string{})
	v.SetDefault("exclude", []string{".git", ".env", "*.key", "*.pem"})

	v.SetDefault("max-find-results", 50)
	v.SetDefault("max-list-entries", 100)
	v.SetDefault("max-walk-entries", 10000)

	v.SetDefault("exec-timeout", "30s")
	v.SetDefault("exec-extensions", []string{".py"})
	v.SetDefault("interpreter", "python3")

	v.SetDefault("model", "google/gemini-2.0-flash-001")
	v.SetDefault("base-url", "https://openrouter.ai/api/v1")

	v.SetDefault("audit-db", "")

	v.SetDefault("verbose", false)
	v.SetDefault("yes", false)
}
