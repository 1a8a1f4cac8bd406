// Package config loads runtime settings from environment variables with the
// prefix "DAYHIVE_". Example: DAYHIVE_API_URL=https://reports.example.com .
// Command-line flags take precedence over these values.
package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	APIURL      string        `envconfig:"API_URL" default:"https://reports.example.com/api"`
	APIToken    string        `envconfig:"API_TOKEN"`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// ProjectTTL bounds how long the cached project list is trusted.
	ProjectTTL time.Duration `envconfig:"PROJECT_TTL" default:"30m"`

	Debug bool `envconfig:"DEBUG" default:"false"`
}

// Load populates Config from environment variables (prefix DAYHIVE_).
func Load() (Config, error) {
	var c Config
	return c, envconfig.Process("DAYHIVE", &c)
}
