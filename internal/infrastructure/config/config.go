package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/emiliopalmerini/researchlog/internal/codec"
	"github.com/emiliopalmerini/researchlog/internal/domain"
	"github.com/emiliopalmerini/researchlog/internal/ports"
)

// Prefix is prepended to every environment variable name.
const Prefix = "RLOG"

// Storage backends.
const (
	BackendFile   = "file"
	BackendLibSQL = "libsql"
)

// OTEL holds metrics exporter settings.
type OTEL struct {
	Enabled  bool   `envconfig:"ENABLED" default:"false"`
	Endpoint string `envconfig:"ENDPOINT"`
	Insecure bool   `envconfig:"INSECURE" default:"false"`
}

// Config holds rlog configuration.
type Config struct {
	File             string `envconfig:"FILE" default:"research_data.txt"`
	Format           string `envconfig:"FORMAT" default:"legacy"`
	Backend          string `envconfig:"BACKEND" default:"file"`
	SkipInvalidLines bool   `envconfig:"SKIP_INVALID_LINES" default:"false"`
	StdDevPolicy     string `envconfig:"STDDEV_POLICY" default:"undefined"`

	DatabaseURL string `envconfig:"DATABASE_URL" default:"file:research.db"`
	AuthToken   string `envconfig:"AUTH_TOKEN"`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	LogFile  string `envconfig:"LOG_FILE"`

	OTEL OTEL `envconfig:"OTEL"`

	Addr string `envconfig:"ADDR" default:"8080"`
}

// Resolved holds the validated values a Config names.
type Resolved struct {
	Codec   ports.RecordCodec
	Policy  domain.StdDevPolicy
	Backend string
}

// Load loads configuration from RLOG_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// Validate resolves the format, policy and backend names.
func (c *Config) Validate() (*Resolved, error) {
	rc, err := codec.New(c.Format)
	if err != nil {
		return nil, err
	}

	policy, err := domain.ParseStdDevPolicy(c.StdDevPolicy)
	if err != nil {
		return nil, err
	}

	backend, err := ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}

	return &Resolved{Codec: rc, Policy: policy, Backend: backend}, nil
}

// ParseBackend resolves a backend name. The empty string selects BackendFile.
func ParseBackend(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", BackendFile:
		return BackendFile, nil
	case BackendLibSQL:
		return BackendLibSQL, nil
	default:
		return "", fmt.Errorf("%w: %q (use %s or %s)", domain.ErrUnknownBackend, s, BackendFile, BackendLibSQL)
	}
}
