//go:generate go run -tags generate ../jsonschema

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
	"github.com/rs/zerolog/log"
)

const (
	// EnvPrefix is the prefix of environment variables that override config values
	EnvPrefix = "LQTESTER_"
	// delim separates nested config keys
	delim = "."
)

// Config holds service configuration
type Config struct {
	// Server contains the HTTP API settings
	Server Server `json:"server" koanf:"server"`
	// Fetcher contains the page fetch settings
	Fetcher Fetcher `json:"fetcher" koanf:"fetcher"`
	// Bulk contains the batch scan settings
	Bulk Bulk `json:"bulk" koanf:"bulk"`
	// Trust contains the allowlist settings
	Trust Trust `json:"trust" koanf:"trust"`
	// Slack contains the webhook notification settings
	Slack Slack `json:"slack" koanf:"slack"`
}

// Server holds the HTTP API settings
type Server struct {
	// Debug enables debug logging
	Debug bool `json:"debug" koanf:"debug" default:"false"`
	// Pretty enables human readable log output
	Pretty bool `json:"pretty" koanf:"pretty" default:"false"`
	// Listen is the address the API server binds to
	Listen string `json:"listen" koanf:"listen" default:":8080" validate:"required"`
	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout time.Duration `json:"readTimeout" koanf:"readTimeout" default:"15s"`
	// WriteTimeout is the maximum duration before timing out a response write
	WriteTimeout time.Duration `json:"writeTimeout" koanf:"writeTimeout" default:"6m"`
	// RequestTimeout bounds each API request, including every classification it runs
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requestTimeout" default:"5m" validate:"gt=0"`
	// ShutdownGracePeriod is how long in-flight requests get to finish on shutdown
	ShutdownGracePeriod time.Duration `json:"shutdownGracePeriod" koanf:"shutdownGracePeriod" default:"10s"`
	// MaxBodySize caps request bodies in bytes
	MaxBodySize int64 `json:"maxBodySize" koanf:"maxBodySize" default:"1048576" validate:"gt=0"`
}

// Fetcher holds the page fetch settings
type Fetcher struct {
	// Timeout bounds each fetch attempt, redirects included
	Timeout time.Duration `json:"timeout" koanf:"timeout" default:"12s" validate:"gt=0"`
	// MaxBodySize caps how many bytes of a page are read
	MaxBodySize int64 `json:"maxBodySize" koanf:"maxBodySize" default:"5242880" validate:"gt=0"`
	// UserAgent overrides the browser user agent sent with every fetch
	UserAgent string `json:"userAgent" koanf:"userAgent"`
}

// Bulk holds the batch scan settings
type Bulk struct {
	// MaxItems caps the number of inputs in one batch
	MaxItems int `json:"maxItems" koanf:"maxItems" default:"200" validate:"min=1,max=200"`
	// Workers is the number of inputs classified concurrently
	Workers int `json:"workers" koanf:"workers" default:"8" validate:"min=1,max=64"`
}

// Trust holds the allowlist settings
type Trust struct {
	// Domains replaces the built-in allowlist when non-empty
	Domains []string `json:"domains" koanf:"domains" validate:"dive,required"`
}

// Slack holds the webhook notification settings
type Slack struct {
	// WebhookURL is the Slack incoming webhook; empty disables notifications
	WebhookURL string `json:"webhookURL" koanf:"webhookURL" sensitive:"true" validate:"omitempty,url"`
	// RequestTimeout bounds each webhook request
	RequestTimeout time.Duration `json:"requestTimeout" koanf:"requestTimeout" default:"10s"`
}

// Load builds the config from defaults, then the YAML file at path when it
// exists, then LQTESTER_ environment variables, and validates the result
func Load(path *string) (*Config, error) {
	conf := &Config{}
	defaults.SetDefaults(conf)

	if path != nil && *path != "" {
		if err := loadFile(*path, conf); err != nil {
			return nil, err
		}
	}

	k := koanf.New(delim)

	if err := k.Load(env.ProviderWithValue(EnvPrefix, delim, envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	if err := k.Unmarshal("", conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	if err := validator.New().Struct(conf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}

	return conf, nil
}

// loadFile overlays the YAML file at path onto conf; a missing file is not an error
func loadFile(path string, conf *Config) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Debug().Str("path", path).Msg("config file not found, using defaults and environment")
			return nil
		}

		return fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	k := koanf.New(delim)

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	if err := k.Unmarshal("", conf); err != nil {
		return fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return nil
}

// envKey maps LQTESTER_SERVER_MAXBODYSIZE to server.maxbodysize; keys are
// matched to fields case-insensitively on unmarshal. Comma separated values
// become lists and empty values are skipped.
func envKey(key, value string) (string, any) {
	if strings.TrimSpace(value) == "" {
		return "", nil
	}

	key = strings.Replace(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)), "_", delim, 1)

	if strings.Contains(value, ",") {
		return key, strings.Split(value, ",")
	}

	return key, value
}
