package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/goliatone/go-config/cfgx"
)

// Storage drivers understood by the container.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

// Config captures module-level configuration knobs. Feature packages (links,
// page provider, storage) pull from these nested structs.
type Config struct {
	Localization LocalizationConfig `mapstructure:"localization" json:"localization"`
	Links        LinksConfig        `mapstructure:"links" json:"links"`
	URLs         URLConfig          `mapstructure:"urls" json:"urls"`
	Storage      StorageConfig      `mapstructure:"storage" json:"storage"`
	Logging      LoggingConfig      `mapstructure:"logging" json:"logging"`
}

// LocalizationConfig controls default locale + fallback chains.
type LocalizationConfig struct {
	DefaultLocale string              `mapstructure:"default_locale" json:"default_locale"`
	Fallbacks     map[string][]string `mapstructure:"fallbacks" json:"fallbacks"`
}

// LinksConfig tunes the link tag engine.
type LinksConfig struct {
	DefaultProvider       string `mapstructure:"default_provider" json:"default_provider"`
	MaxWorkers            int    `mapstructure:"max_workers" json:"max_workers"`
	ValidatePublishedOnly bool   `mapstructure:"validate_published_only" json:"validate_published_only"`
}

// URLConfig holds the system defaults for generated page URLs.
type URLConfig struct {
	Environment string                       `mapstructure:"environment" json:"environment"`
	Scheme      string                       `mapstructure:"scheme" json:"scheme"`
	Host        string                       `mapstructure:"host" json:"host"`
	Absolute    bool                         `mapstructure:"absolute" json:"absolute"`
	Webspaces   map[string]WebspaceURLConfig `mapstructure:"webspaces" json:"webspaces"`
}

// WebspaceURLConfig lists the host a webspace is served from in each
// environment.
type WebspaceURLConfig struct {
	Scheme string            `mapstructure:"scheme" json:"scheme"`
	Hosts  map[string]string `mapstructure:"hosts" json:"hosts"`
}

// StorageConfig selects the page repository backend.
type StorageConfig struct {
	Driver string `mapstructure:"driver" json:"driver"`
	DSN    string `mapstructure:"dsn" json:"dsn"`
}

// LoggingConfig sets the minimum level of the basic logger.
type LoggingConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Localization: LocalizationConfig{DefaultLocale: "en"},
		Links: LinksConfig{
			DefaultProvider: "page",
			MaxWorkers:      4,
		},
		URLs: URLConfig{
			Environment: "prod",
			Scheme:      "http",
		},
		Storage: StorageConfig{Driver: StorageMemory},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Validate ensures required fields are present and sane.
func (c *Config) Validate() error {
	if c.Localization.DefaultLocale == "" {
		return errors.New("localization.default_locale is required")
	}
	if strings.TrimSpace(c.Links.DefaultProvider) == "" {
		return errors.New("links.default_provider is required")
	}
	if c.Links.MaxWorkers <= 0 {
		return fmt.Errorf("links.max_workers must be > 0")
	}
	switch c.URLs.Scheme {
	case "http", "https":
	default:
		return fmt.Errorf("urls.scheme must be http or https, got %q", c.URLs.Scheme)
	}
	for name, ws := range c.URLs.Webspaces {
		switch ws.Scheme {
		case "", "http", "https":
		default:
			return fmt.Errorf("urls.webspaces.%s.scheme must be http or https, got %q", name, ws.Scheme)
		}
	}
	switch c.Storage.Driver {
	case StorageMemory:
	case StorageSQLite:
		if c.Storage.DSN == "" {
			return errors.New("storage.dsn is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver)
	}
	return nil
}

// Load decodes arbitrary input (struct, map, cfg struct) using cfgx helpers.
// When cfgx.Build returns a zero value we fall back to a lightweight decoder
// so plain maps and structs still load.
func Load(input any, opts ...LoadOption) (Config, error) {
	settings := loadOptions{}
	for _, opt := range opts {
		opt(&settings)
	}

	cfg, err := cfgx.Build(input, settings.buildOpts...)
	if err != nil {
		return Config{}, err
	}

	if isZero(cfg) {
		if err := decodeFallback(input, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg = cfg.withDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadOption lets callers amend cfgx build options.
type LoadOption func(*loadOptions)

type loadOptions struct {
	buildOpts []cfgx.Option[Config]
}

// WithBuildOptions forwards cfgx options (duration hooks, preprocessors, etc.).
func WithBuildOptions(opts ...cfgx.Option[Config]) LoadOption {
	return func(lo *loadOptions) {
		lo.buildOpts = append(lo.buildOpts, opts...)
	}
}

func (c Config) withDefaults() Config {
	defaults := Defaults()

	if c.Localization.DefaultLocale == "" {
		c.Localization.DefaultLocale = defaults.Localization.DefaultLocale
	}
	c.Links.DefaultProvider = strings.TrimSpace(c.Links.DefaultProvider)
	if c.Links.DefaultProvider == "" {
		c.Links.DefaultProvider = defaults.Links.DefaultProvider
	}
	if c.Links.MaxWorkers == 0 {
		c.Links.MaxWorkers = defaults.Links.MaxWorkers
	}
	if c.URLs.Environment == "" {
		c.URLs.Environment = defaults.URLs.Environment
	}
	c.URLs.Scheme = strings.ToLower(c.URLs.Scheme)
	if c.URLs.Scheme == "" {
		c.URLs.Scheme = defaults.URLs.Scheme
	}
	if len(c.URLs.Webspaces) > 0 {
		webspaces := make(map[string]WebspaceURLConfig, len(c.URLs.Webspaces))
		for name, ws := range c.URLs.Webspaces {
			ws.Scheme = strings.ToLower(ws.Scheme)
			webspaces[name] = ws
		}
		c.URLs.Webspaces = webspaces
	}
	if c.Storage.Driver == "" {
		c.Storage.Driver = defaults.Storage.Driver
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaults.Logging.Level
	}
	return c
}

func isZero(cfg Config) bool {
	return reflect.DeepEqual(cfg, Config{})
}

func decodeFallback(input any, cfg *Config) error {
	switch v := input.(type) {
	case nil:
		return nil
	case Config:
		*cfg = v
		return nil
	case *Config:
		if v != nil {
			*cfg = *v
		}
		return nil
	case map[string]any:
		return decodeMap(v, cfg)
	default:
		return fmt.Errorf("unsupported config input type: %T", input)
	}
}

func decodeMap(input map[string]any, cfg *Config) error {
	if input == nil {
		return nil
	}
	payload, err := json.Marshal(input)
	if err != nil {
		return err
	}
	return json.Unmarshal(payload, cfg)
}
