// Package config resolves riskboard settings from defaults, an optional
// .riskboard.yaml file, a .env file, RISKBOARD_* environment variables and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/goliatone/go-riskboard/pkg/scoring"
)

// EnvPrefix namespaces environment variables.
const EnvPrefix = "RISKBOARD"

// FileName is the config file looked up in the working and home directories.
const FileName = ".riskboard"

// Keys understood by Load.
const (
	KeyConfig           = "config"
	KeyEndpoint         = "endpoint"
	KeyAddr             = "addr"
	KeySchemaFile       = "schema-file"
	KeyOpenAPIFile      = "openapi-file"
	KeyOpenAPIOperation = "openapi-operation"
	KeyRequestTimeout   = "request-timeout"
	KeySessionTTL       = "session-ttl"
	KeyThemeVariant     = "theme-variant"
	KeyLogLevel         = "log-level"
	KeyLogFormat        = "log-format"
)

// Defaults.
const (
	DefaultAddr             = ":8080"
	DefaultSessionTTL       = 30 * time.Minute
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"
	DefaultOpenAPIOperation = "score"
)

var (
	errEndpointInvalid = errors.New("config: endpoint must be an absolute http(s) URL")
	errAddrMissing     = errors.New("config: addr is required")
	errTTLInvalid      = errors.New("config: session-ttl must be positive")
	errTimeoutInvalid  = errors.New("config: request-timeout cannot be negative")
	errLogLevel        = errors.New("config: log-level must be debug, info, warn or error")
	errLogFormat       = errors.New("config: log-format must be console or json")
)

// Config is the validated runtime configuration.
type Config struct {
	Endpoint         string        `mapstructure:"endpoint"`
	Addr             string        `mapstructure:"addr"`
	SchemaFile       string        `mapstructure:"schema-file"`
	OpenAPIFile      string        `mapstructure:"openapi-file"`
	OpenAPIOperation string        `mapstructure:"openapi-operation"`
	RequestTimeout   time.Duration `mapstructure:"request-timeout"`
	SessionTTL       time.Duration `mapstructure:"session-ttl"`
	ThemeVariant     string        `mapstructure:"theme-variant"`
	LogLevel         string        `mapstructure:"log-level"`
	LogFormat        string        `mapstructure:"log-format"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Endpoint:         scoring.DefaultEndpoint,
		Addr:             DefaultAddr,
		OpenAPIOperation: DefaultOpenAPIOperation,
		SessionTTL:       DefaultSessionTTL,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
	}
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault(KeyEndpoint, d.Endpoint)
	v.SetDefault(KeyAddr, d.Addr)
	v.SetDefault(KeySchemaFile, "")
	v.SetDefault(KeyOpenAPIFile, "")
	v.SetDefault(KeyOpenAPIOperation, d.OpenAPIOperation)
	v.SetDefault(KeyRequestTimeout, d.RequestTimeout)
	v.SetDefault(KeySessionTTL, d.SessionTTL)
	v.SetDefault(KeyThemeVariant, "")
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyLogFormat, d.LogFormat)
}

// RegisterFlags adds the persistent flags shared by every command.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.String(KeyConfig, "", "config file (default is ./.riskboard.yaml or $HOME/.riskboard.yaml)")
	flags.String(KeyEndpoint, d.Endpoint, "scoring endpoint URL")
	flags.String(KeySchemaFile, "", "field schema override (YAML or JSON)")
	flags.String(KeyOpenAPIFile, "", "derive the field schema from the scoring service OpenAPI document")
	flags.String(KeyOpenAPIOperation, d.OpenAPIOperation, "operationId of the scoring request in the OpenAPI document")
	flags.Duration(KeyRequestTimeout, d.RequestTimeout, "scoring request timeout (0 uses the transport default)")
	flags.String(KeyLogLevel, d.LogLevel, "log level: debug, info, warn, error")
	flags.String(KeyLogFormat, d.LogFormat, "log format: console or json")
}

// LoadDotenv loads .env style files into the process environment. Missing
// files are skipped; variables already set are not overwritten.
func LoadDotenv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return fmt.Errorf("config: stat %s: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("config: load %s: %w", path, err)
		}
	}
	return nil
}

// Load resolves the configuration held by v. Flags must already be bound.
func Load(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}
	SetDefaults(v)

	if file := v.GetString(KeyConfig); file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) normalize() {
	c.Endpoint = strings.TrimSpace(c.Endpoint)
	c.Addr = strings.TrimSpace(c.Addr)
	c.SchemaFile = strings.TrimSpace(c.SchemaFile)
	c.OpenAPIFile = strings.TrimSpace(c.OpenAPIFile)
	c.OpenAPIOperation = strings.TrimSpace(c.OpenAPIOperation)
	c.ThemeVariant = strings.TrimSpace(c.ThemeVariant)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q", errEndpointInvalid, c.Endpoint)
	}
	if c.Addr == "" {
		return errAddrMissing
	}
	if c.SessionTTL <= 0 {
		return errTTLInvalid
	}
	if c.RequestTimeout < 0 {
		return errTimeoutInvalid
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", errLogLevel, c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %q", errLogFormat, c.LogFormat)
	}
	return nil
}
