package lyonkit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by LoadEnvConfig.
const (
	EnvEndpoint  = "LYONKIT_ENDPOINT"
	EnvAPIKey    = "LYONKIT_API_KEY"
	EnvUserAgent = "LYONKIT_USER_AGENT"
	EnvDebug     = "LYONKIT_DEBUG"
)

// Config is the file form of a client configuration.
//
//	endpoint: https://lyonkit.example.com
//	apiKey: ${LYONKIT_API_KEY}
//	userAgent: my-site/1.0
//
// Values may reference environment variables with ${VAR}.
type Config struct {
	Endpoint  string `yaml:"endpoint"`
	APIKey    string `yaml:"apiKey"`
	UserAgent string `yaml:"userAgent"`
	Debug     bool   `yaml:"debug"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses a YAML configuration document.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.Endpoint = os.ExpandEnv(cfg.Endpoint)
	cfg.APIKey = os.ExpandEnv(cfg.APIKey)
	cfg.UserAgent = os.ExpandEnv(cfg.UserAgent)
	return &cfg, nil
}

// LoadEnvConfig builds a Config from the LYONKIT_* environment variables.
// The given dotenv files (".env" when none) are loaded first; variables
// already set in the environment win and missing files are ignored.
func LoadEnvConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file: %w", err)
	}

	cfg := &Config{
		Endpoint:  os.Getenv(EnvEndpoint),
		APIKey:    os.Getenv(EnvAPIKey),
		UserAgent: os.Getenv(EnvUserAgent),
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", EnvDebug, err)
		}
		cfg.Debug = debug
	}
	return cfg, nil
}

// Options returns the client options described by cfg. Options passed
// after them take precedence.
func (cfg *Config) Options() []Option {
	var opts []Option
	if cfg.Endpoint != "" {
		opts = append(opts, WithEndpoint(cfg.Endpoint))
	}
	if cfg.UserAgent != "" {
		opts = append(opts, WithUserAgent(cfg.UserAgent))
	}
	if cfg.Debug {
		opts = append(opts, WithDebug(true))
	}
	return opts
}

// NewReadOnlyClient creates a read-only client from cfg.
func (cfg *Config) NewReadOnlyClient(opts ...Option) (*ReadOnlyClient, error) {
	return NewReadOnlyClient(cfg.APIKey, append(cfg.Options(), opts...)...)
}

// NewWriteClient creates a write client from cfg.
func (cfg *Config) NewWriteClient(opts ...Option) (*WriteClient, error) {
	return NewWriteClient(cfg.APIKey, append(cfg.Options(), opts...)...)
}
