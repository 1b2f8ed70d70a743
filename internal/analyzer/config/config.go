package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultPath is the config file looked up when none is given.
	DefaultPath = "config.json"

	// EnvPrefix prefixes environment overrides, e.g. DHA_OUTPUT_VERBOSE.
	EnvPrefix = "DHA"
)

// Output formats understood by the report writer.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
)

type Config struct {
	Registry  RegistryConfig  `mapstructure:"registry" json:"registry"`
	DockerHub DockerHubConfig `mapstructure:"dockerHub" json:"dockerHub"`
	Output    OutputConfig    `mapstructure:"output" json:"output"`
	Analysis  AnalysisConfig  `mapstructure:"analysis" json:"analysis"`
}

type RegistryConfig struct {
	BaseURL string `mapstructure:"baseUrl" json:"baseUrl"`
	AuthURL string `mapstructure:"authUrl" json:"authUrl"`
	// Timeout is in milliseconds.
	Timeout int `mapstructure:"timeout" json:"timeout"`
}

type DockerHubConfig struct {
	BaseURL string `mapstructure:"baseUrl" json:"baseUrl"`
	Timeout int    `mapstructure:"timeout" json:"timeout"`
}

type OutputConfig struct {
	Format  string `mapstructure:"format" json:"format"`
	LogFile string `mapstructure:"logFile" json:"logFile"`
	Verbose bool   `mapstructure:"verbose" json:"verbose"`
}

type AnalysisConfig struct {
	IncludeLayerDetails bool `mapstructure:"includeLayerDetails" json:"includeLayerDetails"`
	MaxLayers           int  `mapstructure:"maxLayers" json:"maxLayers"`
	Timeout             int  `mapstructure:"timeout" json:"timeout"`
}

func (c RegistryConfig) RequestTimeout() time.Duration  { return millis(c.Timeout) }
func (c DockerHubConfig) RequestTimeout() time.Duration { return millis(c.Timeout) }
func (c AnalysisConfig) RunTimeout() time.Duration      { return millis(c.Timeout) }

func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

var defaults = map[string]any{
	"registry.baseUrl":             "https://registry-1.docker.io/v2",
	"registry.authUrl":             "https://auth.docker.io/token",
	"registry.timeout":             10000,
	"dockerHub.baseUrl":            "https://hub.docker.com/v2",
	"dockerHub.timeout":            5000,
	"output.format":                FormatConsole,
	"output.logFile":               "analyzer.log",
	"output.verbose":               false,
	"analysis.includeLayerDetails": true,
	"analysis.maxLayers":           100,
	"analysis.timeout":             30000,
}

// Default returns the built-in configuration.
func Default() *Config {
	cfg, err := decode(newViper())
	if err != nil {
		panic(fmt.Sprintf("config: invalid defaults: %v", err))
	}

	return cfg
}

// Load reads the JSON config file at path, merged over the defaults.
// A missing file yields the defaults. Load always returns a usable config:
// when the file exists but cannot be read or decoded, the defaults are
// returned together with the error so the caller can warn about it.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := ValidatePath(path); err != nil {
		return Default(), err
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return decode(v)
		}

		return Default(), fmt.Errorf("could not load config file %s: %w", path, err)
	}

	cfg, err := decode(v)
	if err != nil {
		return Default(), fmt.Errorf("could not decode config file %s: %w", path, err)
	}

	return cfg, nil
}

// ValidatePath rejects config paths with parent references or empty segments.
func ValidatePath(path string) error {
	if strings.Contains(path, "..") || strings.Contains(path, "//") {
		return fmt.Errorf("invalid config path: %s", path)
	}

	return nil
}

// Validate checks values the rest of the program relies on.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatConsole, FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("unsupported output.format %q, must be one of: %s, %s, %s", c.Output.Format, FormatConsole, FormatJSON, FormatYAML)
	}

	if c.Analysis.MaxLayers < 0 {
		return fmt.Errorf("analysis.maxLayers must not be negative")
	}

	return nil
}

// Save writes the configuration to path as indented JSON.
func (c *Config) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

func newViper() *viper.Viper {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
