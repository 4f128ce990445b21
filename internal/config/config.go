// Package config loads modelschema settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file.
const (
	EnvOutputDir = "MODELSCHEMA_OUTPUT_DIR"
	EnvNamespace = "MODELSCHEMA_NAMESPACE"
	EnvVersion   = "MODELSCHEMA_VERSION"
	EnvApplyURL  = "MODELSCHEMA_APPLY_URL"
)

var (
	knownTargets    = []string{"docs", "go", "sql", "snapshot"}
	knownDialects   = []string{"postgres", "postgresql", "mysql", "sqlite"}
	knownPlacements = []string{"by-kind", "source"}
	knownFormats    = []string{"markdown", "text"}
)

// Config holds the generation settings.
type Config struct {
	Version       int      `yaml:"version"`
	Namespace     string   `yaml:"namespace"`
	OutputDir     string   `yaml:"output_dir"`
	EntityPrefix  string   `yaml:"entity_prefix"`
	IDSuffix      string   `yaml:"id_suffix"`
	LinkPlacement string   `yaml:"link_placement"`
	Targets       []string `yaml:"targets"`
	DocsFormat    string   `yaml:"docs_format"`
	Dialect       string   `yaml:"dialect"`
	ApplyURL      string   `yaml:"apply_url"`
	Blacklist     []string `yaml:"blacklist"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Version:       1,
		Namespace:     "model",
		OutputDir:     "./gen",
		IDSuffix:      "Id",
		LinkPlacement: "by-kind",
		Targets:       []string{"go", "docs"},
		DocsFormat:    "markdown",
	}
}

// Load reads path (optional) over the defaults, then applies environment
// overrides. A .env file in the working directory is loaded if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.OutputDir = getEnv(EnvOutputDir, cfg.OutputDir)
	cfg.Namespace = getEnv(EnvNamespace, cfg.Namespace)
	cfg.Version = getEnvInt(EnvVersion, cfg.Version)
	cfg.ApplyURL = getEnv(EnvApplyURL, cfg.ApplyURL)

	return cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []error
	if c.Version <= 0 {
		errs = append(errs, fmt.Errorf("version must be positive, got %d", c.Version))
	}
	if c.OutputDir == "" {
		errs = append(errs, errors.New("output_dir is required"))
	}
	for _, t := range c.Targets {
		if !slices.Contains(knownTargets, t) {
			errs = append(errs, fmt.Errorf("unknown target: %s", t))
		}
	}
	if c.Dialect != "" && !slices.Contains(knownDialects, strings.ToLower(c.Dialect)) {
		errs = append(errs, fmt.Errorf("unknown dialect: %s", c.Dialect))
	}
	if c.LinkPlacement != "" && !slices.Contains(knownPlacements, c.LinkPlacement) {
		errs = append(errs, fmt.Errorf("unknown link_placement: %s", c.LinkPlacement))
	}
	if c.DocsFormat != "" && !slices.Contains(knownFormats, c.DocsFormat) {
		errs = append(errs, fmt.Errorf("unknown docs_format: %s", c.DocsFormat))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}
