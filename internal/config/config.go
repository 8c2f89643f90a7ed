package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Provider   ProviderConfig   `yaml:"provider"`
	Submission SubmissionConfig `yaml:"submission"`
}

// ServerConfig configures the builder's own HTTP API.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// ProviderConfig points at the external option provider.
type ProviderConfig struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// SubmissionConfig points at the scenario submission endpoint.
type SubmissionConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// Load reads, defaults and validates a YAML config file. Environment
// variables override file values (API_PORT, PROVIDER_BASE_URL,
// PROVIDER_API_KEY, SUBMISSION_URL).
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) applyDefaults() {
	if port := os.Getenv("API_PORT"); port != "" {
		c.Server.Port = port
	}
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if base := os.Getenv("PROVIDER_BASE_URL"); base != "" {
		c.Provider.BaseURL = base
	}
	if c.Provider.BaseURL == "" {
		c.Provider.BaseURL = "http://localhost:8090"
	}
	if key := os.Getenv("PROVIDER_API_KEY"); key != "" {
		c.Provider.APIKey = key
	}
	if c.Provider.TimeoutSeconds == 0 {
		c.Provider.TimeoutSeconds = 30
	}
	if u := os.Getenv("SUBMISSION_URL"); u != "" {
		c.Submission.URL = u
	}
	if c.Submission.URL == "" {
		c.Submission.URL = "ws://localhost:8091/scenarios"
	}
	if c.Submission.TimeoutSeconds == 0 {
		c.Submission.TimeoutSeconds = 15
	}
}

// Validate rejects configs the server cannot run with.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Provider.BaseURL == "" {
		return errors.New("provider.base_url is required")
	}
	if c.Submission.URL == "" {
		return errors.New("submission.url is required")
	}
	if c.Provider.TimeoutSeconds <= 0 {
		return fmt.Errorf("provider.timeout_seconds must be positive, got %d", c.Provider.TimeoutSeconds)
	}
	if c.Submission.TimeoutSeconds <= 0 {
		return fmt.Errorf("submission.timeout_seconds must be positive, got %d", c.Submission.TimeoutSeconds)
	}
	return nil
}
