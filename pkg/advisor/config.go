package advisor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ideaforge-api/pkg/confkit"
)

// Config controls runtime behaviour for the advisor module.
type Config struct {
	IdeaCount         int           `yaml:"idea_count"`
	Temperature       float64       `yaml:"temperature"`
	GenerateMaxTokens int           `yaml:"generate_max_tokens"`
	ValidateMaxTokens int           `yaml:"validate_max_tokens"`
	RequestTimeout    time.Duration `yaml:"-"`
	IdeasTemplate     string        `yaml:"ideas_template"`
	ValidateTemplate  string        `yaml:"validate_template"`

	RequestTimeoutRaw string `yaml:"request_timeout"`
	temperatureSet    bool
}

// LoadConfig reads configuration from disk.
func LoadConfig(path string) (*Config, error) {
	confkit.LoadDotenvOnce()
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open advisor config: %w", err)
	}
	defer file.Close()
	return LoadConfigFromReader(file)
}

// MustLoad reads advisor configuration from the default project location and panics on error.
func MustLoad() *Config {
	path := confkit.MustProjectPath("etc/advisor.yaml")
	cfg, err := LoadConfig(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader constructs a Config from a reader.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	confkit.LoadDotenvOnce()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read advisor config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal advisor config: %w", err)
	}
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err == nil {
		if _, ok := raw["temperature"]; ok {
			cfg.temperatureSet = true
		}
	}
	cfg.applyDefaults()
	if err := cfg.parseDurations(); err != nil {
		return nil, err
	}
	cfg.expandFields()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.IdeaCount <= 0 {
		c.IdeaCount = 3
	}
	if !c.temperatureSet && c.Temperature <= 0 {
		c.Temperature = 0.7
	}
	if c.GenerateMaxTokens <= 0 {
		c.GenerateMaxTokens = 2000
	}
	if c.ValidateMaxTokens <= 0 {
		c.ValidateMaxTokens = 3000
	}
	if strings.TrimSpace(c.RequestTimeoutRaw) == "" {
		c.RequestTimeoutRaw = "90s"
	}
	if strings.TrimSpace(c.IdeasTemplate) == "" {
		c.IdeasTemplate = "etc/prompts/advisor/ideas.tmpl"
	}
	if strings.TrimSpace(c.ValidateTemplate) == "" {
		c.ValidateTemplate = "etc/prompts/advisor/validate.tmpl"
	}
}

func (c *Config) parseDurations() error {
	timeout, err := time.ParseDuration(c.RequestTimeoutRaw)
	if err != nil {
		return fmt.Errorf("advisor config: invalid request_timeout %q: %w", c.RequestTimeoutRaw, err)
	}
	if timeout <= 0 {
		return fmt.Errorf("advisor config: request_timeout must be positive, got %s", timeout)
	}
	c.RequestTimeout = timeout
	return nil
}

func (c *Config) expandFields() {
	c.IdeasTemplate = strings.TrimSpace(os.ExpandEnv(c.IdeasTemplate))
	c.ValidateTemplate = strings.TrimSpace(os.ExpandEnv(c.ValidateTemplate))
}

// Validate ensures configuration sanity.
func (c *Config) Validate() error {
	if c.IdeaCount <= 0 || c.IdeaCount > 10 {
		return errors.New("advisor config: idea_count must be between 1 and 10")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return errors.New("advisor config: temperature must be between 0 and 2")
	}
	if c.GenerateMaxTokens <= 0 {
		return errors.New("advisor config: generate_max_tokens must be positive")
	}
	if c.ValidateMaxTokens <= 0 {
		return errors.New("advisor config: validate_max_tokens must be positive")
	}
	if c.IdeasTemplate == "" {
		return errors.New("advisor config: ideas_template is required")
	}
	if c.ValidateTemplate == "" {
		return errors.New("advisor config: validate_template is required")
	}
	return nil
}
