package pipeline

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/AccelByte/extend-churn-dataset/pkg/generator"
	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultSinkID is the id of the sink used when no pipeline file exists.
const DefaultSinkID = "files"

// Config represents the complete pipeline configuration.
type Config struct {
	// Profile holds the behavioural parameters. Keys missing from the file keep
	// their defaults; an archetype entry is replaced as a whole.
	Profile generator.Profile `yaml:"profile" toml:"profile"`
	Sinks   []sink.SinkConfig `yaml:"sinks" toml:"sinks"`
}

// DefaultConfig returns the default profile with a single csv sink.
func DefaultConfig() *Config {
	return &Config{
		Profile: *generator.DefaultProfile(),
		Sinks: []sink.SinkConfig{
			{ID: DefaultSinkID, Name: "CSV files", Type: "csv", Enabled: true},
		},
	}
}

// LoadConfig loads pipeline configuration from a YAML or TOML file, chosen by extension.
// Supports environment variable expansion in the form ${VAR_NAME} or ${VAR_NAME:default}.
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	// Expand environment variables
	expanded := []byte(expandEnvVars(string(data)))

	config := &Config{Profile: *generator.DefaultProfile()}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(expanded, config); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	default:
		if err := yaml.Unmarshal(expanded, config); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigOrDefault loads the file at path, falling back to DefaultConfig when it does not exist.
func LoadConfigOrDefault(path string) (*Config, error) {
	config, err := LoadConfig(path)
	if errors.Is(err, os.ErrNotExist) {
		logrus.Warnf("pipeline config %s not found, using default profile and csv sink", path)
		return DefaultConfig(), nil
	}
	return config, err
}

// Validate validates the configuration for common errors.
func (c *Config) Validate() error {
	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	// Check for duplicate sink IDs
	sinkIDs := make(map[string]bool)
	enabled := 0
	for _, s := range c.Sinks {
		if s.ID == "" {
			return fmt.Errorf("sink with empty ID found")
		}
		if sinkIDs[s.ID] {
			return fmt.Errorf("duplicate sink ID: %s", s.ID)
		}
		sinkIDs[s.ID] = true

		if s.Type == "" {
			return fmt.Errorf("sink %s has empty type", s.ID)
		}
		if s.Enabled {
			enabled++
		}
	}

	if enabled == 0 {
		return fmt.Errorf("no enabled sinks configured")
	}

	return nil
}

// EnabledSinks returns the enabled sink configurations in file order.
func (c *Config) EnabledSinks() []sink.SinkConfig {
	var enabled []sink.SinkConfig
	for _, s := range c.Sinks {
		if s.Enabled {
			enabled = append(enabled, s)
		}
	}
	return enabled
}

// NeedsSinkType reports whether an enabled sink has the given type.
func (c *Config) NeedsSinkType(sinkType string) bool {
	for _, s := range c.EnabledSinks() {
		if s.Type == sinkType {
			return true
		}
	}
	return false
}

// expandEnvVars expands environment variables in the format ${VAR} or ${VAR:default}.
func expandEnvVars(s string) string {
	return os.Expand(s, func(key string) string {
		// Support ${VAR:default} syntax
		parts := strings.SplitN(key, ":", 2)
		varName := parts[0]
		defaultValue := ""
		if len(parts) == 2 {
			defaultValue = parts[1]
		}

		value := os.Getenv(varName)
		if value == "" {
			return defaultValue
		}
		return value
	})
}
