package sink

// SinkConfig is the base configuration for all sinks.
// This is typically loaded from the pipeline file.
type SinkConfig struct {
	ID         string                 `yaml:"id" toml:"id" json:"id"`
	Name       string                 `yaml:"name" toml:"name" json:"name"`
	Type       string                 `yaml:"type" toml:"type" json:"type"` // e.g., "csv", "database"
	Enabled    bool                   `yaml:"enabled" toml:"enabled" json:"enabled"`
	Parameters map[string]interface{} `yaml:"parameters" toml:"parameters" json:"parameters"`
}

// GetParameterInt retrieves an integer parameter with a default.
// YAML decodes integers as int, TOML as int64 and JSON as float64.
func (c *SinkConfig) GetParameterInt(key string, defaultValue int) int {
	if val, ok := c.Parameters[key]; ok {
		switch v := val.(type) {
		case int:
			return v
		case int64:
			return int(v)
		case float64:
			return int(v)
		}
	}
	return defaultValue
}

// GetParameterFloat retrieves a float parameter with a default.
func (c *SinkConfig) GetParameterFloat(key string, defaultValue float64) float64 {
	if val, ok := c.Parameters[key]; ok {
		switch v := val.(type) {
		case float64:
			return v
		case int:
			return float64(v)
		case int64:
			return float64(v)
		}
	}
	return defaultValue
}

// GetParameterString retrieves a string parameter with a default.
func (c *SinkConfig) GetParameterString(key string, defaultValue string) string {
	if val, ok := c.Parameters[key]; ok {
		if strVal, ok := val.(string); ok && strVal != "" {
			return strVal
		}
	}
	return defaultValue
}

// GetParameterBool retrieves a boolean parameter with a default.
func (c *SinkConfig) GetParameterBool(key string, defaultValue bool) bool {
	if val, ok := c.Parameters[key]; ok {
		if boolVal, ok := val.(bool); ok {
			return boolVal
		}
	}
	return defaultValue
}
