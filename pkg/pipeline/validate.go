package pipeline

import (
	"fmt"
	"strings"

	"github.com/AccelByte/extend-churn-dataset/pkg/sink"
)

// ValidateWiring validates that the pipeline is correctly wired.
// It checks that:
// - Every enabled sink type has a registered factory
// - Every enabled sink in config has a registered instance
//
// This catches common mistakes like:
// - Forgetting to register the built-in sink factories
// - Typos in sink types
func ValidateWiring(sinkRegistry *sink.Registry, config *Config) error {
	var errors []string

	for _, sc := range config.Sinks {
		if !sc.Enabled {
			continue
		}

		if !sink.IsRegistered(sc.Type) {
			errors = append(errors, fmt.Sprintf("sink '%s' has unknown type '%s' (known: %s)",
				sc.ID, sc.Type, strings.Join(sink.RegisteredTypes(), ", ")))
			continue
		}

		if sinkRegistry.Get(sc.ID) == nil {
			errors = append(errors, fmt.Sprintf("sink '%s' (type=%s) is enabled in config but not registered", sc.ID, sc.Type))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("pipeline wiring validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}
