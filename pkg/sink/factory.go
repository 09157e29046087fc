package sink

import (
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"
)

// SinkFactory is a function that creates a sink from a configuration.
type SinkFactory func(config SinkConfig) (Sink, error)

// factories stores registered sink factories by type
var factories = make(map[string]SinkFactory)

// RegisterSinkType registers a factory function for a sink type.
// This allows external packages to register their sink types without creating import cycles.
func RegisterSinkType(sinkType string, factory SinkFactory) {
	factories[sinkType] = factory
	logrus.Debugf("registered sink type: %s", sinkType)
}

// IsRegistered reports whether a factory exists for the sink type.
func IsRegistered(sinkType string) bool {
	_, ok := factories[sinkType]
	return ok
}

// RegisteredTypes returns the registered sink types in sorted order.
func RegisteredTypes() []string {
	types := make([]string, 0, len(factories))
	for t := range factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// CreateSink creates a sink instance based on the configuration.
// Disabled sinks yield nil without error.
func CreateSink(config SinkConfig) (Sink, error) {
	if !config.Enabled {
		logrus.Infof("skipping disabled sink: %s", config.ID)
		return nil, nil
	}

	logrus.Infof("creating sink: id=%s, type=%s", config.ID, config.Type)

	factory, exists := factories[config.Type]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSinkType, config.Type)
	}

	return factory(config)
}

// CreateSinks creates multiple sink instances from a list of configurations.
// Returns all successfully created sinks and any errors encountered.
func CreateSinks(configs []SinkConfig) ([]Sink, []error) {
	var sinks []Sink
	var errors []error

	for _, config := range configs {
		s, err := CreateSink(config)
		if err != nil {
			errors = append(errors, fmt.Errorf("failed to create sink %s: %w", config.ID, err))
			continue
		}

		if s != nil {
			sinks = append(sinks, s)
		}
	}

	return sinks, errors
}

// RegisterSinks creates the configured sinks and registers them with the registry.
// A sink that cannot be created fails the whole setup.
func RegisterSinks(registry *Registry, configs []SinkConfig) error {
	sinks, errors := CreateSinks(configs)

	if len(errors) > 0 {
		for _, err := range errors {
			logrus.Errorf("sink creation error: %v", err)
		}
		return fmt.Errorf("failed to create %d sinks: %w", len(errors), errors[0])
	}

	for _, s := range sinks {
		if err := registry.Register(s); err != nil {
			return fmt.Errorf("failed to register sink %s: %w", s.ID(), err)
		}
	}

	logrus.Infof("registered %d sinks", len(sinks))
	return nil
}
