package sink

import "errors"

var (
	// ErrSinkNotFound indicates that a requested sink doesn't exist in the registry.
	ErrSinkNotFound = errors.New("sink not found in registry")

	// ErrUnknownSinkType indicates that no factory is registered for a sink type.
	ErrUnknownSinkType = errors.New("unknown sink type")

	// ErrInvalidConfig indicates that a sink's configuration is invalid.
	ErrInvalidConfig = errors.New("invalid sink configuration")

	// ErrMissingDependency indicates that a sink was created without the client it writes through.
	ErrMissingDependency = errors.New("missing sink dependency")
)
