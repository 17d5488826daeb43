package dynamo

import "errors"

// Domain errors shared by the engine packages.
var (
	// ErrParameterBounds indicates a parameter value is outside its valid range.
	ErrParameterBounds = errors.New("dynamo: parameter out of valid bounds")

	// ErrInvalidState indicates a state with NaN or Inf components.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")

	// ErrUnknownStrategy indicates an unrecognised windowing strategy name.
	ErrUnknownStrategy = errors.New("dynamo: unknown windowing strategy")

	// ErrUnknownParam indicates a Configurable was asked for a parameter it lacks.
	ErrUnknownParam = errors.New("dynamo: unknown parameter")
)
