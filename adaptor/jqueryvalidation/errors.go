package jqueryvalidation

import "errors"

var (
	// ErrEmptyMethod is returned when registering a method without source.
	ErrEmptyMethod = errors.New("validation method has no source")

	// ErrUnsafeMethod is returned when a method source would end the script element it is rendered in.
	ErrUnsafeMethod = errors.New("validation method source closes the script element")

	// ErrEncodeOptions is returned when the plugin options cannot be serialized.
	ErrEncodeOptions = errors.New("failed to encode plugin options")

	// ErrRenderScript is returned when the activation script cannot be rendered.
	ErrRenderScript = errors.New("failed to render activation script")
)
