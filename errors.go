package uval

import "errors"

var (
	// ErrSetupFailed wraps the first error that aborted a setup run.
	ErrSetupFailed = errors.New("validation setup failed")

	// ErrParseDocument is returned when SetupHTML cannot parse its input.
	ErrParseDocument = errors.New("failed to parse html document")

	// ErrRenderDocument is returned when SetupHTML cannot write its output.
	ErrRenderDocument = errors.New("failed to render html document")
)
