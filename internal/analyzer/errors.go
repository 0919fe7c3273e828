package analyzer

import "errors"

var (
	// ErrMissingPayload is returned when Analyze is called without a payload.
	// It is the only input error of the analysis.
	ErrMissingPayload = errors.New("missing payload")

	// ErrInternal wraps unexpected faults recovered during an analysis.
	ErrInternal = errors.New("internal analysis error")
)
