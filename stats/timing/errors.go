package timing

import "errors"

var (
	// ErrInsufficientData reports that too few delays survive outlier
	// trimming to build an empirical distribution.
	ErrInsufficientData = errors.New("timing: not enough delays to sample from")

	errEmptyInput = errors.New("timing: input must not be empty")
)
