package task

import "errors"

var (
	// ErrConfiguration reports an invalid or incomplete configuration,
	// detected before any block starts.
	ErrConfiguration = errors.New("task: invalid configuration")
	// ErrInvalidParameter reports a block parameter outside its valid
	// range.
	ErrInvalidParameter = errors.New("task: invalid parameter")
	// ErrNotInitialized reports a heart-rate query before enough beats
	// have been recorded.
	ErrNotInitialized = errors.New("task: the monitor is not initialized yet")
	// ErrBlockConsumed reports a second Run of a completed block.
	ErrBlockConsumed = errors.New("task: block already executed")
)
