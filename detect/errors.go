package detect

import "errors"

// ErrInvalidParameter reports a detector construction parameter outside
// its valid range.
var ErrInvalidParameter = errors.New("detect: invalid parameter")
