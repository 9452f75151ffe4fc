package scan

import (
	"errors"
	"fmt"
)

// ResolutionError is the session-fatal failure raised when the target host
// cannot be resolved. It is the only probing-related error a session returns;
// everything per-port is folded into result states.
type ResolutionError struct {
	Host string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve target %q: %v", e.Host, e.Err)
}

func (e *ResolutionError) Unwrap() error { return e.Err }

// ErrHostDown aborts a session before probing when the optional reachability
// pre-check gets no ICMP answer from the target.
var ErrHostDown = errors.New("target did not answer reachability check")
