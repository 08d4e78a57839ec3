package streak

import (
	"errors"
	"fmt"
)

// ErrMalformedState matches any MalformedStateError via errors.Is.
var ErrMalformedState = errors.New("malformed streak state")

// MalformedStateError is returned by Load when a stored value exists but
// cannot be decoded.
type MalformedStateError struct {
	Key string
	Err error
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("malformed streak state under %q: %v", e.Key, e.Err)
}

func (e *MalformedStateError) Unwrap() error { return e.Err }

func (e *MalformedStateError) Is(target error) bool { return target == ErrMalformedState }
