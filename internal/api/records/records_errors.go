package records

import (
	"errors"
	"fmt"
)

var (
	ErrStoreNotFound   = errors.New("travel data store does not exist")
	ErrMalformedRecord = errors.New("malformed travel record")
	ErrInvalidRecord   = errors.New("invalid travel record")
)

const (
	OpAppend = "append"
	OpLoad   = "load"
)

// StoreError reports a failed store operation. Line is set for malformed
// records found during a load.
type StoreError struct {
	Op   string
	Path string
	Line int
	Err  error
}

func (e *StoreError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s %s:%d: %v", e.Op, e.Path, e.Line, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
