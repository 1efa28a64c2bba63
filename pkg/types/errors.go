package types

import (
	"errors"
	"fmt"
)

// ErrNotImplemented is matched by every NotImplementedError.
var ErrNotImplemented = errors.New("not implemented")

// Dataset errors.
var (
	ErrInvalidRecord     = errors.New("invalid dataset record")
	ErrUnknownRecordType = errors.New("unknown dataset record type")
	ErrRecordRejected    = errors.New("dataset record rejected by store")
)

// NotImplementedError reports a call to an operation that is declared but
// has no implementation.
type NotImplementedError struct {
	Op string
}

func (e *NotImplementedError) Error() string {
	if e.Op == "" {
		return ErrNotImplemented.Error()
	}
	return fmt.Sprintf("%s not implemented", e.Op)
}

// Is makes errors.Is(err, ErrNotImplemented) true.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}
