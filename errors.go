package agingbloom

import (
	"fmt"

	"github.com/zeebo/errs"
)

var (
	// Error is the error class for this package. Every error returned by
	// this package is of this class.
	Error = errs.Class("agingbloom")

	// ErrInvalidParameter is returned by constructors when a sizing or
	// policy parameter is out of range. No filter is allocated in that case.
	ErrInvalidParameter = errs.Class("invalid parameter")

	// ErrCounterCorruption is returned by CBF.Delete when a counter would
	// drop below zero, which means the item was never inserted.
	ErrCounterCorruption = errs.Class("counter corruption")
)

func invalidParameter(name string, format string, args ...interface{}) error {
	return Error.Wrap(ErrInvalidParameter.New("%s: %s", name, fmt.Sprintf(format, args...)))
}

func counterCorruption(format string, args ...interface{}) error {
	return Error.Wrap(ErrCounterCorruption.New(format, args...))
}
