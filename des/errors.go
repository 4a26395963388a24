package des

import (
	"fmt"

	"github.com/pkg/errors"
)

// FormatError is returned when textual key or block material cannot be
// parsed. Offset is the byte offset of the offending character or group
// relative to the start of the parsed input.
type FormatError struct {
	What   string
	Offset int64
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("bad %s at offset %d: %s", e.What, e.Offset, e.Reason)
}

// IsFormatError checks if `err` (or the error it wraps) is a *FormatError.
func IsFormatError(err error) bool {
	_, ok := errors.Cause(err).(*FormatError)
	return ok
}
