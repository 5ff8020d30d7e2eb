package svgpath

import (
	"errors"
	"fmt"
)

// ErrPathParse is the sentinel every PathParseError unwraps to.
var ErrPathParse = errors.New("malformed path data")

// PathParseError reports malformed or absent path data. Pos is the 1-based
// byte offset of the problem, or 0 when it concerns the whole input.
type PathParseError struct {
	Pos    int
	Detail string
}

func (e *PathParseError) Error() string {
	if e == nil {
		return ErrPathParse.Error()
	}
	if e.Pos == 0 {
		return fmt.Sprintf("%s: %s", ErrPathParse, e.Detail)
	}
	return fmt.Sprintf("%s at position %d: %s", ErrPathParse, e.Pos, e.Detail)
}

func (e *PathParseError) Unwrap() error {
	return ErrPathParse
}

func parseErrorf(pos int, format string, args ...any) error {
	return &PathParseError{Pos: pos, Detail: fmt.Sprintf(format, args...)}
}
