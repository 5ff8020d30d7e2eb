//go:build !cgo

package window

import (
	"errors"

	"github.com/olivier-w/epicycles/internal/cplx"
)

// Run is unavailable without cgo.
func Run(_ []cplx.Number, _ Options) error {
	return errors.New("window frontend requires cgo (build/run with CGO_ENABLED=1)")
}
