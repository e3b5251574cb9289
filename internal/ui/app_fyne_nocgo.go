//go:build fyne && !cgo

package ui

import (
	"context"
	"errors"

	"slidedeck/internal/present"
)

// Run informs the user that the desktop presenter requires cgo (OpenGL) and a C toolchain.
// This stub is compiled when the build uses -tags fyne but CGO is disabled.
func Run(_ context.Context, _ *present.Session) error {
	return errors.New("desktop presenter requires cgo (OpenGL). Enable cgo and install a C toolchain, then rebuild with: CGO_ENABLED=1 go build -tags fyne ./cmd/slidedeck")
}
