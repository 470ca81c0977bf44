//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/petems/goggles/internal/hotkey"
	"github.com/petems/goggles/internal/transparency"
)

func newWindows() (transparency.Windows, error) {
	return nil, errors.New("window transparency is only supported on Windows")
}

func newRegistrar() hotkey.Registrar {
	return nil
}

func foreground() transparency.Handle {
	return 0
}

func showError(message string) {
	fmt.Fprintln(os.Stderr, message)
}
