//go:build windows

package main

import (
	"github.com/petems/goggles/internal/hotkey"
	"github.com/petems/goggles/internal/transparency"
	"golang.org/x/sys/windows"
)

func newWindows() (transparency.Windows, error) {
	return transparency.NewWin32Windows()
}

func newRegistrar() hotkey.Registrar {
	return hotkey.Win32Registrar{}
}

func foreground() transparency.Handle {
	return transparency.Foreground()
}

// showError is the user-visible half of a fatal startup failure.
func showError(message string) {
	text, err := windows.UTF16PtrFromString(message)
	if err != nil {
		return
	}
	caption, _ := windows.UTF16PtrFromString("Goggles")
	windows.MessageBox(0, text, caption, windows.MB_OK|windows.MB_ICONERROR)
}
