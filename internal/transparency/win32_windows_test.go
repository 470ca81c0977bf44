//go:build windows

package transparency

import (
	"errors"
	"runtime"
	"testing"

	"golang.org/x/sys/windows"
)

// Handle 1 is never a valid window.
const bogusHandle Handle = 1

func TestWin32ExtendedStyleInvalidHandle(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	w, err := NewWin32Windows()
	if err != nil {
		t.Fatalf("NewWin32Windows: %v", err)
	}
	if w.IsWindow(bogusHandle) {
		t.Fatal("handle 1 should not be a window")
	}

	_, err = w.ExtendedStyle(bogusHandle)
	if !errors.Is(err, windows.ERROR_INVALID_WINDOW_HANDLE) {
		t.Errorf("ExtendedStyle: got %v, want ERROR_INVALID_WINDOW_HANDLE", err)
	}
	if err := w.SetExtendedStyle(bogusHandle, StyleLayered); !errors.Is(err, windows.ERROR_INVALID_WINDOW_HANDLE) {
		t.Errorf("SetExtendedStyle: got %v, want ERROR_INVALID_WINDOW_HANDLE", err)
	}
}
