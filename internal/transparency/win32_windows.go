//go:build windows

package transparency

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const gwlExStyle int32 = -20

var errNoCode = errors.New("call failed without an error code")

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetWindowLongPtrW          = user32.NewProc("GetWindowLongPtrW")
	procSetWindowLongPtrW          = user32.NewProc("SetWindowLongPtrW")
	procGetWindowLongW             = user32.NewProc("GetWindowLongW")
	procSetWindowLongW             = user32.NewProc("SetWindowLongW")
	procGetLayeredWindowAttributes = user32.NewProc("GetLayeredWindowAttributes")
	procSetLayeredWindowAttributes = user32.NewProc("SetLayeredWindowAttributes")
	procSetLastError               = kernel32.NewProc("SetLastError")
)

// Win32Windows implements Windows on top of user32.
//
// The window-long calls report failure only through the thread's last error,
// which is cleared just before each call. A Win32Windows must therefore be
// used from a goroutine locked to its OS thread (runtime.LockOSThread), as the
// hotkey pump is, so the clear and the call land on the same thread.
type Win32Windows struct {
	getLong *windows.LazyProc
	setLong *windows.LazyProc
}

// NewWin32Windows picks the pointer-sized window-long entry points when the
// platform exports them (64-bit user32) and the 32-bit ones otherwise.
func NewWin32Windows() (*Win32Windows, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("user32.dll is unavailable: %w", err)
	}
	w := &Win32Windows{getLong: procGetWindowLongPtrW, setLong: procSetWindowLongPtrW}
	if procGetWindowLongPtrW.Find() != nil || procSetWindowLongPtrW.Find() != nil {
		w.getLong, w.setLong = procGetWindowLongW, procSetWindowLongW
	}
	return w, nil
}

func (w *Win32Windows) IsWindow(h Handle) bool {
	return windows.IsWindow(windows.HWND(h))
}

// ExtendedStyle reads GWL_EXSTYLE. Zero is a valid style, so failure is only
// detectable through the thread's last error.
func (w *Win32Windows) ExtendedStyle(h Handle) (uintptr, error) {
	clearLastError()
	idx := gwlExStyle
	r, _, err := w.getLong.Call(uintptr(h), uintptr(idx))
	if r == 0 {
		if err := lastError(err); err != nil {
			return 0, fmt.Errorf("GetWindowLong(%#x): %w", uintptr(h), err)
		}
	}
	return r, nil
}

func (w *Win32Windows) SetExtendedStyle(h Handle, style uintptr) error {
	clearLastError()
	idx := gwlExStyle
	r, _, err := w.setLong.Call(uintptr(h), uintptr(idx), style)
	if r == 0 {
		if err := lastError(err); err != nil {
			return fmt.Errorf("SetWindowLong(%#x): %w", uintptr(h), err)
		}
	}
	return nil
}

func (w *Win32Windows) LayeredAttributes(h Handle) (Attributes, error) {
	var (
		key   uint32
		alpha byte
		flags uint32
	)
	r, _, err := procGetLayeredWindowAttributes.Call(
		uintptr(h),
		uintptr(unsafe.Pointer(&key)),
		uintptr(unsafe.Pointer(&alpha)),
		uintptr(unsafe.Pointer(&flags)),
	)
	if r == 0 {
		return Attributes{}, fmt.Errorf("GetLayeredWindowAttributes(%#x): %w", uintptr(h), callError(err))
	}
	return Attributes{ColorKey: key, Alpha: alpha, Flags: LayeredFlags(flags)}, nil
}

func (w *Win32Windows) SetLayeredAttributes(h Handle, attr Attributes) error {
	r, _, err := procSetLayeredWindowAttributes.Call(
		uintptr(h),
		uintptr(attr.ColorKey),
		uintptr(attr.Alpha),
		uintptr(attr.Flags),
	)
	if r == 0 {
		return fmt.Errorf("SetLayeredWindowAttributes(%#x): %w", uintptr(h), callError(err))
	}
	return nil
}

// Foreground returns the window that currently has input focus, or 0.
func Foreground() Handle {
	return Handle(windows.GetForegroundWindow())
}

func clearLastError() {
	procSetLastError.Call(0)
}

// lastError returns nil when the call left ERROR_SUCCESS behind.
func lastError(err error) error {
	if errno, ok := err.(syscall.Errno); ok && errno == 0 {
		return nil
	}
	return err
}

func callError(err error) error {
	if err := lastError(err); err != nil {
		return err
	}
	return errNoCode
}
