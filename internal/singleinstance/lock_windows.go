//go:build windows

package singleinstance

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows"
)

// MutexName is per session: two users on one machine each get their own copy.
const MutexName = `Local\Goggles`

// ErrAlreadyRunning is returned by TryLock when another instance holds the mutex.
var ErrAlreadyRunning = errors.New("goggles is already running")

// Lock keeps the instance mutex open for the life of the process.
type Lock struct {
	handle windows.Handle
}

// TryLock opens the named mutex. Whoever creates it is the running instance;
// any later process sees ERROR_ALREADY_EXISTS and gets ErrAlreadyRunning.
func TryLock(name string) (*Lock, error) {
	if name == "" {
		return nil, errors.New("singleinstance: empty mutex name")
	}
	name16, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return nil, fmt.Errorf("singleinstance: mutex name %q: %w", name, err)
	}

	h, err := windows.CreateMutex(nil, false, name16)
	switch {
	case err == nil:
		return &Lock{handle: h}, nil
	case errors.Is(err, windows.ERROR_ALREADY_EXISTS):
		windows.CloseHandle(h)
		return nil, ErrAlreadyRunning
	default:
		return nil, fmt.Errorf("singleinstance: create %s: %w", name, err)
	}
}

// Release drops the mutex so another instance may start. Calling it again, or
// on a nil Lock, does nothing.
func (l *Lock) Release() error {
	if l == nil || l.handle == 0 {
		return nil
	}
	h := l.handle
	l.handle = 0
	return windows.CloseHandle(h)
}
