//go:build !windows

package singleinstance

import "errors"

const MutexName = ""

// ErrAlreadyRunning is returned by TryLock when another instance holds the mutex.
var ErrAlreadyRunning = errors.New("goggles is already running")

// Lock is a no-op outside Windows.
type Lock struct{}

func TryLock(string) (*Lock, error) { return &Lock{}, nil }

func (l *Lock) Release() error { return nil }
