//go:build windows

package hotkey

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procRegisterHotKey     = user32.NewProc("RegisterHotKey")
	procUnregisterHotKey   = user32.NewProc("UnregisterHotKey")
	procGetMessageW        = user32.NewProc("GetMessageW")
	procPeekMessageW       = user32.NewProc("PeekMessageW")
	procTranslateMessage   = user32.NewProc("TranslateMessage")
	procDispatchMessageW   = user32.NewProc("DispatchMessageW")
	procPostThreadMessageW = user32.NewProc("PostThreadMessageW")
)

const (
	wmQuit     = 0x0012
	pmNoRemove = 0x0000
)

// msg mirrors the Win32 MSG struct; the layout must not change.
type msg struct {
	hwnd     uintptr
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       struct{ x, y int32 }
	lPrivate uint32
}

// Win32Registrar registers thread hotkeys: WM_HOTKEY is posted to the queue of
// the thread that called Register, so it must be used from the pump thread.
type Win32Registrar struct{}

func (Win32Registrar) Register(id int, mods Modifiers, key Key) error {
	r, _, err := procRegisterHotKey.Call(0, uintptr(id), uintptr(mods), uintptr(key))
	if r == 0 {
		return callError("RegisterHotKey", err)
	}
	return nil
}

func (Win32Registrar) Unregister(id int) error {
	r, _, err := procUnregisterHotKey.Call(0, uintptr(id))
	if r == 0 {
		return callError("UnregisterHotKey", err)
	}
	return nil
}

func callError(call string, err error) error {
	if errno, ok := err.(syscall.Errno); ok && errno != 0 {
		return errno
	}
	return errors.New(call + " failed")
}

// Dispatcher consumes messages the pump receives.
type Dispatcher interface {
	Dispatch(msg uint32, wParam uintptr) bool
}

// Pump runs a Win32 message loop on a dedicated OS thread. Everything that
// touches hotkeys or tracked windows runs on that thread.
type Pump struct {
	threadID uint32
	done     chan struct{}
	stopOnce sync.Once
}

// StartPump starts the loop. setup runs on the pump thread before the first
// message and its error is returned here; teardown runs on the pump thread
// after the loop ends, including when setup fails.
func StartPump(d Dispatcher, setup func() error, teardown func()) (*Pump, error) {
	if err := user32.Load(); err != nil {
		return nil, fmt.Errorf("user32.dll is unavailable: %w", err)
	}

	p := &Pump{done: make(chan struct{})}
	ready := make(chan error, 1)

	go p.run(d, setup, teardown, ready)

	if err := <-ready; err != nil {
		<-p.done
		return nil, err
	}
	return p, nil
}

func (p *Pump) run(d Dispatcher, setup func() error, teardown func(), ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(p.done)
	defer teardown()

	p.threadID = windows.GetCurrentThreadId()

	// Force creation of the thread message queue so Stop can post WM_QUIT.
	var m msg
	procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmNoRemove)

	if err := setup(); err != nil {
		ready <- err
		return
	}
	ready <- nil

	for {
		var m msg
		r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		if int32(r) <= 0 {
			// 0 is WM_QUIT, -1 is a broken queue; both end the loop.
			return
		}
		if d.Dispatch(m.message, m.wParam) {
			continue
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// Stop ends the loop and waits for teardown to finish. It is safe to call
// more than once and from any goroutine.
func (p *Pump) Stop() error {
	var err error
	p.stopOnce.Do(func() {
		select {
		case <-p.done:
			return
		default:
		}
		r, _, callErr := procPostThreadMessageW.Call(uintptr(p.threadID), wmQuit, 0, 0)
		if r == 0 {
			err = fmt.Errorf("post WM_QUIT: %w", callError("PostThreadMessageW", callErr))
			return
		}
		<-p.done
	})
	return err
}

// Done is closed once teardown has run.
func (p *Pump) Done() <-chan struct{} {
	return p.done
}
