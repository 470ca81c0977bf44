package hotkey

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
)

// MsgHotkey is the WM_HOTKEY message number; wParam carries the binding id.
const MsgHotkey uint32 = 0x0312

// Modifiers is the fsModifiers bitmask of RegisterHotKey.
type Modifiers uint32

const (
	ModAlt      Modifiers = 0x0001
	ModControl  Modifiers = 0x0002
	ModShift    Modifiers = 0x0004
	ModWin      Modifiers = 0x0008
	ModNoRepeat Modifiers = 0x4000
)

var modifierNames = []struct {
	mod  Modifiers
	name string
}{
	{ModControl, "Ctrl"},
	{ModAlt, "Alt"},
	{ModShift, "Shift"},
	{ModWin, "Win"},
}

// String renders the modifiers the way they are pressed, e.g. "Ctrl+Win".
// ModNoRepeat is not a key and is never shown.
func (m Modifiers) String() string {
	var parts []string
	for _, n := range modifierNames {
		if m&n.mod != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "+")
}

// ParseModifier maps a modifier name such as "ctrl" or "super" to its bit.
func ParseModifier(name string) (Modifiers, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "CTRL", "CONTROL":
		return ModControl, nil
	case "ALT":
		return ModAlt, nil
	case "SHIFT":
		return ModShift, nil
	case "WIN", "SUPER", "META":
		return ModWin, nil
	case "NOREPEAT":
		return ModNoRepeat, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModifier, name)
}

var (
	ErrDuplicateID     = errors.New("hotkey id already registered")
	ErrNotRegistered   = errors.New("hotkey id not registered")
	ErrNilCallback     = errors.New("hotkey callback is required")
	ErrClosed          = errors.New("hotkey registry is closed")
	ErrHotkeyClaimed   = errors.New("hotkey could not be reserved")
	ErrUnknownKey      = errors.New("unknown key name")
	ErrUnknownModifier = errors.New("unknown modifier name")
	ErrUnsupported     = errors.New("global hotkeys are only supported on Windows")
)

// errHotkeyAlreadyRegistered is ERROR_HOTKEY_ALREADY_REGISTERED.
const errHotkeyAlreadyRegistered syscall.Errno = 1409

// RegistrationError reports that the OS refused to reserve a hotkey.
type RegistrationError struct {
	ID   int
	Code syscall.Errno
	Err  error
}

func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register hotkey %d: %v (code %d)", e.ID, e.Err, uint32(e.Code))
}

func (e *RegistrationError) Unwrap() error { return e.Err }

func (e *RegistrationError) Is(target error) bool {
	return target == ErrHotkeyClaimed && e.Claimed()
}

// Claimed reports whether another process already owns the combination.
func (e *RegistrationError) Claimed() bool {
	return e.Code == errHotkeyAlreadyRegistered
}

// Registrar reserves global hotkeys with the OS.
type Registrar interface {
	Register(id int, mods Modifiers, key Key) error
	Unregister(id int) error
}

// Binding ties a hotkey id to a key combination and its callback.
type Binding struct {
	ID        int
	Modifiers Modifiers
	Key       Key
	Callback  func()
}

// String returns the combination as the user presses it, e.g. "Ctrl+Win+F11".
func (b Binding) String() string {
	mods := b.Modifiers.String()
	if mods == "" {
		return b.Key.String()
	}
	return mods + "+" + b.Key.String()
}

// Registry maps hotkey ids to callbacks. It must only be used from the thread
// that pumps messages for the registrar, and is not safe for concurrent use.
type Registry struct {
	registrar Registrar
	log       zerolog.Logger

	bindings map[int]Binding
	closed   bool
}

// NewRegistry creates an empty registry backed by registrar.
func NewRegistry(registrar Registrar, logger zerolog.Logger) *Registry {
	return &Registry{
		registrar: registrar,
		log:       logger,
		bindings:  make(map[int]Binding),
	}
}

// Register reserves the combination with the OS and binds callback to id.
func (r *Registry) Register(id int, mods Modifiers, key Key, callback func()) error {
	if r.closed {
		return ErrClosed
	}
	if callback == nil {
		return ErrNilCallback
	}
	if _, ok := r.bindings[id]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, id)
	}

	if err := r.registrar.Register(id, mods, key); err != nil {
		regErr := &RegistrationError{ID: id, Err: err}
		errors.As(err, &regErr.Code)
		return regErr
	}

	b := Binding{ID: id, Modifiers: mods, Key: key, Callback: callback}
	r.bindings[id] = b
	r.log.Debug().Int("id", id).Str("hotkey", b.String()).Msg("Registered hotkey")
	return nil
}

// Unregister releases one binding. The binding is forgotten even when the OS
// call fails.
func (r *Registry) Unregister(id int) error {
	if _, ok := r.bindings[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotRegistered, id)
	}
	delete(r.bindings, id)
	if err := r.registrar.Unregister(id); err != nil {
		return fmt.Errorf("unregister hotkey %d: %w", id, err)
	}
	return nil
}

// Dispatch handles a message from the pump. It returns true when the message
// was a hotkey occurrence for a bound id; the callback has run by then.
func (r *Registry) Dispatch(msg uint32, wParam uintptr) bool {
	if msg != MsgHotkey {
		return false
	}
	b, ok := r.bindings[int(wParam)]
	if !ok {
		return false
	}
	b.Callback()
	return true
}

// Registered reports whether id is bound.
func (r *Registry) Registered(id int) bool {
	_, ok := r.bindings[id]
	return ok
}

// Bindings returns the current bindings ordered by id.
func (r *Registry) Bindings() []Binding {
	out := make([]Binding, 0, len(r.bindings))
	for _, b := range r.bindings {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Close releases every binding. Unregistration failures are ignored; the
// process is on its way out. Close is idempotent.
func (r *Registry) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true

	for id := range r.bindings {
		if err := r.registrar.Unregister(id); err != nil {
			r.log.Debug().Err(err).Int("id", id).Msg("Unregister failed during close")
		}
	}
	r.bindings = make(map[int]Binding)
	return nil
}
