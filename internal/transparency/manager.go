package transparency

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Manager toggles forced transparency on windows and remembers how to undo it.
//
// A handle present in the snapshot set is currently forced transparent by the
// Manager; an absent handle is in whatever state the OS and its owner gave it.
// Manager is not safe for concurrent use: every call must come from the thread
// that runs the hotkey message loop.
type Manager struct {
	windows Windows
	alpha   uint8
	log     zerolog.Logger

	active map[Handle]WindowState
	closed bool
}

// New creates a Manager that applies the given alpha level.
func New(windows Windows, alpha uint8, logger zerolog.Logger) *Manager {
	return &Manager{
		windows: windows,
		alpha:   alpha,
		log:     logger,
		active:  make(map[Handle]WindowState),
	}
}

// Toggle makes h transparent, or restores it if it is already tracked.
// Failures are not returned: an apply failure leaves the window as it was
// found, a restore failure still forgets the window.
func (m *Manager) Toggle(h Handle) Result {
	if m.closed {
		return ResultClosed
	}

	if !m.windows.IsWindow(h) {
		delete(m.active, h)
		m.log.Debug().Uint64("hwnd", uint64(h)).Msg("Dropped stale window")
		return ResultEvicted
	}

	if state, ok := m.active[h]; ok {
		m.restore(state)
		delete(m.active, h)
		m.log.Debug().Uint64("hwnd", uint64(h)).Int("tracked", len(m.active)).Msg("Restored window")
		return ResultRestored
	}

	state, err := m.apply(h)
	if err != nil {
		m.log.Debug().Err(err).Uint64("hwnd", uint64(h)).Msg("Apply failed, window left untouched")
		return ResultFailed
	}
	m.active[h] = state
	m.log.Debug().
		Uint64("hwnd", uint64(h)).
		Uint8("alpha", m.alpha).
		Int("tracked", len(m.active)).
		Msg("Applied transparency")
	return ResultApplied
}

func (m *Manager) apply(h Handle) (WindowState, error) {
	style, err := m.windows.ExtendedStyle(h)
	if err != nil {
		return WindowState{}, fmt.Errorf("read extended style: %w", err)
	}

	state := WindowState{
		Handle:        h,
		ExtendedStyle: style,
		Alpha:         255,
	}

	// Keep whatever layering the owner already set up. An unreadable
	// attribute set counts as plain opaque.
	if style&StyleLayered != 0 {
		if attr, err := m.windows.LayeredAttributes(h); err == nil {
			state.Alpha = attr.Alpha
			state.ColorKey = attr.ColorKey
			state.HadAlpha = attr.Flags&FlagAlpha != 0
			state.HadColorKey = attr.Flags&FlagColorKey != 0
		}
	}

	if err := m.windows.SetExtendedStyle(h, style|StyleLayered); err != nil {
		return WindowState{}, fmt.Errorf("set layered style: %w", err)
	}

	if err := m.windows.SetLayeredAttributes(h, Attributes{Alpha: m.alpha, Flags: FlagAlpha}); err != nil {
		if rbErr := m.windows.SetExtendedStyle(h, style); rbErr != nil {
			m.log.Debug().Err(rbErr).Uint64("hwnd", uint64(h)).Msg("Style rollback failed")
		}
		return WindowState{}, fmt.Errorf("set alpha: %w", err)
	}

	return state, nil
}

// restore is best effort; the window may be half torn down.
func (m *Manager) restore(state WindowState) {
	if err := m.windows.SetExtendedStyle(state.Handle, state.ExtendedStyle); err != nil {
		m.log.Debug().Err(err).Uint64("hwnd", uint64(state.Handle)).Msg("Restore style failed")
	}

	flags := state.Flags()
	if flags == 0 {
		return
	}
	attr := Attributes{
		ColorKey: state.ColorKey,
		Alpha:    state.Alpha,
		Flags:    flags,
	}
	if err := m.windows.SetLayeredAttributes(state.Handle, attr); err != nil {
		m.log.Debug().Err(err).Uint64("hwnd", uint64(state.Handle)).Msg("Restore attributes failed")
	}
}

// Close restores every tracked window that still exists and forgets the rest.
// Calling Close more than once is a no-op.
func (m *Manager) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true

	restored := 0
	for h, state := range m.active {
		if m.windows.IsWindow(h) {
			m.restore(state)
			restored++
		}
	}
	dropped := len(m.active) - restored
	m.active = make(map[Handle]WindowState)

	m.log.Info().Int("restored", restored).Int("dropped", dropped).Msg("Transparency manager closed")
	return nil
}

// Tracked reports whether h is currently forced transparent.
func (m *Manager) Tracked(h Handle) bool {
	_, ok := m.active[h]
	return ok
}

// Snapshot returns a copy of the saved state for h.
func (m *Manager) Snapshot(h Handle) (WindowState, bool) {
	s, ok := m.active[h]
	return s, ok
}

// Len returns the number of tracked windows.
func (m *Manager) Len() int {
	return len(m.active)
}

// Alpha returns the alpha level applied on toggle-on.
func (m *Manager) Alpha() uint8 {
	return m.alpha
}
