package app

import (
	"errors"

	"github.com/petems/goggles/internal/config"
	"github.com/petems/goggles/internal/hotkey"
	"github.com/petems/goggles/internal/transparency"
	"github.com/rs/zerolog"
)

// ToggleHotkeyID is the hotkey id of the transparency toggle.
const ToggleHotkeyID = 1

// StatusUpdater is an interface for updating status (e.g., tray icon)
type StatusUpdater interface {
	SetTracked(n int)
}

type Config struct {
	Hotkeys       *hotkey.Registry
	Transparency  *transparency.Manager
	Foreground    func() transparency.Handle
	Config        *config.Config
	Logger        zerolog.Logger
	StatusUpdater StatusUpdater // Optional - can be nil
}

// App connects the toggle hotkey to the transparency manager. Start, OnHotkey
// and Shutdown all run on the hotkey pump thread.
type App struct {
	hotkeys    *hotkey.Registry
	windows    *transparency.Manager
	foreground func() transparency.Handle
	log        zerolog.Logger
	status     StatusUpdater

	mods hotkey.Modifiers
	key  hotkey.Key
}

func New(cfg Config) *App {
	mods, key := cfg.Config.Binding()
	return &App{
		hotkeys:    cfg.Hotkeys,
		windows:    cfg.Transparency,
		foreground: cfg.Foreground,
		log:        cfg.Logger,
		status:     cfg.StatusUpdater,
		mods:       mods,
		key:        key,
	}
}

// Start registers the toggle hotkey.
func (a *App) Start() error {
	if err := a.hotkeys.Register(ToggleHotkeyID, a.mods, a.key, a.OnHotkey); err != nil {
		return err
	}
	a.log.Info().Str("hotkey", a.Shortcut()).Uint8("alpha", a.windows.Alpha()).Msg("Toggle hotkey registered")
	return nil
}

// OnHotkey toggles the window that currently has focus.
func (a *App) OnHotkey() {
	h := a.foreground()
	if h == 0 {
		a.log.Debug().Msg("No foreground window")
		return
	}

	result := a.windows.Toggle(h)
	a.log.Debug().Uint64("hwnd", uint64(h)).Stringer("result", result).Msg("Toggled")

	if a.status != nil {
		a.status.SetTracked(a.windows.Len())
	}
}

// Shutdown releases the hotkeys first, so no toggle can race the drain, then
// restores every window still made transparent.
func (a *App) Shutdown() error {
	return errors.Join(a.hotkeys.Close(), a.windows.Close())
}

// Shortcut returns the toggle combination for display, e.g. "Ctrl+Win+F11".
func (a *App) Shortcut() string {
	return hotkey.Binding{Modifiers: a.mods, Key: a.key}.String()
}
