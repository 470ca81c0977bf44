package tray

import (
	"context"
	"fmt"
	"sync"

	"github.com/getlantern/systray"
	"github.com/rs/zerolog"
)

const appName = "Goggles"

type UI struct {
	shortcut string
	alpha    uint8
	log      zerolog.Logger
	onExit   func()

	mu      sync.Mutex
	tracked int

	// Menu items
	mNotice *systray.MenuItem
	mStatus *systray.MenuItem
}

// New creates the tray UI. onExit runs on the tray thread once the tray loop
// has been asked to stop, before the icon is removed.
func New(shortcut string, alpha uint8, logger zerolog.Logger, onExit func()) *UI {
	return &UI{
		shortcut: shortcut,
		alpha:    alpha,
		log:      logger,
		onExit:   onExit,
	}
}

// Run blocks running the tray loop until Quit is called, the Exit item is
// clicked or ctx is done. It must be called from the main goroutine.
func (u *UI) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		systray.Quit()
	}()
	systray.Run(u.onReady, u.handleExit)
	return nil
}

// SetTracked updates the number of windows shown as transparent.
func (u *UI) SetTracked(n int) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.tracked = n
	if u.mStatus != nil {
		u.mStatus.SetTitle(statusText(n))
	}
	systray.SetTooltip(tooltipText(u.shortcut, n))
}

func (u *UI) onReady() {
	icon, err := Icon()
	if err != nil {
		u.log.Error().Err(err).Msg("Failed to build tray icon")
	} else {
		systray.SetIcon(icon)
	}
	systray.SetTitle(appName)

	u.mu.Lock()
	systray.SetTooltip(tooltipText(u.shortcut, u.tracked))
	u.mNotice = systray.AddMenuItem(Notice(u.shortcut), "")
	u.mNotice.Disable()
	u.mStatus = systray.AddMenuItem(statusText(u.tracked), "")
	u.mStatus.Disable()
	u.mu.Unlock()

	systray.AddMenuItem(fmt.Sprintf("Opacity: %d/255", u.alpha), "").Disable()
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Exit", "Restore all windows and exit")

	u.log.Info().Msg(Notice(u.shortcut))

	// Event loop
	go u.handleEvents(mQuit)
}

func (u *UI) handleEvents(mQuit *systray.MenuItem) {
	<-mQuit.ClickedCh
	u.log.Info().Msg("Exit requested from tray")
	systray.Quit()
}

func (u *UI) handleExit() {
	if u.onExit != nil {
		u.onExit()
	}
}

// Notice is the one-time message naming the active shortcut.
func Notice(shortcut string) string {
	return fmt.Sprintf("Running. Use %s for transparency", shortcut)
}

func statusText(n int) string {
	switch n {
	case 0:
		return "No transparent windows"
	case 1:
		return "1 transparent window"
	default:
		return fmt.Sprintf("%d transparent windows", n)
	}
}

func tooltipText(shortcut string, n int) string {
	if n == 0 {
		return fmt.Sprintf("%s (%s)", appName, shortcut)
	}
	return fmt.Sprintf("%s (%s) - %s", appName, shortcut, statusText(n))
}
