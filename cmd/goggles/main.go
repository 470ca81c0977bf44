package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/petems/goggles/internal/app"
	"github.com/petems/goggles/internal/config"
	"github.com/petems/goggles/internal/hotkey"
	"github.com/petems/goggles/internal/logging"
	"github.com/petems/goggles/internal/singleinstance"
	"github.com/petems/goggles/internal/transparency"
	"github.com/petems/goggles/internal/tray"
	"github.com/spf13/pflag"
)

var (
	// Version is set via ldflags at build time
	Version = "dev"
	// Commit is set via ldflags at build time
	Commit = "unknown"
)

func main() {
	// Load config from %APPDATA%
	cfg, err := config.Load()
	if err != nil {
		// Use default logger if config fails to load
		log := logging.New()
		log.Warn().Err(err).Msg("Failed to load config, using defaults")
		cfg = config.Default()
	} else if !config.Exists() {
		// First run: leave an editable file behind. Arguments below are
		// per-launch overrides and are not written back.
		if err := cfg.Save(); err != nil {
			fmt.Fprintf(os.Stderr, "goggles: could not write default config: %v\n", err)
		}
	}

	if err := cfg.ApplyArgs(os.Args[1:]); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			fmt.Fprint(os.Stderr, config.Usage)
			return
		}
		fmt.Fprintf(os.Stderr, "goggles: %v\n", err)
	}

	// Initialize logger with configured level
	log := logging.NewWithLevel(cfg.LogLevel)
	log.Info().Str("version", Version).Str("commit", Commit).Msg("Goggles starting...")

	lock, err := singleinstance.TryLock(singleinstance.MutexName)
	if err != nil {
		showError(err.Error())
		log.Fatal().Err(err).Msg("Failed to acquire instance lock")
	}
	defer lock.Release()

	win, err := newWindows()
	if err != nil {
		showError(err.Error())
		log.Fatal().Err(err).Msg("Failed to initialize window access")
	}

	registry := hotkey.NewRegistry(newRegistrar(), log)
	manager := transparency.New(win, cfg.Alpha, log)

	var pump *hotkey.Pump
	stopPump := func() {
		if pump == nil {
			return
		}
		if err := pump.Stop(); err != nil {
			log.Error().Err(err).Msg("Failed to stop hotkey loop")
		}
	}

	mods, key := cfg.Binding()
	shortcut := hotkey.Binding{Modifiers: mods, Key: key}.String()
	trayUI := tray.New(shortcut, cfg.Alpha, log, stopPump)

	application := app.New(app.Config{
		Hotkeys:       registry,
		Transparency:  manager,
		Foreground:    foreground,
		Config:        cfg,
		Logger:        log,
		StatusUpdater: trayUI,
	})

	// Hotkeys are registered, delivered and torn down on the pump thread,
	// which is also the only thread that toggles windows.
	pump, err = hotkey.StartPump(registry, application.Start, func() {
		if err := application.Shutdown(); err != nil {
			log.Error().Err(err).Msg("Shutdown error")
		}
	})
	if err != nil {
		showError(startupMessage(shortcut, err))
		lock.Release()
		log.Fatal().Err(err).Msg("Failed to register hotkey")
	}
	defer stopPump()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup shutdown signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			log.Info().Msg("Shutting down...")
		case <-pump.Done():
			log.Warn().Msg("Hotkey loop ended unexpectedly")
		}
		cancel()
	}()

	// Start tray UI - MUST run on main thread
	if err := trayUI.Run(ctx); err != nil {
		log.Error().Err(err).Msg("Tray error")
	}
	log.Info().Msg("Goggles stopped")
}

func startupMessage(shortcut string, err error) string {
	var regErr *hotkey.RegistrationError
	if errors.As(err, &regErr) && regErr.Claimed() {
		return fmt.Sprintf("%s is already in use by another program.", shortcut)
	}
	return fmt.Sprintf("Could not register %s: %v", shortcut, err)
}
