package config

import (
	"errors"
	"io"
	"strconv"

	"github.com/petems/goggles/internal/hotkey"
	"github.com/spf13/pflag"
)

// Usage is printed for --help.
const Usage = `usage: goggles [alpha [key]] [--alpha N] [--hotkey KEY] [--log-level LEVEL]

  alpha      opacity applied to the focused window, 0-255 (default 180)
  key        key pressed with Ctrl+Win to toggle, e.g. F11 (default F11)
`

// ApplyArgs overrides the config from command-line arguments. Both the
// positional form "goggles 200 F10" and flags are accepted; flags win.
// Values that do not parse are ignored and the configured value stays.
// The only error returned is from flag parsing itself, e.g. pflag.ErrHelp
// or an unknown flag; a negative alpha is not an error.
func (c *Config) ApplyArgs(args []string) error {
	fs := pflag.NewFlagSet("goggles", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	alpha := fs.String("alpha", "", "opacity 0-255")
	key := fs.String("hotkey", "", "toggle key name")
	level := fs.String("log-level", "", "log level")

	pos := args
	flagged := func(string) bool { return false }
	if err := fs.Parse(args); err == nil {
		pos, flagged = fs.Args(), fs.Changed
	} else if errors.Is(err, pflag.ErrHelp) || !hasNegativeNumber(args) {
		return err
	} else {
		// "goggles -5 F10" is positional with an out-of-range alpha, which
		// pflag reads as a shorthand flag. Take every argument positionally.
		*alpha, *key, *level = "", "", ""
	}

	if !flagged("alpha") && len(pos) > 0 {
		*alpha = pos[0]
	}
	if !flagged("hotkey") && len(pos) > 1 {
		*key = pos[1]
	}

	if a, err := strconv.ParseUint(*alpha, 10, 8); err == nil {
		c.Alpha = uint8(a)
	}
	if _, err := hotkey.ParseKey(*key); err == nil {
		c.Hotkey = *key
	}
	if *level != "" {
		c.LogLevel = *level
	}
	return nil
}

func hasNegativeNumber(args []string) bool {
	for _, a := range args {
		if len(a) > 1 && a[0] == '-' {
			if _, err := strconv.Atoi(a[1:]); err == nil {
				return true
			}
		}
	}
	return false
}
