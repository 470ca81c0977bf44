package transparency

// Handle is an opaque window handle owned by another process.
type Handle uintptr

// LayeredFlags mirrors the LWA_* bits of a layered window.
type LayeredFlags uint32

const (
	// FlagColorKey marks the color key as active (LWA_COLORKEY).
	FlagColorKey LayeredFlags = 0x1
	// FlagAlpha marks the alpha value as active (LWA_ALPHA).
	FlagAlpha LayeredFlags = 0x2
)

// StyleLayered is the WS_EX_LAYERED extended-style bit.
const StyleLayered uintptr = 0x00080000

// Attributes are the layered-window attributes of a window.
type Attributes struct {
	ColorKey uint32
	Alpha    uint8
	Flags    LayeredFlags
}

// Windows is the window-attribute capability the Manager drives.
// Every call may fail; implementations report the platform error.
type Windows interface {
	IsWindow(h Handle) bool
	ExtendedStyle(h Handle) (uintptr, error)
	SetExtendedStyle(h Handle, style uintptr) error
	LayeredAttributes(h Handle) (Attributes, error)
	SetLayeredAttributes(h Handle, attr Attributes) error
}

// WindowState is the snapshot taken before a window was made transparent.
// Alpha is meaningful only if HadAlpha, ColorKey only if HadColorKey.
type WindowState struct {
	Handle        Handle
	ExtendedStyle uintptr
	Alpha         uint8
	ColorKey      uint32
	HadAlpha      bool
	HadColorKey   bool
}

// Flags returns the layered flag combination the window had originally.
func (s WindowState) Flags() LayeredFlags {
	var f LayeredFlags
	if s.HadAlpha {
		f |= FlagAlpha
	}
	if s.HadColorKey {
		f |= FlagColorKey
	}
	return f
}

// Result describes what a call to Toggle did.
type Result int

const (
	ResultApplied Result = iota
	ResultRestored
	ResultEvicted
	ResultFailed
	ResultClosed
)

func (r Result) String() string {
	switch r {
	case ResultApplied:
		return "applied"
	case ResultRestored:
		return "restored"
	case ResultEvicted:
		return "evicted"
	case ResultFailed:
		return "failed"
	case ResultClosed:
		return "closed"
	default:
		return "unknown"
	}
}
