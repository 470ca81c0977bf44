package hotkey

import (
	"fmt"
	"strconv"
	"strings"
)

// Key is a Win32 virtual-key code.
type Key uint32

const (
	KeyTab      Key = 0x09
	KeyEnter    Key = 0x0D
	KeyPause    Key = 0x13
	KeyEscape   Key = 0x1B
	KeySpace    Key = 0x20
	KeyPageUp   Key = 0x21
	KeyPageDown Key = 0x22
	KeyEnd      Key = 0x23
	KeyHome     Key = 0x24
	KeyLeft     Key = 0x25
	KeyUp       Key = 0x26
	KeyRight    Key = 0x27
	KeyDown     Key = 0x28
	KeyInsert   Key = 0x2D
	KeyDelete   Key = 0x2E
	KeyNumPad0  Key = 0x60
	KeyF1       Key = 0x70
	KeyF2       Key = 0x71
	KeyF3       Key = 0x72
	KeyF4       Key = 0x73
	KeyF5       Key = 0x74
	KeyF6       Key = 0x75
	KeyF7       Key = 0x76
	KeyF8       Key = 0x77
	KeyF9       Key = 0x78
	KeyF10      Key = 0x79
	KeyF11      Key = 0x7A
	KeyF12      Key = 0x7B
	KeyF24      Key = 0x87
	KeyScroll   Key = 0x91
)

// DefaultKey is the toggle key used when none is configured.
const DefaultKey = KeyF11

var namedKeys = map[string]Key{
	"TAB":      KeyTab,
	"ENTER":    KeyEnter,
	"RETURN":   KeyEnter,
	"PAUSE":    KeyPause,
	"ESC":      KeyEscape,
	"ESCAPE":   KeyEscape,
	"SPACE":    KeySpace,
	"PAGEUP":   KeyPageUp,
	"PRIOR":    KeyPageUp,
	"PAGEDOWN": KeyPageDown,
	"NEXT":     KeyPageDown,
	"END":      KeyEnd,
	"HOME":     KeyHome,
	"LEFT":     KeyLeft,
	"UP":       KeyUp,
	"RIGHT":    KeyRight,
	"DOWN":     KeyDown,
	"INSERT":   KeyInsert,
	"DELETE":   KeyDelete,
	"SCROLL":   KeyScroll,
}

var keyDisplayNames = map[Key]string{
	KeyTab:      "Tab",
	KeyEnter:    "Enter",
	KeyPause:    "Pause",
	KeyEscape:   "Escape",
	KeySpace:    "Space",
	KeyPageUp:   "PageUp",
	KeyPageDown: "PageDown",
	KeyEnd:      "End",
	KeyHome:     "Home",
	KeyLeft:     "Left",
	KeyUp:       "Up",
	KeyRight:    "Right",
	KeyDown:     "Down",
	KeyInsert:   "Insert",
	KeyDelete:   "Delete",
	KeyScroll:   "Scroll",
}

// ParseKey resolves a case-insensitive key name: F1-F24, A-Z, 0-9 (also
// D0-D9), NumPad0-NumPad9 and the named keys above.
func ParseKey(name string) (Key, error) {
	s := strings.ToUpper(strings.TrimSpace(name))
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrUnknownKey)
	}

	if k, ok := namedKeys[s]; ok {
		return k, nil
	}

	if len(s) == 1 {
		c := s[0]
		if ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') {
			return Key(c), nil
		}
	}

	if rest, ok := strings.CutPrefix(s, "NUMPAD"); ok {
		if n, ok := keyNumber(rest); ok && n <= 9 {
			return KeyNumPad0 + Key(n), nil
		}
	}

	if rest, ok := strings.CutPrefix(s, "D"); ok {
		if n, ok := keyNumber(rest); ok && n <= 9 {
			return Key('0' + n), nil
		}
	}

	if rest, ok := strings.CutPrefix(s, "F"); ok {
		if n, ok := keyNumber(rest); ok && n >= 1 && n <= 24 {
			return KeyF1 + Key(n-1), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKey, name)
}

// keyNumber parses the numeric suffix of names like F11 or NumPad3: one or
// two plain digits, no sign and no leading zero.
func keyNumber(s string) (int, bool) {
	if len(s) == 0 || len(s) > 2 || (len(s) == 2 && s[0] == '0') {
		return 0, false
	}
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
		n = n*10 + int(s[i]-'0')
	}
	return n, true
}

func (k Key) String() string {
	if name, ok := keyDisplayNames[k]; ok {
		return name
	}
	switch {
	case ('A' <= k && k <= 'Z') || ('0' <= k && k <= '9'):
		return string(rune(k))
	case KeyF1 <= k && k <= KeyF24:
		return "F" + strconv.Itoa(int(k-KeyF1)+1)
	case KeyNumPad0 <= k && k <= KeyNumPad0+9:
		return "NumPad" + strconv.Itoa(int(k-KeyNumPad0))
	}
	return fmt.Sprintf("VK_%#02x", uint32(k))
}
