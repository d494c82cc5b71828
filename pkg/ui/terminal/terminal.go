// Package terminal provides terminal event types used throughout the UI.
package terminal

import "strings"

// Event represents a terminal input event.
type Event interface {
	eventMarker()
}

// KeyEvent represents a key press. Control chords arrive as KeyRune with
// Ctrl set and the lower-case letter in Rune; Shift+Tab arrives as KeyTab
// with Shift set.
type KeyEvent struct {
	Key   Key
	Rune  rune
	Alt   bool
	Ctrl  bool
	Shift bool
}

func (KeyEvent) eventMarker() {}

// ResizeEvent indicates terminal size changed.
type ResizeEvent struct {
	Width  int
	Height int
}

func (ResizeEvent) eventMarker() {}

// Key represents special keys.
type Key int

const (
	KeyNone Key = iota
	KeyRune     // Regular character
	KeyEnter
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyDelete
	KeyInsert
)

var keyNames = map[Key]string{
	KeyNone:      "none",
	KeyRune:      "rune",
	KeyEnter:     "enter",
	KeyBackspace: "backspace",
	KeyTab:       "tab",
	KeyEscape:    "esc",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyPageUp:    "pgup",
	KeyPageDown:  "pgdn",
	KeyDelete:    "delete",
	KeyInsert:    "insert",
}

var keyAliases = map[string]Key{
	"escape":   KeyEscape,
	"return":   KeyEnter,
	"pageup":   KeyPageUp,
	"pagedown": KeyPageDown,
	"del":      KeyDelete,
	"ins":      KeyInsert,
}

// String returns the canonical key name.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// LookupKey resolves a key name such as "tab", "pgup" or "escape".
func LookupKey(name string) (Key, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if k, ok := keyAliases[name]; ok {
		return k, true
	}
	for k, n := range keyNames {
		if n == name && k != KeyNone && k != KeyRune {
			return k, true
		}
	}
	return KeyNone, false
}
