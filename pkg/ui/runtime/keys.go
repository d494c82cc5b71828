package runtime

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/odvcencio/wayfinder/pkg/ui/focus"
	"github.com/odvcencio/wayfinder/pkg/ui/terminal"
)

// KeyBinding identifies a key chord. For printable keys Rune carries the
// character and Shift is ignored.
type KeyBinding struct {
	Key   terminal.Key
	Rune  rune
	Ctrl  bool
	Alt   bool
	Shift bool
}

// ParseKeyBinding parses names like "tab", "shift+tab", "ctrl+p" or "j".
func ParseKeyBinding(s string) (KeyBinding, error) {
	parts := strings.Split(strings.TrimSpace(s), "+")
	var kb KeyBinding
	for _, mod := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(mod)) {
		case "ctrl", "control":
			kb.Ctrl = true
		case "alt", "meta":
			kb.Alt = true
		case "shift":
			kb.Shift = true
		default:
			return KeyBinding{}, fmt.Errorf("unknown modifier %q in %q", mod, s)
		}
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	if name == "" {
		return KeyBinding{}, fmt.Errorf("empty key in %q", s)
	}
	if k, ok := terminal.LookupKey(name); ok {
		kb.Key = k
		return kb, nil
	}
	if utf8.RuneCountInString(name) != 1 {
		return KeyBinding{}, fmt.Errorf("unknown key %q", name)
	}
	r, _ := utf8.DecodeRuneInString(name)
	kb.Key = terminal.KeyRune
	kb.Rune = r
	return kb.normalize(), nil
}

// BindingFor returns the chord that msg represents.
func BindingFor(msg KeyMsg) KeyBinding {
	kb := KeyBinding{Key: msg.Key, Ctrl: msg.Ctrl, Alt: msg.Alt, Shift: msg.Shift}
	if msg.Key == terminal.KeyRune {
		kb.Rune = msg.Rune
	}
	return kb.normalize()
}

func (kb KeyBinding) normalize() KeyBinding {
	if kb.Key == terminal.KeyRune {
		kb.Shift = false
		if kb.Ctrl {
			kb.Rune = unicode.ToLower(kb.Rune)
		}
	}
	return kb
}

// String renders the chord in the form ParseKeyBinding accepts.
func (kb KeyBinding) String() string {
	var b strings.Builder
	if kb.Ctrl {
		b.WriteString("ctrl+")
	}
	if kb.Alt {
		b.WriteString("alt+")
	}
	if kb.Shift {
		b.WriteString("shift+")
	}
	if kb.Key == terminal.KeyRune {
		b.WriteRune(kb.Rune)
	} else {
		b.WriteString(kb.Key.String())
	}
	return b.String()
}

// Bindings maps key chords to focus directions.
type Bindings struct {
	table map[KeyBinding]focus.Direction
}

// NewBindings creates an empty table.
func NewBindings() *Bindings {
	return &Bindings{table: make(map[KeyBinding]focus.Direction)}
}

// DefaultBindings returns the stock navigation keys.
func DefaultBindings() *Bindings {
	b := NewBindings()
	b.Bind(KeyBinding{Key: terminal.KeyUp}, focus.Up)
	b.Bind(KeyBinding{Key: terminal.KeyDown}, focus.Down)
	b.Bind(KeyBinding{Key: terminal.KeyLeft}, focus.Left)
	b.Bind(KeyBinding{Key: terminal.KeyRight}, focus.Right)
	b.Bind(KeyBinding{Key: terminal.KeyTab}, focus.Next)
	b.Bind(KeyBinding{Key: terminal.KeyTab, Shift: true}, focus.Previous)
	b.Bind(KeyBinding{Key: terminal.KeyHome}, focus.Home)
	b.Bind(KeyBinding{Key: terminal.KeyEnd}, focus.End)
	b.Bind(KeyBinding{Key: terminal.KeyPageUp}, focus.PageHome)
	b.Bind(KeyBinding{Key: terminal.KeyPageDown}, focus.PageEnd)
	return b
}

// Bind maps kb to dir, replacing any previous mapping.
func (b *Bindings) Bind(kb KeyBinding, dir focus.Direction) {
	b.table[kb.normalize()] = dir
}

// Unbind removes the mapping for kb.
func (b *Bindings) Unbind(kb KeyBinding) {
	delete(b.table, kb.normalize())
}

// Apply binds every entry of keys (chord name to direction name).
func (b *Bindings) Apply(keys map[string]string) error {
	for key, dirName := range keys {
		kb, err := ParseKeyBinding(key)
		if err != nil {
			return err
		}
		dir, ok := focus.ParseDirection(dirName)
		if !ok {
			return fmt.Errorf("unknown direction %q for key %q", dirName, key)
		}
		b.Bind(kb, dir)
	}
	return nil
}

// Lookup returns the direction bound to msg.
func (b *Bindings) Lookup(msg KeyMsg) (focus.Direction, bool) {
	if b == nil {
		return focus.Down, false
	}
	dir, ok := b.table[BindingFor(msg)]
	return dir, ok
}

// Describe lists the bindings as "chord=direction", sorted by chord.
func (b *Bindings) Describe() []string {
	out := make([]string, 0, len(b.table))
	for kb, dir := range b.table {
		out = append(out, kb.String()+"="+dir.String())
	}
	sort.Strings(out)
	return out
}
