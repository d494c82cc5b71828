package runtime

import (
	"testing"

	"github.com/odvcencio/wayfinder/pkg/ui/focus"
	"github.com/odvcencio/wayfinder/pkg/ui/terminal"
)

func TestParseKeyBinding(t *testing.T) {
	tests := []struct {
		in   string
		want KeyBinding
	}{
		{"tab", KeyBinding{Key: terminal.KeyTab}},
		{"shift+tab", KeyBinding{Key: terminal.KeyTab, Shift: true}},
		{"Ctrl+P", KeyBinding{Key: terminal.KeyRune, Rune: 'p', Ctrl: true}},
		{"j", KeyBinding{Key: terminal.KeyRune, Rune: 'j'}},
		{"shift+J", KeyBinding{Key: terminal.KeyRune, Rune: 'J'}},
		{"alt+pgdn", KeyBinding{Key: terminal.KeyPageDown, Alt: true}},
		{" pageup ", KeyBinding{Key: terminal.KeyPageUp}},
	}

	for _, tt := range tests {
		got, err := ParseKeyBinding(tt.in)
		if err != nil {
			t.Errorf("ParseKeyBinding(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseKeyBinding(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseKeyBinding_Errors(t *testing.T) {
	for _, in := range []string{"", "hyper+x", "ctrl+", "nope"} {
		if _, err := ParseKeyBinding(in); err == nil {
			t.Errorf("ParseKeyBinding(%q) should fail", in)
		}
	}
}

func TestKeyBinding_StringRoundTrip(t *testing.T) {
	for _, in := range []string{"ctrl+p", "shift+tab", "alt+down", "k"} {
		kb, err := ParseKeyBinding(in)
		if err != nil {
			t.Fatalf("ParseKeyBinding(%q): %v", in, err)
		}
		if kb.String() != in {
			t.Errorf("String() = %q, want %q", kb.String(), in)
		}
	}
}

func TestDefaultBindings(t *testing.T) {
	b := DefaultBindings()
	tests := []struct {
		msg  KeyMsg
		want focus.Direction
	}{
		{KeyMsg{Key: terminal.KeyUp}, focus.Up},
		{KeyMsg{Key: terminal.KeyDown}, focus.Down},
		{KeyMsg{Key: terminal.KeyLeft}, focus.Left},
		{KeyMsg{Key: terminal.KeyRight}, focus.Right},
		{KeyMsg{Key: terminal.KeyTab}, focus.Next},
		{KeyMsg{Key: terminal.KeyTab, Shift: true}, focus.Previous},
		{KeyMsg{Key: terminal.KeyHome}, focus.Home},
		{KeyMsg{Key: terminal.KeyEnd}, focus.End},
		{KeyMsg{Key: terminal.KeyPageUp}, focus.PageHome},
		{KeyMsg{Key: terminal.KeyPageDown}, focus.PageEnd},
	}
	for _, tt := range tests {
		got, ok := b.Lookup(tt.msg)
		if !ok || got != tt.want {
			t.Errorf("Lookup(%+v) = %v, %v; want %v", tt.msg, got, ok, tt.want)
		}
	}

	if _, ok := b.Lookup(KeyMsg{Key: terminal.KeyRune, Rune: 'x'}); ok {
		t.Error("unbound key should not resolve")
	}
}

func TestBindings_Apply(t *testing.T) {
	b := DefaultBindings()
	err := b.Apply(map[string]string{
		"j":      "down",
		"k":      "up",
		"ctrl+n": "next",
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if dir, ok := b.Lookup(KeyMsg{Key: terminal.KeyRune, Rune: 'j'}); !ok || dir != focus.Down {
		t.Errorf("j = %v, %v", dir, ok)
	}
	if dir, ok := b.Lookup(KeyMsg{Key: terminal.KeyRune, Rune: 'n', Ctrl: true}); !ok || dir != focus.Next {
		t.Errorf("ctrl+n = %v, %v", dir, ok)
	}
	// A rune typed with shift held still matches the rune binding.
	if dir, ok := b.Lookup(KeyMsg{Key: terminal.KeyRune, Rune: 'k', Shift: true}); !ok || dir != focus.Up {
		t.Errorf("shift+k = %v, %v", dir, ok)
	}

	if err := b.Apply(map[string]string{"x": "sideways"}); err == nil {
		t.Error("Apply should reject unknown directions")
	}
	if err := b.Apply(map[string]string{"bogus+x": "up"}); err == nil {
		t.Error("Apply should reject unknown modifiers")
	}
}

func TestBindings_Unbind(t *testing.T) {
	b := DefaultBindings()
	b.Unbind(KeyBinding{Key: terminal.KeyTab})
	if _, ok := b.Lookup(KeyMsg{Key: terminal.KeyTab}); ok {
		t.Error("tab should be unbound")
	}
	if _, ok := b.Lookup(KeyMsg{Key: terminal.KeyTab, Shift: true}); !ok {
		t.Error("shift+tab should remain bound")
	}
}

func TestBindings_Describe(t *testing.T) {
	b := NewBindings()
	b.Bind(KeyBinding{Key: terminal.KeyRune, Rune: 'j'}, focus.Down)
	b.Bind(KeyBinding{Key: terminal.KeyTab}, focus.Next)

	got := b.Describe()
	if len(got) != 2 || got[0] != "j=down" || got[1] != "tab=next" {
		t.Errorf("Describe() = %v", got)
	}
}

func TestBindings_NilLookup(t *testing.T) {
	var b *Bindings
	if _, ok := b.Lookup(KeyMsg{Key: terminal.KeyTab}); ok {
		t.Error("nil bindings should resolve nothing")
	}
}
