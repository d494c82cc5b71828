package widgets

import (
	"github.com/odvcencio/wayfinder/pkg/ui/runtime"
	"github.com/odvcencio/wayfinder/pkg/ui/terminal"
)

// ButtonAction names a point in a button's life cycle that commands can
// be attached to.
type ButtonAction int

const (
	ButtonDown ButtonAction = iota
	ButtonUp
	ButtonClick
	ButtonFocusGained
	ButtonFocusLost
	ButtonEnabled
	ButtonDisabled
)

var buttonActionNames = [...]string{
	ButtonDown:        "down",
	ButtonUp:          "up",
	ButtonClick:       "click",
	ButtonFocusGained: "focus_gained",
	ButtonFocusLost:   "focus_lost",
	ButtonEnabled:     "enabled",
	ButtonDisabled:    "disabled",
}

func (a ButtonAction) String() string {
	if a < 0 || int(a) >= len(buttonActionNames) {
		return "unknown"
	}
	return buttonActionNames[a]
}

// Button is a focusable, clickable widget. Enter or Space clicks the
// focused button. Disabled buttons cannot take focus and ignore clicks.
type Button struct {
	FocusableBase
	text      string
	enabled   bool
	pressed   bool
	highlight bool
	commands  *CommandMap[*Button, ButtonAction]
}

// NewButton creates an enabled button.
func NewButton(text string) *Button {
	return &Button{
		text:     text,
		enabled:  true,
		commands: NewCommandMap[*Button, ButtonAction](),
	}
}

// Label returns the button text.
func (b *Button) Label() string {
	return b.text
}

// SetText replaces the button text.
func (b *Button) SetText(text string) {
	b.text = text
}

// Commands returns the button's action command map.
func (b *Button) Commands() *CommandMap[*Button, ButtonAction] {
	return b.commands
}

// AddCommands attaches commands to an action.
func (b *Button) AddCommands(action ButtonAction, cmds ...Command[*Button]) {
	b.commands.Add(action, cmds...)
}

// CanFocus reports whether the button is enabled.
func (b *Button) CanFocus() bool {
	return b.enabled
}

// IsEnabled reports whether the button is enabled.
func (b *Button) IsEnabled() bool {
	return b.enabled
}

// SetEnabled enables or disables the button and runs the Enabled or
// Disabled commands when the state changes.
func (b *Button) SetEnabled(enabled bool) {
	if b.enabled == enabled {
		return
	}
	b.enabled = enabled
	if enabled {
		b.commands.Run(b, ButtonEnabled)
		return
	}
	b.pressed = false
	b.commands.Run(b, ButtonDisabled)
}

// IsPressed reports whether the button is mid click.
func (b *Button) IsPressed() bool {
	return b.pressed
}

// IsHighlighted reports whether the focus highlight is on.
func (b *Button) IsHighlighted() bool {
	return b.highlight
}

// Focus turns on the focus highlight. It is ignored while disabled.
func (b *Button) Focus() {
	b.FocusableBase.Focus()
	if !b.enabled {
		return
	}
	b.highlight = true
	b.commands.Run(b, ButtonFocusGained)
}

// Blur turns off the focus highlight. FocusLost commands only run if the
// highlight was on.
func (b *Button) Blur() {
	b.FocusableBase.Blur()
	b.pressed = false
	if !b.highlight {
		return
	}
	b.highlight = false
	b.commands.Run(b, ButtonFocusLost)
}

// Click presses and releases the button. It reports false when disabled.
func (b *Button) Click() bool {
	if !b.enabled {
		return false
	}
	b.pressed = true
	b.commands.Run(b, ButtonDown)
	b.pressed = false
	b.commands.Run(b, ButtonUp)
	b.commands.Run(b, ButtonClick)
	return true
}

// HandleMessage clicks on Enter or Space while focused and emits an
// Activated command carrying the button ID.
func (b *Button) HandleMessage(msg runtime.Message) runtime.HandleResult {
	key, ok := msg.(runtime.KeyMsg)
	if !ok || !b.IsFocused() {
		return runtime.Unhandled()
	}
	if key.Key != terminal.KeyEnter && !(key.Key == terminal.KeyRune && key.Rune == ' ') {
		return runtime.Unhandled()
	}
	if !b.Click() {
		return runtime.Handled()
	}
	return runtime.WithCommand(runtime.Activated{ID: b.ID()})
}

var (
	_ runtime.Focusable = (*Button)(nil)
	_ runtime.Labeled   = (*Button)(nil)
)
