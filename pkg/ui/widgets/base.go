// Package widgets provides reusable widgets for terminal UIs.
package widgets

import "github.com/odvcencio/wayfinder/pkg/ui/runtime"

// Base provides common functionality for widgets.
// Embed this in widget structs to get default implementations.
type Base struct {
	id string
}

// ID returns the widget identifier.
func (b *Base) ID() string {
	return b.id
}

// SetID sets the widget identifier.
func (b *Base) SetID(id string) {
	b.id = id
}

// HandleMessage returns Unhandled by default.
func (b *Base) HandleMessage(msg runtime.Message) runtime.HandleResult {
	return runtime.Unhandled()
}

// FocusableBase extends Base for focusable widgets.
type FocusableBase struct {
	Base
	focused bool
}

// CanFocus returns true for focusable widgets.
func (f *FocusableBase) CanFocus() bool {
	return true
}

// Focus marks the widget as focused.
func (f *FocusableBase) Focus() {
	f.focused = true
}

// Blur marks the widget as unfocused.
func (f *FocusableBase) Blur() {
	f.focused = false
}

// IsFocused returns whether the widget is focused.
func (f *FocusableBase) IsFocused() bool {
	return f.focused
}
