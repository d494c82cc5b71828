// Package runtime provides the widget runtime for wayfinder's TUI.
// It owns focus: a FocusManager per layer asks the focus package where
// focus should go and performs the transfer, and a modal stack of layers
// keeps focus trapped inside overlays.
package runtime

import "github.com/odvcencio/wayfinder/pkg/ui/focus"

// Widget is the core interface all UI components implement.
type Widget interface {
	// HandleMessage processes input/events.
	// Returns result indicating if handled and any commands to bubble up.
	HandleMessage(msg Message) HandleResult
}

// Focusable extends Widget for widgets that can receive keyboard focus.
type Focusable interface {
	Widget
	focus.Target

	// Focus is called when the widget gains focus.
	Focus()

	// Blur is called when the widget loses focus.
	Blur()

	// IsFocused returns true if this widget currently has focus.
	IsFocused() bool
}

// Labeled is implemented by widgets that have a display label.
type Labeled interface {
	Label() string
}

// Parent is implemented by widgets that group other widgets.
type Parent interface {
	Children() []Widget
}

// HandleResult is returned from HandleMessage.
type HandleResult struct {
	Handled  bool      // Was the message consumed?
	Commands []Command // Commands to send to parent/app
}

// Handled returns a result indicating the message was consumed.
func Handled() HandleResult {
	return HandleResult{Handled: true}
}

// Unhandled returns a result indicating the message was not consumed.
func Unhandled() HandleResult {
	return HandleResult{Handled: false}
}

// WithCommand returns a handled result with a single command.
func WithCommand(cmd Command) HandleResult {
	return HandleResult{Handled: true, Commands: []Command{cmd}}
}

// WithCommands returns a handled result with multiple commands.
func WithCommands(cmds ...Command) HandleResult {
	return HandleResult{Handled: true, Commands: cmds}
}
