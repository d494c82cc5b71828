package runtime

import "github.com/odvcencio/wayfinder/pkg/ui/focus"

// Command represents an action/intent emitted by widgets.
// Commands bubble up from widgets to the app for handling.
type Command interface {
	isCommand()
}

// Quit signals the application should exit.
type Quit struct{}

func (Quit) isCommand() {}

// Refresh requests a screen redraw.
type Refresh struct{}

func (Refresh) isCommand() {}

// FocusNext requests focus move to the next focusable widget.
type FocusNext struct{}

func (FocusNext) isCommand() {}

// FocusPrev requests focus move to the previous focusable widget.
type FocusPrev struct{}

func (FocusPrev) isCommand() {}

// FocusMove requests focus move in an arbitrary direction.
type FocusMove struct {
	Direction focus.Direction
}

func (FocusMove) isCommand() {}

// PushOverlay requests a modal overlay be pushed.
type PushOverlay struct {
	Root  *Container
	Modal bool
}

func (PushOverlay) isCommand() {}

// PopOverlay requests the top overlay be dismissed.
type PopOverlay struct{}

func (PopOverlay) isCommand() {}

// Activated reports that a widget was clicked or otherwise triggered.
type Activated struct {
	ID string
}

func (Activated) isCommand() {}
