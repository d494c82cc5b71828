package runtime

import "github.com/odvcencio/wayfinder/pkg/ui/terminal"

// testButton is a focusable widget. Keys listed in keyCommands are
// consumed and emit the mapped command.
type testButton struct {
	id          string
	enabled     bool
	focused     bool
	focusCalls  int
	blurCalls   int
	keyCommands map[rune]Command
	received    []KeyMsg
}

func newTestButton(id string) *testButton {
	return &testButton{id: id, enabled: true}
}

func (b *testButton) ID() string      { return b.id }
func (b *testButton) Label() string   { return b.id }
func (b *testButton) CanFocus() bool  { return b.enabled }
func (b *testButton) IsFocused() bool { return b.focused }

func (b *testButton) Focus() {
	b.focused = true
	b.focusCalls++
}

func (b *testButton) Blur() {
	b.focused = false
	b.blurCalls++
}

func (b *testButton) HandleMessage(msg Message) HandleResult {
	key, ok := msg.(KeyMsg)
	if !ok {
		return Unhandled()
	}
	b.received = append(b.received, key)
	if key.Key == terminal.KeyRune {
		if cmd, ok := b.keyCommands[key.Rune]; ok {
			return WithCommand(cmd)
		}
	}
	return Unhandled()
}

// testLabel is a non-focusable widget.
type testLabel struct {
	text string
}

func (l *testLabel) Label() string                      { return l.text }
func (l *testLabel) HandleMessage(Message) HandleResult { return Unhandled() }

func titled(id string, children ...Widget) *Container {
	c := NewContainer(children...)
	c.SetID(id)
	c.SetTitle(id)
	return c
}

type recordingObserver struct {
	navs []Navigation
}

func (r *recordingObserver) Navigated(nav Navigation) {
	r.navs = append(r.navs, nav)
}
