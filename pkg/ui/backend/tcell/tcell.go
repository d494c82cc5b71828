// Package tcell provides a Backend implementation using tcell.
package tcell

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/odvcencio/wayfinder/pkg/ui/backend"
	"github.com/odvcencio/wayfinder/pkg/ui/terminal"
)

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen tcell.Screen
}

// New creates a new tcell backend.
func New() (*Backend, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Backend{screen: screen}, nil
}

// NewWithScreen creates a backend with an existing tcell screen (for testing).
func NewWithScreen(screen tcell.Screen) *Backend {
	return &Backend{screen: screen}
}

// Init initializes the backend.
func (b *Backend) Init() error {
	return b.screen.Init()
}

// Fini cleans up the backend.
func (b *Backend) Fini() {
	b.screen.Fini()
}

// Size returns the terminal dimensions.
func (b *Backend) Size() (width, height int) {
	return b.screen.Size()
}

// SetContent sets a cell at position (x, y).
func (b *Backend) SetContent(x, y int, mainc rune, comb []rune, style backend.Style) {
	b.screen.SetContent(x, y, mainc, comb, convertStyle(style))
}

// Show synchronizes the buffer to the terminal.
func (b *Backend) Show() {
	b.screen.Show()
}

// Clear clears the screen.
func (b *Backend) Clear() {
	b.screen.Clear()
}

// HideCursor hides the cursor.
func (b *Backend) HideCursor() {
	b.screen.HideCursor()
}

// PollEvent blocks until a key or resize event is available. Other tcell
// events are dropped.
func (b *Backend) PollEvent() terminal.Event {
	for {
		ev := b.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if converted := convertEvent(ev); converted != nil {
			return converted
		}
	}
}

// PostEvent injects an event into the queue.
func (b *Backend) PostEvent(ev terminal.Event) error {
	if tev := reverseConvertEvent(ev); tev != nil {
		return b.screen.PostEvent(tev)
	}
	return nil
}

// Sync forces a full redraw.
func (b *Backend) Sync() {
	b.screen.Sync()
}

// convertStyle converts backend.Style to tcell.Style.
func convertStyle(s backend.Style) tcell.Style {
	fg, bg, attrs := s.Decompose()
	return tcell.StyleDefault.
		Foreground(convertColor(fg)).
		Background(convertColor(bg)).
		Bold(attrs&backend.AttrBold != 0).
		Reverse(attrs&backend.AttrReverse != 0).
		Underline(attrs&backend.AttrUnderline != 0).
		Dim(attrs&backend.AttrDim != 0)
}

// convertColor converts backend.Color to tcell.Color.
func convertColor(c backend.Color) tcell.Color {
	if c == backend.ColorDefault {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c))
}

var keyTable = map[tcell.Key]terminal.Key{
	tcell.KeyUp:         terminal.KeyUp,
	tcell.KeyDown:       terminal.KeyDown,
	tcell.KeyRight:      terminal.KeyRight,
	tcell.KeyLeft:       terminal.KeyLeft,
	tcell.KeyPgUp:       terminal.KeyPageUp,
	tcell.KeyPgDn:       terminal.KeyPageDown,
	tcell.KeyHome:       terminal.KeyHome,
	tcell.KeyEnd:        terminal.KeyEnd,
	tcell.KeyInsert:     terminal.KeyInsert,
	tcell.KeyDelete:     terminal.KeyDelete,
	tcell.KeyBackspace2: terminal.KeyBackspace,
	tcell.KeyTab:        terminal.KeyTab,
	tcell.KeyEnter:      terminal.KeyEnter,
	tcell.KeyEscape:     terminal.KeyEscape,
}

// convertEvent converts a tcell event to terminal.Event.
func convertEvent(ev tcell.Event) terminal.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return convertKeyEvent(e)
	case *tcell.EventResize:
		w, h := e.Size()
		return terminal.ResizeEvent{Width: w, Height: h}
	default:
		return nil
	}
}

func convertKeyEvent(e *tcell.EventKey) terminal.KeyEvent {
	mods := e.Modifiers()
	out := terminal.KeyEvent{
		Alt:   mods&tcell.ModAlt != 0,
		Ctrl:  mods&tcell.ModCtrl != 0,
		Shift: mods&tcell.ModShift != 0,
	}

	k := e.Key()
	if mapped, ok := keyTable[k]; ok {
		out.Key = mapped
		return out
	}
	switch {
	case k == tcell.KeyRune:
		out.Key = terminal.KeyRune
		out.Rune = e.Rune()
		if out.Ctrl {
			out.Rune = unicode.ToLower(out.Rune)
		}
	case k == tcell.KeyBacktab:
		out.Key = terminal.KeyTab
		out.Shift = true
	case k == tcell.KeyBackspace:
		out.Key = terminal.KeyBackspace
	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		out.Key = terminal.KeyRune
		out.Rune = 'a' + rune(k-tcell.KeyCtrlA)
		out.Ctrl = true
	default:
		out.Key = terminal.KeyNone
	}
	return out
}

// reverseConvertEvent converts terminal.Event to tcell.Event for PostEvent.
func reverseConvertEvent(ev terminal.Event) tcell.Event {
	switch e := ev.(type) {
	case terminal.ResizeEvent:
		return tcell.NewEventResize(e.Width, e.Height)
	case terminal.KeyEvent:
		return reverseKeyEvent(e)
	default:
		return nil
	}
}

func reverseKeyEvent(e terminal.KeyEvent) tcell.Event {
	var mods tcell.ModMask
	if e.Alt {
		mods |= tcell.ModAlt
	}
	if e.Shift {
		mods |= tcell.ModShift
	}

	switch {
	case e.Key == terminal.KeyTab && e.Shift:
		return tcell.NewEventKey(tcell.KeyBacktab, 0, mods)
	case e.Key == terminal.KeyRune && e.Ctrl && e.Rune >= 'a' && e.Rune <= 'z':
		return tcell.NewEventKey(tcell.KeyCtrlA+tcell.Key(e.Rune-'a'), 0, mods|tcell.ModCtrl)
	case e.Key == terminal.KeyRune:
		return tcell.NewEventKey(tcell.KeyRune, e.Rune, mods)
	}
	if e.Ctrl {
		mods |= tcell.ModCtrl
	}
	for tk, k := range keyTable {
		if k == e.Key {
			return tcell.NewEventKey(tk, 0, mods)
		}
	}
	return nil
}

// Ensure Backend implements backend.Backend
var _ backend.Backend = (*Backend)(nil)
