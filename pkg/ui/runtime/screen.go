package runtime

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/wayfinder/pkg/logging"
	"github.com/odvcencio/wayfinder/pkg/ui/backend"
	"github.com/odvcencio/wayfinder/pkg/ui/focus"
)

// Layer represents a layer in the modal stack.
// Each layer has its own widget tree and focus manager.
type Layer struct {
	Root  *Container
	Focus *FocusManager
	Modal bool // If true, blocks input to layers below
}

// Screen manages the layer stack, key routing and the outline render.
type Screen struct {
	width, height int
	layers        []*Layer
	buffer        *Buffer
	bindings      *Bindings

	logger    *logging.Logger
	observers []NavigationObserver
	onChange  func(from, to focus.Element)
}

// NewScreen creates a new screen with the given dimensions and the
// default key bindings.
func NewScreen(w, h int) *Screen {
	return &Screen{
		width:    w,
		height:   h,
		buffer:   NewBuffer(w, h),
		bindings: DefaultBindings(),
	}
}

// Size returns the screen dimensions.
func (s *Screen) Size() (w, h int) {
	return s.width, s.height
}

// Resize changes the screen dimensions.
func (s *Screen) Resize(w, h int) {
	s.width = w
	s.height = h
	s.buffer.Resize(w, h)
}

// Buffer returns the screen's render buffer.
func (s *Screen) Buffer() *Buffer {
	return s.buffer
}

// SetBindings replaces the navigation key table. Nil restores defaults.
func (s *Screen) SetBindings(b *Bindings) {
	if b == nil {
		b = DefaultBindings()
	}
	s.bindings = b
}

// Bindings returns the navigation key table.
func (s *Screen) Bindings() *Bindings {
	return s.bindings
}

// SetLogger sets the logger for this screen and every layer.
func (s *Screen) SetLogger(logger *logging.Logger) {
	s.logger = logger
	for _, layer := range s.layers {
		layer.Focus.SetLogger(logger)
	}
}

// AddObserver registers a navigation observer on every current and future
// layer.
func (s *Screen) AddObserver(o NavigationObserver) {
	if o == nil {
		return
	}
	s.observers = append(s.observers, o)
	for _, layer := range s.layers {
		layer.Focus.AddObserver(o)
	}
}

// OnFocusChange registers a callback fired on focus transfers in any layer.
func (s *Screen) OnFocusChange(fn func(from, to focus.Element)) {
	s.onChange = fn
	for _, layer := range s.layers {
		layer.Focus.OnChange(fn)
	}
}

// SetRoot sets the root container of the base layer, creating the layer
// if needed. Focus moves to the widget with the same ID as the previously
// focused one when the new tree has it, otherwise to the default target.
func (s *Screen) SetRoot(root *Container) {
	if len(s.layers) == 0 {
		s.layers = append(s.layers, s.newLayer(root, false))
		s.layers[0].Focus.FocusDefault()
		return
	}

	fm := s.layers[0].Focus
	prevID := idOf(fm.Current())
	fm.SetRoot(root)
	s.layers[0].Root = root

	if prevID != "" && root != nil {
		if w := FindByID(root, prevID); w != nil && fm.SetFocus(w) {
			return
		}
	}
	fm.FocusDefault()
}

// Root returns the base layer's root container.
func (s *Screen) Root() *Container {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[0].Root
}

// PushLayer adds a new layer on top of the stack and focuses its default
// target. If modal is true, input won't pass to layers below.
func (s *Screen) PushLayer(root *Container, modal bool) {
	layer := s.newLayer(root, modal)
	s.layers = append(s.layers, layer)
	layer.Focus.FocusDefault()
}

// PopLayer removes the top layer from the stack.
// Returns false if only the base layer remains (can't pop it).
func (s *Screen) PopLayer() bool {
	if len(s.layers) <= 1 {
		return false
	}

	top := s.layers[len(s.layers)-1]
	top.Focus.ClearFocus()
	s.layers = s.layers[:len(s.layers)-1]
	s.TopLayer().Focus.Revalidate()
	return true
}

// TopLayer returns the topmost layer.
func (s *Screen) TopLayer() *Layer {
	if len(s.layers) == 0 {
		return nil
	}
	return s.layers[len(s.layers)-1]
}

// LayerCount returns the number of layers.
func (s *Screen) LayerCount() int {
	return len(s.layers)
}

// Focus returns the focus manager of the top layer.
func (s *Screen) Focus() *FocusManager {
	if top := s.TopLayer(); top != nil {
		return top.Focus
	}
	return nil
}

// Navigate moves focus in the top layer.
func (s *Screen) Navigate(dir focus.Direction) bool {
	if fm := s.Focus(); fm != nil {
		return fm.Navigate(dir)
	}
	return false
}

func (s *Screen) newLayer(root *Container, modal bool) *Layer {
	fm := NewFocusManager(root)
	fm.SetLogger(s.logger)
	fm.OnChange(s.onChange)
	for _, o := range s.observers {
		fm.AddObserver(o)
	}
	return &Layer{Root: root, Focus: fm, Modal: modal}
}

// HandleMessage routes a message. Keys go to the focused widget of the top
// layer; unhandled keys bound to a direction move focus. Unhandled keys
// fall through to lower layers until a modal layer is reached.
func (s *Screen) HandleMessage(msg Message) HandleResult {
	switch m := msg.(type) {
	case SceneMsg:
		s.SetRoot(m.Root)
		return Handled()
	case KeyMsg:
		return s.handleKey(m)
	default:
		return Unhandled()
	}
}

func (s *Screen) handleKey(msg KeyMsg) HandleResult {
	for i := len(s.layers) - 1; i >= 0; i-- {
		layer := s.layers[i]

		if w, ok := layer.Focus.Current().(Widget); ok {
			result := w.HandleMessage(msg)
			for _, cmd := range result.Commands {
				s.handleCommand(cmd)
			}
			if result.Handled {
				if top := s.TopLayer(); top != nil {
					top.Focus.Revalidate()
				}
				return result
			}
		}

		if i == len(s.layers)-1 {
			if dir, ok := s.bindings.Lookup(msg); ok {
				layer.Focus.Navigate(dir)
				return Handled()
			}
		}

		if layer.Modal {
			break
		}
	}
	return Unhandled()
}

// handleCommand processes a command from a widget.
func (s *Screen) handleCommand(cmd Command) {
	switch c := cmd.(type) {
	case FocusNext:
		s.Navigate(focus.Next)
	case FocusPrev:
		s.Navigate(focus.Previous)
	case FocusMove:
		s.Navigate(c.Direction)
	case PopOverlay:
		s.PopLayer()
	case PushOverlay:
		s.PushLayer(c.Root, c.Modal)
	}
	// Other commands bubble up to App
}

// Render draws the top layer as an indented outline. The focused row is
// drawn in reverse video and the view scrolls to keep it visible.
func (s *Screen) Render() {
	top := s.TopLayer()
	if top == nil || top.Root == nil {
		s.buffer.Clear()
		return
	}

	rows := outline(top.Root, top.Focus.Current())
	offset := 0
	for i, r := range rows {
		if r.focused && i >= s.height {
			offset = i - s.height + 1
		}
	}

	for y := 0; y < s.height; y++ {
		s.buffer.ClearLine(y)
		if y+offset >= len(rows) {
			continue
		}
		r := rows[y+offset]
		text := runewidth.Truncate(r.text, s.width, "…")
		s.buffer.SetString(0, y, text, r.style)
	}
}

type outlineRow struct {
	text    string
	style   backend.Style
	focused bool
}

func outline(root *Container, current focus.Element) []outlineRow {
	var rows []outlineRow
	Walk(root, func(w Widget, depth int) bool {
		focused := current != nil && focus.Element(w) == current
		marker := "  "
		if focused {
			marker = "> "
		}

		style := backend.DefaultStyle()
		switch {
		case focused:
			style = style.Reverse(true)
		case isDisabled(w):
			style = style.Dim(true)
		}

		rows = append(rows, outlineRow{
			text:    strings.Repeat("  ", depth) + marker + rowLabel(w),
			style:   style,
			focused: focused,
		})
		return true
	})
	return rows
}

func rowLabel(w Widget) string {
	if c, ok := w.(*Container); ok {
		label := c.Label()
		if label == "" {
			label = c.ID()
		}
		label = "[" + label + "]"
		if c.IsFocusRoot() {
			label += " (wrap)"
		}
		return label
	}
	if l, ok := w.(Labeled); ok && l.Label() != "" {
		return l.Label()
	}
	return Describe(w)
}

func isDisabled(w Widget) bool {
	if _, ok := w.(*Container); ok {
		return false
	}
	t, ok := w.(focus.Target)
	return ok && !t.CanFocus()
}

func idOf(e focus.Element) string {
	if id, ok := e.(interface{ ID() string }); ok {
		return id.ID()
	}
	return ""
}

// FindByID returns the first widget beneath root whose ID matches.
func FindByID(root Widget, id string) Widget {
	var found Widget
	Walk(root, func(w Widget, _ int) bool {
		if found != nil {
			return false
		}
		if idOf(w) == id {
			found = w
			return false
		}
		return true
	})
	return found
}
