package runtime

import (
	"fmt"
	"time"

	"github.com/odvcencio/wayfinder/pkg/logging"
	"github.com/odvcencio/wayfinder/pkg/ui/focus"
)

// Navigation describes one resolved focus movement request.
type Navigation struct {
	Direction focus.Direction
	From      focus.Element
	To        focus.Element // nil when nothing qualified
	Started   time.Time
	Duration  time.Duration
}

// Outcome classifies the navigation result: "moved", "stayed" or "none".
func (n Navigation) Outcome() string {
	switch {
	case n.To == nil:
		return "none"
	case n.To == n.From:
		return "stayed"
	default:
		return "moved"
	}
}

// NavigationObserver is notified after every Navigate call.
type NavigationObserver interface {
	Navigated(nav Navigation)
}

// FocusManager owns the focused element within a root container.
// Each modal layer has its own FocusManager, so overlays trap focus.
type FocusManager struct {
	root        *Container
	current     focus.Element
	seenVersion uint64

	onChange  func(from, to focus.Element)
	observers []NavigationObserver
	logger    *logging.Logger
	now       func() time.Time
}

// NewFocusManager creates a manager for root. Nothing is focused until
// FocusDefault, SetFocus or Navigate is called.
func NewFocusManager(root *Container) *FocusManager {
	m := &FocusManager{root: root, now: time.Now}
	if root != nil {
		m.seenVersion = root.Version()
	}
	return m
}

// Root returns the managed root container.
func (m *FocusManager) Root() *Container {
	return m.root
}

// SetRoot replaces the root container. Focus is cleared.
func (m *FocusManager) SetRoot(root *Container) {
	m.ClearFocus()
	m.root = root
	m.seenVersion = 0
	if root != nil {
		m.seenVersion = root.Version()
	}
}

// SetLogger sets the logger used for focus transitions.
func (m *FocusManager) SetLogger(logger *logging.Logger) {
	m.logger = logger
}

// OnChange registers a callback fired after every focus transfer.
func (m *FocusManager) OnChange(fn func(from, to focus.Element)) {
	m.onChange = fn
}

// AddObserver registers a navigation observer.
func (m *FocusManager) AddObserver(o NavigationObserver) {
	if o != nil {
		m.observers = append(m.observers, o)
	}
}

// Current returns the focused element, or nil.
func (m *FocusManager) Current() focus.Element {
	return m.current
}

// SetFocus focuses e. It returns false when e cannot take focus or does
// not live beneath the root.
func (m *FocusManager) SetFocus(e focus.Element) bool {
	if e == nil || m.root == nil || !focus.Focusable(e) || !m.root.Contains(e) {
		return false
	}
	return m.transfer(e)
}

// FocusDefault focuses the root's default focus target.
func (m *FocusManager) FocusDefault() bool {
	if m.root == nil {
		return false
	}
	target := m.root.FocusTraversal().DefaultFocus()
	if target == nil {
		return false
	}
	return m.transfer(target)
}

// Navigate moves focus in direction dir from the current element. With no
// current element the whole root is scanned. It reports whether focus
// changed.
func (m *FocusManager) Navigate(dir focus.Direction) bool {
	if m.root == nil {
		return false
	}
	nav := Navigation{Direction: dir, From: m.current, Started: m.now()}
	nav.To = m.root.FocusTraversal().RelativeFocus(m.current, dir)
	nav.Duration = m.now().Sub(nav.Started)

	m.logger.Debug(logging.CategoryFocus, "navigate", "focus navigation resolved", map[string]any{
		"direction": dir.String(),
		"from":      Describe(nav.From),
		"to":        Describe(nav.To),
		"outcome":   nav.Outcome(),
	})
	for _, o := range m.observers {
		o.Navigated(nav)
	}

	if nav.To == nil {
		return false
	}
	return m.transfer(nav.To)
}

// ClearFocus blurs the current element and leaves nothing focused.
func (m *FocusManager) ClearFocus() {
	if m.current == nil {
		return
	}
	from := m.current
	if f, ok := from.(Focusable); ok {
		f.Blur()
	}
	m.current = nil
	m.changed(from, nil)
}

// Revalidate drops focus from an element that left the tree or can no
// longer take focus. When the tree changed structurally and nothing is
// focused afterwards, the default focus target is focused. It reports
// whether focus changed.
func (m *FocusManager) Revalidate() bool {
	if m.root == nil {
		return false
	}
	version := m.root.Version()
	structural := version != m.seenVersion
	m.seenVersion = version

	before := m.current
	if before != nil && !m.stillValid(before) {
		m.ClearFocus()
	}
	if m.current == nil && (structural || before != nil) {
		m.FocusDefault()
	}
	return m.current != before
}

func (m *FocusManager) stillValid(e focus.Element) bool {
	if !m.root.Contains(e) {
		return false
	}
	if t, ok := e.(focus.Target); ok {
		return t.CanFocus()
	}
	return true
}

func (m *FocusManager) transfer(to focus.Element) bool {
	from := m.current
	if to == from {
		return false
	}
	if f, ok := from.(Focusable); ok {
		f.Blur()
	}
	m.current = to
	if f, ok := to.(Focusable); ok {
		f.Focus()
	}
	m.changed(from, to)
	return true
}

func (m *FocusManager) changed(from, to focus.Element) {
	m.logger.Debug(logging.CategoryFocus, "transfer", "focus changed", map[string]any{
		"from": Describe(from),
		"to":   Describe(to),
	})
	if m.onChange != nil {
		m.onChange(from, to)
	}
}

// Describe names an element for logs and traces.
func Describe(e focus.Element) string {
	if e == nil {
		return ""
	}
	if id, ok := e.(interface{ ID() string }); ok && id.ID() != "" {
		return id.ID()
	}
	if l, ok := e.(Labeled); ok && l.Label() != "" {
		return l.Label()
	}
	return fmt.Sprintf("%T", e)
}
