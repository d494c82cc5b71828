// Package focus resolves keyboard focus movement across nested widget
// containers.
//
// The package only decides where focus should go. Whoever owns the current
// focus (see runtime.FocusManager) asks a Traversal for a target and then
// performs the transfer itself.
package focus

import "reflect"

// Element is an opaque widget handle. Elements are compared by identity.
// An element whose value is not comparable (a struct value holding a
// slice or map, say) never qualifies as a target or an anchor.
type Element any

// Target is implemented by widgets that can take focus directly.
type Target interface {
	// CanFocus reports whether the widget may receive focus right now.
	CanFocus() bool
}

// Traversal is a container's navigation policy.
//
//go:generate mockgen -package=focus -destination=mock_traversal_test.go github.com/odvcencio/wayfinder/pkg/ui/focus Traversal
type Traversal interface {
	// DefaultFocus returns the element that should take focus when the
	// container is entered without an anchor, or nil.
	DefaultFocus() Element

	// RelativeFocus returns the element that should take focus when moving
	// from `from` in direction dir, or nil when there is no target.
	// A nil from means there is no current anchor.
	RelativeFocus(from Element, dir Direction) Element

	// IsFocusRoot reports whether navigation wraps at the container edges.
	IsFocusRoot() bool
}

// TraversalProvider is implemented by composite widgets that own a child
// container with its own navigation policy. A nil result means the
// widget has no nested traversal at the moment.
type TraversalProvider interface {
	FocusTraversal() Traversal
}

// Container is an optional Traversal capability: it reports whether an
// element lives anywhere beneath the traversal, at any depth.
type Container interface {
	Contains(e Element) bool
}

// Layout is the ordered child view a Traversal walks. Children must
// return children in presentation order; callers treat the result as a
// snapshot and never modify it.
type Layout interface {
	Children() []Element
}

// LayoutFunc adapts a function to Layout.
type LayoutFunc func() []Element

// Children calls f.
func (f LayoutFunc) Children() []Element {
	return f()
}

// Focusable reports whether e can take focus directly.
func Focusable(e Element) bool {
	t, ok := e.(Target)
	return ok && t.CanFocus()
}

// TraversalOf returns the nested navigation policy exposed by e, if any.
// A TraversalProvider takes precedence over e implementing Traversal
// itself.
func TraversalOf(e Element) (Traversal, bool) {
	if p, ok := e.(TraversalProvider); ok {
		if t := p.FocusTraversal(); t != nil {
			return t, true
		}
		return nil, false
	}
	if t, ok := e.(Traversal); ok {
		return t, true
	}
	return nil, false
}

// contains reports whether t holds e beneath it, when t can tell.
func contains(t Traversal, e Element) bool {
	c, ok := t.(Container)
	return ok && c.Contains(e)
}

// holds reports whether e lives beneath child. The child's own Container
// capability wins over its nested traversal.
func holds(child, e Element) bool {
	if c, ok := child.(Container); ok {
		return c.Contains(e)
	}
	if t, ok := TraversalOf(child); ok {
		return contains(t, e)
	}
	return false
}

// Comparable reports whether e can be compared by identity.
func Comparable(e Element) bool {
	return e != nil && reflect.ValueOf(e).Comparable()
}

// Same reports whether a and b are the same element. Elements that are
// not comparable are never the same as anything.
func Same(a, b Element) bool {
	if !Comparable(a) || !Comparable(b) {
		return false
	}
	return a == b
}
