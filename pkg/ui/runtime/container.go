package runtime

import "github.com/odvcencio/wayfinder/pkg/ui/focus"

// Container is an ordered group of child widgets. Children are navigated
// in insertion order by a focus.Adapter unless a custom traversal is set.
type Container struct {
	id       string
	title    string
	children []Widget

	version   uint64
	counting  bool
	searching bool

	adapter   *focus.Adapter
	traversal focus.Traversal
}

// NewContainer creates a container holding children in order.
func NewContainer(children ...Widget) *Container {
	c := &Container{}
	c.adapter = focus.NewAdapter(focus.LayoutFunc(c.elements))
	for _, child := range children {
		c.Add(child)
	}
	c.version = 0
	return c
}

// ID returns the container identifier.
func (c *Container) ID() string { return c.id }

// SetID sets the container identifier.
func (c *Container) SetID(id string) { c.id = id }

// Label returns the container title.
func (c *Container) Label() string { return c.title }

// SetTitle sets the container title shown in outlines.
func (c *Container) SetTitle(title string) { c.title = title }

// Add appends a child. Nil children and the container itself are ignored.
func (c *Container) Add(child Widget) {
	c.Insert(len(c.children), child)
}

// Insert places child at index i, clamped to the valid range.
func (c *Container) Insert(i int, child Widget) {
	if child == nil || child == Widget(c) {
		return
	}
	i = max(0, min(i, len(c.children)))
	c.children = append(c.children, nil)
	copy(c.children[i+1:], c.children[i:])
	c.children[i] = child
	c.version++
}

// Remove deletes the first occurrence of child and reports whether it was
// present. Widgets that are not comparable can only be dropped by Clear.
func (c *Container) Remove(child Widget) bool {
	for i, existing := range c.children {
		if focus.Same(existing, child) {
			c.children = append(c.children[:i], c.children[i+1:]...)
			c.version += 1 + versionOf(existing)
			return true
		}
	}
	return false
}

// Clear removes all children.
func (c *Container) Clear() {
	if len(c.children) == 0 {
		return
	}
	removed := uint64(0)
	for _, child := range c.children {
		removed += versionOf(child)
	}
	c.children = nil
	c.version += 1 + removed
}

// Children returns a copy of the child list in order.
func (c *Container) Children() []Widget {
	out := make([]Widget, len(c.children))
	copy(out, c.children)
	return out
}

// Len returns the number of children.
func (c *Container) Len() int { return len(c.children) }

// Version returns a counter that advances whenever this container or any
// nested container changes structurally. A removed child's count is folded
// into the container's own, so the value never goes back.
func (c *Container) Version() uint64 {
	if c.counting {
		return 0
	}
	c.counting = true
	defer func() { c.counting = false }()

	v := c.version
	for _, child := range c.children {
		v += versionOf(child)
	}
	return v
}

func versionOf(w Widget) uint64 {
	if nested, ok := w.(interface{ Version() uint64 }); ok {
		return nested.Version()
	}
	return 0
}

// SetFocusRoot makes navigation wrap at this container's edges.
func (c *Container) SetFocusRoot(root bool) {
	c.adapter.SetFocusRoot(root)
}

// IsFocusRoot reports whether the active traversal wraps.
func (c *Container) IsFocusRoot() bool {
	return c.FocusTraversal().IsFocusRoot()
}

// SetTraversal replaces the navigation policy. Nil restores the default
// adapter.
func (c *Container) SetTraversal(t focus.Traversal) {
	c.traversal = t
}

// FocusTraversal returns the active navigation policy.
func (c *Container) FocusTraversal() focus.Traversal {
	if c.traversal != nil {
		return c.traversal
	}
	return c.adapter
}

// Contains reports whether e lives anywhere beneath the container. The
// child tree is searched first; a custom traversal that implements
// focus.Container is asked as well.
func (c *Container) Contains(e focus.Element) bool {
	if !focus.Comparable(e) || c.searching {
		return false
	}
	c.searching = true
	defer func() { c.searching = false }()

	for _, child := range c.children {
		if focus.Same(child, e) {
			return true
		}
		if ct, ok := child.(focus.Container); ok && focus.Comparable(child) && ct.Contains(e) {
			return true
		}
	}
	if c.traversal != nil {
		if ct, ok := c.traversal.(focus.Container); ok {
			return ct.Contains(e)
		}
	}
	return false
}

// HandleMessage implements Widget. Containers do not consume input.
func (c *Container) HandleMessage(Message) HandleResult {
	return Unhandled()
}

func (c *Container) elements() []focus.Element {
	out := make([]focus.Element, len(c.children))
	for i, child := range c.children {
		out[i] = child
	}
	return out
}

var (
	_ Widget                  = (*Container)(nil)
	_ Parent                  = (*Container)(nil)
	_ focus.TraversalProvider = (*Container)(nil)
	_ focus.Container         = (*Container)(nil)
)

// Walk visits root and its descendants depth first in child order. fn
// returning false skips the widget's children. Containers reachable more
// than once are visited only the first time.
func Walk(root Widget, fn func(w Widget, depth int) bool) {
	seen := make(map[Widget]bool)
	var visit func(w Widget, depth int)
	visit = func(w Widget, depth int) {
		if w == nil {
			return
		}
		if focus.Comparable(w) {
			if seen[w] {
				return
			}
			seen[w] = true
		}
		if !fn(w, depth) {
			return
		}
		if p, ok := w.(Parent); ok {
			for _, child := range p.Children() {
				visit(child, depth+1)
			}
		}
	}
	visit(root, 0)
}
