package focus

// Adapter is the default Traversal for an ordered container. Up, Left and
// Previous walk backwards through the Layout's children; Down, Right and
// Next walk forwards; Home/PageHome and End/PageEnd jump to the edges.
//
// An Adapter keeps no state between calls besides its configuration. It is
// not safe for concurrent use.
type Adapter struct {
	layout    Layout
	focusRoot bool

	// active is set while a call on this adapter is in progress so a
	// cyclic container graph resolves to nil instead of recursing.
	active bool
}

// NewAdapter wraps layout.
func NewAdapter(layout Layout) *Adapter {
	return &Adapter{layout: layout}
}

// Layout returns the wrapped layout.
func (a *Adapter) Layout() Layout {
	return a.layout
}

// SetLayout replaces the wrapped layout.
func (a *Adapter) SetLayout(layout Layout) {
	a.layout = layout
}

// IsFocusRoot reports whether navigation wraps at the container edges.
func (a *Adapter) IsFocusRoot() bool {
	return a.focusRoot
}

// SetFocusRoot enables or disables wraparound.
func (a *Adapter) SetFocusRoot(root bool) {
	a.focusRoot = root
}

// DefaultFocus returns the first child that can take focus, descending into
// non-focusable children that expose their own traversal.
func (a *Adapter) DefaultFocus() Element {
	if !a.enter() {
		return nil
	}
	defer a.leave()
	return first(a.children())
}

// RelativeFocus resolves the next focus target from `from` in direction
// dir. When from is nil or not beneath this container, the whole container is
// scanned in the requested direction. It returns nil when nothing
// qualifies.
func (a *Adapter) RelativeFocus(from Element, dir Direction) Element {
	if !a.enter() {
		return nil
	}
	defer a.leave()

	children := a.children()
	wrap := a.focusRoot
	switch dir.policy() {
	case policyFirst:
		return first(children)
	case policyLast:
		return last(children)
	case policyBackward:
		return previous(children, from, dir, wrap)
	default:
		return next(children, from, dir, wrap)
	}
}

// Contains reports whether e is a child of this container or lives inside
// one of its nested traversals.
func (a *Adapter) Contains(e Element) bool {
	if !Comparable(e) || !a.enter() {
		return false
	}
	defer a.leave()

	for _, child := range a.children() {
		if !Comparable(child) {
			continue
		}
		if Same(child, e) || holds(child, e) {
			return true
		}
	}
	return false
}

func (a *Adapter) enter() bool {
	if a.active {
		return false
	}
	a.active = true
	return true
}

func (a *Adapter) leave() {
	a.active = false
}

func (a *Adapter) children() []Element {
	if a.layout == nil {
		return nil
	}
	return a.layout.Children()
}

func first(children []Element) Element {
	it := newChildIterator(children, nil, nil, 1, PageHome)
	if it.HasNext() {
		return it.Next()
	}
	return nil
}

func last(children []Element) Element {
	it := newChildIterator(children, nil, nil, -1, PageEnd)
	if it.HasNext() {
		return it.Next()
	}
	return nil
}

func next(children []Element, from Element, dir Direction, wrap bool) Element {
	anchor, nested := anchorOf(children, from)
	if nested != nil {
		if target := nested.RelativeFocus(from, dir); Comparable(target) {
			return target
		}
	}

	it := newChildIterator(children, anchor, nil, 1, dir)
	if it.HasNext() {
		return it.Next()
	}
	if wrap {
		return first(children)
	}
	return nil
}

func previous(children []Element, from Element, dir Direction, wrap bool) Element {
	anchor, nested := anchorOf(children, from)
	if nested != nil {
		if target := nested.RelativeFocus(from, dir); Comparable(target) {
			return target
		}
	}

	// Walk up to the anchor and keep the last candidate seen.
	it := newChildIterator(children, nil, anchor, 1, dir)
	var target Element
	for it.HasNext() {
		target = it.Next()
	}
	if target == nil && wrap {
		return last(children)
	}
	return target
}

// anchorOf finds the direct child that holds from. It is from itself when
// from is a child, or the child whose nested traversal contains it; nested
// is set only in the latter case.
func anchorOf(children []Element, from Element) (anchor Element, nested Traversal) {
	if !Comparable(from) {
		return nil, nil
	}
	if indexOf(children, from) >= 0 {
		return from, nil
	}
	for _, child := range children {
		if !Comparable(child) || !holds(child, from) {
			continue
		}
		t, _ := TraversalOf(child)
		return child, t
	}
	return nil, nil
}

var (
	_ Traversal = (*Adapter)(nil)
	_ Container = (*Adapter)(nil)
)
