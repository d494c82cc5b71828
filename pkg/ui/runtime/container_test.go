package runtime

import (
	"testing"

	"github.com/odvcencio/wayfinder/pkg/ui/focus"
)

func TestContainer_ChildOrder(t *testing.T) {
	a, b, c := newTestButton("a"), newTestButton("b"), newTestButton("c")
	ct := NewContainer(a, c)
	ct.Insert(1, b)

	got := ct.Children()
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("unexpected order: %v", got)
	}

	// Mutating the returned slice must not affect the container.
	got[0] = nil
	if ct.Children()[0] != a {
		t.Error("Children should return a copy")
	}

	if !ct.Remove(b) {
		t.Error("Remove should report true for a present child")
	}
	if ct.Remove(b) {
		t.Error("Remove should report false for a missing child")
	}
	if ct.Len() != 2 {
		t.Errorf("expected 2 children, got %d", ct.Len())
	}
}

func TestContainer_IgnoresNilAndSelf(t *testing.T) {
	ct := NewContainer()
	ct.Add(nil)
	ct.Add(ct)
	if ct.Len() != 0 {
		t.Errorf("expected no children, got %d", ct.Len())
	}
	if ct.Version() != 0 {
		t.Errorf("expected version 0, got %d", ct.Version())
	}
}

func TestContainer_InsertClampsIndex(t *testing.T) {
	a, b := newTestButton("a"), newTestButton("b")
	ct := NewContainer(a)
	ct.Insert(-5, b)
	if ct.Children()[0] != b {
		t.Error("negative index should insert at the front")
	}
	c := newTestButton("c")
	ct.Insert(99, c)
	if ct.Children()[2] != c {
		t.Error("large index should append")
	}
}

func TestContainer_VersionTracksNestedChanges(t *testing.T) {
	inner := NewContainer(newTestButton("x"))
	outer := NewContainer(inner)

	v0 := outer.Version()
	inner.Add(newTestButton("y"))
	if outer.Version() == v0 {
		t.Error("nested change should advance the outer version")
	}

	v1 := outer.Version()
	outer.Clear()
	if outer.Version() == v1 {
		t.Error("Clear should advance the version")
	}
}

func TestContainer_ContainsNested(t *testing.T) {
	deep := newTestButton("deep")
	inner := NewContainer(deep)
	outer := NewContainer(newTestButton("a"), inner)

	if !outer.Contains(deep) {
		t.Error("outer should contain a nested widget")
	}
	if outer.Contains(newTestButton("stranger")) {
		t.Error("outer should not contain an unrelated widget")
	}
	if outer.Contains(nil) {
		t.Error("nil is never contained")
	}
}

type fixedTraversal struct {
	target focus.Element
}

func (f fixedTraversal) DefaultFocus() focus.Element { return f.target }
func (f fixedTraversal) IsFocusRoot() bool          { return true }

func (f fixedTraversal) RelativeFocus(focus.Element, focus.Direction) focus.Element {
	return f.target
}

func TestContainer_SetTraversal(t *testing.T) {
	a, b := newTestButton("a"), newTestButton("b")
	ct := NewContainer(a, b)

	ct.SetTraversal(fixedTraversal{target: b})
	if got := ct.FocusTraversal().DefaultFocus(); got != b {
		t.Errorf("custom traversal DefaultFocus = %v, want b", got)
	}
	if !ct.IsFocusRoot() {
		t.Error("IsFocusRoot should come from the custom traversal")
	}
	if !ct.Contains(a) {
		t.Error("direct children are still contained without a focus.Container traversal")
	}

	ct.SetTraversal(nil)
	if got := ct.FocusTraversal().DefaultFocus(); got != a {
		t.Errorf("default traversal DefaultFocus = %v, want a", got)
	}
	if ct.IsFocusRoot() {
		t.Error("default adapter should not wrap unless asked")
	}
}

func TestWalk_DepthFirst(t *testing.T) {
	a, b, c := newTestButton("a"), newTestButton("b"), newTestButton("c")
	inner := titled("inner", b)
	root := titled("root", a, inner, c)

	var order []string
	var depths []int
	Walk(root, func(w Widget, depth int) bool {
		order = append(order, Describe(w))
		depths = append(depths, depth)
		return true
	})

	want := []string{"root", "a", "inner", "b", "c"}
	wantDepths := []int{0, 1, 1, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("visited %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] || depths[i] != wantDepths[i] {
			t.Errorf("visit %d = %s@%d, want %s@%d", i, order[i], depths[i], want[i], wantDepths[i])
		}
	}
}

func TestWalk_SkipsChildrenAndRepeats(t *testing.T) {
	shared := titled("shared", newTestButton("x"))
	root := titled("root", shared, shared)

	visits := 0
	Walk(root, func(w Widget, _ int) bool {
		visits++
		return w != Widget(shared)
	})
	if visits != 2 {
		t.Errorf("expected root and shared once each, got %d visits", visits)
	}
}

func TestFindByID(t *testing.T) {
	target := newTestButton("target")
	root := titled("root", titled("inner", target))

	if got := FindByID(root, "target"); got != target {
		t.Errorf("FindByID = %v, want target", got)
	}
	if got := FindByID(root, "missing"); got != nil {
		t.Errorf("FindByID(missing) = %v, want nil", got)
	}
}

func TestContainer_VersionNeverGoesBack(t *testing.T) {
	sub := NewContainer()
	for i := 0; i < 7; i++ {
		sub.Add(newTestButton("s"))
	}
	root := NewContainer(newTestButton("x"), sub)

	last := root.Version()
	step := func(name string, mutate func()) {
		t.Helper()
		mutate()
		if v := root.Version(); v <= last {
			t.Fatalf("%s: version %d did not advance past %d", name, v, last)
		} else {
			last = v
		}
	}

	step("remove sub", func() { root.Remove(sub) })
	step("add y", func() { root.Add(newTestButton("y")) })
	step("add z", func() { root.Add(newTestButton("z")) })
	step("clear", func() { root.Clear() })
	step("add again", func() { root.Add(newTestButton("w")) })
}

// reverseTraversal walks a container back to front: Down, Right and Next
// move towards the first child.
type reverseTraversal struct {
	c *Container
}

func (r reverseTraversal) DefaultFocus() focus.Element {
	return r.RelativeFocus(nil, focus.Next)
}

func (r reverseTraversal) IsFocusRoot() bool { return false }

func (r reverseTraversal) RelativeFocus(from focus.Element, dir focus.Direction) focus.Element {
	kids := r.c.Children()
	step := -1
	switch dir {
	case focus.Up, focus.Left, focus.Previous:
		step = 1
	}

	pos := len(kids) - 1
	if step > 0 {
		pos = 0
	}
	for i, k := range kids {
		if focus.Same(k, from) {
			pos = i + step
		}
	}
	for ; pos >= 0 && pos < len(kids); pos += step {
		if focus.Focusable(kids[pos]) {
			return kids[pos]
		}
	}
	return nil
}

func TestContainer_ContainsWithCustomTraversal(t *testing.T) {
	n1, n2 := newTestButton("n1"), newTestButton("n2")
	inner := NewContainer(n1, n2)
	inner.SetTraversal(reverseTraversal{c: inner})
	root := NewContainer(newTestButton("a"), inner)

	if !inner.Contains(n1) {
		t.Error("a custom traversal should not hide the container's own children")
	}
	if !root.Contains(n2) {
		t.Error("root should see widgets beneath a custom-policy child")
	}
}

// looseWidget is a value-type widget that cannot be compared.
type looseWidget struct {
	tags []string
}

func (looseWidget) CanFocus() bool                     { return true }
func (looseWidget) HandleMessage(Message) HandleResult { return Unhandled() }

func TestContainer_NonComparableChild(t *testing.T) {
	b := newTestButton("b")
	loose := looseWidget{tags: []string{"x"}}
	root := NewContainer(loose, b)

	if root.Contains(loose) {
		t.Error("non-comparable widgets are never contained")
	}
	if got := root.FocusTraversal().DefaultFocus(); got != focus.Element(b) {
		t.Errorf("DefaultFocus = %v, want b", got)
	}
	if root.Remove(loose) {
		t.Error("non-comparable widgets cannot be removed by identity")
	}

	var visited int
	Walk(root, func(Widget, int) bool {
		visited++
		return true
	})
	if visited != 3 {
		t.Errorf("Walk visited %d widgets, want 3", visited)
	}
}
