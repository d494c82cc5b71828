package focus

import "errors"

// ErrIteratorExhausted is the panic value raised when Next is called on a
// childIterator that has nothing left to yield.
var ErrIteratorExhausted = errors.New("focus: child iterator exhausted")

// childIterator walks a snapshot of a container's children and yields
// focus candidates one at a time.
//
// Children that are not focusable themselves but expose a nested
// Traversal are probed with the entry hint; a non-nil answer is yielded in
// place of the child. The iterator is inactive until it has passed the
// start marker (when one is set) and stops for good at the end marker,
// which is never yielded. Markers that are not in the snapshot are
// ignored. An iterator is single use.
type childIterator struct {
	children []Element
	pos      int
	step     int
	start    Element
	end      Element
	hint     Direction

	started bool
	done    bool
	next    Element
}

// newChildIterator prepares an iterator over children. A negative step
// scans from the last child towards the first.
func newChildIterator(children []Element, start, end Element, step int, hint Direction) *childIterator {
	if step == 0 {
		step = 1
	}
	it := &childIterator{
		children: children,
		step:     step,
		hint:     hint,
	}
	if step < 0 {
		it.pos = len(children) - 1
	}
	if start != nil && indexOf(children, start) >= 0 {
		it.start = start
	}
	if end != nil && indexOf(children, end) >= 0 {
		it.end = end
	}
	it.started = it.start == nil
	it.fetch()
	return it
}

// HasNext reports whether Next will yield an element.
func (it *childIterator) HasNext() bool {
	return it.next != nil
}

// Next returns the pending candidate and advances. It panics with
// ErrIteratorExhausted when HasNext is false.
func (it *childIterator) Next() Element {
	if it.next == nil {
		panic(ErrIteratorExhausted)
	}
	result := it.next
	it.fetch()
	return result
}

// fetch advances to the next candidate, leaving it in it.next.
func (it *childIterator) fetch() {
	it.next = nil
	for !it.done && it.pos >= 0 && it.pos < len(it.children) {
		child := it.children[it.pos]
		it.pos += it.step

		if !Comparable(child) {
			continue
		}
		if it.start != nil && Same(child, it.start) {
			it.started = true
			continue
		}
		if it.end != nil && Same(child, it.end) {
			break
		}
		if !it.started {
			continue
		}

		if Focusable(child) {
			it.next = child
			return
		}
		if t, ok := TraversalOf(child); ok {
			if target := it.probe(t); Comparable(target) {
				it.next = target
				return
			}
		}
	}
	it.done = true
}

// probe asks a nested traversal for an edge result without an anchor.
func (it *childIterator) probe(t Traversal) Element {
	if it.hint.policy() == policyFirst {
		return t.DefaultFocus()
	}
	return t.RelativeFocus(nil, it.hint)
}

func indexOf(children []Element, e Element) int {
	for i, c := range children {
		if Same(c, e) {
			return i
		}
	}
	return -1
}
