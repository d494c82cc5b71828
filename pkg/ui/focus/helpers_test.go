package focus

// item is a leaf widget.
type item struct {
	name      string
	focusable bool
}

func newItem(name string) *item { return &item{name: name, focusable: true} }
func newSkip(name string) *item { return &item{name: name} }

func (i *item) CanFocus() bool { return i.focusable }
func (i *item) String() string { return i.name }

// group is a non-focusable composite exposing its own Adapter.
type group struct {
	name      string
	children  []Element
	traversal *Adapter
}

func newGroup(name string, children ...Element) *group {
	g := &group{name: name, children: children}
	g.traversal = NewAdapter(LayoutFunc(func() []Element { return g.children }))
	return g
}

func (g *group) FocusTraversal() Traversal { return g.traversal }
func (g *group) String() string           { return g.name }

func rootOf(children ...Element) *Adapter {
	return newGroup("root", children...).traversal
}
