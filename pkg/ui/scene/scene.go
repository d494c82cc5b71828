// Package scene builds widget trees from YAML scene files.
//
// A scene file is a single node:
//
//	id: main
//	type: container
//	focus_root: true
//	children:
//	  - {type: label, text: "Pick one"}
//	  - {id: ok, type: button, text: OK}
//	  - {id: cancel, type: button, text: Cancel, enabled: false}
package scene

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/oklog/ulid/v2"
	"gopkg.in/yaml.v3"

	werrors "github.com/odvcencio/wayfinder/pkg/errors"
	"github.com/odvcencio/wayfinder/pkg/ui/runtime"
	"github.com/odvcencio/wayfinder/pkg/ui/widgets"
)

// Node types.
const (
	TypeContainer = "container"
	TypeButton    = "button"
	TypeLabel     = "label"
)

// Node is one element of a scene file.
type Node struct {
	ID        string `yaml:"id,omitempty"`
	Type      string `yaml:"type,omitempty"`
	Text      string `yaml:"text,omitempty"`
	Enabled   *bool  `yaml:"enabled,omitempty"`
	FocusRoot bool   `yaml:"focus_root,omitempty"`
	Children  []Node `yaml:"children,omitempty"`
}

// kind resolves the node type. Nodes without a type are containers when
// they have children and buttons otherwise.
func (n Node) kind() string {
	if n.Type != "" {
		return n.Type
	}
	if len(n.Children) > 0 {
		return TypeContainer
	}
	return TypeButton
}

// Scene is a built widget tree.
type Scene struct {
	Path string
	Root *runtime.Container

	byID  map[string]runtime.Widget
	order []string
}

// Find returns the widget with the given id, or nil.
func (s *Scene) Find(id string) runtime.Widget {
	return s.byID[id]
}

// IDs returns every widget id in depth-first order.
func (s *Scene) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Load reads and builds the scene file at path.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, werrors.Wrap(err, werrors.ErrCodeSceneLoad, "failed to read scene file").
			WithContext("path", path)
	}
	s, err := Parse(data)
	if err != nil {
		var e *werrors.Error
		if stderrors.As(err, &e) {
			return nil, e.WithContext("path", path)
		}
		return nil, err
	}
	s.Path = path
	return s, nil
}

// Parse builds a scene from YAML. The root node must be a container.
func Parse(data []byte) (*Scene, error) {
	var root Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, werrors.Wrap(err, werrors.ErrCodeSceneParse, "failed to parse scene").
			WithRemediation("check the YAML syntax of the scene file")
	}
	if root.kind() != TypeContainer {
		return nil, werrors.Newf(werrors.ErrCodeSceneInvalid, "scene root must be a container, got %q", root.kind())
	}

	b := &builder{scene: &Scene{byID: make(map[string]runtime.Widget)}}
	w, err := b.build(root, "root")
	if err != nil {
		return nil, err
	}
	b.scene.Root = w.(*runtime.Container)
	return b.scene, nil
}

type builder struct {
	scene *Scene
}

func (b *builder) build(n Node, path string) (runtime.Widget, error) {
	id := n.ID
	if id == "" {
		id = ulid.Make().String()
	}
	if _, dup := b.scene.byID[id]; dup {
		return nil, werrors.Newf(werrors.ErrCodeSceneInvalid, "duplicate id %q", id).
			WithContext("node", path)
	}

	kind := n.kind()
	if kind != TypeContainer && len(n.Children) > 0 {
		return nil, werrors.Newf(werrors.ErrCodeSceneInvalid, "%s %q cannot have children", kind, id).
			WithContext("node", path)
	}

	var w runtime.Widget
	switch kind {
	case TypeContainer:
		c := runtime.NewContainer()
		c.SetID(id)
		c.SetTitle(n.Text)
		c.SetFocusRoot(n.FocusRoot)
		w = c
	case TypeButton:
		btn := widgets.NewButton(n.Text)
		btn.SetID(id)
		if n.Enabled != nil {
			btn.SetEnabled(*n.Enabled)
		}
		w = btn
	case TypeLabel:
		l := widgets.NewLabel(n.Text)
		l.SetID(id)
		w = l
	default:
		return nil, werrors.Newf(werrors.ErrCodeSceneInvalid, "unknown node type %q", n.Type).
			WithContext("node", path).
			WithRemediation("use one of: container, button, label")
	}

	b.scene.byID[id] = w
	b.scene.order = append(b.scene.order, id)

	if c, ok := w.(*runtime.Container); ok {
		for i, child := range n.Children {
			cw, err := b.build(child, childPath(path, i))
			if err != nil {
				return nil, err
			}
			c.Add(cw)
		}
	}
	return w, nil
}

func childPath(parent string, i int) string {
	return fmt.Sprintf("%s.children[%d]", parent, i)
}
