package widgets

import "github.com/odvcencio/wayfinder/pkg/ui/runtime"

// Label displays static text. Labels never take focus.
type Label struct {
	Base
	text string
}

// NewLabel creates a label.
func NewLabel(text string) *Label {
	return &Label{text: text}
}

// Label returns the text.
func (l *Label) Label() string {
	return l.text
}

// SetText replaces the text.
func (l *Label) SetText(text string) {
	l.text = text
}

var (
	_ runtime.Widget  = (*Label)(nil)
	_ runtime.Labeled = (*Label)(nil)
)
