package runtime

import (
	"github.com/mattn/go-runewidth"

	"github.com/odvcencio/wayfinder/pkg/ui/backend"
)

// Cell represents a single character cell in the buffer. Wide runes own
// their first cell; the cells they cover after it hold a zero rune.
type Cell struct {
	Rune  rune
	Style backend.Style
}

// Buffer is a 2D grid of cells. The screen draws into the buffer and the
// app flushes only the cells that changed since the last flush.
type Buffer struct {
	cells      []Cell
	dirty      []bool
	dirtyCount int
	width      int
	height     int
}

// NewBuffer creates a blank buffer with the given dimensions.
func NewBuffer(w, h int) *Buffer {
	b := &Buffer{}
	b.Resize(w, h)
	return b
}

// Size returns the buffer dimensions.
func (b *Buffer) Size() (w, h int) {
	return b.width, b.height
}

// Resize changes the dimensions and blanks the buffer.
func (b *Buffer) Resize(w, h int) {
	w, h = max(0, w), max(0, h)
	b.width, b.height = w, h
	b.cells = make([]Cell, w*h)
	b.dirty = make([]bool, w*h)
	for i := range b.cells {
		b.cells[i] = Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	b.MarkAllDirty()
}

// Clear fills the buffer with blanks.
func (b *Buffer) Clear() {
	for y := 0; y < b.height; y++ {
		b.ClearLine(y)
	}
}

// ClearLine fills row y with blanks.
func (b *Buffer) ClearLine(y int) {
	for x := 0; x < b.width; x++ {
		b.Set(x, y, ' ', backend.DefaultStyle())
	}
}

// Get returns the cell at (x, y), or a blank cell when out of bounds.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return Cell{Rune: ' ', Style: backend.DefaultStyle()}
	}
	return b.cells[y*b.width+x]
}

// Set writes one cell. Out of bounds writes are dropped.
func (b *Buffer) Set(x, y int, r rune, s backend.Style) {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return
	}
	idx := y*b.width + x
	cell := Cell{Rune: r, Style: s}
	if b.cells[idx] == cell {
		return
	}
	b.cells[idx] = cell
	if !b.dirty[idx] {
		b.dirty[idx] = true
		b.dirtyCount++
	}
}

// SetString writes s starting at (x, y), advancing by each rune's display
// width, and returns the column after the last rune written. A wide rune
// that does not fit is not written.
func (b *Buffer) SetString(x, y int, s string, style backend.Style) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > b.width {
			break
		}
		b.Set(x, y, r, style)
		for i := 1; i < w; i++ {
			b.Set(x+i, y, 0, style)
		}
		x += w
	}
	return x
}

// MarkAllDirty forces every cell to be flushed.
func (b *Buffer) MarkAllDirty() {
	for i := range b.dirty {
		b.dirty[i] = true
	}
	b.dirtyCount = len(b.dirty)
}

// ClearDirty resets all dirty flags.
func (b *Buffer) ClearDirty() {
	clear(b.dirty)
	b.dirtyCount = 0
}

// DirtyCount returns the number of cells changed since the last flush.
func (b *Buffer) DirtyCount() int {
	return b.dirtyCount
}

// ForEachDirtyCell calls fn for each changed cell in row-major order.
func (b *Buffer) ForEachDirtyCell(fn func(x, y int, cell Cell)) {
	if b.dirtyCount == 0 {
		return
	}
	for idx, dirty := range b.dirty {
		if dirty {
			fn(idx%b.width, idx/b.width, b.cells[idx])
		}
	}
}
