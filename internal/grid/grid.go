// Package grid tracks the hover state of an N×N grid of cells laid over the surface.
package grid

import (
	"math"

	"github.com/iburimskiy/hover-wallpaper/internal/effects"
)

// None is returned when no cell is hovered or a point misses the grid.
const None = -1

// CellState is the hover flag of one cell.
type CellState struct {
	Index     int
	IsHovered bool
}

// Grid owns the per-cell state. At most one cell is hovered at a time.
type Grid struct {
	size    int
	cells   []CellState
	hovered int
}

func New(size int) *Grid {
	if size < 1 {
		size = 1
	}
	cells := make([]CellState, size*size)
	for i := range cells {
		cells[i].Index = i
	}
	return &Grid{size: size, cells: cells, hovered: None}
}

// Len returns the total number of cells
func (g *Grid) Len() int { return len(g.cells) }

// Valid reports whether i names a cell
func (g *Grid) Valid(i int) bool { return i >= 0 && i < len(g.cells) }

// Cell returns a copy of cell i's state
func (g *Grid) Cell(i int) CellState { return g.cells[i] }

// Hovered returns the hovered cell or None
func (g *Grid) Hovered() int { return g.hovered }

// Enter marks i hovered and clears the previous one, which it returns.
func (g *Grid) Enter(i int) int {
	prev := g.hovered
	if prev != None {
		g.cells[prev].IsHovered = false
	}
	g.cells[i].IsHovered = true
	g.hovered = i
	return prev
}

// Leave clears i's hover flag. Leaving a cell that is not hovered is a no-op.
func (g *Grid) Leave(i int) bool {
	if !g.Valid(i) || !g.cells[i].IsHovered {
		return false
	}
	g.cells[i].IsHovered = false
	if g.hovered == i {
		g.hovered = None
	}
	return true
}

// CellAt maps a surface point to the cell under it.
func (g *Grid) CellAt(x, y float64, b effects.Bounds) int {
	b = b.Normalized()
	if b.Width == 0 || b.Height == 0 || x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return None
	}
	col := int(math.Floor(x / (b.Width / float64(g.size))))
	row := int(math.Floor(y / (b.Height / float64(g.size))))
	col = min(col, g.size-1)
	row = min(row, g.size-1)
	return row*g.size + col
}

// CellRect returns the surface rectangle of cell i.
func (g *Grid) CellRect(i int, b effects.Bounds) (x, y, w, h float64) {
	b = b.Normalized()
	w = b.Width / float64(g.size)
	h = b.Height / float64(g.size)
	return float64(i%g.size) * w, float64(i/g.size) * h, w, h
}
