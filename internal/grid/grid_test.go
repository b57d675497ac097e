package grid

import (
	"testing"

	"github.com/iburimskiy/hover-wallpaper/internal/effects"
)

func hoveredCount(g *Grid) int {
	n := 0
	for i := 0; i < g.Len(); i++ {
		if g.Cell(i).IsHovered {
			n++
		}
	}
	return n
}

func TestEnterLeave(t *testing.T) {
	g := New(4)
	if g.Len() != 16 {
		t.Fatalf("Expected 16 cells, got %d", g.Len())
	}

	if prev := g.Enter(5); prev != None {
		t.Errorf("Expected no previous hover, got %d", prev)
	}
	if !g.Cell(5).IsHovered || g.Hovered() != 5 {
		t.Error("Expected cell 5 hovered")
	}

	if !g.Leave(5) {
		t.Error("Expected Leave(5) to clear the flag")
	}
	if g.Cell(5).IsHovered || g.Hovered() != None {
		t.Error("Expected cell 5 cleared")
	}
	if hoveredCount(g) != 0 {
		t.Error("Leaving touched other cells")
	}
}

func TestAtMostOneHovered(t *testing.T) {
	g := New(8)
	for _, i := range []int{0, 63, 12, 12, 40} {
		g.Enter(i)
		if n := hoveredCount(g); n != 1 {
			t.Fatalf("Expected exactly one hovered cell after Enter(%d), got %d", i, n)
		}
	}
	if prev := g.Enter(1); prev != 40 {
		t.Errorf("Expected previous hover 40, got %d", prev)
	}
}

func TestLeaveStaleCell(t *testing.T) {
	g := New(4)
	g.Enter(3)
	g.Enter(7)
	if g.Leave(3) {
		t.Error("Leaving a cell that lost hover should be a no-op")
	}
	if g.Hovered() != 7 {
		t.Errorf("Expected cell 7 to stay hovered, got %d", g.Hovered())
	}
	if g.Leave(99) {
		t.Error("Leave on an invalid index should be a no-op")
	}
}

func TestCellAt(t *testing.T) {
	g := New(4)
	b := effects.Bounds{Width: 400, Height: 200}

	tests := []struct {
		x, y float64
		want int
	}{
		{0, 0, 0},
		{99.9, 49.9, 0},
		{100, 0, 1},
		{399, 199, 15},
		{150, 120, 9},
		{-1, 10, None},
		{400, 10, None},
		{10, 200, None},
	}
	for _, tt := range tests {
		if got := g.CellAt(tt.x, tt.y, b); got != tt.want {
			t.Errorf("CellAt(%v,%v) = %d, want %d", tt.x, tt.y, got, tt.want)
		}
	}

	if got := g.CellAt(5, 5, effects.Bounds{}); got != None {
		t.Errorf("Expected None on unmeasured bounds, got %d", got)
	}
}

func TestCellRect(t *testing.T) {
	g := New(4)
	x, y, w, h := g.CellRect(6, effects.Bounds{Width: 400, Height: 200})
	if x != 200 || y != 50 || w != 100 || h != 50 {
		t.Errorf("Unexpected rect %v,%v %vx%v", x, y, w, h)
	}
}
