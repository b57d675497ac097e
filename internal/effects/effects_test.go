package effects

import (
	"math/rand"
	"testing"
	"time"
)

var (
	smallSizing = Sizing{Floor: 1.0 / 8, Range: 1.0 / 4}
	largeSizing = Sizing{Floor: 1.0 / 8, Range: 1.0 / 2}
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := NewCatalog(CatalogConfig{
		Kinds:        []string{"circle", "polygon", "fan-to-circle", "square-trace"},
		Palette:      []string{"#ffcccb", "#add8e6", "#90ee90", "#ffc0cb"},
		PaletteAlpha: 1,
		Tints:        []string{"#00008b", "#ffffe0"},
		TintAlpha:    0.7,
	})
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	return c
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{Circle, Polygon, FanToCircle, SquareTrace} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if _, err := ParseKind("hexagon"); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor("#ff9d3d", 0.7)
	if err != nil {
		t.Fatalf("ParseColor failed: %v", err)
	}
	if c.R != 0xff || c.G != 0x9d || c.B != 0x3d {
		t.Errorf("Unexpected channels %+v", c)
	}
	if c.A != 179 {
		t.Errorf("Expected alpha 179, got %d", c.A)
	}
	if _, err := ParseColor("not-a-color", 1); err == nil {
		t.Error("Expected error for malformed hex")
	}
}

func TestCatalogTints(t *testing.T) {
	c := testCatalog(t)
	if c.NumTints() != 2 {
		t.Fatalf("Expected 2 tints, got %d", c.NumTints())
	}
	if got := c.Tint(0); got.B != 0x8b || got.A != 179 {
		t.Errorf("Unexpected first tint %+v", got)
	}
	if len(c.kinds) != 4 || len(c.colors) != 4 {
		t.Errorf("Expected 4 kinds and 4 colors, got %d and %d", len(c.kinds), len(c.colors))
	}
}

func TestCatalogEnterOverride(t *testing.T) {
	c, err := NewCatalog(CatalogConfig{
		Kinds:         []string{"circle", "polygon"},
		Palette:       []string{"#ffffff"},
		PaletteAlpha:  1,
		EnterDuration: 500 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	if d := c.Motion(Polygon).Lifetime(); d != 500*time.Millisecond {
		t.Errorf("Expected 500ms entry, got %v", d)
	}
}

func TestGenerateWithinBounds(t *testing.T) {
	c := testCatalog(t)
	g := NewGenerator(c, smallSizing, rand.New(rand.NewSource(1)))

	bounds := []Bounds{{800, 600}, {1, 1}, {1920, 40}, {0, 300}}
	for _, b := range bounds {
		for i := 0; i < 200; i++ {
			batch := g.Generate(b)
			if len(batch) < MinBatch || len(batch) > MaxBatch {
				t.Fatalf("Batch size %d outside [%d,%d]", len(batch), MinBatch, MaxBatch)
			}
			for _, d := range batch {
				if d.X < 0 || d.X > b.Width || d.Y < 0 || d.Y > b.Height {
					t.Fatalf("Descriptor %+v outside bounds %+v", d, b)
				}
				if b.Short() > 0 && d.Size <= 0 {
					t.Fatalf("Expected positive size for bounds %+v, got %v", b, d.Size)
				}
				minSize := smallSizing.Floor * b.Short()
				maxSize := (smallSizing.Floor + smallSizing.Range) * b.Short()
				if d.Size < minSize || d.Size > maxSize*(1+1e-9) {
					t.Fatalf("Size %v outside [%v,%v]", d.Size, minSize, maxSize)
				}
			}
		}
	}
}

func TestGenerateUnmeasuredBounds(t *testing.T) {
	g := NewGenerator(testCatalog(t), largeSizing, rand.New(rand.NewSource(7)))
	for _, b := range []Bounds{{0, 0}, {-10, -5}} {
		batch := g.Generate(b)
		if len(batch) == 0 {
			t.Fatal("Expected a non-empty batch for unmeasured bounds")
		}
		for _, d := range batch {
			if d.X != 0 || d.Y != 0 || d.Size != 0 {
				t.Errorf("Expected origin-positioned zero-sized shape, got %+v", d)
			}
		}
	}
}

func TestGenerateDeterministicWithSeed(t *testing.T) {
	c := testCatalog(t)
	a := NewGenerator(c, smallSizing, rand.New(rand.NewSource(42))).Generate(Bounds{640, 480})
	b := NewGenerator(c, smallSizing, rand.New(rand.NewSource(42))).Generate(Bounds{640, 480})
	if len(a) != len(b) {
		t.Fatalf("Expected equal batch sizes, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("Descriptor %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateUniqueIDs(t *testing.T) {
	g := NewGenerator(testCatalog(t), smallSizing, rand.New(rand.NewSource(3)))
	seen := map[uint64]bool{}
	for i := 0; i < 50; i++ {
		for _, d := range g.Generate(Bounds{100, 100}) {
			if seen[d.ID] {
				t.Fatalf("Duplicate descriptor id %d", d.ID)
			}
			seen[d.ID] = true
		}
	}
}

func TestGenerateCoversAllBatchSizes(t *testing.T) {
	g := NewGenerator(testCatalog(t), smallSizing, rand.New(rand.NewSource(11)))
	sizes := map[int]bool{}
	for i := 0; i < 500; i++ {
		sizes[len(g.Generate(Bounds{10, 10}))] = true
	}
	for n := MinBatch; n <= MaxBatch; n++ {
		if !sizes[n] {
			t.Errorf("Batch size %d never produced", n)
		}
	}
}

func TestBatchLifetime(t *testing.T) {
	c := testCatalog(t)
	b := Batch{{Kind: Circle}, {Kind: FanToCircle}}
	if d := b.Lifetime(c); d != 1500*time.Millisecond {
		t.Errorf("Expected 1.5s lifetime, got %v", d)
	}
	if d := (Batch{{Kind: Polygon}}).ExitDuration(c); d != 300*time.Millisecond {
		t.Errorf("Expected 300ms exit, got %v", d)
	}
}

func TestIntentSample(t *testing.T) {
	m := DefaultMotion(Polygon)

	start := m.Enter.Sample(0)
	if start.Opacity != 0 || start.Scale != 0 {
		t.Errorf("Expected hidden start frame, got %+v", start)
	}
	mid := m.Enter.Sample(350 * time.Millisecond)
	if mid.Scale < 0.49 || mid.Scale > 0.51 {
		t.Errorf("Expected half scale at midpoint of ease-in-out, got %v", mid.Scale)
	}
	end := m.Enter.Sample(10 * time.Second)
	if end.Opacity != 1 || end.Rotation != 45 {
		t.Errorf("Expected settled frame, got %+v", end)
	}
}

func TestLinearTrace(t *testing.T) {
	m := DefaultMotion(SquareTrace)
	f := m.Enter.Sample(750 * time.Millisecond)
	if f.Trace < 0.499 || f.Trace > 0.501 {
		t.Errorf("Expected linear trace 0.5 halfway, got %v", f.Trace)
	}
}

func TestExitFromMidEntry(t *testing.T) {
	m := DefaultMotion(Circle)
	exit := m.ExitFrom(350 * time.Millisecond)
	if exit.From.Scale <= 0 || exit.From.Scale >= 1 {
		t.Errorf("Expected exit to start mid-entry, got %+v", exit.From)
	}
	if f := exit.Sample(exit.Duration); f.Opacity != 0 || f.Scale != 0 {
		t.Errorf("Expected exit to end hidden, got %+v", f)
	}
}
