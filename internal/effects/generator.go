package effects

import (
	"image/color"
	"math"
	"time"
)

const (
	MinBatch = 1
	MaxBatch = 5
)

// Rand is the random source the generator draws from. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// Bounds is the measured size of the grid surface in pixels.
type Bounds struct {
	Width, Height float64
}

// Normalized clamps negative or NaN dimensions to zero.
func (b Bounds) Normalized() Bounds {
	fix := func(v float64) float64 {
		if math.IsNaN(v) || v < 0 {
			return 0
		}
		return v
	}
	return Bounds{Width: fix(b.Width), Height: fix(b.Height)}
}

// Short returns the shorter side.
func (b Bounds) Short() float64 {
	return math.Min(b.Width, b.Height)
}

// Descriptor is one ephemeral shape. X, Y is its top-left corner in surface
// coordinates.
type Descriptor struct {
	ID    uint64
	Kind  Kind
	X, Y  float64
	Size  float64
	Color color.NRGBA
}

// Batch is the set of shapes spawned by one trigger.
type Batch []Descriptor

// Lifetime returns the longest entry duration among the batch's shapes.
func (b Batch) Lifetime(c *Catalog) time.Duration {
	var d time.Duration
	for _, e := range b {
		if l := c.Motion(e.Kind).Lifetime(); l > d {
			d = l
		}
	}
	return d
}

// ExitDuration returns the longest exit duration among the batch's shapes.
func (b Batch) ExitDuration(c *Catalog) time.Duration {
	var d time.Duration
	for _, e := range b {
		if l := c.Motion(e.Kind).Exit.Duration; l > d {
			d = l
		}
	}
	return d
}

// Sizing derives shape size from the short side of the bounds:
// size is uniform over [Floor*short, (Floor+Range)*short).
type Sizing struct {
	Floor float64
	Range float64
}

// Generator produces random effect batches. It never fails: unmeasured bounds
// yield zero-sized shapes at the origin.
type Generator struct {
	catalog *Catalog
	sizing  Sizing
	rng     Rand
	nextID  uint64
}

func NewGenerator(c *Catalog, sizing Sizing, rng Rand) *Generator {
	return &Generator{catalog: c, sizing: sizing, rng: rng}
}

// Catalog returns the catalog the generator draws from
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Generate returns a batch of MinBatch..MaxBatch shapes positioned inside b.
func (g *Generator) Generate(b Bounds) Batch {
	b = b.Normalized()
	n := MinBatch + g.rng.Intn(MaxBatch-MinBatch+1)
	batch := make(Batch, n)
	for i := range batch {
		batch[i] = g.descriptor(b)
	}
	return batch
}

func (g *Generator) descriptor(b Bounds) Descriptor {
	short := b.Short()
	g.nextID++
	return Descriptor{
		ID:    g.nextID,
		Kind:  g.catalog.kinds[g.rng.Intn(len(g.catalog.kinds))],
		X:     g.rng.Float64() * b.Width,
		Y:     g.rng.Float64() * b.Height,
		Size:  g.rng.Float64()*g.sizing.Range*short + g.sizing.Floor*short,
		Color: g.catalog.colors[g.rng.Intn(len(g.catalog.colors))],
	}
}
