// Package effects decides what decorative shapes a hover spawns and how they animate.
package effects

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Kind is the shape of one decorative effect.
type Kind int

const (
	Circle Kind = iota
	Polygon
	FanToCircle
	SquareTrace
)

var kindNames = [...]string{
	Circle:      "circle",
	Polygon:     "polygon",
	FanToCircle: "fan-to-circle",
	SquareTrace: "square-trace",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// ParseKind accepts the names printed by Kind.String.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), nil
		}
	}
	return 0, fmt.Errorf("unknown shape kind %q", s)
}

// ParseColor parses a #rrggbb hex triplet and applies alpha in [0,1].
func ParseColor(hex string, alpha float64) (color.NRGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(hex))
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: uint8(clamp01(alpha)*255 + 0.5)}, nil
}

// Catalog is the fixed set of shape kinds, foreground colors and background
// tints. It is immutable once built; accessors return copies.
type Catalog struct {
	kinds   []Kind
	colors  []color.NRGBA
	tints   []color.NRGBA
	motions map[Kind]Motion
}

// CatalogConfig lists the textual inputs of a Catalog.
type CatalogConfig struct {
	Kinds        []string
	Palette      []string
	PaletteAlpha float64
	Tints        []string
	TintAlpha    float64
	// EnterDuration overrides the per-kind entry duration when non-zero.
	EnterDuration time.Duration
}

func NewCatalog(cfg CatalogConfig) (*Catalog, error) {
	if len(cfg.Kinds) == 0 {
		return nil, fmt.Errorf("catalog needs at least one shape kind")
	}
	if len(cfg.Palette) == 0 {
		return nil, fmt.Errorf("catalog needs at least one color")
	}

	c := &Catalog{motions: make(map[Kind]Motion, len(cfg.Kinds))}
	for _, name := range cfg.Kinds {
		k, err := ParseKind(name)
		if err != nil {
			return nil, err
		}
		c.kinds = append(c.kinds, k)
		m := DefaultMotion(k)
		if cfg.EnterDuration > 0 {
			m.Enter.Duration = cfg.EnterDuration
		}
		c.motions[k] = m
	}
	for _, hex := range cfg.Palette {
		col, err := ParseColor(hex, cfg.PaletteAlpha)
		if err != nil {
			return nil, err
		}
		c.colors = append(c.colors, col)
	}
	for _, hex := range cfg.Tints {
		col, err := ParseColor(hex, cfg.TintAlpha)
		if err != nil {
			return nil, err
		}
		c.tints = append(c.tints, col)
	}
	return c, nil
}

// NumTints returns the background palette size
func (c *Catalog) NumTints() int {
	return len(c.tints)
}

// Tint returns background tint i
func (c *Catalog) Tint(i int) color.NRGBA {
	return c.tints[i]
}

// Motion returns the animation of kind k. Kinds outside the catalog get the default.
func (c *Catalog) Motion(k Kind) Motion {
	if m, ok := c.motions[k]; ok {
		return m
	}
	return DefaultMotion(k)
}
