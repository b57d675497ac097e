package game

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/hover-wallpaper/internal/config"
	"github.com/iburimskiy/hover-wallpaper/internal/effects"
	"github.com/iburimskiy/hover-wallpaper/internal/scene"
)

// drawCover draws img scaled to cover a w×h area at the origin. dst may be a
// sub-image of the screen, which clips the result.
func drawCover(dst, img *ebiten.Image, w, h int, opacity float32) {
	if img == nil {
		return
	}
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()
	if iw == 0 || ih == 0 {
		return
	}
	scale := math.Max(float64(w)/float64(iw), float64(h)/float64(ih))
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate((float64(w)-float64(iw)*scale)/2, (float64(h)-float64(ih)*scale)/2)
	op.ColorScale.ScaleAlpha(opacity)
	dst.DrawImage(img, op)
}

func (g *Game) drawBackground(screen *ebiten.Image) {
	st := g.scene.State
	w, h := float32(g.width), float32(g.height)

	if g.scene.Settings().Variant == config.VariantClassic {
		vector.DrawFilledRect(screen, 0, 0, w, h, classicBase, false)
	} else {
		vector.DrawFilledRect(screen, 0, 0, w, h, rosterBase, false)
		drawCover(screen, g.assets.portrait(string(st.Character)), g.width, g.height, 1)
	}

	if tint, ok := g.currentTint(); ok {
		vector.DrawFilledRect(screen, 0, 0, w, h, withOpacity(tint, config.TintOpacity), false)
	}
}

// currentTint returns the tint mid cross-fade, if the palette has one.
func (g *Game) currentTint() (color.NRGBA, bool) {
	st := g.scene.State
	c := g.scene.Catalog()
	if st.Tint < 0 || st.Tint >= c.NumTints() {
		return color.NRGBA{}, false
	}
	cur := c.Tint(st.Tint)
	if st.PrevTint < 0 || st.PrevTint == st.Tint || st.TintChanged.IsZero() {
		return cur, true
	}
	t := clamp01(float64(g.clock.Now().Sub(st.TintChanged)) / float64(config.TintFade))
	return crossfade(c.Tint(st.PrevTint), cur, t), true
}

// hoverAmount returns how far cell i's highlight has faded in.
func (g *Game) hoverAmount(i int, now time.Time) float64 {
	changed := g.hoverChanged[i]
	t := 1.0
	if !changed.IsZero() {
		t = clamp01(float64(now.Sub(changed)) / float64(config.HoverFade))
	}
	if g.scene.State.Grid.Cell(i).IsHovered {
		return t
	}
	return 1 - t
}

func (g *Game) drawCells(screen *ebiten.Image, now time.Time) {
	st := g.scene.State
	classic := g.scene.Settings().Variant == config.VariantClassic

	var highlight color.NRGBA
	if !classic {
		tint, ok := g.currentTint()
		if !ok {
			tint = white
		}
		highlight = mixSRGB(tint, white, 0.5)
		// Pulse with the background track
		highlight = withOpacity(highlight, 0.6+0.4*g.level)
	}

	for i := 0; i < st.Grid.Len(); i++ {
		x, y, w, h := st.Grid.CellRect(i, st.Bounds)
		amt := g.hoverAmount(i, now)
		var clr color.NRGBA
		if classic {
			clr = mixSRGB(classicCell, classicHover, amt)
		} else {
			if amt <= 0 {
				continue
			}
			clr = withOpacity(highlight, amt)
		}
		vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
	}
}

func (g *Game) drawShapes(screen *ebiten.Image, now time.Time) {
	st := g.scene.State
	if st.Paused && g.scene.Settings().Variant == config.VariantClassic {
		return
	}
	drawBatches(screen, g.scene.Catalog(), st.Batches, now)
}

// drawWipe reveals the next portrait behind a glowing line sliding in from
// the wipe's edge.
func (g *Game) drawWipe(screen *ebiten.Image, now time.Time) {
	wipe := g.scene.State.Wipe
	if wipe == nil {
		return
	}
	slide := effects.Intent{From: effects.Frame{Trace: 0}, To: effects.Frame{Trace: 1}, Duration: wipe.Duration, Easing: effects.EaseInOut}
	p := slide.Sample(now.Sub(wipe.Started)).Trace
	w, h := float64(g.width), float64(g.height)

	var reveal image.Rectangle
	var lx0, ly0, lx1, ly1 float64
	switch wipe.Direction {
	case scene.Top:
		y := h * p
		reveal = image.Rect(0, 0, g.width, int(y))
		lx0, ly0, lx1, ly1 = 0, y, w, y
	case scene.Bottom:
		y := h * (1 - p)
		reveal = image.Rect(0, int(y), g.width, g.height)
		lx0, ly0, lx1, ly1 = 0, y, w, y
	case scene.Left:
		x := w * p
		reveal = image.Rect(0, 0, int(x), g.height)
		lx0, ly0, lx1, ly1 = x, 0, x, h
	default:
		x := w * (1 - p)
		reveal = image.Rect(int(x), 0, g.width, g.height)
		lx0, ly0, lx1, ly1 = x, 0, x, h
	}

	if !reveal.Empty() {
		if portrait := g.assets.portrait(string(wipe.Character)); portrait != nil {
			sub := screen.SubImage(reveal).(*ebiten.Image)
			// The overlay fades in over the same duration as the slide
			drawCover(sub, portrait, g.width, g.height, float32(p))
		}
	}

	glow := withOpacity(white, 0.7*(1-p*0.5))
	vector.StrokeLine(screen, float32(lx0), float32(ly0), float32(lx1), float32(ly1), config.WipeGlowWidth, withOpacity(glow, 0.35), true)
	vector.StrokeLine(screen, float32(lx0), float32(ly0), float32(lx1), float32(ly1), config.WipeLineWidth, white, true)
}
