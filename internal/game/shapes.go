package game

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/iburimskiy/hover-wallpaper/internal/effects"
	"github.com/iburimskiy/hover-wallpaper/internal/scene"
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// fillPath fills path with clr at the given opacity.
func fillPath(dst *ebiten.Image, path *vector.Path, clr color.NRGBA, opacity float64) {
	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255 * float32(clamp01(opacity))
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = b
		vs[i].ColorA = a
	}
	dst.DrawTriangles(vs, is, whiteSubImage, &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// frameOf samples where a shape of batch b is at now.
func frameOf(c *effects.Catalog, b *scene.LiveBatch, d effects.Descriptor, now time.Time) effects.Frame {
	m := c.Motion(d.Kind)
	if b.Live() {
		return m.Enter.Sample(now.Sub(b.Spawned))
	}
	return m.ExitFrom(b.Retired.Sub(b.Spawned)).Sample(now.Sub(b.Retired))
}

func drawBatches(dst *ebiten.Image, c *effects.Catalog, batches []*scene.LiveBatch, now time.Time) {
	for _, b := range batches {
		for _, d := range b.Batch {
			drawShape(dst, d, frameOf(c, b, d, now))
		}
	}
}

func drawShape(dst *ebiten.Image, d effects.Descriptor, f effects.Frame) {
	if f.Opacity <= 0 || d.Size <= 0 {
		return
	}
	cx := d.X + d.Size/2
	cy := d.Y + d.Size/2
	half := d.Size / 2 * f.Scale
	rot := f.Rotation * math.Pi / 180

	switch d.Kind {
	case effects.Circle:
		if half <= 0 {
			return
		}
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(half), withOpacity(d.Color, f.Opacity), true)

	case effects.Polygon:
		if half <= 0 {
			return
		}
		var path vector.Path
		for i := 0; i < 4; i++ {
			a := rot + math.Pi/4 + float64(i)*math.Pi/2
			x := cx + math.Cos(a)*half*math.Sqrt2
			y := cy + math.Sin(a)*half*math.Sqrt2
			if i == 0 {
				path.MoveTo(float32(x), float32(y))
			} else {
				path.LineTo(float32(x), float32(y))
			}
		}
		path.Close()
		fillPath(dst, &path, d.Color, f.Opacity)

	case effects.FanToCircle:
		if half <= 0 {
			return
		}
		// The fan opens from a quarter into a full disc as it traces
		sweep := 2 * math.Pi * (0.25 + 0.75*clamp01(f.Trace))
		if sweep >= 2*math.Pi-1e-3 {
			vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(half), withOpacity(d.Color, f.Opacity), true)
			return
		}
		start := rot - math.Pi/2
		var path vector.Path
		path.MoveTo(float32(cx), float32(cy))
		path.LineTo(float32(cx+math.Cos(start)*half), float32(cy+math.Sin(start)*half))
		path.Arc(float32(cx), float32(cy), float32(half), float32(start), float32(start+sweep), vector.Clockwise)
		path.Close()
		fillPath(dst, &path, d.Color, f.Opacity)

	case effects.SquareTrace:
		drawTrace(dst, d, f)
	}
}

// drawTrace strokes the fraction f.Trace of a square outline, clockwise from
// the top-left corner.
func drawTrace(dst *ebiten.Image, d effects.Descriptor, f effects.Frame) {
	side := d.Size * f.Scale
	if side <= 0 {
		return
	}
	x0 := d.X + (d.Size-side)/2
	y0 := d.Y + (d.Size-side)/2
	corners := [5][2]float64{
		{x0, y0}, {x0 + side, y0}, {x0 + side, y0 + side}, {x0, y0 + side}, {x0, y0},
	}
	width := float32(math.Max(1, side*0.04))
	clr := withOpacity(d.Color, f.Opacity)

	remaining := clamp01(f.Trace) * 4 * side
	for i := 0; i < 4 && remaining > 0; i++ {
		ax, ay := corners[i][0], corners[i][1]
		bx, by := corners[i+1][0], corners[i+1][1]
		t := math.Min(1, remaining/side)
		ex, ey := ax+(bx-ax)*t, ay+(by-ay)*t
		vector.StrokeLine(dst, float32(ax), float32(ay), float32(ex), float32(ey), width, clr, true)
		remaining -= side
	}
}
