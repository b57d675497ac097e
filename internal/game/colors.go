package game

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	classicBase  = color.NRGBA{R: 0xfe, G: 0xfc, B: 0xe8, A: 0xff} // yellow-50
	classicCell  = color.NRGBA{R: 0xfe, G: 0xf9, B: 0xc3, A: 0xff} // yellow-100
	classicHover = color.NRGBA{R: 0xf5, G: 0xf5, B: 0xdc, A: 0xff} // beige
	rosterBase   = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x22, A: 0xff}
	menuPanel    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	menuText     = color.NRGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	menuButton   = color.NRGBA{R: 0x18, G: 0x18, B: 0x1b, A: 0xff}
	menuButtonHi = color.NRGBA{R: 0x3f, G: 0x3f, B: 0x46, A: 0xff}
	switchOn     = color.NRGBA{R: 0x22, G: 0xc5, B: 0x5e, A: 0xff}
	switchOff    = color.NRGBA{R: 0xa1, G: 0xa1, B: 0xaa, A: 0xff}
	white        = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func toColorful(c color.NRGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color, a uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

// mixSRGB blends b into a by t in sRGB space, like CSS color-mix(in srgb).
func mixSRGB(a, b color.NRGBA, t float64) color.NRGBA {
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return fromColorful(toColorful(a).BlendRgb(toColorful(b), t), uint8(alpha+0.5))
}

// crossfade blends tints perceptually for the background tint animation.
func crossfade(a, b color.NRGBA, t float64) color.NRGBA {
	alpha := float64(a.A) + (float64(b.A)-float64(a.A))*t
	return fromColorful(toColorful(a).BlendLab(toColorful(b), t), uint8(alpha+0.5))
}

// withOpacity scales the alpha channel.
func withOpacity(c color.NRGBA, opacity float64) color.NRGBA {
	c.A = uint8(float64(c.A)*clamp01(opacity) + 0.5)
	return c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
