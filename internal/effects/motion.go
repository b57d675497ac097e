package effects

import (
	"math"
	"time"
)

// Easing maps linear progress in [0,1] onto eased progress.
type Easing int

const (
	Linear Easing = iota
	EaseInOut
)

func (e Easing) apply(t float64) float64 {
	switch e {
	case EaseInOut:
		if t < 0.5 {
			return 4 * t * t * t
		}
		return 1 - math.Pow(-2*t+2, 3)/2
	default:
		return t
	}
}

// Frame is the animatable state of a shape. Rotation is in degrees, Trace is the
// drawn fraction of an outline.
type Frame struct {
	Opacity  float64
	Scale    float64
	Rotation float64
	Trace    float64
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

// Lerp interpolates every field of f towards to.
func (f Frame) Lerp(to Frame, t float64) Frame {
	return Frame{
		Opacity:  lerp(f.Opacity, to.Opacity, t),
		Scale:    lerp(f.Scale, to.Scale, t),
		Rotation: lerp(f.Rotation, to.Rotation, t),
		Trace:    lerp(f.Trace, to.Trace, t),
	}
}

// Intent is a single tween request handed to the render surface.
type Intent struct {
	From     Frame
	To       Frame
	Duration time.Duration
	Easing   Easing
}

// Progress returns the eased progress after elapsed.
func (in Intent) Progress(elapsed time.Duration) float64 {
	if in.Duration <= 0 {
		return 1
	}
	return in.Easing.apply(clamp01(float64(elapsed) / float64(in.Duration)))
}

// Sample returns the frame after elapsed.
func (in Intent) Sample(elapsed time.Duration) Frame {
	return in.From.Lerp(in.To, in.Progress(elapsed))
}

// Motion pairs the entry and exit tweens of a shape.
type Motion struct {
	Enter Intent
	Exit  Intent
}

// Lifetime is how long a shape takes to fully appear.
func (m Motion) Lifetime() time.Duration {
	return m.Enter.Duration
}

// ExitFrom returns the exit tween starting wherever the entry was after elapsed,
// so a shape retired mid-entry shrinks from its current state.
func (m Motion) ExitFrom(elapsed time.Duration) Intent {
	exit := m.Exit
	exit.From = m.Enter.Sample(elapsed)
	return exit
}

var hidden = Frame{}

// DefaultMotion returns the stock animation of kind k.
func DefaultMotion(k Kind) Motion {
	switch k {
	case Polygon:
		return Motion{
			Enter: Intent{From: hidden, To: Frame{Opacity: 1, Scale: 1, Rotation: 45, Trace: 1}, Duration: 700 * time.Millisecond, Easing: EaseInOut},
			Exit:  Intent{To: hidden, Duration: 300 * time.Millisecond, Easing: EaseInOut},
		}
	case FanToCircle:
		return Motion{
			Enter: Intent{From: hidden, To: Frame{Opacity: 1, Scale: 1, Rotation: 360, Trace: 1}, Duration: 1500 * time.Millisecond, Easing: EaseInOut},
			Exit:  Intent{To: Frame{Rotation: 360}, Duration: 500 * time.Millisecond, Easing: EaseInOut},
		}
	case SquareTrace:
		return Motion{
			Enter: Intent{From: hidden, To: Frame{Opacity: 1, Scale: 1, Trace: 1}, Duration: 1500 * time.Millisecond, Easing: Linear},
			Exit:  Intent{To: Frame{Scale: 1, Trace: 1}, Duration: 500 * time.Millisecond, Easing: Linear},
		}
	default:
		return Motion{
			Enter: Intent{From: hidden, To: Frame{Opacity: 1, Scale: 1, Trace: 1}, Duration: 700 * time.Millisecond, Easing: EaseInOut},
			Exit:  Intent{To: hidden, Duration: 300 * time.Millisecond, Easing: EaseInOut},
		}
	}
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
